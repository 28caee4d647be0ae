/*
 * DPS8 - EIS faults
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package eis

import (
	"errors"
	"fmt"

	"github.com/zeebo/errs"
)

// Fault classes.
var (
	IllegalProcedure = errs.Class("illegal procedure")
	Overflow         = errs.Class("overflow")
	Divide           = errs.Class("divide check")
	Store            = errs.Class("store")
)

// Fault type.
type FaultKind int

const (
	FaultIPR FaultKind = iota // Illegal procedure
	FaultOFL                  // Overflow
	FaultDIV                  // Divide check
	FaultSTR                  // Store fault
)

// Sub code for illegal procedure faults.
type FaultSubtype int

const (
	SubNone    FaultSubtype = iota
	SubIllOp                // Illegal opcode
	SubIllMod               // Illegal modifier
	SubIllProc              // Illegal procedure
	SubIllDig               // Illegal decimal digit
)

var faultNames = map[FaultKind]string{
	FaultIPR: "IPR",
	FaultOFL: "OFL",
	FaultDIV: "DIV",
	FaultSTR: "STR",
}

var subNames = map[FaultSubtype]string{
	SubNone:    "",
	SubIllOp:   "ill_op",
	SubIllMod:  "ill_mod",
	SubIllProc: "ill_proc",
	SubIllDig:  "ill_dig",
}

// Fault raised by an instruction.
type Fault struct {
	Kind FaultKind
	Sub  FaultSubtype
	Msg  string
}

func (f *Fault) Error() string {
	if f.Sub == SubNone {
		return fmt.Sprintf("%s fault: %s", faultNames[f.Kind], f.Msg)
	}
	return fmt.Sprintf("%s fault (%s): %s", faultNames[f.Kind], subNames[f.Sub], f.Msg)
}

// Return class of fault.
func (f *Fault) class() *errs.Class {
	switch f.Kind {
	case FaultOFL:
		return &Overflow
	case FaultDIV:
		return &Divide
	case FaultSTR:
		return &Store
	default:
		return &IllegalProcedure
	}
}

// NewFault creates a fault wrapped in its class.
func NewFault(kind FaultKind, sub FaultSubtype, msg string) error {
	f := &Fault{Kind: kind, Sub: sub, Msg: msg}
	return f.class().Wrap(f)
}

// AsFault returns the fault carried by err, or nil.
func AsFault(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return nil
}
