/*
 * DPS8 - EIS edit micro operations
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

/*
   Micro operations are 9 bit characters: a 5 bit operation followed by a
   4 bit immediate field (IF). For counted operations an IF of zero means
   16. Editing stops when the receiving field is full. Running out of
   micro operations or sending characters first is an illegal procedure.
*/

package eis

import (
	"fmt"
)

// Micro operation codes.
type mopCode uint16

const (
	mopINSM mopCode = 001 // Insert table entry 1 multiple
	mopENF  mopCode = 002 // End floating suppression
	mopSES  mopCode = 003 // Set end suppression
	mopMVZB mopCode = 004 // Move with zero suppression and blank
	mopMVZA mopCode = 005 // Move with zero suppression and asterisk
	mopMFLS mopCode = 006 // Move with float sign insertion
	mopMFLC mopCode = 007 // Move with float currency insertion
	mopINSB mopCode = 010 // Insert blank on suppression
	mopINSA mopCode = 011 // Insert asterisk on suppression
	mopINSN mopCode = 012 // Insert on negative
	mopINSP mopCode = 013 // Insert on positive
	mopIGN  mopCode = 014 // Ignore sending characters
	mopMVC  mopCode = 015 // Move sending characters
	mopMSES mopCode = 016 // Move and set sign
	mopMORS mopCode = 017 // Move and OR sign
	mopLTE  mopCode = 020 // Load table entry
	mopCHT  mopCode = 021 // Change table
)

var mopNames = map[mopCode]string{
	mopINSM: "INSM", mopENF: "ENF", mopSES: "SES", mopMVZB: "MVZB",
	mopMVZA: "MVZA", mopMFLS: "MFLS", mopMFLC: "MFLC", mopINSB: "INSB",
	mopINSA: "INSA", mopINSN: "INSN", mopINSP: "INSP", mopIGN: "IGN",
	mopMVC: "MVC", mopMSES: "MSES", mopMORS: "MORS", mopLTE: "LTE",
	mopCHT: "CHT",
}

func (m mopCode) String() string {
	if n, ok := mopNames[m]; ok {
		return n
	}
	return fmt.Sprintf("MOP%02o", uint16(m))
}

// Edit insertion table at the start of each edit.
var defaultTable = [8]uint16{
	040, // blank
	052, // *
	053, // +
	055, // -
	044, // $
	054, // ,
	056, // .
	060, // 0
}

// Table entries by use.
const (
	tblBlank    = 0
	tblAsterisk = 1
	tblPlus     = 2
	tblMinus    = 3
	tblCurrency = 4
	tblZero     = 7
)

// editor holds the state of one edit.
type editor struct {
	step    *Step
	src     *Operand
	mop     *Operand
	dst     *Operand
	numeric bool     // Sending field is decimal digits
	digits  []uint16 // Digits of a numeric sending field
	srcPos  uint32
	srcN    uint32
	mopPos  uint32
	dstPos  uint32
	table   [8]uint16
	iF      uint16 // Immediate field of current operation
	es      bool   // End suppression
	sn      bool   // Sign negative
	bz      bool   // Blank when zero
	z       bool   // All sending digits zero
}

func newEditor(s *Step) *editor {
	return &editor{
		step:  s,
		src:   &s.ops[0],
		mop:   &s.ops[1],
		dst:   &s.ops[2],
		srcN:  s.ops[0].N,
		table: defaultTable,
		z:     true,
	}
}

func (e *editor) illegal(format string, a ...any) error {
	msg := e.step.Name + " " + fmt.Sprintf(format, a...)
	return e.step.proc.RaiseFault(FaultIPR, SubIllProc, msg)
}

// Next character of the micro operation string.
func (e *editor) fetch() (uint16, error) {
	if e.mopPos >= e.mop.N {
		return 0, e.illegal("micro operations exhausted at %d", e.dstPos)
	}
	c, err := e.mop.GetChar(e.mopPos)
	if err != nil {
		return 0, err
	}
	e.mopPos++
	return c, nil
}

// Next sending character, true if it is a zero digit.
func (e *editor) source() (uint16, bool, error) {
	if e.srcPos >= e.srcN {
		return 0, false, e.illegal("sending field exhausted at %d", e.dstPos)
	}
	i := e.srcPos
	e.srcPos++
	if e.numeric {
		return e.digits[i], e.digits[i] == 0, nil
	}
	c, err := e.src.GetChar(i)
	if err != nil {
		return 0, false, err
	}
	zero := c == 0
	if e.src.TA == CTA9 {
		zero = c == 060
	}
	return c, zero, nil
}

// Convert a sending character for the receiving field.
func (e *editor) convert(c uint16) uint16 {
	if (e.numeric || e.src.TA == CTA4) && e.dst.TA == CTA9 {
		return c | (e.table[tblZero] & 0760)
	}
	return maskChar(c, e.dst.TA)
}

// Write one character to the receiving field.
func (e *editor) put(c uint16) error {
	if e.dstPos >= e.dst.N {
		return nil
	}
	tracef(debugMop, "%s put %d %03o", e.step.Name, e.dstPos, c)
	if err := e.dst.PutChar(e.dstPos, maskChar(c, e.dst.TA)); err != nil {
		return err
	}
	e.dstPos++
	return nil
}

func (e *editor) full() bool {
	return e.dstPos >= e.dst.N
}

// Count given by the immediate field.
func (e *editor) count() int {
	if e.iF == 0 {
		return 16
	}
	return int(e.iF)
}

// Run micro operations until the receiving field is full.
func (e *editor) run() error {
	if e.mop.TA != CTA9 {
		return e.illegal("micro operation string must be 9 bit")
	}
	for !e.full() {
		c, err := e.fetch()
		if err != nil {
			return err
		}
		m := mopCode((c >> 4) & 037)
		e.iF = c & 017
		tracef(debugMop, "%s %s %d src %d dst %d", e.step.Name, m, e.iF, e.srcPos, e.dstPos)
		if err := e.exec(m); err != nil {
			return err
		}
	}
	if e.numeric && e.bz && e.z {
		e.dstPos = 0
		for !e.full() {
			if err := e.put(e.table[tblBlank]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *editor) exec(m mopCode) error {
	switch m {
	case mopINSM:
		return e.insertMultiple()
	case mopENF:
		return e.endFloat()
	case mopSES:
		e.es = e.iF&010 != 0
		if e.iF&04 != 0 {
			e.bz = true
		}
		return nil
	case mopMVZB:
		return e.moveSuppress(e.table[tblBlank])
	case mopMVZA:
		return e.moveSuppress(e.table[tblAsterisk])
	case mopMFLS:
		sign := e.table[tblPlus]
		if e.sn {
			sign = e.table[tblMinus]
		}
		return e.moveFloat(sign)
	case mopMFLC:
		return e.moveFloat(e.table[tblCurrency])
	case mopINSB:
		return e.insert(e.es, e.table[tblBlank])
	case mopINSA:
		return e.insert(e.es, e.table[tblAsterisk])
	case mopINSN:
		return e.insert(e.sn, e.table[tblBlank])
	case mopINSP:
		return e.insert(!e.sn, e.table[tblBlank])
	case mopIGN:
		for range e.count() {
			if _, _, err := e.source(); err != nil {
				return err
			}
		}
		return nil
	case mopMVC:
		return e.move(func(c uint16) uint16 { return c })
	case mopMSES:
		return e.moveSetSign()
	case mopMORS:
		return e.moveOrSign()
	case mopLTE:
		if e.iF == 0 || e.iF > 8 {
			return e.illegal("LTE entry %d", e.iF)
		}
		c, err := e.fetch()
		if err != nil {
			return err
		}
		e.table[e.iF-1] = c
		return nil
	case mopCHT:
		for i := range e.table {
			c, err := e.fetch()
			if err != nil {
				return err
			}
			e.table[i] = c
		}
		return nil
	}
	return e.illegal("micro operation %s", m)
}

// Insert table entry 1 IF times.
func (e *editor) insertMultiple() error {
	for range e.count() {
		if e.full() {
			break
		}
		if err := e.put(e.table[tblBlank]); err != nil {
			return err
		}
	}
	return nil
}

// Insert the sign or currency symbol once, turning on end suppression.
func (e *editor) endFloat() error {
	if !e.es {
		c := e.table[tblCurrency]
		if e.iF&010 == 0 {
			c = e.table[tblPlus]
			if e.sn {
				c = e.table[tblMinus]
			}
		}
		if err := e.put(c); err != nil {
			return err
		}
		e.es = true
	}
	if e.iF&04 != 0 {
		e.bz = true
	}
	return nil
}

// Move IF sending characters, replacing leading zeros by fill.
func (e *editor) moveSuppress(fill uint16) error {
	for range e.count() {
		if e.full() {
			break
		}
		c, zero, err := e.source()
		if err != nil {
			return err
		}
		if !zero {
			e.z = false
		}
		switch {
		case e.es:
			err = e.put(e.convert(c))
		case zero:
			err = e.put(fill)
		default:
			e.es = true
			err = e.put(e.convert(c))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Move IF sending characters, leading zeros become blanks and the
// symbol is inserted before the first nonzero character.
func (e *editor) moveFloat(symbol uint16) error {
	for range e.count() {
		if e.full() {
			break
		}
		c, zero, err := e.source()
		if err != nil {
			return err
		}
		if !zero {
			e.z = false
		}
		switch {
		case e.es:
			err = e.put(e.convert(c))
		case zero:
			err = e.put(e.table[tblBlank])
		default:
			e.es = true
			if err = e.put(symbol); err == nil {
				err = e.put(e.convert(c))
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Insert table entry IF, or the next micro operation character when IF
// is zero, if cond holds. Otherwise insert other.
func (e *editor) insert(cond bool, other uint16) error {
	if e.iF > 8 {
		return e.illegal("insert entry %d", e.iF)
	}
	var c uint16
	if e.iF == 0 {
		var err error
		if c, err = e.fetch(); err != nil {
			return err
		}
	} else {
		c = e.table[e.iF-1]
	}
	if !cond {
		c = other
	}
	return e.put(c)
}

// Move IF sending characters through f.
func (e *editor) move(f func(uint16) uint16) error {
	for range e.count() {
		if e.full() {
			break
		}
		c, zero, err := e.source()
		if err != nil {
			return err
		}
		if !zero {
			e.z = false
		}
		if err := e.put(f(e.convert(c))); err != nil {
			return err
		}
	}
	return nil
}

// Move IF characters, an alphanumeric character matching the sign entry
// under mask sets the sign.
func (e *editor) moveSetSign() error {
	if e.numeric {
		return e.move(func(c uint16) uint16 { return c })
	}
	return e.move(func(c uint16) uint16 {
		if c&e.table[tblPlus] == e.table[tblMinus] {
			e.sn = true
		}
		return c
	})
}

// Move IF characters ORed with the sign entry.
func (e *editor) moveOrSign() error {
	sign := e.table[tblPlus]
	if e.sn {
		sign = e.table[tblMinus]
	}
	return e.move(func(c uint16) uint16 { return c | sign })
}

// Move alphanumeric edited.
func (s *Step) opMVE() error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	return newEditor(s).run()
}

// Move numeric edited.
func (s *Step) opMVNE() error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	src := &s.ops[0]
	if src.S == CSFL {
		return s.proc.RaiseFault(FaultIPR, SubIllProc, "MVNE floating point sending field")
	}
	l, err := s.layout(0)
	if err != nil {
		return err
	}
	chars, err := s.readChars(0)
	if err != nil {
		return err
	}
	e := newEditor(s)
	e.numeric = true
	if l.Sign >= 0 {
		if e.sn, err = s.signOf(chars[l.Sign], s.ops[0].TA); err != nil {
			return err
		}
	}
	e.digits = make([]uint16, l.Digits)
	for i := range l.Digits {
		d, err := s.digitOf(chars[l.First+i], s.ops[0].TA)
		if err != nil {
			return err
		}
		e.digits[i] = uint16(d)
		if d != 0 {
			e.z = false
		}
	}
	e.srcN = uint32(l.Digits)
	return e.run()
}
