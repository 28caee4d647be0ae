/*
 * DPS8 - EIS instruction execution
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
	"fmt"

	op "github.com/rcornwell/DPS8/emu/opcodemap"
	"github.com/rcornwell/DPS8/emu/word"
)

// Step holds the state of the instruction being executed.
type Step struct {
	proc   Processor
	IC     uint32     // Address of instruction
	IWB    uint64     // Instruction word
	Opcode int        // 10 bit opcode
	Name   string     // Mnemonic
	kinds  []int      // Descriptor kinds
	ops    [3]Operand // Operands
}

var handlers = map[int]func(*Step) error{
	op.OpCSL:  (*Step).opCSL,
	op.OpCSR:  (*Step).opCSR,
	op.OpSZTL: (*Step).opSZTL,
	op.OpSZTR: (*Step).opSZTR,
	op.OpCMPB: (*Step).opCMPB,
	op.OpMVE:  (*Step).opMVE,
	op.OpMVNE: (*Step).opMVNE,
	op.OpMLR:  (*Step).opMLR,
	op.OpMRL:  (*Step).opMRL,
	op.OpCMPC: (*Step).opCMPC,
	op.OpSCD:  (*Step).opSCD,
	op.OpSCDR: (*Step).opSCDR,
	op.OpSCM:  (*Step).opSCM,
	op.OpSCMR: (*Step).opSCMR,
	op.OpMVT:  (*Step).opMVT,
	op.OpTCT:  (*Step).opTCT,
	op.OpTCTR: (*Step).opTCTR,
	op.OpAD2D: (*Step).opAD2D,
	op.OpSB2D: (*Step).opSB2D,
	op.OpMP2D: (*Step).opMP2D,
	op.OpDV2D: (*Step).opDV2D,
	op.OpAD3D: (*Step).opAD3D,
	op.OpSB3D: (*Step).opSB3D,
	op.OpMP3D: (*Step).opMP3D,
	op.OpDV3D: (*Step).opDV3D,
	op.OpMVN:  (*Step).opMVN,
	op.OpBTD:  (*Step).opBTD,
	op.OpCMPN: (*Step).opCMPN,
	op.OpDTB:  (*Step).opDTB,
}

// IsEIS reports whether the instruction word holds an EIS opcode.
func IsEIS(iwb uint64) bool {
	_, ok := handlers[op.Opcode(iwb)]
	return ok
}

// Length returns the number of words taken by the instruction, including
// its descriptors.
func Length(iwb uint64) int {
	info, ok := op.Instructions[op.Opcode(iwb)]
	if !ok {
		return 1
	}
	return 1 + len(info.Operands)
}

// NewStep creates the context for the instruction iwb at ic.
func NewStep(p Processor, ic uint32, iwb uint64) *Step {
	s := &Step{proc: p, IC: ic, IWB: iwb, Opcode: op.Opcode(iwb)}
	if info, ok := op.Instructions[s.Opcode]; ok {
		s.Name = info.Name
		s.kinds = info.Operands
		for k := range info.MFs {
			s.ops[k].MF = op.MF(iwb, k)
		}
	}
	for k := range s.ops {
		s.ops[k].Addr.Reset(p)
	}
	return s
}

// Execute runs the EIS instruction iwb located at ic. It returns the
// number of words the instruction occupies.
func Execute(p Processor, ic uint32, iwb uint64) (int, error) {
	s := NewStep(p, ic, iwb)
	handler, ok := handlers[s.Opcode]
	if !ok {
		return 1, p.RaiseFault(FaultIPR, SubIllOp, fmt.Sprintf("opcode %04o", s.Opcode))
	}
	for k := range s.kinds {
		d, err := p.ReadWord((ic+uint32(k)+1)&word.AMASK, DescriptorRead, false)
		if err != nil {
			return 1 + len(s.kinds), err
		}
		s.ops[k].Desc = d
	}
	tracef(debugCmd, "%06o %s %012o", ic, s.Name, iwb)
	err := handler(s)
	if ferr := s.flush(); err == nil {
		err = ferr
	}
	if err != nil {
		tracef(debugCmd, "%06o %s %v", ic, s.Name, err)
	}
	return 1 + len(s.kinds), err
}

// Write back any cached words.
func (s *Step) flush() error {
	var first error
	for k := range s.ops {
		if err := s.ops[k].Addr.Flush(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// setupOperands resolves each operand as the kind the instruction lists.
func (s *Step) setupOperands() error {
	for k, kind := range s.kinds {
		if err := s.setupOperand(k, kind); err != nil {
			return err
		}
	}
	return nil
}

// Resolve operand k.
func (s *Step) setupOperand(k int, kind int) error {
	switch kind {
	case op.DescArg:
		return s.parseArg(k)
	case op.DescAlpha:
		if err := s.setupDescriptor(k); err != nil {
			return err
		}
		return s.parseAlpha(k, -1, false)
	case op.DescNumeric:
		if err := s.setupDescriptor(k); err != nil {
			return err
		}
		return s.parseNumeric(k)
	case op.DescBits:
		if err := s.setupDescriptor(k); err != nil {
			return err
		}
		return s.parseBits(k)
	}
	panic(fmt.Sprintf("eis: operand kind %d not known", kind))
}

// Operand returns operand k.
func (s *Step) Operand(k int) *Operand {
	return &s.ops[k]
}

// Fill character, bits 0-8.
func (s *Step) fill() uint16 {
	return uint16(word.GetBits36(s.IWB, 0, 9))
}

// Truncation fault enable.
func (s *Step) tBit() bool {
	return word.GetBit(s.IWB, 9)
}

// Round result.
func (s *Step) rBit() bool {
	return word.GetBit(s.IWB, 10)
}

// Use 013 as 4 bit plus sign.
func (s *Step) pBit() bool {
	return word.GetBit(s.IWB, 0)
}

func (s *Step) indicator(mask uint32) bool {
	return s.proc.Indicators()&mask != 0
}

func (s *Step) setIndicator(mask uint32, on bool) {
	ir := s.proc.Indicators()
	if on {
		ir |= mask
	} else {
		ir &^= mask
	}
	s.proc.SetIndicators(ir)
}

// Overflow faults are taken unless masked.
func (s *Step) overflowFault() bool {
	return !s.indicator(IndOMask)
}

// truncation records truncation and faults when enabled.
func (s *Step) truncation(trunc bool) error {
	s.setIndicator(IndTrunc, trunc)
	if trunc && s.tBit() && s.overflowFault() {
		return s.proc.RaiseFault(FaultOFL, SubNone, s.Name+" truncation fault")
	}
	return nil
}

// overflow records an overflow and faults unless masked.
func (s *Step) overflow(mask uint32, what string) error {
	s.setIndicator(mask, true)
	if s.overflowFault() {
		return s.proc.RaiseFault(FaultOFL, SubNone, s.Name+" "+what)
	}
	return nil
}

// Mask character to the size of character type ta.
func maskChar(c uint16, ta uint8) uint16 {
	switch ta {
	case CTA4:
		return c & 017
	case CTA6:
		return c & 077
	default:
		return c & 0777
	}
}
