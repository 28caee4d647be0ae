/*
 * DPS8 - EIS effective address resolution
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
   Operand descriptors:

   Alphanumeric:  | Y 0-17 | CN 18-20 | TA 21-22 | 0 23 | N 24-35 |
   Numeric:       | Y 0-17 | CN 18-20 | TN 21 | S 22-23 | SF 24-29 | N 30-35 |
   Bit string:    | Y 0-17 | C 18-19 | B 20-23 | N 24-35 |
   Argument:      | Y 0-17 | 0 18-28 | A 29 | 0 30-31 | REG 32-35 |

   When the A flag of the modification field is set, Y holds a pointer
   register number in bits 0-2 and a signed offset in bits 3-17.
*/

package eis

import (
	"fmt"

	"github.com/rcornwell/DPS8/emu/word"
)

// Kind of descriptor an operand slot is decoded as.
type OperandKind int

const (
	AlphaOperand OperandKind = iota
	NumericOperand
	BitOperand
	ArgOperand
)

// Operand is a decoded operand descriptor and its location.
type Operand struct {
	Addr   OperandAddress
	Kind   OperandKind
	MF     uint8  // Modification field
	Desc   uint64 // Descriptor word
	N      uint32 // Length in characters, digits or bits
	TA     uint8  // Character type
	TN     uint8  // Numeric type
	S      uint8  // Sign and decimal type
	SF     int    // Scale factor
	WordNo uint32 // First word of operand
	CN     int    // First character in word
	BitNo  int    // First bit in character
	DU     bool   // Operand data is in the descriptor
}

// Split Y into pointer register and offset, returning the new word address
// and the residual character and bit of the register.
func (s *Step) addressRegister(op *Operand, y uint32) (uint32, uint64, uint64) {
	n := uint8((y >> 15) & 07)
	ar := s.proc.AddressRegister(n)
	addr := (ar.WordNo + word.SignExt15(uint64(y))) & word.AMASK
	if s.proc.AddressingMode() == Append {
		pr := s.proc.PointerRegister(n)
		op.Addr.Segment = pr.Segment
		op.Addr.ViaPR = true
	}
	return addr, uint64(ar.Char), uint64(ar.Bit)
}

// Register term for modification field.
func (s *Step) modifier(op *Operand, allowDU bool) (uint64, error) {
	reg := op.MF & mfREG
	if reg == RegDU {
		if !allowDU {
			return 0, s.proc.RaiseFault(FaultIPR, SubIllMod, "du modifier not allowed")
		}
		op.DU = true
		return 0, nil
	}
	return s.proc.RegisterValue(reg, allowDU)
}

// Fetch the length from a register.
func (s *Step) registerLength(op *Operand, mask uint32) (uint32, error) {
	v, err := s.proc.RegisterValue(uint8(op.Desc&017), false)
	if err != nil {
		return 0, err
	}
	return uint32(v) & mask, nil
}

// setupDescriptor resets the operand and follows an indirect descriptor
// pointer if the modification field asks for one.
func (s *Step) setupDescriptor(k int) error {
	op := &s.ops[k]
	op.Addr.Reset(s.proc)
	op.DU = false
	if op.MF&mfID == 0 {
		return nil
	}
	ptr := op.Desc
	y := uint32(word.High(ptr))
	if ptr&0100 != 0 {
		y, _, _ = s.addressRegister(op, y)
	}
	if ptr&060 != 0 {
		return s.proc.RaiseFault(FaultIPR, SubIllMod, fmt.Sprintf("indirect descriptor %012o", ptr))
	}
	r, err := s.proc.RegisterValue(uint8(ptr&017), false)
	if err != nil {
		return err
	}
	op.Addr.Address = (y + uint32(r&word.MASK18)) & word.AMASK
	op.Addr.Kind = DescriptorRead
	desc, err := op.Addr.Read()
	op.Addr.Kind = OperandRead
	if err != nil {
		return err
	}
	tracef(debugAddr, "operand %d indirect %06o desc %012o", k+1, op.Addr.Address, desc)
	op.Desc = desc
	// The pointer register context of the indirect word does not carry
	// over to the operand; its own AR flag decides that.
	return op.Addr.SetContext(false, Segment{})
}

// Compute word, char and bit for a character operand.
func (op *Operand) place(y uint32, ta uint8, cn, arChar, arBit, r uint64) {
	var wordNo, charNo, bitNo uint64
	switch ta {
	case CTA4:
		bitNo = 4*(arChar+2*r+arBit/4)%2 + 1
		t := 4*cn + 9*arChar + 4*r + arBit
		charNo = (t % 32) / 4
		wordNo = uint64(y) + t/32
	case CTA6:
		bitNo = (9*arChar + 6*r + arBit) % 9
		t := 6*cn + 9*arChar + 6*r + arBit
		charNo = (t % 36) / 6
		wordNo = uint64(y) + t/36
	case CTA9:
		cn &= 3
		bitNo = 0
		charNo = (cn + arChar + r) % 4
		wordNo = uint64(y) + (9*cn+9*arChar+9*r+arBit)/36
	default:
		panic(fmt.Sprintf("eis: character type %d has no address formula", ta))
	}
	op.WordNo = uint32(wordNo) & word.AMASK
	op.CN = int(charNo)
	op.BitNo = int(bitNo)
	op.Addr.Address = op.WordNo
	op.Addr.Char = op.CN
	op.Addr.Bit = op.BitNo
}

// parseAlpha decodes an alphanumeric descriptor. When typeFrom is not
// negative the character type of that operand is used instead of TA.
func (s *Step) parseAlpha(k int, typeFrom int, allowDU bool) error {
	op := &s.ops[k]
	op.Kind = AlphaOperand
	d := op.Desc
	y := uint32(word.High(d))
	var arChar, arBit uint64
	if op.MF&mfAR != 0 {
		y, arChar, arBit = s.addressRegister(op, y)
	}
	cn := word.GetBits36(d, 18, 3)
	op.TA = uint8(word.GetBits36(d, 21, 2))
	if typeFrom >= 0 {
		op.TA = s.ops[typeFrom].TA
	}
	if op.MF&mfRL != 0 {
		var err error
		switch op.TA {
		case CTA4:
			op.N, err = s.registerLength(op, lenMask4)
		case CTA6, CTA9:
			op.N, err = s.registerLength(op, lenMask69)
		}
		if err != nil {
			return err
		}
	} else {
		op.N = uint32(d & 07777)
	}
	if op.TA == CTAILL {
		return s.proc.RaiseFault(FaultIPR, SubIllProc, fmt.Sprintf("operand %d illegal character type", k+1))
	}
	if op.TA == CTA6 && cn >= 6 {
		return s.proc.RaiseFault(FaultIPR, SubIllProc, fmt.Sprintf("operand %d 6 bit CN %d", k+1, cn))
	}
	r, err := s.modifier(op, allowDU)
	if err != nil {
		return err
	}
	if op.MF&mfREG == RegIC && op.MF&mfRL == 0 {
		y = (y + uint32(r)) & word.AMASK
		r = 0
	}
	op.place(y, op.TA, cn, arChar, arBit, r)
	tracef(debugAddr, "operand %d alpha %06o char %d bit %d N %d TA %d", k+1, op.WordNo, op.CN, op.BitNo, op.N, op.TA)
	return nil
}

// parseNumeric decodes a numeric descriptor.
func (s *Step) parseNumeric(k int) error {
	op := &s.ops[k]
	op.Kind = NumericOperand
	d := op.Desc
	y := uint32(word.High(d))
	var arChar, arBit uint64
	if op.MF&mfAR != 0 {
		y, arChar, arBit = s.addressRegister(op, y)
	}
	cn := word.GetBits36(d, 18, 3)
	op.TN = uint8(word.GetBits36(d, 21, 1))
	op.S = uint8(word.GetBits36(d, 22, 2))
	op.SF = int(word.SignExtend(word.GetBits36(d, 24, 6), 6))
	if op.MF&mfRL != 0 {
		var err error
		op.N, err = s.registerLength(op, lenMaskNum)
		if err != nil {
			return err
		}
	} else {
		op.N = uint32(d & 077)
	}
	r, err := s.modifier(op, false)
	if err != nil {
		return err
	}
	if op.MF&mfREG == RegIC && op.MF&mfRL == 0 {
		y = (y + uint32(r)) & word.AMASK
		r = 0
	}
	op.TA = CTA9
	if op.TN == CTN4 {
		op.TA = CTA4
	}
	op.place(y, op.TA, cn, arChar, arBit, r)
	tracef(debugAddr, "operand %d numeric %06o char %d N %d TN %d S %d SF %d", k+1, op.WordNo, op.CN, op.N, op.TN, op.S, op.SF)
	return nil
}

// parseBits decodes a bit string descriptor.
func (s *Step) parseBits(k int) error {
	op := &s.ops[k]
	op.Kind = BitOperand
	d := op.Desc
	y := uint32(word.High(d))
	var arChar, arBit uint64
	if op.MF&mfAR != 0 {
		y, arChar, arBit = s.addressRegister(op, y)
	}
	if op.MF&mfRL != 0 {
		var err error
		op.N, err = s.registerLength(op, lenMaskBit)
		if err != nil {
			return err
		}
	} else {
		op.N = uint32(d & 07777)
	}
	c := word.GetBits36(d, 18, 2)
	b := word.GetBits36(d, 20, 4)
	if b >= 9 {
		return s.proc.RaiseFault(FaultIPR, SubIllProc, fmt.Sprintf("operand %d bit offset %d", k+1, b))
	}
	r, err := s.modifier(op, false)
	if err != nil {
		return err
	}
	if op.MF&mfREG == RegIC && op.MF&mfRL == 0 {
		y = (y + uint32(r)) & word.AMASK
		r = 0
	}
	t := 9*arChar + r + arBit + b + 9*c
	op.BitNo = int(t % 9)
	op.CN = int((t % 36) / 9)
	op.WordNo = uint32(uint64(y)+t/36) & word.AMASK
	op.Addr.Address = op.WordNo
	op.Addr.Char = op.CN
	op.Addr.Bit = op.BitNo
	tracef(debugAddr, "operand %d bits %06o char %d bit %d N %d", k+1, op.WordNo, op.CN, op.BitNo, op.N)
	return nil
}

// parseArg decodes an argument descriptor, which only locates a word.
func (s *Step) parseArg(k int) error {
	op := &s.ops[k]
	op.Addr.Reset(s.proc)
	op.Kind = ArgOperand
	d := op.Desc
	y := uint32(word.High(d))
	r, err := s.proc.RegisterValue(uint8(d&017), false)
	if err != nil {
		return err
	}
	var arChar, arBit uint64
	if d&0100 != 0 {
		y, arChar, arBit = s.addressRegister(op, y)
	}
	y += uint32((9*arChar + 36*r + arBit) / 36)
	op.WordNo = y & word.AMASK
	op.Addr.Address = op.WordNo
	tracef(debugAddr, "operand %d arg %06o", k+1, op.WordNo)
	return nil
}

// resolve decodes operand k as the given kind.
func (s *Step) resolve(k int, kind OperandKind) error {
	switch kind {
	case AlphaOperand:
		return s.parseAlpha(k, -1, false)
	case NumericOperand:
		return s.parseNumeric(k)
	case BitOperand:
		return s.parseBits(k)
	case ArgOperand:
		return s.parseArg(k)
	}
	panic(fmt.Sprintf("eis: unknown operand kind %d", kind))
}
