/*
 * DPS8 - EIS numeric instructions
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
	"math/big"

	"github.com/rcornwell/DPS8/emu/word"
	"github.com/shopspring/decimal"
)

// Sign characters.
const (
	sign4Minus    uint16 = 015
	sign4Plus     uint16 = 014
	sign4PlusAlt  uint16 = 013
	sign9Minus    uint16 = 055
	sign9Plus     uint16 = 053
	digit9Zero    uint16 = 060
	sign4Smallest uint16 = 012
)

// Layout of operand k, faulting if it holds no digits.
func (s *Step) layout(k int) (Layout, error) {
	op := &s.ops[k]
	l, ok := NumericLayout(op.N, op.S, op.TN)
	if !ok {
		return l, s.proc.RaiseFault(FaultIPR, SubIllProc,
			fmt.Sprintf("%s operand %d length %d too short", s.Name, k+1, op.N))
	}
	return l, nil
}

// Read all characters of operand k.
func (s *Step) readChars(k int) ([]uint16, error) {
	op := &s.ops[k]
	chars := make([]uint16, op.N)
	for i := range op.N {
		c, err := op.GetChar(i)
		if err != nil {
			return nil, err
		}
		chars[i] = c
	}
	return chars, nil
}

// Sign character, true if negative. A 9 bit sign must be '+' or '-'.
func (s *Step) signOf(c uint16, ta uint8) (bool, error) {
	if ta == CTA9 {
		if c != sign9Plus && c != sign9Minus {
			return false, s.proc.RaiseFault(FaultIPR, SubIllDig, fmt.Sprintf("%s sign %03o", s.Name, c))
		}
		return c == sign9Minus, nil
	}
	c &= 017
	if c < sign4Smallest {
		return false, s.proc.RaiseFault(FaultIPR, SubIllDig, fmt.Sprintf("%s sign %02o", s.Name, c))
	}
	return c == sign4Minus, nil
}

// Digit character value. A 9 bit digit must be '0' through '9'.
func (s *Step) digitOf(c uint16, ta uint8) (uint8, error) {
	if ta == CTA9 {
		if c < digit9Zero || c > digit9Zero+9 {
			return 0, s.proc.RaiseFault(FaultIPR, SubIllDig, fmt.Sprintf("%s digit %03o", s.Name, c))
		}
		return uint8(c - digit9Zero), nil
	}
	d := c & 017
	if d > 9 {
		return 0, s.proc.RaiseFault(FaultIPR, SubIllDig, fmt.Sprintf("%s digit %03o", s.Name, c))
	}
	return uint8(d), nil
}

// Exponent of a floating point operand.
func exponentOf(chars []uint16, l Layout) int {
	var e uint64
	if l.ExpChars == 2 {
		e = uint64(chars[l.Exp]&017)<<4 | uint64(chars[l.Exp+1]&017)
	} else {
		e = uint64(chars[l.Exp] & 0377)
	}
	return int(word.SignExtend(e, 8))
}

// loadNumeric reads numeric operand k as a value.
func (s *Step) loadNumeric(k int) (decimal.Decimal, error) {
	op := &s.ops[k]
	l, err := s.layout(k)
	if err != nil {
		return decimal.Zero, err
	}
	chars, err := s.readChars(k)
	if err != nil {
		return decimal.Zero, err
	}
	neg := false
	if l.Sign >= 0 {
		if neg, err = s.signOf(chars[l.Sign], op.TA); err != nil {
			return decimal.Zero, err
		}
	}
	digits := make([]uint8, l.Digits)
	for i := range l.Digits {
		if digits[i], err = s.digitOf(chars[l.First+i], op.TA); err != nil {
			return decimal.Zero, err
		}
	}
	exp := op.SF
	if op.S == CSFL {
		exp = exponentOf(chars, l)
	}
	v := BCDToDecimal(digits, neg, int32(exp))
	tracef(debugDecimal, "%s operand %d %s", s.Name, k+1, v.String())
	return v, nil
}

// Character for digit d.
func digitChar(d uint8, ta uint8) uint16 {
	if ta == CTA9 {
		return digit9Zero | uint16(d)
	}
	return uint16(d)
}

// Sign character for the field type.
func (s *Step) signChar(neg bool, ta uint8) uint16 {
	switch {
	case ta == CTA9 && neg:
		return sign9Minus
	case ta == CTA9:
		return sign9Plus
	case neg:
		return sign4Minus
	case s.pBit():
		return sign4PlusAlt
	default:
		return sign4Plus
	}
}

// storeNumeric writes a formatted value to numeric operand k.
func (s *Step) storeNumeric(k int, f Formatted) error {
	op := &s.ops[k]
	l, err := s.layout(k)
	if err != nil {
		return err
	}
	chars := make([]uint16, op.N)
	for i, d := range f.Digits {
		chars[l.First+i] = digitChar(d, op.TA)
	}
	if l.Sign >= 0 {
		chars[l.Sign] = s.signChar(f.Negative, op.TA)
	}
	if l.Exp >= 0 {
		e := uint16(f.Exponent) & 0377
		if l.ExpChars == 2 {
			chars[l.Exp] = e >> 4
			chars[l.Exp+1] = e & 017
		} else {
			chars[l.Exp] = e
		}
	}
	tracef(debugDecimal, "%s store operand %d %s", s.Name, k+1, f.String())
	for i, c := range chars {
		if err := op.PutChar(uint32(i), c); err != nil {
			return err
		}
	}
	return nil
}

// Set indicators for a decimal result and raise any faults.
func (s *Step) decimalResult(f Formatted) error {
	s.setIndicator(IndZero, f.Zero)
	s.setIndicator(IndNeg, f.Negative)
	if f.Overflow {
		if err := s.overflow(IndOverflow, "overflow fault"); err != nil {
			return err
		}
	}
	if f.ExpOverflow {
		if err := s.overflow(IndExpOver, "exponent overflow fault"); err != nil {
			return err
		}
	}
	if f.ExpUnderflow {
		if err := s.overflow(IndExpUnder, "exponent underflow fault"); err != nil {
			return err
		}
	}
	return s.truncation(f.Truncated)
}

// Move numeric.
func (s *Step) opMVN() error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	v, err := s.loadNumeric(0)
	if err != nil {
		return err
	}
	l, err := s.layout(1)
	if err != nil {
		return err
	}
	dst := &s.ops[1]
	f := FormatDecimal(v, l.Digits, dst.S, dst.SF, s.rBit())
	if err := s.storeNumeric(1, f); err != nil {
		return err
	}
	return s.decimalResult(f)
}

// Compare numeric.
func (s *Step) opCMPN() error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	v1, err := s.loadNumeric(0)
	if err != nil {
		return err
	}
	v2, err := s.loadNumeric(1)
	if err != nil {
		return err
	}
	c := v1.Cmp(v2)
	s.setIndicator(IndZero, c == 0)
	s.setIndicator(IndNeg, c > 0)
	s.setIndicator(IndCarry, v1.Abs().Cmp(v2.Abs()) <= 0)
	return nil
}

// Decimal arithmetic operations.
type arithOp int

const (
	arithAdd arithOp = iota
	arithSub
	arithMul
	arithDiv
)

// Perform decimal arithmetic, result goes to operand 2 or 3.
func (s *Step) decimalArith(kind arithOp) error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	v1, err := s.loadNumeric(0)
	if err != nil {
		return err
	}
	v2, err := s.loadNumeric(1)
	if err != nil {
		return err
	}
	k := len(s.kinds) - 1
	dst := &s.ops[k]
	l, err := s.layout(k)
	if err != nil {
		return err
	}
	round := s.rBit()
	var r decimal.Decimal
	lost := false
	switch kind {
	case arithAdd:
		r = v2.Add(v1)
	case arithSub:
		r = v2.Sub(v1)
	case arithMul:
		r = v2.Mul(v1)
	case arithDiv:
		if v1.IsZero() {
			return s.proc.RaiseFault(FaultDIV, SubNone, s.Name+" division by zero")
		}
		r, lost = Quotient(v2, v1, l.Digits, dst.S, dst.SF, round)
	}
	f := FormatDecimal(r, l.Digits, dst.S, dst.SF, round)
	f.Truncated = f.Truncated || (lost && !round)
	if err := s.storeNumeric(k, f); err != nil {
		return err
	}
	return s.decimalResult(f)
}

func (s *Step) opAD2D() error { return s.decimalArith(arithAdd) }
func (s *Step) opAD3D() error { return s.decimalArith(arithAdd) }
func (s *Step) opSB2D() error { return s.decimalArith(arithSub) }
func (s *Step) opSB3D() error { return s.decimalArith(arithSub) }
func (s *Step) opMP2D() error { return s.decimalArith(arithMul) }
func (s *Step) opMP3D() error { return s.decimalArith(arithMul) }
func (s *Step) opDV2D() error { return s.decimalArith(arithDiv) }
func (s *Step) opDV3D() error { return s.decimalArith(arithDiv) }

// Force a numeric descriptor to 9 bit characters.
func nineBit(d uint64) uint64 {
	return d &^ (1 << 14)
}

// Binary to decimal convert.
func (s *Step) opBTD() error {
	if err := s.setupDescriptor(0); err != nil {
		return err
	}
	s.ops[0].Desc = nineBit(s.ops[0].Desc)
	if err := s.parseNumeric(0); err != nil {
		return err
	}
	if err := s.setupDescriptor(1); err != nil {
		return err
	}
	if err := s.parseNumeric(1); err != nil {
		return err
	}
	src, dst := &s.ops[0], &s.ops[1]
	if src.N == 0 || src.N > 8 {
		return s.proc.RaiseFault(FaultIPR, SubIllProc, fmt.Sprintf("BTD length %d", src.N))
	}
	if dst.S == CSFL || dst.SF != 0 {
		return s.proc.RaiseFault(FaultIPR, SubIllProc, "BTD destination must be fixed point integer")
	}
	l, err := s.layout(1)
	if err != nil {
		return err
	}
	words, err := src.Addr.ReadSequential((src.CN + int(src.N) + 3) / 4)
	if err != nil {
		return err
	}
	v := new(big.Int)
	for i := range int(src.N) {
		pos := src.CN + i
		v.Lsh(v, 9)
		v.Or(v, big.NewInt(int64(word.Get9(words[pos/4], pos%4))))
	}
	bits := uint(9 * src.N)
	if v.Bit(int(bits-1)) != 0 {
		v.Sub(v, new(big.Int).Lsh(bigOne, bits))
	}
	tracef(debugDecimal, "BTD %s", v.String())
	f := FormatDecimal(decimal.NewFromBigInt(v, 0), l.Digits, dst.S, 0, false)
	if err := s.storeNumeric(1, f); err != nil {
		return err
	}
	return s.decimalResult(f)
}

// Decimal to binary convert.
func (s *Step) opDTB() error {
	if err := s.setupDescriptor(0); err != nil {
		return err
	}
	if err := s.parseNumeric(0); err != nil {
		return err
	}
	if err := s.setupDescriptor(1); err != nil {
		return err
	}
	s.ops[1].Desc = nineBit(s.ops[1].Desc)
	if err := s.parseNumeric(1); err != nil {
		return err
	}
	src, dst := &s.ops[0], &s.ops[1]
	if dst.N == 0 || dst.N > 8 {
		return s.proc.RaiseFault(FaultIPR, SubIllProc, fmt.Sprintf("DTB length %d", dst.N))
	}
	if src.S == CSFL {
		return s.proc.RaiseFault(FaultIPR, SubIllProc, "DTB source must be fixed point")
	}
	l, err := s.layout(0)
	if err != nil {
		return err
	}
	chars, err := s.readChars(0)
	if err != nil {
		return err
	}
	neg := false
	if l.Sign >= 0 {
		c := chars[l.Sign]
		switch {
		case src.TA == CTA9 && c == sign9Minus:
			neg = true
		case src.TA == CTA9 && c == sign9Plus:
		case src.TA == CTA4 && c >= sign4Smallest:
			neg = c == sign4Minus
		default:
			return s.proc.RaiseFault(FaultIPR, SubIllDig, fmt.Sprintf("DTB sign %03o", c))
		}
	}
	v := new(big.Int)
	for i := range l.Digits {
		c := chars[l.First+i]
		if src.TA == CTA9 {
			if c < digit9Zero || c > digit9Zero+9 {
				return s.proc.RaiseFault(FaultIPR, SubIllDig, fmt.Sprintf("DTB digit %03o", c))
			}
			c -= digit9Zero
		} else if c > 9 {
			return s.proc.RaiseFault(FaultIPR, SubIllDig, fmt.Sprintf("DTB digit %02o", c))
		}
		v.Mul(v, bigTen)
		v.Add(v, big.NewInt(int64(c)))
	}
	if neg {
		v.Neg(v)
	}
	bits := uint(9 * dst.N)
	limit := new(big.Int).Lsh(bigOne, bits-1)
	ovf := v.Cmp(limit) >= 0 || v.Cmp(new(big.Int).Neg(limit)) < 0
	// Two's complement in bits, truncated when overflow is masked.
	u := new(big.Int).Mod(v, new(big.Int).Lsh(bigOne, bits))
	for i := range dst.N {
		shift := uint(9 * (dst.N - i - 1))
		b := new(big.Int).Rsh(u, shift).Uint64() & 0777
		if err := dst.PutChar(i, uint16(b)); err != nil {
			return err
		}
	}
	tracef(debugDecimal, "DTB %s", v.String())
	s.setIndicator(IndZero, v.Sign() == 0)
	s.setIndicator(IndNeg, v.Sign() < 0)
	if ovf {
		return s.overflow(IndOverflow, "overflow fault")
	}
	return nil
}
