/*
 * DPS8 - EIS alphanumeric instructions
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
	"github.com/rcornwell/DPS8/emu/word"
)

// Translate character c through the table at tbl.
func translate(tbl *Operand, c uint16, ta uint8) (uint16, error) {
	idx := uint32(c/4) & 0177
	w, err := tbl.Addr.ReadIndexed(idx)
	if err != nil {
		return 0, err
	}
	return maskChar(word.Get9(w, int(c%4)), ta), nil
}

// Move alphanumeric left to right.
func (s *Step) opMLR() error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	src, dst := &s.ops[0], &s.ops[1]
	fill := maskChar(s.fill(), dst.TA)
	for i := range dst.N {
		c := fill
		if i < src.N {
			var err error
			c, err = src.GetChar(i)
			if err != nil {
				return err
			}
			c = maskChar(c, dst.TA)
		}
		if err := dst.PutChar(i, c); err != nil {
			return err
		}
	}
	return s.truncation(src.N > dst.N)
}

// Move alphanumeric right to left.
func (s *Step) opMRL() error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	src, dst := &s.ops[0], &s.ops[1]
	fill := maskChar(s.fill(), dst.TA)
	for i := range dst.N {
		c := fill
		if i < src.N {
			var err error
			c, err = src.GetChar(src.N - i - 1)
			if err != nil {
				return err
			}
			c = maskChar(c, dst.TA)
		}
		if err := dst.PutChar(dst.N-i-1, c); err != nil {
			return err
		}
	}
	return s.truncation(src.N > dst.N)
}

// Move alphanumeric with translation.
func (s *Step) opMVT() error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	src, dst, tbl := &s.ops[0], &s.ops[1], &s.ops[2]
	for i := range dst.N {
		c := s.fill()
		if i < src.N {
			var err error
			c, err = src.GetChar(i)
			if err != nil {
				return err
			}
		}
		t, err := translate(tbl, c, dst.TA)
		if err != nil {
			return err
		}
		if err := dst.PutChar(i, t); err != nil {
			return err
		}
	}
	return s.truncation(src.N > dst.N)
}

// Resolve operands for instructions where the second operand takes the
// character type of the first.
func (s *Step) setupSameType(allowDU bool) error {
	if err := s.setupDescriptor(0); err != nil {
		return err
	}
	if err := s.parseAlpha(0, -1, false); err != nil {
		return err
	}
	if err := s.setupDescriptor(1); err != nil {
		return err
	}
	if err := s.parseAlpha(1, 0, allowDU); err != nil {
		return err
	}
	if len(s.kinds) > 2 {
		return s.parseArg(2)
	}
	return nil
}

// Compare alphanumeric character strings.
func (s *Step) opCMPC() error {
	if err := s.setupSameType(false); err != nil {
		return err
	}
	op1, op2 := &s.ops[0], &s.ops[1]
	fill := maskChar(s.fill(), op1.TA)
	s.setIndicator(IndZero, true)
	s.setIndicator(IndCarry, true)
	n := max(op1.N, op2.N)
	for i := range n {
		c1, c2 := fill, fill
		var err error
		if i < op1.N {
			if c1, err = op1.GetChar(i); err != nil {
				return err
			}
		}
		if i < op2.N {
			if c2, err = op2.GetChar(i); err != nil {
				return err
			}
		}
		if c1 != c2 {
			s.setIndicator(IndZero, false)
			s.setIndicator(IndCarry, c1 > c2)
			break
		}
	}
	return nil
}

// Characters to scan for, either from the descriptor or operand 2.
func (s *Step) scanChars(n int) ([2]uint16, error) {
	var c [2]uint16
	op2 := &s.ops[1]
	if op2.DU {
		duo := word.High(op2.Desc)
		switch s.ops[0].TA {
		case CTA4:
			c[0], c[1] = uint16((duo>>13)&017), uint16((duo>>9)&017)
		case CTA6:
			c[0], c[1] = uint16((duo>>12)&077), uint16((duo>>6)&077)
		default:
			c[0], c[1] = uint16((duo>>9)&0777), uint16(duo&0777)
		}
		return c, nil
	}
	for i := range n {
		v, err := op2.GetChar(uint32(i))
		if err != nil {
			return c, err
		}
		c[i] = v
	}
	return c, nil
}

// Store the scan result and set tally runout.
func (s *Step) scanResult(tally uint32, runout bool, data uint64) error {
	s.setIndicator(IndTally, runout)
	return s.ops[2].Addr.WriteIndexed(0, data|(uint64(tally)&tallyMask))
}

// Scan characters double.
func (s *Step) scanDouble(reverse bool) error {
	if err := s.setupSameType(true); err != nil {
		return err
	}
	str := &s.ops[0]
	test, err := s.scanChars(2)
	if err != nil {
		return err
	}
	limit := uint32(0)
	if str.N > 1 {
		limit = str.N - 1
	}
	tally := uint32(0)
	for ; tally < limit; tally++ {
		i := tally
		if reverse {
			i = str.N - tally - 2
		}
		c1, err := str.GetChar(i)
		if err != nil {
			return err
		}
		c2, err := str.GetChar(i + 1)
		if err != nil {
			return err
		}
		if c1 == test[0] && c2 == test[1] {
			break
		}
	}
	return s.scanResult(tally, tally == limit, 0)
}

func (s *Step) opSCD() error {
	return s.scanDouble(false)
}

func (s *Step) opSCDR() error {
	return s.scanDouble(true)
}

// Scan with mask, bits set in the mask are not compared.
func (s *Step) scanMask(reverse bool) error {
	if err := s.setupSameType(true); err != nil {
		return err
	}
	str := &s.ops[0]
	test, err := s.scanChars(1)
	if err != nil {
		return err
	}
	mask := s.fill()
	tally := uint32(0)
	for ; tally < str.N; tally++ {
		i := tally
		if reverse {
			i = str.N - tally - 1
		}
		c, err := str.GetChar(i)
		if err != nil {
			return err
		}
		if (^mask & (c ^ test[0]) & 0777) == 0 {
			break
		}
	}
	return s.scanResult(tally, tally == str.N, 0)
}

func (s *Step) opSCM() error {
	return s.scanMask(false)
}

func (s *Step) opSCMR() error {
	return s.scanMask(true)
}

// Test character and translate.
func (s *Step) testTranslate(reverse bool) error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	str, tbl := &s.ops[0], &s.ops[1]
	tally := uint32(0)
	result := uint64(0)
	for ; tally < str.N; tally++ {
		i := tally
		if reverse {
			i = str.N - tally - 1
		}
		c, err := str.GetChar(i)
		if err != nil {
			return err
		}
		t, err := translate(tbl, c, CTA9)
		if err != nil {
			return err
		}
		if t != 0 {
			result = uint64(t) << 27
			break
		}
	}
	return s.scanResult(tally, tally == str.N, result)
}

func (s *Step) opTCT() error {
	return s.testTranslate(false)
}

func (s *Step) opTCTR() error {
	return s.testTranslate(true)
}
