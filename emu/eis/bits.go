/*
 * DPS8 - EIS bit string instructions
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

// Result of boolean operation bolr on two bits. The high bit of bolr gives
// the result for 00, the low bit for 11.
func combine(b1, b2 bool, bolr uint8) bool {
	switch {
	case !b1 && !b2:
		return bolr&010 != 0
	case !b1 && b2:
		return bolr&04 != 0
	case b1 && !b2:
		return bolr&02 != 0
	default:
		return bolr&01 != 0
	}
}

// Fill bit, bit 0.
func (s *Step) fillBit() bool {
	return word.GetBit(s.IWB, 0)
}

// Boolean operation, bits 5-8.
func (s *Step) bolr() uint8 {
	return uint8(word.GetBits36(s.IWB, 5, 4))
}

// Combine bits of operand 1 into operand 2. When store is false only the
// zero indicator is computed.
func (s *Step) combineBits(reverse bool, store bool) error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	src, dst := &s.ops[0], &s.ops[1]
	if reverse {
		src.ReverseStart()
		dst.ReverseStart()
	}
	fill := s.fillBit()
	bolr := s.bolr()
	s.setIndicator(IndZero, true)
	for tally := range dst.N {
		b1 := fill
		if tally < src.N {
			var err error
			if b1, err = src.GetBit(tally, reverse); err != nil {
				return err
			}
		}
		b2, err := dst.GetBit(tally, reverse)
		if err != nil {
			return err
		}
		r := combine(b1, b2, bolr)
		if r {
			s.setIndicator(IndZero, false)
		}
		if store {
			if err := dst.PutBit(tally, reverse, r); err != nil {
				return err
			}
		} else if r {
			break
		}
	}
	return s.truncation(src.N > dst.N)
}

// Combine bit strings left.
func (s *Step) opCSL() error {
	return s.combineBits(false, true)
}

// Combine bit strings right.
func (s *Step) opCSR() error {
	return s.combineBits(true, true)
}

// Set zero and truncation indicators with bit strings left.
func (s *Step) opSZTL() error {
	return s.combineBits(false, false)
}

// Set zero and truncation indicators with bit strings right.
func (s *Step) opSZTR() error {
	return s.combineBits(true, false)
}

// Compare bit strings.
func (s *Step) opCMPB() error {
	if err := s.setupOperands(); err != nil {
		return err
	}
	op1, op2 := &s.ops[0], &s.ops[1]
	fill := s.fillBit()
	s.setIndicator(IndZero, true)
	s.setIndicator(IndCarry, true)
	for tally := range max(op1.N, op2.N) {
		b1, b2 := fill, fill
		var err error
		if tally < op1.N {
			if b1, err = op1.GetBit(tally, false); err != nil {
				return err
			}
		}
		if tally < op2.N {
			if b2, err = op2.GetBit(tally, false); err != nil {
				return err
			}
		}
		if b1 != b2 {
			s.setIndicator(IndZero, false)
			if !b1 {
				s.setIndicator(IndCarry, false)
			}
			break
		}
	}
	return nil
}
