/*
 * DPS8 - EIS character and bit accessors
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

// Move the address to the word holding character i and return the
// character position within it.
func (op *Operand) charPosition(i uint32) int {
	nPos := uint32(charsPerWord[op.TA])
	nChars := i + uint32(op.CN)
	op.Addr.Address = (op.WordNo + nChars/nPos) & word.AMASK
	return int(nChars % nPos)
}

// GetChar returns character i of the operand.
func (op *Operand) GetChar(i uint32) (uint16, error) {
	pos := op.charPosition(i)
	w, err := op.Addr.Read()
	if err != nil {
		return 0, err
	}
	c := word.GetField(w, pos, charWidth[op.TA])
	tracef(debugData, "get %06o[%d] %03o", op.Addr.Address, pos, c)
	return c, nil
}

// PutChar stores character i of the operand.
func (op *Operand) PutChar(i uint32, c uint16) error {
	pos := op.charPosition(i)
	w, err := op.Addr.Read()
	if err != nil {
		return err
	}
	tracef(debugData, "put %06o[%d] %03o", op.Addr.Address, pos, c)
	w = word.PutField(w, pos, charWidth[op.TA], c)
	return op.Addr.WriteIndexed(0, w)
}

// Word and bit in word for bit tally. Reverse scans count back from the
// current position.
func (op *Operand) bitPosition(tally uint32, reverse bool) (uint32, uint) {
	base := op.CN*9 + op.BitNo
	if reverse {
		base -= int(tally)
	} else {
		base += int(tally)
	}
	woff := base / 36
	pos := base % 36
	for pos < 0 {
		pos += 36
		woff--
	}
	return uint32(int(op.WordNo)+woff) & word.AMASK, uint(pos)
}

// GetBit returns the bit tally bits from the current position.
func (op *Operand) GetBit(tally uint32, reverse bool) (bool, error) {
	addr, pos := op.bitPosition(tally, reverse)
	op.Addr.Address = addr
	w, err := op.Addr.Read()
	if err != nil {
		return false, err
	}
	return word.GetBit(w, pos), nil
}

// PutBit stores the bit tally bits from the current position.
func (op *Operand) PutBit(tally uint32, reverse bool, b bool) error {
	addr, pos := op.bitPosition(tally, reverse)
	op.Addr.Address = addr
	w, err := op.Addr.Read()
	if err != nil {
		return err
	}
	return op.Addr.WriteIndexed(0, word.SetBit(w, pos, b))
}

// bitOffsets returns the number of words past the first and the character
// and bit of the last bit of a string of length bits.
func bitOffsets(length uint32, c, b int) (int, int, int) {
	if length == 0 {
		return 0, c, b
	}
	endBit := (int(length) + 9*c + b - 1) % 36
	numWords := (int(length) + 9*c + b + 35) / 36
	extra := 0
	if numWords > 1 {
		extra = numWords - 1
	}
	return extra, endBit / 9, endBit % 9
}

// ReverseStart moves a bit operand to its last bit, so that reverse
// scans count back from the end.
func (op *Operand) ReverseStart() {
	extra, c, b := bitOffsets(op.N, op.CN, op.BitNo)
	op.WordNo = (op.WordNo + uint32(extra)) & word.AMASK
	op.CN = c
	op.BitNo = b
	op.Addr.Address = op.WordNo
	op.Addr.Char = c
	op.Addr.Bit = b
}
