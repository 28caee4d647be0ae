/*
 * DPS8 - EIS operand resolver tests
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
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"

	"github.com/rcornwell/DPS8/emu/opcodemap"
)

// Resolve a single descriptor as operand 1 of an MLR.
func resolveOne(p *testProc, mf uint8, desc uint64, kind OperandKind) (*Operand, error) {
	s := NewStep(p, p.ic, instruction(opcodemap.OpMLR, mf, 0, 0))
	s.ops[0].Desc = desc
	if err := s.setupDescriptor(0); err != nil {
		return &s.ops[0], err
	}
	return &s.ops[0], s.resolve(0, kind)
}

func TestResolveGolden(t *testing.T) {
	type TC struct {
		Name   string
		MF     uint8
		Desc   uint64
		Kind   OperandKind
		WordNo uint32
		CN     int
		BitNo  int
		N      uint32
		Mark   error
	}

	tcs := []TC{
		{
			Name: "9 bit", Desc: alphaDesc(0100, 2, CTA9, 5), Kind: AlphaOperand,
			WordNo: 0100, CN: 2, BitNo: 0, N: 5, Mark: oops.New("unexpected"),
		},
		{
			Name: "9 bit indexed", MF: RegX0 + 1, Desc: alphaDesc(0100, 1, CTA9, 5), Kind: AlphaOperand,
			WordNo: 0101, CN: 2, BitNo: 0, N: 5, Mark: oops.New("unexpected"),
		},
		{
			Name: "6 bit indexed", MF: RegX0 + 2, Desc: alphaDesc(0100, 4, CTA6, 7), Kind: AlphaOperand,
			WordNo: 0101, CN: 1, BitNo: 0, N: 7, Mark: oops.New("unexpected"),
		},
		{
			Name: "4 bit indexed", MF: RegX0 + 2, Desc: alphaDesc(0100, 7, CTA4, 9), Kind: AlphaOperand,
			WordNo: 0101, CN: 2, BitNo: 1, N: 9, Mark: oops.New("unexpected"),
		},
		{
			Name: "numeric 4 bit", Desc: numDesc(0100, 3, CTN4, CSLS, 0, 6), Kind: NumericOperand,
			WordNo: 0100, CN: 3, BitNo: 1, N: 6, Mark: oops.New("unexpected"),
		},
		{
			Name: "bit string", MF: RegX0 + 3, Desc: bitDesc(0100, 1, 3, 10), Kind: BitOperand,
			WordNo: 0101, CN: 1, BitNo: 7, N: 10, Mark: oops.New("unexpected"),
		},
		{
			Name: "register length", MF: mfRL, Desc: alphaDesc(0100, 0, CTA9, uint32(RegX0+4)), Kind: AlphaOperand,
			WordNo: 0100, CN: 0, BitNo: 0, N: 25, Mark: oops.New("unexpected"),
		},
		{
			Name: "address register", MF: mfAR, Desc: alphaDesc(3<<15|2, 1, CTA9, 4), Kind: AlphaOperand,
			WordNo: 0202, CN: 2, BitNo: 0, N: 4, Mark: oops.New("unexpected"),
		},
		{
			Name: "negative offset", MF: mfAR, Desc: alphaDesc(3<<15|077777, 0, CTA9, 4), Kind: AlphaOperand,
			WordNo: 0177, CN: 1, BitNo: 0, N: 4, Mark: oops.New("unexpected"),
		},
		{
			Name: "instruction counter", MF: RegIC, Desc: alphaDesc(010, 0, CTA9, 4), Kind: AlphaOperand,
			WordNo: 01010, CN: 0, BitNo: 0, N: 4, Mark: oops.New("unexpected"),
		},
		{
			Name: "argument", Desc: argDesc(0500, RegX0+5), Kind: ArgOperand,
			WordNo: 0610, Mark: oops.New("unexpected"),
		},
	}

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			p := newTestProc()
			p.ic = 01000
			p.x[1] = 5
			p.x[2] = 3
			p.x[3] = 40
			p.x[4] = 25
			p.x[5] = 72
			p.ars[3] = AddressRegister{WordNo: 0200, Char: 1}
			opnd, err := resolveOne(p, tc.MF, tc.Desc, tc.Kind)
			require.NoError(t, err, tc.Mark)
			require.Equal(t, tc.WordNo, opnd.WordNo, tc.Mark)
			require.Equal(t, tc.CN, opnd.CN, tc.Mark)
			require.Equal(t, tc.BitNo, opnd.BitNo, tc.Mark)
			require.Equal(t, tc.N, opnd.N, tc.Mark)
			require.Equal(t, tc.WordNo, opnd.Addr.Address, tc.Mark)
			require.Empty(t, p.faults, tc.Mark)
		})
	}
}

// 4 bit operands always start on the digit after the slop bit.
func TestResolve4BitBitNo(t *testing.T) {
	for cn := range 8 {
		for r := range uint64(16) {
			p := newTestProc()
			p.x[0] = r
			opnd, err := resolveOne(p, RegX0, alphaDesc(0100, cn, CTA4, 1), AlphaOperand)
			require.NoError(t, err)
			if opnd.BitNo != 1 {
				t.Errorf("4 bit cn %d r %d bit got: %d wanted: 1", cn, r, opnd.BitNo)
			}
		}
	}
}

func TestResolvePointerSegment(t *testing.T) {
	p := newTestProc()
	p.mode = Append
	p.ars[3] = AddressRegister{WordNo: 0200}
	p.prs[3] = PointerRegister{Segment: Segment{Number: 5, Ring: 4}, WordNo: 0200}
	opnd, err := resolveOne(p, mfAR, alphaDesc(3<<15|2, 0, CTA9, 4), AlphaOperand)
	require.NoError(t, err)
	require.True(t, opnd.Addr.ViaPR)
	require.Equal(t, Segment{Number: 5, Ring: 4}, opnd.Addr.Segment)

	// Absolute mode does not switch segments.
	p.mode = Absolute
	opnd, err = resolveOne(p, mfAR, alphaDesc(3<<15|2, 0, CTA9, 4), AlphaOperand)
	require.NoError(t, err)
	require.False(t, opnd.Addr.ViaPR)
}

func TestResolveIndirect(t *testing.T) {
	p := newTestProc()
	p.x[2] = 4
	p.set(0304, alphaDesc(0400, 3, CTA9, 12))
	opnd, err := resolveOne(p, mfID, uint64(0300)<<18|uint64(RegX0+2), AlphaOperand)
	require.NoError(t, err)
	if opnd.WordNo != 0400 || opnd.CN != 3 || opnd.N != 12 {
		t.Errorf("indirect got: %06o %d %d wanted: 000400 3 12", opnd.WordNo, opnd.CN, opnd.N)
	}

	_, err = resolveOne(p, mfID, uint64(0300)<<18|020, AlphaOperand)
	require.Error(t, err)
	f := AsFault(err)
	require.NotNil(t, f)
	require.Equal(t, FaultIPR, f.Kind)
	require.Equal(t, SubIllMod, f.Sub)
}

func TestResolveFaults(t *testing.T) {
	type TC struct {
		Name string
		MF   uint8
		Desc uint64
		Kind OperandKind
		Sub  FaultSubtype
	}

	tcs := []TC{
		{"illegal type", 0, alphaDesc(0100, 0, CTAILL, 4), AlphaOperand, SubIllProc},
		{"6 bit cn", 0, alphaDesc(0100, 6, CTA6, 4), AlphaOperand, SubIllProc},
		{"bit offset", 0, bitDesc(0100, 0, 9, 4), BitOperand, SubIllProc},
		{"du not allowed", RegDU, alphaDesc(0100, 0, CTA9, 4), AlphaOperand, SubIllMod},
		{"numeric du", RegDU, numDesc(0100, 0, CTN9, CSLS, 0, 4), NumericOperand, SubIllMod},
	}

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			p := newTestProc()
			_, err := resolveOne(p, tc.MF, tc.Desc, tc.Kind)
			require.Error(t, err)
			f := AsFault(err)
			require.NotNil(t, f, err.Error())
			require.Equal(t, FaultIPR, f.Kind)
			require.Equal(t, tc.Sub, f.Sub)
			require.True(t, IllegalProcedure.Has(err))
		})
	}
}
