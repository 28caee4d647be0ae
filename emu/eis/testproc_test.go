/*
 * DPS8 - EIS test processor
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

	"github.com/rcornwell/DPS8/emu/word"
)

// Processor used by the tests. Memory is a map, keyed by segment when
// reached through a pointer register in append mode.
type testProc struct {
	mem    map[uint64]uint64
	a, q   uint64
	x      [8]uint64
	ir     uint32
	ic     uint32
	prs    [8]PointerRegister
	ars    [8]AddressRegister
	mode   AddressingMode
	target Segment
	faults []*Fault
	reads  int
	writes int
}

func newTestProc() *testProc {
	return &testProc{mem: map[uint64]uint64{}}
}

func (p *testProc) key(addr uint32, viaPR bool) uint64 {
	if viaPR && p.mode == Append {
		return uint64(p.target.Number)<<18 | uint64(addr)
	}
	return uint64(addr)
}

func (p *testProc) ReadWord(addr uint32, _ AccessKind, viaPR bool) (uint64, error) {
	if addr > word.AMASK {
		return 0, p.RaiseFault(FaultSTR, SubNone, fmt.Sprintf("address %o", addr))
	}
	p.reads++
	return p.mem[p.key(addr, viaPR)], nil
}

func (p *testProc) WriteWord(addr uint32, data uint64, _ AccessKind, viaPR bool) error {
	if addr > word.AMASK {
		return p.RaiseFault(FaultSTR, SubNone, fmt.Sprintf("address %o", addr))
	}
	p.writes++
	p.mem[p.key(addr, viaPR)] = data & word.DMASK
	return nil
}

func (p *testProc) RegisterValue(code uint8, _ bool) (uint64, error) {
	switch {
	case code == RegN, code == RegDU:
		return 0, nil
	case code == RegAU:
		return word.High(p.a), nil
	case code == RegQU:
		return word.High(p.q), nil
	case code == RegIC:
		return uint64(p.ic), nil
	case code == RegAL:
		return word.Low(p.a), nil
	case code == RegQL:
		return word.Low(p.q), nil
	case code == RegIL:
		return uint64(p.ir), nil
	case code >= RegX0 && code <= RegX0+7:
		return p.x[code-RegX0], nil
	}
	return 0, p.RaiseFault(FaultIPR, SubIllMod, fmt.Sprintf("register %o", code))
}

func (p *testProc) PointerRegister(n uint8) PointerRegister { return p.prs[n&7] }
func (p *testProc) AddressRegister(n uint8) AddressRegister { return p.ars[n&7] }

func (p *testProc) RaiseFault(kind FaultKind, sub FaultSubtype, msg string) error {
	err := NewFault(kind, sub, msg)
	p.faults = append(p.faults, AsFault(err))
	return err
}

func (p *testProc) AddressingMode() AddressingMode { return p.mode }
func (p *testProc) TargetSegment() Segment         { return p.target }
func (p *testProc) SetTargetSegment(seg Segment)   { p.target = seg }
func (p *testProc) Indicators() uint32             { return p.ir }
func (p *testProc) SetIndicators(ir uint32)        { p.ir = ir }

// Set a word of absolute memory.
func (p *testProc) set(addr uint32, data uint64) {
	p.mem[uint64(addr)] = data & word.DMASK
}

func (p *testProc) get(addr uint32) uint64 {
	return p.mem[uint64(addr)]
}

// Set a word of segment seg.
func (p *testProc) setSeg(seg uint16, addr uint32, data uint64) {
	p.mem[uint64(seg)<<18|uint64(addr)] = data & word.DMASK
}

// Pack up to four 9 bit characters into a word.
func text9(s string) uint64 {
	var w uint64
	for i := range min(len(s), 4) {
		w = word.Put9(w, i, uint16(s[i]))
	}
	return w
}

// Store 9 bit characters starting at addr.
func (p *testProc) setString(addr uint32, s string) {
	for i := range len(s) {
		a := addr + uint32(i/4)
		p.set(a, word.Put9(p.get(a), i%4, uint16(s[i])))
	}
}

// Read n 9 bit characters starting at addr.
func (p *testProc) getString(addr uint32, n int) string {
	b := make([]byte, n)
	for i := range n {
		b[i] = byte(word.Get9(p.get(addr+uint32(i/4)), i%4))
	}
	return string(b)
}

// Store characters of width bits starting at char cn of addr.
func (p *testProc) setChars(addr uint32, cn int, width int, chars []uint16) {
	per := word.CharsPerWord(width)
	for i, c := range chars {
		pos := cn + i
		a := addr + uint32(pos/per)
		p.set(a, word.PutField(p.get(a), pos%per, width, c))
	}
}

func (p *testProc) getChars(addr uint32, cn int, width int, n int) []uint16 {
	per := word.CharsPerWord(width)
	out := make([]uint16, n)
	for i := range n {
		pos := cn + i
		out[i] = word.GetField(p.get(addr+uint32(pos/per)), pos%per, width)
	}
	return out
}

// Last fault raised, or nil.
func (p *testProc) lastFault() *Fault {
	if len(p.faults) == 0 {
		return nil
	}
	return p.faults[len(p.faults)-1]
}

// Build an instruction word.
func instruction(opcode int, mf1, mf2, mf3 uint8) uint64 {
	return uint64(opcode&0777)<<9 | uint64((opcode>>9)&1)<<8 |
		uint64(mf1&0177) | uint64(mf2&0177)<<18 | uint64(mf3&0177)<<27
}

// Set fill character and flags in bits 0-10.
func withFill(iwb uint64, fill uint16) uint64 {
	return word.SetBits36(iwb, 0, 9, uint64(fill))
}

func withT(iwb uint64) uint64 { return word.SetBit(iwb, 9, true) }
func withR(iwb uint64) uint64 { return word.SetBit(iwb, 10, true) }
func withP(iwb uint64) uint64 { return word.SetBit(iwb, 0, true) }

// Alphanumeric descriptor.
func alphaDesc(y uint32, cn int, ta uint8, n uint32) uint64 {
	return uint64(y)<<18 | uint64(cn&07)<<15 | uint64(ta&03)<<13 | uint64(n&07777)
}

// Numeric descriptor.
func numDesc(y uint32, cn int, tn uint8, s uint8, sf int, n uint32) uint64 {
	return uint64(y)<<18 | uint64(cn&07)<<15 | uint64(tn&1)<<14 | uint64(s&03)<<12 |
		uint64(sf&077)<<6 | uint64(n&077)
}

// Bit string descriptor.
func bitDesc(y uint32, c int, b int, n uint32) uint64 {
	return uint64(y)<<18 | uint64(c&03)<<16 | uint64(b&017)<<12 | uint64(n&07777)
}

// Argument descriptor.
func argDesc(y uint32, reg uint8) uint64 {
	return uint64(y)<<18 | uint64(reg&017)
}

// Place an instruction and its descriptors at ic and run it.
func (p *testProc) run(ic uint32, iwb uint64, desc ...uint64) (int, error) {
	p.set(ic, iwb)
	for i, d := range desc {
		p.set(ic+uint32(i)+1, d)
	}
	p.ic = ic
	return Execute(p, ic, iwb)
}
