/*
 * DPS8 - Disassembler test cases
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

package disassemble

import (
	"testing"

	op "github.com/rcornwell/DPS8/emu/opcodemap"
)

func instruction(opcode int, mf1, mf2, mf3 uint8, top uint64) uint64 {
	return top<<27 | uint64(opcode&0777)<<9 | uint64((opcode>>9)&1)<<8 |
		uint64(mf1&0177) | uint64(mf2&0177)<<18 | uint64(mf3&0177)<<27
}

func TestDisassembleMLR(t *testing.T) {
	words := []uint64{
		instruction(op.OpMLR, 0100, 040, 0, 040),
		0100002<<18 | 1<<15 | 12,
		01000<<18 | 2<<15 | 1<<13 | 05,
	}
	match := "MLR    (pr),(rl),fill(040)\n" +
		"       desc9a pr1|2(1),12\n" +
		"       desc6a 1000(2),al"
	inst, length := Disassemble(words)
	if match != inst {
		t.Error("Inst Got: " + inst + " Expected " + match)
	}
	if length != 3 {
		t.Errorf("Returned wrong number of words: %d expected: %d", length, 3)
	}
}

func TestDisassembleNumeric(t *testing.T) {
	words := []uint64{
		instruction(op.OpAD3D, 0, 0, 0, 0400) | 1<<25,
		0100<<18 | 1<<12 | 076<<6 | 5,
		0200<<18 | 1<<14 | 2<<12 | 3,
		0300<<18 | 3<<12 | 2<<6 | 4,
	}
	match := "AD3D   (),(),(),plus,round\n" +
		"       desc9ls 100(0),5,-2\n" +
		"       desc4ts 200(0),3,0\n" +
		"       desc9ns 300(0),4,2"
	inst, length := Disassemble(words)
	if match != inst {
		t.Error("Inst Got: " + inst + " Expected " + match)
	}
	if length != 4 {
		t.Errorf("Returned wrong number of words: %d expected: %d", length, 4)
	}
}

func TestDisassembleBits(t *testing.T) {
	words := []uint64{
		instruction(op.OpCSL, 0, 0, 0, 0406) | 1<<26,
		0100<<18 | 1<<16 | 3<<12 | 20,
		0200<<18 | 20,
	}
	match := "CSL    (),(),bool(xor),fill(1),enablefault\n" +
		"       descb 100(12),20\n" +
		"       descb 200(0),20"
	inst, _ := Disassemble(words)
	if match != inst {
		t.Error("Inst Got: " + inst + " Expected " + match)
	}
}

func TestDisassembleScan(t *testing.T) {
	words := []uint64{
		instruction(op.OpSCM, 0, 3, 0, 0177),
		0100<<18 | 10,
		0101<<18 | 1,
		0102<<18 | 0100 | 2,
	}
	match := "SCM    (),(du),mask(177)\n" +
		"       desc9a 100(0),10\n" +
		"       desc9a 101(0),1\n" +
		"       arg pr0|102,qu"
	inst, length := Disassemble(words)
	if match != inst {
		t.Error("Inst Got: " + inst + " Expected " + match)
	}
	if length != 4 {
		t.Errorf("Returned wrong number of words: %d expected: %d", length, 4)
	}
}

func TestDisassembleIndirect(t *testing.T) {
	words := []uint64{
		instruction(op.OpMVT, 020, 0, 0, 0),
		0500 << 18,
		0200<<18 | 4,
		0300 << 18,
	}
	match := "MVT    (id),(),fill(000)\n" +
		"       arg 500\n" +
		"       desc9a 200(0),4\n" +
		"       arg 300"
	inst, _ := Disassemble(words)
	if match != inst {
		t.Error("Inst Got: " + inst + " Expected " + match)
	}
}

func TestDisassembleUndefined(t *testing.T) {
	inst, length := Disassemble([]uint64{0123456701234})
	if inst != "oct    123456701234" {
		t.Error("Inst Got: " + inst)
	}
	if length != 1 {
		t.Errorf("Returned wrong number of words: %d expected: %d", length, 1)
	}
	inst, length = Disassemble(nil)
	if inst != "" || length != 0 {
		t.Errorf("Empty got: %q %d", inst, length)
	}
}

func TestDisassembleShort(t *testing.T) {
	words := []uint64{instruction(op.OpCMPB, 0, 0, 0, 0)}
	match := "CMPB   (),(),fill(0)\n       ??\n       ??"
	inst, length := Disassemble(words)
	if match != inst {
		t.Error("Inst Got: " + inst + " Expected " + match)
	}
	if length != 3 {
		t.Errorf("Returned wrong number of words: %d expected: %d", length, 3)
	}
}
