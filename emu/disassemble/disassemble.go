/*
 * DPS8 - Disassemble EIS instructions
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
	"fmt"
	"strings"

	op "github.com/rcornwell/DPS8/emu/opcodemap"
)

var regNames = [16]string{
	"n", "au", "qu", "du", "ic", "al", "ql", "il",
	"x0", "x1", "x2", "x3", "x4", "x5", "x6", "x7",
}

var alphaNames = [4]string{"desc9a", "desc6a", "desc4a", "desc?a"}

var numNames = [2][4]string{
	{"desc9fl", "desc9ls", "desc9ts", "desc9ns"},
	{"desc4fl", "desc4ls", "desc4ts", "desc4ns"},
}

var boolNames = map[uint64]string{
	000: "clear",
	001: "and",
	003: "move",
	006: "xor",
	007: "or",
	017: "set",
}

// Disassemble an instruction and its descriptors. Returns the text and the
// number of words used.
func Disassemble(words []uint64) (string, int) {
	if len(words) == 0 {
		return "", 0
	}
	iwb := words[0]
	opc := op.Opcode(iwb)
	info, ok := op.Instructions[opc]
	if !ok {
		return undefined(iwb), 1
	}

	length := 1 + len(info.Operands)
	inst := info.Name + "       "
	inst = inst[:7]
	var fields []string
	for k := range info.MFs {
		fields = append(fields, "("+modifier(op.MF(iwb, k))+")")
	}
	fields = append(fields, flags(opc, iwb)...)
	inst += strings.Join(fields, ",")

	var str strings.Builder
	str.WriteString(inst)
	for k, kind := range info.Operands {
		str.WriteByte('\n')
		if k+1 >= len(words) {
			str.WriteString("       ??")
			continue
		}
		mf := uint8(0)
		if k < info.MFs {
			mf = op.MF(iwb, k)
		}
		str.WriteString(descriptor(kind, mf, words[k+1]))
	}
	return str.String(), length
}

// Modification field as pr,rl,id and register.
func modifier(mf uint8) string {
	var parts []string
	if mf&0100 != 0 {
		parts = append(parts, "pr")
	}
	if mf&040 != 0 {
		parts = append(parts, "rl")
	}
	if mf&020 != 0 {
		parts = append(parts, "id")
	}
	if reg := mf & 017; reg != 0 {
		parts = append(parts, regNames[reg])
	}
	return strings.Join(parts, ",")
}

// Fill, boolean and control bits from top of instruction word.
func flags(opc int, iwb uint64) []string {
	var list []string
	top := (iwb >> 27) & 0777
	switch opc {
	case op.OpCSL, op.OpCSR, op.OpSZTL, op.OpSZTR:
		bolr := top & 017
		if name, ok := boolNames[bolr]; ok {
			list = append(list, "bool("+name+")")
		} else {
			list = append(list, fmt.Sprintf("bool(%02o)", bolr))
		}
		fallthrough
	case op.OpCMPB:
		list = append(list, fmt.Sprintf("fill(%o)", top>>8))
	case op.OpMLR, op.OpMRL, op.OpCMPC, op.OpMVT:
		list = append(list, fmt.Sprintf("fill(%03o)", top))
	case op.OpSCM, op.OpSCMR:
		list = append(list, fmt.Sprintf("mask(%03o)", top))
	case op.OpAD2D, op.OpSB2D, op.OpMP2D, op.OpDV2D,
		op.OpAD3D, op.OpSB3D, op.OpMP3D, op.OpDV3D, op.OpMVN, op.OpMVNE:
		if top&0400 != 0 {
			list = append(list, "plus")
		}
		if iwb&(1<<25) != 0 {
			list = append(list, "round")
		}
	}
	if iwb&(1<<26) != 0 && opc != op.OpMVE {
		list = append(list, "enablefault")
	}
	return list
}

// Address part of a descriptor.
func address(mf uint8, y uint64) string {
	if mf&0100 != 0 {
		offset := y & 077777
		if offset&040000 != 0 {
			return fmt.Sprintf("pr%d|-%o", y>>15, 0100000-offset)
		}
		return fmt.Sprintf("pr%d|%o", y>>15, offset)
	}
	return fmt.Sprintf("%o", y)
}

// Length part of a descriptor, register name under rl.
func count(mf uint8, n uint64) string {
	if mf&040 != 0 {
		return regNames[n&017]
	}
	return fmt.Sprintf("%d", n)
}

func descriptor(kind int, mf uint8, desc uint64) string {
	y := (desc >> 18) & 0777777
	if mf&020 != 0 {
		return "       arg " + address(mf, y) + indirectReg(desc)
	}
	switch kind {
	case op.DescAlpha:
		ta := (desc >> 13) & 03
		return fmt.Sprintf("       %s %s(%d),%s", alphaNames[ta], address(mf, y),
			(desc>>15)&07, count(mf, desc&07777))
	case op.DescNumeric:
		tn := (desc >> 14) & 01
		s := (desc >> 12) & 03
		sf := int((desc >> 6) & 077)
		if sf&040 != 0 {
			sf -= 0100
		}
		return fmt.Sprintf("       %s %s(%d),%s,%d", numNames[tn][s], address(mf, y),
			(desc>>15)&07, count(mf, desc&077), sf)
	case op.DescBits:
		return fmt.Sprintf("       descb %s(%d),%s", address(mf, y),
			((desc>>16)&03)*9+((desc>>12)&017), count(mf, desc&07777))
	case op.DescArg:
		a := uint8(0)
		if desc&0100 != 0 {
			a = 0100
		}
		return "       arg " + address(a, y) + indirectReg(desc)
	}
	return fmt.Sprintf("       oct %012o", desc)
}

func indirectReg(desc uint64) string {
	if reg := desc & 017; reg != 0 {
		return "," + regNames[reg]
	}
	return ""
}

func undefined(iwb uint64) string {
	return fmt.Sprintf("oct    %012o", iwb)
}
