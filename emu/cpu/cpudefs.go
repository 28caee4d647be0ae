/*
 * DPS8 - CPU definitions
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

package cpu

import (
	"github.com/rcornwell/DPS8/emu/eis"
)

type cpu struct {
	IC      uint32                     // Instruction counter
	iIC     uint32                     // Address of current instruction
	A       uint64                     // Accumulator
	Q       uint64                     // Quotient register
	X       [8]uint32                  // Index registers
	IR      uint32                     // Indicator register
	PR      [8]eis.PointerRegister     // Pointer registers, AR shares word, char and bit
	mode    eis.AddressingMode         // Absolute or append
	procSeg eis.Segment                // Procedure segment and ring
	target  eis.Segment                // Operand segment and ring
	fault   *eis.Fault                 // Last fault taken
	faultIC uint32                     // Instruction that faulted
	halted  bool                       // Stopped on DIS or fault
	faults  [eis.FaultSTR + 1]int      // Count of faults by kind
}

const (
	// Opcodes handled outside of the EIS unit.
	opNOP = 0011 // No operation
	opDIS = 0616 // Delay until interrupt, stops the CPU

	// Mask constants
	AMASK  uint32 = 0777777       // 18 bit address
	DMASK  uint64 = 0777777777777 // 36 bit word
	LMASK  uint64 = 0777777       // Lower half word
	IRMASK uint32 = 0777760       // Bits that can be set in indicators

	// Appending unit places each segment at segment number times 2^18.
	segShift = 18
)

// Register names, in display order.
var regNames = []string{"A", "Q", "X0", "X1", "X2", "X3", "X4", "X5", "X6", "X7", "IR", "IC"}
