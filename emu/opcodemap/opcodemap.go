/*
   DPS8 EIS opcodes for execution and disassembly

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package opcodemap

// Opcodes are 10 bits, the opcode extension bit (27) followed by the
// 9 bit opcode field (18-26) of the instruction word.
const (
	// Bit string instructions.
	OpCSL  = 01060 // Combine bit strings left
	OpCSR  = 01061 // Combine bit strings right
	OpSZTL = 01064 // Set zero and truncation left
	OpSZTR = 01065 // Set zero and truncation right
	OpCMPB = 01066 // Compare bit strings

	// Edit instructions.
	OpMVE  = 01020 // Move alphanumeric edited
	OpMVNE = 01024 // Move numeric edited

	// Alphanumeric instructions.
	OpMLR  = 01100 // Move alphanumeric left to right
	OpMRL  = 01101 // Move alphanumeric right to left
	OpCMPC = 01106 // Compare alphanumeric character string
	OpSCD  = 01120 // Scan characters double
	OpSCDR = 01121 // Scan characters double reverse
	OpSCM  = 01124 // Scan with mask
	OpSCMR = 01125 // Scan with mask reverse
	OpMVT  = 01160 // Move alphanumeric with translation
	OpTCT  = 01164 // Test character and translate
	OpTCTR = 01165 // Test character and translate reverse

	// Decimal instructions.
	OpAD2D = 01202 // Add using two decimal operands
	OpSB2D = 01203 // Subtract using two decimal operands
	OpMP2D = 01206 // Multiply using two decimal operands
	OpDV2D = 01207 // Divide using two decimal operands
	OpAD3D = 01222 // Add using three decimal operands
	OpSB3D = 01223 // Subtract using three decimal operands
	OpMP3D = 01226 // Multiply using three decimal operands
	OpDV3D = 01227 // Divide using three decimal operands

	// Numeric move and conversion.
	OpMVN  = 01300 // Move numeric
	OpBTD  = 01301 // Binary to decimal convert
	OpCMPN = 01303 // Compare numeric
	OpDTB  = 01305 // Decimal to binary convert
)

// Operand descriptor kinds used by each instruction.
const (
	DescAlpha   = 1 + iota // Alphanumeric descriptor
	DescNumeric            // Numeric descriptor
	DescBits               // Bit string descriptor
	DescArg                // Argument (pointer) descriptor
)

// Opcode returns the 10 bit opcode of an instruction word.
func Opcode(iwb uint64) int {
	return int((iwb>>9)&0777) | int((iwb>>8)&1)<<9
}

// Instruction describes the operands of an EIS instruction.
type Instruction struct {
	Name     string // Mnemonic
	Operands []int  // Kind of each descriptor following the instruction
	MFs      int    // Number of modification fields in the instruction word
}

var (
	alpha2   = []int{DescAlpha, DescAlpha}
	alpha2a  = []int{DescAlpha, DescAlpha, DescArg}
	alpha1a2 = []int{DescAlpha, DescArg, DescArg}
	bits2    = []int{DescBits, DescBits}
	num2     = []int{DescNumeric, DescNumeric}
	num3     = []int{DescNumeric, DescNumeric, DescNumeric}
)

// Instructions indexed by opcode.
var Instructions = map[int]Instruction{
	OpCSL:  {"CSL", bits2, 2},
	OpCSR:  {"CSR", bits2, 2},
	OpSZTL: {"SZTL", bits2, 2},
	OpSZTR: {"SZTR", bits2, 2},
	OpCMPB: {"CMPB", bits2, 2},
	OpMVE:  {"MVE", []int{DescAlpha, DescAlpha, DescAlpha}, 3},
	OpMVNE: {"MVNE", []int{DescNumeric, DescAlpha, DescAlpha}, 3},
	OpMLR:  {"MLR", alpha2, 2},
	OpMRL:  {"MRL", alpha2, 2},
	OpCMPC: {"CMPC", alpha2, 2},
	OpSCD:  {"SCD", alpha2a, 2},
	OpSCDR: {"SCDR", alpha2a, 2},
	OpSCM:  {"SCM", alpha2a, 2},
	OpSCMR: {"SCMR", alpha2a, 2},
	OpMVT:  {"MVT", alpha2a, 2},
	OpTCT:  {"TCT", alpha1a2, 1},
	OpTCTR: {"TCTR", alpha1a2, 1},
	OpAD2D: {"AD2D", num2, 2},
	OpSB2D: {"SB2D", num2, 2},
	OpMP2D: {"MP2D", num2, 2},
	OpDV2D: {"DV2D", num2, 2},
	OpAD3D: {"AD3D", num3, 3},
	OpSB3D: {"SB3D", num3, 3},
	OpMP3D: {"MP3D", num3, 3},
	OpDV3D: {"DV3D", num3, 3},
	OpMVN:  {"MVN", num2, 2},
	OpBTD:  {"BTD", num2, 2},
	OpCMPN: {"CMPN", num2, 2},
	OpDTB:  {"DTB", num2, 2},
}

// Modification field k (0-2) of an instruction word.
func MF(iwb uint64, k int) uint8 {
	switch k {
	case 0:
		return uint8(iwb & 0177)
	case 1:
		return uint8((iwb >> 18) & 0177)
	case 2:
		return uint8((iwb >> 27) & 0177)
	}
	return 0
}
