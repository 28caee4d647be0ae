/*
 * DPS8 - EIS unit definitions
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

// Kind of memory reference, passed to the memory layer.
type AccessKind int

const (
	OperandRead    AccessKind = iota // Operand fetch
	OperandStore                     // Operand store
	DescriptorRead                   // Descriptor or indirect word fetch
)

// Addressing mode of the processor.
type AddressingMode int

const (
	Absolute AddressingMode = iota
	Append
)

// Segment and ring used for pointer register based references.
type Segment struct {
	Number uint16 // Segment number (15 bits)
	Ring   uint8  // Ring number (3 bits)
}

// Pointer register as seen by the EIS unit.
type PointerRegister struct {
	Segment Segment
	WordNo  uint32 // Word offset within segment
	Char    uint8  // Character position (0-3)
	Bit     uint8  // Bit position in character (0-8)
}

// Address register as seen by the EIS unit.
type AddressRegister struct {
	WordNo uint32
	Char   uint8
	Bit    uint8
}

// Processor is the part of the CPU the EIS unit depends on.
type Processor interface {
	// Read and write words of memory. viaPR selects the target segment
	// context instead of the procedure segment in append mode.
	ReadWord(addr uint32, kind AccessKind, viaPR bool) (uint64, error)
	WriteWord(addr uint32, data uint64, kind AccessKind, viaPR bool) error

	// Value of a register selected by a modifier code.
	RegisterValue(code uint8, allowDU bool) (uint64, error)

	PointerRegister(n uint8) PointerRegister
	AddressRegister(n uint8) AddressRegister

	// Record a fault and return the error that unwinds the instruction.
	RaiseFault(kind FaultKind, sub FaultSubtype, msg string) error

	AddressingMode() AddressingMode
	TargetSegment() Segment
	SetTargetSegment(seg Segment)

	Indicators() uint32
	SetIndicators(ir uint32)
}

// Modification field bits.
const (
	mfAR  uint8 = 0100 // Address register
	mfRL  uint8 = 040  // Register length
	mfID  uint8 = 020  // Indirect descriptor
	mfREG uint8 = 017  // Register code
)

// Register codes for modification fields.
const (
	RegN  uint8 = iota // None
	RegAU              // A upper
	RegQU              // Q upper
	RegDU              // Direct upper, descriptor holds the data
	RegIC              // Instruction counter
	RegAL              // A lower
	RegQL              // Q lower
	RegIL              // Indicator register
	RegX0              // Index registers 0-7
)

// Alphanumeric character types.
const (
	CTA9 uint8 = iota // 9 bit characters
	CTA6              // 6 bit characters
	CTA4              // 4 bit characters
	CTAILL            // Illegal
)

// Numeric character types.
const (
	CTN9 uint8 = iota // 9 bit digits
	CTN4              // 4 bit digits
)

// Sign and decimal type of numeric operand.
const (
	CSFL uint8 = iota // Floating point, leading sign
	CSLS              // Scaled fixed point, leading sign
	CSTS              // Scaled fixed point, trailing sign
	CSNS              // Scaled fixed point, unsigned
)

// Indicator register bits.
const (
	IndZero      uint32 = 0400000 // Zero
	IndNeg       uint32 = 0200000 // Negative
	IndCarry     uint32 = 0100000 // Carry
	IndOverflow  uint32 = 0040000 // Overflow
	IndExpOver   uint32 = 0020000 // Exponent overflow
	IndExpUnder  uint32 = 0010000 // Exponent underflow
	IndOMask     uint32 = 0004000 // Overflow mask
	IndTally     uint32 = 0002000 // Tally runout
	IndParity    uint32 = 0001000 // Parity error
	IndPMask     uint32 = 0000400 // Parity mask
	IndNotBAR    uint32 = 0000200 // Not BAR mode
	IndTrunc     uint32 = 0000100 // Truncation
	IndMidInst   uint32 = 0000040 // Mid instruction interrupt
	IndHex       uint32 = 0000020 // Hex mode
	IndAbsolute  uint32 = 0000010 // Absolute mode
	IndicatorMsk uint32 = 0777770 // Bits stored by il modifier
)

// Register length masks.
const (
	lenMask4   uint32 = 017777777  // 4 bit character counts
	lenMask69  uint32 = 07777777   // 6 and 9 bit character counts
	lenMaskNum uint32 = 077        // Digit counts
	lenMaskBit uint32 = 077777777  // Bit counts
	tallyMask  uint64 = 077777777  // Tally stored by scan instructions
)

// Maximum digits in decimal operand.
const MaxDigits = 63

// Exponent used for floating zero.
const zeroExponent = 127

// Characters per word for each alphanumeric type.
var charsPerWord = [4]int{4, 6, 8, 0}

// Width in bits of each alphanumeric type.
var charWidth = [4]int{9, 6, 4, 0}
