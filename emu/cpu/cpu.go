/*
 * DPS8 - CPU register file and instruction cycle
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
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rcornwell/DPS8/emu/eis"
	mem "github.com/rcornwell/DPS8/emu/memory"
	op "github.com/rcornwell/DPS8/emu/opcodemap"
	"github.com/rcornwell/DPS8/util/octal"
)

/*
   The DPS8 is a 36 bit machine with an 18 bit address. Registers are:

     A, Q     36 bit accumulator and quotient.
     X0-X7    18 bit index registers.
     IR       Indicator register.
     IC       Instruction counter.
     PR0-PR7  Pointer registers, segment, ring, word, character and bit.
              The address registers are the word, character and bit
              parts of the pointer registers.

   Only the extended instruction set is run here. Each instruction word is
   followed by one descriptor per operand:

      +-----------+---------+---+---+-----+---------+
      | MF3 / fill|   MF2   |op |X|I|A|   MF1       |
      +-----------+---------+---+---+-----+---------+
       0         8 9      17 18  27 28  29        35
*/

var cpuState cpu

// Initialize CPU to basic state.
func InitializeCPU() {
	cpuState = cpu{}
	cpuState.mode = eis.Absolute
}

// Execute one instruction. Returns the number of words used and false if
// the CPU stopped.
func CycleCPU() (int, bool) {
	if cpuState.halted {
		return 0, false
	}
	cpuState.iIC = cpuState.IC
	iwb, err := cpuState.ReadWord(cpuState.IC, eis.OperandRead, false)
	if err != nil {
		cpuState.halt(err)
		return 0, false
	}

	switch op.Opcode(iwb) {
	case opNOP:
		cpuState.IC = (cpuState.IC + 1) & AMASK
		return 1, true
	case opDIS:
		cpuState.halted = true
		slog.Debug("CPU halted at " + strconv.FormatUint(uint64(cpuState.IC), 8))
		return 1, false
	}

	// Anything else must be an EIS instruction, Execute faults otherwise.
	n, err := eis.Execute(&cpuState, cpuState.IC, iwb)
	if err != nil {
		cpuState.halt(err)
		return n, false
	}
	cpuState.IC = (cpuState.IC + uint32(n)) & AMASK
	return n, true
}

// Stop after a fault.
func (cpu *cpu) halt(err error) {
	cpu.halted = true
	slog.Warn("CPU stopped: " + err.Error())
}

// Translate an address to a memory location.
func (cpu *cpu) translate(addr uint32, viaPR bool) (uint32, error) {
	phys := addr & AMASK
	if cpu.mode == eis.Append {
		seg := cpu.procSeg
		if viaPR {
			seg = cpu.target
		}
		phys |= uint32(seg.Number) << segShift
	}
	if !mem.CheckAddr(phys) {
		return 0, cpu.RaiseFault(eis.FaultSTR, eis.SubNone, "address "+strconv.FormatUint(uint64(phys), 8))
	}
	return phys, nil
}

func (cpu *cpu) ReadWord(addr uint32, _ eis.AccessKind, viaPR bool) (uint64, error) {
	phys, err := cpu.translate(addr, viaPR)
	if err != nil {
		return 0, err
	}
	return mem.GetMemory(phys), nil
}

func (cpu *cpu) WriteWord(addr uint32, data uint64, _ eis.AccessKind, viaPR bool) error {
	phys, err := cpu.translate(addr, viaPR)
	if err != nil {
		return err
	}
	mem.SetMemory(phys, data)
	return nil
}

// Value of register selected by modifier code.
func (cpu *cpu) RegisterValue(code uint8, allowDU bool) (uint64, error) {
	switch code {
	case eis.RegN:
		return 0, nil
	case eis.RegAU:
		return (cpu.A >> 18) & LMASK, nil
	case eis.RegQU:
		return (cpu.Q >> 18) & LMASK, nil
	case eis.RegDU:
		if !allowDU {
			return 0, cpu.RaiseFault(eis.FaultIPR, eis.SubIllMod, "du modifier")
		}
		return 0, nil
	case eis.RegIC:
		return uint64(cpu.iIC), nil
	case eis.RegAL:
		return cpu.A & LMASK, nil
	case eis.RegQL:
		return cpu.Q & LMASK, nil
	case eis.RegIL:
		return uint64(cpu.IR), nil
	}
	return uint64(cpu.X[code&07]), nil
}

func (cpu *cpu) PointerRegister(n uint8) eis.PointerRegister {
	return cpu.PR[n&07]
}

func (cpu *cpu) AddressRegister(n uint8) eis.AddressRegister {
	pr := cpu.PR[n&07]
	return eis.AddressRegister{WordNo: pr.WordNo, Char: pr.Char, Bit: pr.Bit}
}

// Record fault and return it.
func (cpu *cpu) RaiseFault(kind eis.FaultKind, sub eis.FaultSubtype, msg string) error {
	err := eis.NewFault(kind, sub, msg)
	cpu.fault = eis.AsFault(err)
	cpu.faultIC = cpu.iIC
	cpu.faults[kind]++
	return err
}

func (cpu *cpu) AddressingMode() eis.AddressingMode {
	return cpu.mode
}

func (cpu *cpu) TargetSegment() eis.Segment {
	return cpu.target
}

func (cpu *cpu) SetTargetSegment(seg eis.Segment) {
	cpu.target = seg
}

func (cpu *cpu) Indicators() uint32 {
	return cpu.IR
}

func (cpu *cpu) SetIndicators(ir uint32) {
	cpu.IR = ir & IRMASK
}

// Start the CPU at address ic.
func Start(ic uint32) {
	cpuState.IC = ic & AMASK
	cpuState.halted = false
	cpuState.fault = nil
}

// Continue after a stop.
func Resume() {
	cpuState.halted = false
}

// Return true if the CPU is stopped.
func Halted() bool {
	return cpuState.halted
}

// Instruction counter.
func GetIC() uint32 {
	return cpuState.IC
}

// Last fault and the address of the instruction that took it.
func LastFault() (*eis.Fault, uint32) {
	return cpuState.fault, cpuState.faultIC
}

// Number of faults of kind taken since initialize.
func FaultCount(kind eis.FaultKind) int {
	return cpuState.faults[kind]
}

// Register names.
func RegNames() []string {
	return regNames
}

// Get a register by name.
func GetReg(name string) (uint64, error) {
	name = strings.ToUpper(name)
	switch {
	case name == "A":
		return cpuState.A, nil
	case name == "Q":
		return cpuState.Q, nil
	case name == "IR":
		return uint64(cpuState.IR), nil
	case name == "IC":
		return uint64(cpuState.IC), nil
	}
	if n, ok := indexReg(name); ok {
		return uint64(cpuState.X[n]), nil
	}
	return 0, errors.New("register not found: " + name)
}

// Set a register by name.
func SetReg(name string, value uint64) error {
	name = strings.ToUpper(name)
	switch {
	case name == "A":
		cpuState.A = value & DMASK
	case name == "Q":
		cpuState.Q = value & DMASK
	case name == "IR":
		cpuState.IR = uint32(value) & IRMASK
	case name == "IC":
		cpuState.IC = uint32(value) & AMASK
	default:
		n, ok := indexReg(name)
		if !ok {
			return errors.New("register not found: " + name)
		}
		cpuState.X[n] = uint32(value) & AMASK
	}
	return nil
}

// Return index register number for Xn.
func indexReg(name string) (int, bool) {
	if len(name) != 2 || name[0] != 'X' || name[1] < '0' || name[1] > '7' {
		return 0, false
	}
	return int(name[1] - '0'), true
}

// Set pointer register n.
func SetPR(n int, pr eis.PointerRegister) error {
	if n < 0 || n > 7 {
		return fmt.Errorf("pointer register %d out of range", n)
	}
	if pr.Char > 3 || pr.Bit > 8 {
		return fmt.Errorf("pointer register %d char %d bit %d invalid", n, pr.Char, pr.Bit)
	}
	pr.WordNo &= AMASK
	pr.Segment.Number &= 077777
	pr.Segment.Ring &= 07
	cpuState.PR[n] = pr
	return nil
}

// Get pointer register n.
func GetPR(n int) eis.PointerRegister {
	return cpuState.PR[n&07]
}

// Select append or absolute mode.
func SetAppend(on bool) {
	if on {
		cpuState.mode = eis.Append
	} else {
		cpuState.mode = eis.Absolute
	}
}

// Set procedure segment used for instruction fetch in append mode.
func SetProcedureSegment(seg eis.Segment) {
	cpuState.procSeg = seg
}

// Registers returns a printable dump of the registers.
func Registers() string {
	var str strings.Builder
	str.WriteString("A: ")
	octal.FormatWord(&str, []uint64{cpuState.A})
	str.WriteString("Q: ")
	octal.FormatWord(&str, []uint64{cpuState.Q})
	str.WriteString("IR: ")
	octal.FormatHalf(&str, cpuState.IR)
	str.WriteString(" IC: ")
	octal.FormatHalf(&str, cpuState.IC)
	str.WriteByte('\n')
	for i, x := range cpuState.X {
		str.WriteString("X")
		octal.FormatNumber(&str, uint64(i))
		str.WriteString(": ")
		octal.FormatHalf(&str, x)
		str.WriteByte(' ')
	}
	str.WriteByte('\n')
	for i, pr := range cpuState.PR {
		str.WriteString("PR")
		octal.FormatNumber(&str, uint64(i))
		str.WriteString(": ")
		octal.FormatNumber(&str, uint64(pr.Segment.Number))
		str.WriteByte('|')
		octal.FormatHalf(&str, pr.WordNo)
		str.WriteString(" R")
		octal.FormatNumber(&str, uint64(pr.Segment.Ring))
		str.WriteString(" C")
		octal.FormatNumber(&str, uint64(pr.Char))
		str.WriteString(" B")
		octal.FormatNumber(&str, uint64(pr.Bit))
		str.WriteByte('\n')
	}
	if cpuState.mode == eis.Append {
		str.WriteString("Mode: append\n")
	} else {
		str.WriteString("Mode: absolute\n")
	}
	return str.String()
}
