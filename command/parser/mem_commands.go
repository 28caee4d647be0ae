/*
 * DPS8 - Memory and register commands
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

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	core "github.com/rcornwell/DPS8/emu/core"
	"github.com/rcornwell/DPS8/emu/cpu"
	disassembler "github.com/rcornwell/DPS8/emu/disassemble"
	"github.com/rcornwell/DPS8/emu/memory"
	"github.com/rcornwell/DPS8/emu/word"
	"github.com/rcornwell/DPS8/util/octal"
)

type memoryOpts struct {
	char      bool   // Show or deposit characters.
	inst      bool   // Show as instructions.
	lowRange  uint32 // Lower start to display
	highRange uint32 // Highest value to display.
}

const wordsPerLine = 4

// Get options for memory reference command.
func (line *cmdLine) parseMemoryOptions(options *memoryOpts) error {
	for {
		line.skipSpace()
		if line.peek() != '-' {
			return nil
		}
		line.pos++
		for !line.isEOL() && !strings.ContainsRune(" \t", rune(line.peek())) {
			switch strings.ToLower(string(line.getCurrent())) {
			case "c": // Characters.
				options.char = true
			case "i": // Instructions.
				options.inst = true
			default:
				return errors.New("option invalid: -" + string(line.line[line.pos-1]))
			}
		}
	}
}

// Parse address range, addr, addr-addr or addr:count.
func (line *cmdLine) parseRange(options *memoryOpts) error {
	low, err := line.getAddress()
	if err != nil {
		return err
	}
	options.lowRange = low
	options.highRange = low
	switch line.peek() {
	case '-':
		line.pos++
		high, err := line.getAddress()
		if err != nil {
			return err
		}
		if high < low {
			return errors.New("range end before start")
		}
		options.highRange = high
	case ':':
		line.pos++
		count, err := line.getNumber()
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("count must be greater than zero")
		}
		options.highRange = low + uint32(count) - 1
	}
	if !memory.CheckAddr(options.highRange) {
		return fmt.Errorf("address %o outside of memory", options.highRange)
	}
	return nil
}

// Examine memory or a register.
func examine(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Examine")
	options := memoryOpts{}
	if err := line.parseMemoryOptions(&options); err != nil {
		return false, err
	}

	if name := line.getWord(false); name != "" {
		value, err := cpu.GetReg(name)
		if err != nil {
			return false, err
		}
		var str strings.Builder
		str.WriteString(strings.ToUpper(name) + ": ")
		octal.FormatWord(&str, []uint64{value})
		fmt.Fprintln(output, strings.TrimSpace(str.String()))
		return false, nil
	}

	if err := line.parseRange(&options); err != nil {
		return false, err
	}

	if options.inst {
		addr := options.lowRange
		for addr <= options.highRange {
			text, n := disassembleAt(addr)
			fmt.Fprint(output, text)
			addr += uint32(n)
		}
		return false, nil
	}

	for addr := options.lowRange; addr <= options.highRange; addr += wordsPerLine {
		end := min(addr+wordsPerLine-1, options.highRange)
		words := make([]uint64, 0, wordsPerLine)
		for a := addr; a <= end; a++ {
			words = append(words, memory.GetMemory(a))
		}
		var str strings.Builder
		octal.FormatHalf(&str, addr)
		str.WriteString(": ")
		octal.FormatWord(&str, words)
		if options.char {
			str.WriteString(" |")
			octal.FormatText(&str, words)
			str.WriteByte('|')
		}
		fmt.Fprintln(output, strings.TrimRight(str.String(), " "))
	}
	return false, nil
}

// Deposit values into memory or a register.
func deposit(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Deposit")
	options := memoryOpts{}
	if err := line.parseMemoryOptions(&options); err != nil {
		return false, err
	}

	if name := line.getWord(false); name != "" {
		value, err := line.getOctal()
		if err != nil {
			return false, err
		}
		return false, cpu.SetReg(name, value)
	}

	addr, err := line.getAddress()
	if err != nil {
		return false, err
	}

	var data []uint64
	if options.char {
		text, ok := line.parseQuoteString()
		if !ok {
			return false, errors.New("invalid string")
		}
		data = packText(text)
	} else {
		data, err = line.parseDepositWords()
		if err != nil {
			return false, err
		}
	}
	if len(data) == 0 {
		return false, errors.New("nothing to deposit")
	}
	if !memory.CheckAddr(addr + uint32(len(data)) - 1) {
		return false, fmt.Errorf("address %o outside of memory", addr+uint32(len(data))-1)
	}
	for i, w := range data {
		memory.SetMemory(addr+uint32(i), w)
	}
	return false, nil
}

// Parse list of octal words separated by space or comma.
func (line *cmdLine) parseDepositWords() ([]uint64, error) {
	var data []uint64
	for {
		line.skipSpace()
		if line.peek() == ',' {
			line.pos++
			continue
		}
		if line.isEOL() {
			return data, nil
		}
		w, err := line.getOctal()
		if err != nil {
			return nil, err
		}
		data = append(data, w)
	}
}

// Pack text four 9 bit characters to a word, last word is blank filled.
func packText(text string) []uint64 {
	var data []uint64
	for i := 0; i < len(text); i += 4 {
		w := uint64(0)
		for j := range 4 {
			c := uint16(' ')
			if i+j < len(text) {
				c = uint16(text[i+j])
			}
			w = word.Put9(w, j, c)
		}
		data = append(data, w)
	}
	return data
}

// Disassemble instructions in memory.
func disassemble(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Disassemble")
	addr := cpu.GetIC()
	count := uint64(1)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		addr, err = line.getAddress()
		if err != nil {
			return false, err
		}
		line.skipSpace()
		if !line.isEOL() {
			count, err = line.getNumber()
			if err != nil {
				return false, err
			}
		}
	}
	for range count {
		if !memory.CheckAddr(addr) {
			return false, fmt.Errorf("address %o outside of memory", addr)
		}
		text, n := disassembleAt(addr)
		fmt.Fprint(output, text)
		addr += uint32(n)
	}
	return false, nil
}

// Disassemble instruction at addr, return text and words used.
func disassembleAt(addr uint32) (string, int) {
	words := []uint64{}
	for a := addr; a < addr+4 && memory.CheckAddr(a); a++ {
		words = append(words, memory.GetMemory(a))
	}
	if len(words) == 0 {
		return "", 1
	}
	text, n := disassembler.Disassemble(words)
	var str strings.Builder
	for i, l := range strings.Split(text, "\n") {
		octal.FormatHalf(&str, addr+uint32(i))
		str.WriteString(": ")
		octal.FormatWord(&str, words[i:i+1])
		str.WriteString(strings.TrimLeft(l, " "))
		str.WriteByte('\n')
		if i+1 >= len(words) {
			break
		}
	}
	return str.String(), n
}
