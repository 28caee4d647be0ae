/*
 * DPS8 - Console command line parser
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
	"io"
	"os"
	"strings"
	"unicode"

	command "github.com/rcornwell/DPS8/command/command"
	core "github.com/rcornwell/DPS8/emu/core"
)

type cmd struct {
	Name     string // Command name.
	Min      int    // Minimum match size.
	Process  func(*cmdLine, *core.Core) (bool, error)
	Complete func(*cmdLine) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// Where command output is written.
var output io.Writer = os.Stdout

// Execute the command line given.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord(false)
	if command == "" {
		if !line.isEOL() {
			return false, errors.New("command must start with a letter")
		}
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, core)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	l := 0
	for l = range len(command) {
		if match.Name[l] != command[l] {
			return false
		}
	}
	return (l + 1) >= match.Min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	// If command empty just return.
	if command == "" {
		return []cmd{}
	}

	// Try and match one command.
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Match list of options.
func matchOption(option string, optList []command.Options, cmdType int) command.Options {
	for _, opt := range optList {
		if (opt.OptionValid & cmdType) == 0 {
			continue
		}
		if opt.Name == option {
			return opt
		}
	}
	return command.Options{OptionType: -1}
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for {
		if line.pos >= len(line.line) {
			return
		}
		if unicode.IsSpace(rune(line.line[line.pos])) {
			line.pos++
			continue
		}
		return
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}

	if line.line[line.pos] == '#' {
		return true
	}
	return false
}

// Return current character and advance to next.
func (line *cmdLine) getCurrent() byte {
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	line.pos++
	return by
}

// Peek at current character.
func (line *cmdLine) peek() byte {
	if line.isEOL() {
		return 0
	}
	return line.line[line.pos]
}

// Parse string that is "string" or just string.
func (line *cmdLine) parseQuoteString() (string, bool) {
	line.skipSpace()
	if line.isEOL() {
		return "", false
	}

	value := ""
	if line.line[line.pos] != '"' {
		// Space terminates a none quoted string.
		for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
			value += string([]byte{line.line[line.pos]})
			line.pos++
		}
		return value, true
	}

	line.pos++
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		line.pos++
		if by == '"' {
			// "" gets replaced by single quote.
			if line.pos < len(line.line) && line.line[line.pos] == '"' {
				line.pos++
			} else {
				return value, true
			}
		}
		value += string([]byte{by})
	}
	return value, false
}

// Collect digits of a number up to space or end of line.
func (line *cmdLine) getDigits() string {
	line.skipSpace()
	value := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) || by == ',' || by == '-' || by == ':' || by == '|' {
			break
		}
		value += string([]byte{by})
		line.pos++
	}
	return value
}

// Parse a decimal number.
func (line *cmdLine) getNumber() (uint64, error) {
	return line.parseNumber(10, 36)
}

// Parse an octal number.
func (line *cmdLine) getOctal() (uint64, error) {
	return line.parseNumber(8, 36)
}

// Parse an address, at most 18 bits.
func (line *cmdLine) getAddress() (uint32, error) {
	v, err := line.parseNumber(8, 18)
	return uint32(v), err
}

func (line *cmdLine) parseNumber(base uint64, bits uint) (uint64, error) {
	pos := line.pos
	text := line.getDigits()
	if text == "" {
		line.pos = pos
		return 0, errors.New("not a number")
	}
	value := uint64(0)
	for _, by := range text {
		digit := uint64(by - '0')
		if by < '0' || digit >= base {
			line.pos = pos
			return 0, errors.New("not a number: " + text)
		}
		value = value*base + digit
		if value >= uint64(1)<<bits {
			line.pos = pos
			return 0, errors.New("number too large: " + text)
		}
	}
	return value, nil
}

// Parse option name, letters followed by letters or digits.
// Stops at = if equal is set.
func (line *cmdLine) getWord(equal bool) string {
	line.skipSpace()

	value := ""
	pos := line.pos
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) || (equal && by == '=') {
			break
		}
		if !unicode.IsLetter(rune(by)) && (value == "" || !unicode.IsDigit(rune(by))) {
			line.pos = pos
			return ""
		}
		value += string([]byte{by})
		line.pos++
	}
	return strings.ToLower(value)
}

// Get an option.
func (line *cmdLine) getOption(opts []command.Options, cmdType int) (*command.CmdOption, error) {
	// Get a word, stoping at equal or space.
	name := line.getWord(true)
	if name == "" {
		if !line.isEOL() {
			return nil, errors.New("invalid option")
		}
		return nil, nil
	}

	opt := command.CmdOption{Name: name}
	match := matchOption(name, opts, cmdType)
	switch match.OptionType {
	case -1:
		return nil, errors.New("unknown option: " + name)
	case command.OptionSwitch:
		if line.peek() == '=' {
			return nil, errors.New("switch option can't have arguments: " + name)
		}
	case command.OptionFile:
		if line.getCurrent() != '=' {
			return nil, errors.New("file options must be followed by name: " + name)
		}
		file, ok := line.parseQuoteString()
		if !ok || file == "" {
			return nil, errors.New("file name not valid: " + name)
		}
		opt.EqualOpt = file
	case command.OptionNumber, command.OptionOctal:
		if line.getCurrent() != '=' {
			return nil, errors.New("number options must be followed by number: " + name)
		}
		var num uint64
		var err error
		if match.OptionType == command.OptionOctal {
			num, err = line.getOctal()
		} else {
			num, err = line.getNumber()
		}
		if err != nil {
			return nil, errors.New("number options must be followed by number: " + name)
		}
		opt.Value = num
	case command.OptionName:
		if line.getCurrent() != '=' {
			return nil, errors.New("name options must be followed by name: " + name)
		}
		value := line.getWord(false)
		if value == "" {
			return nil, errors.New("name options must be followed by name: " + name)
		}
		opt.EqualOpt = value
	case command.OptionList:
		if line.getCurrent() != '=' {
			return nil, errors.New("list options must be followed by name: " + name)
		}
		listStr := line.getWord(false)
		opt.EqualOpt = listStr
		for _, mod := range match.OptionList {
			if strings.ToLower(mod) == listStr {
				return &opt, nil
			}
		}
		return nil, errors.New("option not valid for type: " + name)
	default:
		return nil, errors.New("invalid option type: " + name)
	}
	return &opt, nil
}

// Scan options and return a list of options.
func (line *cmdLine) getOptions(opts []command.Options, cmdType int) ([]*command.CmdOption, error) {
	optlist := []*command.CmdOption{}
	for {
		opt, err := line.getOption(opts, cmdType)
		if err != nil {
			return optlist, err
		}
		if opt == nil {
			break
		}
		optlist = append(optlist, opt)
	}
	return optlist, nil
}
