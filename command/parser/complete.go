/*
 * DPS8 - Console command completion
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
	"slices"
	"strings"
	"unicode"

	command "github.com/rcornwell/DPS8/command/command"
)

// Called to complete a command line, during line editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord(false)

	// We have a command, let it try and complete it.
	if !line.isEOL() && unicode.IsSpace(rune(line.peek())) {
		// See if there is a completer for this command.
		match := matchList(name)
		if len(match) != 1 {
			return nil
		}

		if match[0].Complete != nil {
			return match[0].Complete(&line)
		}
		return nil
	}

	// Try and match one command.
	var matches []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, name) {
			matches = append(matches, m.Name)
		}
	}
	slices.Sort(matches)
	return matches
}

// Complete last option on line from list of options.
func (line *cmdLine) scanOpts(opts []command.Options, cmdType int) []string {
	// Find start of last word.
	start := strings.LastIndexAny(line.line, " \t") + 1
	leading := line.line[:start]
	last := strings.ToLower(line.line[start:])

	matches := []string{}
	if eq := strings.IndexByte(last, '='); eq >= 0 {
		// Complete value of list option.
		opt := matchOption(last[:eq], opts, cmdType)
		if opt.OptionType != command.OptionList {
			return nil
		}
		for _, value := range opt.OptionList {
			if strings.HasPrefix(value, last[eq+1:]) {
				matches = append(matches, leading+last[:eq+1]+value+" ")
			}
		}
		return matches
	}

	for _, opt := range opts {
		if (opt.OptionValid & cmdType) == 0 {
			continue
		}
		if !strings.HasPrefix(opt.Name, last) {
			continue
		}
		if opt.OptionType == command.OptionSwitch {
			matches = append(matches, leading+opt.Name+" ")
		} else {
			matches = append(matches, leading+opt.Name+"=")
		}
	}
	slices.Sort(matches)
	return matches
}
