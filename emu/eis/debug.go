/*
 * DPS8 - EIS trace options
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
	"errors"

	"github.com/rcornwell/DPS8/util/debug"
)

const (
	debugCmd = 1 << iota
	debugData
	debugCache
	debugAddr
	debugMop
	debugDecimal
)

var debugOption = map[string]int{
	"CMD":     debugCmd,
	"DATA":    debugData,
	"CACHE":   debugCache,
	"ADDR":    debugAddr,
	"MOP":     debugMop,
	"DECIMAL": debugDecimal,
}

var debugMsk int

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("eis debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}

// Clear all debug options.
func DebugClear() {
	debugMsk = 0
}

// Debugging reports whether any debug option is set.
func Debugging() bool {
	return debugMsk != 0
}

func tracef(level int, format string, a ...interface{}) {
	debug.Debugf("EIS", debugMsk, level, format, a...)
}
