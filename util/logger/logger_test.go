/*
 * DPS8 - Wrapper for slog test cases
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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler(t *testing.T) {
	var out, console bytes.Buffer
	debug := false
	h := NewHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}, &debug)
	h.SetConsole(&console)
	log := slog.New(h)

	log.Debug("trace", "ic", "000400")
	log.With("unit", "eis").Warn("fault", "kind", "IPR")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasSuffix(lines[0], "DEBUG: trace ic=000400"), lines[0])
		assert.True(t, strings.HasSuffix(lines[1], "WARN: fault unit=eis kind=IPR"), lines[1])
	}
	// Debug messages only go to the file unless debug is enabled.
	assert.NotContains(t, console.String(), "trace")
	assert.Contains(t, console.String(), "WARN: fault unit=eis kind=IPR")

	debug = true
	h.SetDebug(&debug)
	log.Debug("now shown")
	assert.Contains(t, console.String(), "DEBUG: now shown")
}

func TestHandlerLevel(t *testing.T) {
	var out bytes.Buffer
	debug := false
	h := NewHandler(&out, nil, &debug)
	h.SetConsole(nil)
	log := slog.New(h)
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "INFO: shown")
}
