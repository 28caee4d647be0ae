/*
 * DPS8 - Debug trace output test cases
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

package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/rcornwell/DPS8/config/configparser"
)

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Debugf("EIS", 0x3, 0x2, "mlr %o", 0100)
	Debugf("EIS", 0x1, 0x2, "skipped")
	assert.Equal(t, "EIS: mlr 100\n", buf.String())
}

func TestDebugFile(t *testing.T) {
	SetOutput(nil)
	t.Cleanup(func() { SetOutput(nil) })
	fileName := filepath.Join(t.TempDir(), "debug.log")

	require.NoError(t, config.ParseLine("debugfile "+fileName))
	require.Error(t, config.ParseLine("debugfile "+fileName))

	Debugf("CPU", 1, 1, "halt")
	mu.Lock()
	file, ok := logFile.(*os.File)
	mu.Unlock()
	require.True(t, ok)
	require.NoError(t, file.Sync())

	data, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Equal(t, "CPU: halt\n", string(data))
	file.Close()
}
