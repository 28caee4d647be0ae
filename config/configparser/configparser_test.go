/*
 * DPS8 - Configuration file parser test cases
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

package configparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOptions []Option
	testAddr    uint32
	testValue   string
	testType    string
)

func resetTest() {
	testOptions = []Option{}
	testAddr = 0
	testValue = "error"
	testType = ""
}

func cleanUpConfig() {
	models = map[string]modelDef{}
	resetTest()
}

func record(kind string) func(uint32, string, []Option) error {
	return func(addr uint32, value string, options []Option) error {
		testAddr = addr
		testValue = value
		testType = kind
		testOptions = options
		return nil
	}
}

func registerAll() {
	cleanUpConfig()
	RegisterModel("testmodel", TypeModel, record("model"))
	RegisterModel("testoptions", TypeOptions, record("options"))
	RegisterOption("testoption", record("option"))
	RegisterSwitch("testswitch", record("switch"))
	RegisterList("testlist", record("list"))
	RegisterFile("testfile", record("file"))
}

func TestRegister(t *testing.T) {
	registerAll()
	first := FirstOption{addr: 0100, isAddr: true, value: "0100"}

	require.Error(t, createModel("nothere", &first, nil))
	require.NoError(t, createModel("testmodel", &first, nil))
	assert.Equal(t, "model", testType)
	assert.Equal(t, uint32(0100), testAddr)

	require.NoError(t, createSwitch("TESTSWITCH"))
	assert.Equal(t, "switch", testType)
	assert.Equal(t, NoAddr, testAddr)

	require.Error(t, createSwitch("testmodel"))
	require.Error(t, createModel("testswitch", &first, nil))
	require.Error(t, createOption("testlist", &first))
	require.Error(t, createList("testoption", nil))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line  string
		fail  bool
		kind  string
		addr  uint32
		value string
		opts  int
	}{
		{line: "", kind: ""},
		{line: "   # comment only", kind: ""},
		{line: "testswitch", kind: "switch", addr: NoAddr},
		{line: "testSwitch  # Comment", kind: "switch", addr: NoAddr},
		{line: "testswitch 0", fail: true},
		{line: "testoption", fail: true},
		{line: "testoption enable # Comment", kind: "option", addr: NoAddr, value: "enable"},
		{line: "testoption 0100   ", kind: "option", addr: 0100, value: "0100"},
		{line: "testoption 0100 extra", fail: true},
		{line: "testfile eis.log", kind: "file", addr: NoAddr, value: "eis.log"},
		{line: "testfile /tmp/dps8_eis-1.log", kind: "file", addr: NoAddr, value: "/tmp/dps8_eis-1.log"},
		{line: "testmodel", fail: true},
		{line: "testmodel enable", fail: true},
		{line: "testmodel 0777", kind: "model", addr: 0777, value: "0777"},
		{line: "testmodel 9", fail: true},
		{line: "testmodel 1000000", fail: true},
		{line: "testoptions eis cmd data", kind: "options", addr: NoAddr, value: "eis", opts: 2},
		{line: "testlist a=17 ic=400", kind: "list", addr: NoAddr, opts: 2},
		{line: "testlist", fail: true},
		{line: "unknown 10", fail: true},
	}
	for _, test := range tests {
		registerAll()
		err := ParseLine(test.line)
		if test.fail {
			assert.Error(t, err, test.line)
			continue
		}
		require.NoError(t, err, test.line)
		assert.Equal(t, test.kind, testType, test.line)
		if test.kind == "" {
			continue
		}
		assert.Equal(t, test.addr, testAddr, test.line)
		if test.kind != "list" && test.kind != "switch" {
			assert.Equal(t, test.value, testValue, test.line)
		}
		assert.Len(t, testOptions, test.opts, test.line)
	}
}

func TestParseOptions(t *testing.T) {
	registerAll()
	require.NoError(t, ParseLine(`testoptions eis single, second, third  other=value name="quoted value"`))
	require.Len(t, testOptions, 3)

	assert.Equal(t, "single", testOptions[0].Name)
	assert.Empty(t, testOptions[0].EqualOpt)
	require.Len(t, testOptions[0].Value, 2)
	assert.Equal(t, "second", *testOptions[0].Value[0])
	assert.Equal(t, "third", *testOptions[0].Value[1])

	assert.Equal(t, "other", testOptions[1].Name)
	assert.Equal(t, "value", testOptions[1].EqualOpt)
	assert.Empty(t, testOptions[1].Value)

	assert.Equal(t, "name", testOptions[2].Name)
	assert.Equal(t, "quoted value", testOptions[2].EqualOpt)
}

func TestParseListValues(t *testing.T) {
	registerAll()
	require.NoError(t, ParseLine("testlist A=0123 x1=7 mode=append"))
	require.Len(t, testOptions, 3)
	assert.Equal(t, "A", testOptions[0].Name)
	assert.Equal(t, "0123", testOptions[0].EqualOpt)
	assert.Equal(t, "x1", testOptions[1].Name)
	assert.Equal(t, "7", testOptions[1].EqualOpt)
	assert.Equal(t, "append", testOptions[2].EqualOpt)
}

func TestLoadConfig(t *testing.T) {
	registerAll()
	var seen []string
	RegisterOption("memory", func(_ uint32, value string, _ []Option) error {
		seen = append(seen, "memory "+value)
		return nil
	})
	RegisterSwitch("fail", func(uint32, string, []Option) error {
		return errors.New("failed")
	})
	config := "# Test configuration\n\nmemory 256\n  testswitch\n"
	require.NoError(t, LoadConfig(strings.NewReader(config)))
	assert.Equal(t, []string{"memory 256"}, seen)
	assert.Equal(t, "switch", testType)

	err := LoadConfig(strings.NewReader("memory 64\nbogus\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line: 2")

	require.Error(t, LoadConfig(strings.NewReader("fail\n")))
	require.Error(t, LoadConfigFile("/nonexistent/dps8.cfg"))
}
