/*
 * DPS8 - Configuration file parser
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Value passed to create routines when no address was given.
const NoAddr uint32 = 0xffffffff

// List of options to pass to create routine.
type Option struct {
	Name     string    // Name of option.
	EqualOpt string    // Value of string after =.
	Value    []*string // Value of option.
}

// Directive name.
type modelName struct {
	model string // value of model.
}

// Option after directive name.
type FirstOption struct {
	addr   uint32 // Value of option if octal.
	isAddr bool   // Valid address in addr.
	value  string // String value of option.
}

// Current option line being parsed.
type optionLine struct {
	line string // Current option line.
	pos  int    // Current position in line.
}

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <model> <whitespace> <first> <whitespace> <options> |
 *           <model> <whitespace> <options> |
 *           <model>
 * <first> ::= <octalnumber> | <word>
 * <options> ::= *(<option> *(<whitespace>))
 * <option> ::= <string> [<optvalue>] *(<commaopt>)
 * <commaopt> ::= ',' *(<whitespace>) <string>
 * <optvalue> ::= '=' <quoteopt>
 * <quoteopt> ::= <string> | '"' *(<letter> | <whitespace>) '"'
 * <word> ::= *(<letter> | <number> | '.' | '/' | '_' | '-')
 * <string> ::= *(<letter> | <number>)
 */

const (
	TypeModel   = 1 + iota // Requires an octal address.
	TypeOption             // Accepts a option parameter.
	TypeOptions            // Accepts a parameter and list of options.
	TypeSwitch             // Option only used to set a flag.
	TypeList               // Accepts only a list of options.
)

// Directive creation list.
type modelDef struct {
	create func(uint32, string, []Option) error
	ty     int
}

var models = map[string]modelDef{}

var lineNumber int

// Return type of model or 0 if no model.
func getModel(mod string) int {
	model, ok := models[mod]
	if !ok {
		return 0
	}
	return model.ty
}

func register(mod string, ty int, fn func(uint32, string, []Option) error) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering config: " + mod)
	models[mod] = modelDef{create: fn, ty: ty}
}

// Register should be called from init functions.
func RegisterModel(mod string, ty int, fn func(uint32, string, []Option) error) {
	register(mod, ty, fn)
}

// Register should be called from init functions.
func RegisterSwitch(mod string, fn func(uint32, string, []Option) error) {
	register(mod, TypeSwitch, fn)
}

// Register should be called from init functions.
func RegisterOption(mod string, fn func(uint32, string, []Option) error) {
	register(mod, TypeOption, fn)
}

// Register a directive that takes a file name.
func RegisterFile(mod string, fn func(uint32, string, []Option) error) {
	register(mod, TypeOption, fn)
}

// Register a directive that only takes options.
func RegisterList(mod string, fn func(uint32, string, []Option) error) {
	register(mod, TypeList, fn)
}

// Look up directive and check its type.
func lookup(mod string, ty int) (modelDef, error) {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return model, errors.New("unknown directive: " + mod)
	}
	if model.ty != ty {
		return model, fmt.Errorf("directive %s used with wrong arguments", mod)
	}
	return model, nil
}

// Create a directive that requires an address.
func createModel(mod string, first *FirstOption, options []Option) error {
	model, err := lookup(mod, TypeModel)
	if err != nil {
		return err
	}
	return model.create(first.addr, first.value, options)
}

// Create a option with one parameter.
func createOption(mod string, first *FirstOption) error {
	model, err := lookup(mod, TypeOption)
	if err != nil {
		return err
	}
	return model.create(first.addr, first.value, []Option{})
}

// Create a option with options.
func createOptions(mod string, first *FirstOption, options []Option) error {
	model, err := lookup(mod, TypeOptions)
	if err != nil {
		return err
	}
	return model.create(first.addr, first.value, options)
}

// Create switch option.
func createSwitch(mod string) error {
	model, err := lookup(mod, TypeSwitch)
	if err != nil {
		return err
	}
	return model.create(NoAddr, "", nil)
}

// Create list option.
func createList(mod string, options []Option) error {
	model, err := lookup(mod, TypeList)
	if err != nil {
		return err
	}
	return model.create(NoAddr, "", options)
}

// Load in a configuration file.
func LoadConfigFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file)
}

// Process configuration from reader.
func LoadConfig(in io.Reader) error {
	lineNumber = 0
	reader := bufio.NewReader(in)
	for {
		var err error

		line := optionLine{}
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		err = line.parseLine()
		if err != nil {
			return err
		}
	}
	return nil
}

// Process a single configuration line.
func ParseLine(text string) error {
	line := optionLine{line: text}
	return line.parseLine()
}

// Parse one line from file.
func (line *optionLine) parseLine() error {
	model := line.parseModel()
	if model == nil {
		return nil
	}
	switch getModel(model.model) {
	case TypeModel:
		first := line.parseFirst()
		if first == nil || !first.isAddr {
			return fmt.Errorf("%s requires an address, line: %d", model.model, lineNumber)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return createModel(model.model, first, options)

	case TypeOption:
		first := line.parseFirst()
		line.skipSpace()
		if !line.isEOL() || first == nil {
			return fmt.Errorf("option: %s not followed by value, line: %d", model.model, lineNumber)
		}
		return createOption(model.model, first)

	case TypeOptions:
		first := line.parseFirst()
		if first == nil {
			return fmt.Errorf("option: %s not followed by value, line: %d", model.model, lineNumber)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return createOptions(model.model, first, options)

	case TypeList:
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		if len(options) == 0 {
			return fmt.Errorf("option: %s requires options, line: %d", model.model, lineNumber)
		}
		return createList(model.model, options)

	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return fmt.Errorf("switch option: %s followed by options, line: %d", model.model, lineNumber)
		}
		return createSwitch(model.model)
	}
	return fmt.Errorf("no type: %s registered, line: %d", model.model, lineNumber)
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
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
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}

	if line.line[line.pos] == '#' {
		return true
	}
	return false
}

// Return next letter or digit in line. 0 if EOL or space.
func (line *optionLine) getNext(inQuote bool) byte {
	line.pos++
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) || inQuote {
		return by
	}
	return 0
}

// Peek at next character.
func (line *optionLine) getPeek() byte {
	if (line.pos + 1) >= len(line.line) {
		return 0
	}
	return line.line[line.pos+1]
}

// Parse model option.
func (line *optionLine) parseModel() *modelName {
	// Skip leading space
	line.skipSpace()
	// Check if end of line.
	if line.isEOL() {
		return nil
	}

	model := modelName{}

	// Get model name
	for {
		if line.isEOL() {
			break
		}
		by := line.line[line.pos]
		if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) {
			model.model += string([]byte{by})
			line.pos++
			continue
		}
		break
	}

	model.model = strings.ToUpper(model.model)
	return &model
}

// Parse first option parameter.
func (line *optionLine) parseFirst() *FirstOption {
	// Skip leading space
	line.skipSpace()
	// Check if end of line.
	if line.isEOL() {
		return nil
	}

	value := ""
	for {
		if line.isEOL() {
			break
		}
		by := line.line[line.pos]
		if isWordChar(by) {
			value += string([]byte{by})
			line.pos++
			continue
		}
		break
	}

	option := FirstOption{addr: NoAddr, value: value}

	addr, err := strconv.ParseUint(value, 8, 18)
	if err == nil {
		option.addr = uint32(addr)
		option.isAddr = true
	}
	return &option
}

// Characters allowed in first parameter, which may be a file name.
func isWordChar(by byte) bool {
	if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) {
		return true
	}
	return strings.IndexByte("./_-", by) >= 0
}

// Parse string that is "string" or just string.
func (line *optionLine) parseQuoteString() (string, bool) {
	inQuote := false
	value := ""

	// If quote, set we are in quoted string
	if line.getPeek() == '"' {
		inQuote = true
		_ = line.getNext(true)
	}

	for {
		by := line.getNext(inQuote)
		// If processing a quoted string "" gets replaced by signal quote
		if by == '"' && inQuote {
			by = line.getNext(inQuote)
			if by != '"' {
				// Hit end of string.
				return value, true
			}
		}

		space := unicode.IsSpace(rune(by))
		// Space or comma terminates a no quoted string.
		if !inQuote && (space || by == 0 || by == ',') {
			return value, true
		}

		value += string(by)
		// If we hit end of line, stop processing.
		if line.isEOL() {
			return value, !inQuote
		}
	}
}

// Parse option name.
func (line *optionLine) getName() (string, error) {
	// Check if end of line.
	if line.isEOL() {
		return "", nil
	}

	// First character must be alphabetic.
	by := line.line[line.pos]
	if !unicode.IsLetter(rune(by)) {
		if !line.isEOL() {
			return "", fmt.Errorf("invalid option encountered line: %d [%d]", lineNumber, line.pos)
		}
		return "", nil
	}
	value := ""

	// Already verified that first character is letter,
	// so grab until not letter or number.
	for {
		value += string([]byte{by})
		by = line.getNext(false)
		if by == 0 {
			break
		}
	}

	return value, nil
}

// Parse options for a line.
func (line *optionLine) parseOption() (*Option, error) {
	// Skip leading space
	line.skipSpace()

	// Grab option name
	value, err := line.getName()
	if value == "" {
		return nil, err
	}

	// Empty option.
	option := Option{Name: value}

	// If at end of line done.
	if line.isEOL() {
		return &option, nil
	}

	// Check if equals option.
	if line.line[line.pos] == '=' {
		v, ok := line.parseQuoteString()
		if ok {
			option.EqualOpt = v
		} else {
			return nil, fmt.Errorf("invalid quoted string line: %d [%d]", lineNumber, line.pos)
		}
	}

	// Skip any spaces.
	line.skipSpace()

	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++ // Skip comma
		// Skip space between , and next option
		line.skipSpace()
		v, err := line.getName()
		if err != nil {
			return nil, err
		}
		if v != "" {
			option.Value = append(option.Value, &v)
		}
		// Skip any trailing spaces.
		line.skipSpace()
	}

	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			break
		}
		options = append(options, *option)
	}
	return options, nil
}
