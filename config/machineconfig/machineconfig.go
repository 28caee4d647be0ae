/*
 * DPS8 - Machine configuration directives
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

package machineconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	config "github.com/rcornwell/DPS8/config/configparser"
	"github.com/rcornwell/DPS8/emu/cpu"
	"github.com/rcornwell/DPS8/emu/eis"
	"github.com/rcornwell/DPS8/emu/memory"
)

/*
   Directives:

     MEMORY <k>                     Memory size in K words, decimal.
     DEBUG EIS <opt>,<opt> <opt>    Enable EIS debug options.
     NODEBUG                        Clear all EIS debug options.
     CPU <reg>=<octal> ...          Set registers, MODE=append|absolute,
                                    SEGMENT=<octal> procedure segment.
     PR <n> SEG= RING= WORD= CHAR= BIT=
                                    Set pointer register n.
*/

// register directives on initialize.
func init() {
	config.RegisterOption("MEMORY", setMemory)
	config.RegisterModel("DEBUG", config.TypeOptions, setDebug)
	config.RegisterSwitch("NODEBUG", clearDebug)
	config.RegisterList("CPU", setCPU)
	config.RegisterModel("PR", config.TypeModel, setPR)
}

// Set memory size.
func setMemory(_ uint32, value string, _ []config.Option) error {
	k, err := strconv.Atoi(value)
	if err != nil {
		return errors.New("memory size must be a number: " + value)
	}
	if k <= 0 || k > memory.MaxK {
		return fmt.Errorf("memory size %d out of range 1-%d", k, memory.MaxK)
	}
	memory.SetSize(k)
	return nil
}

// Enable debug options.
func setDebug(_ uint32, device string, options []config.Option) error {
	var fn func(string) error
	switch strings.ToUpper(device) {
	case "EIS":
		fn = eis.Debug
	default:
		return errors.New("debug option invalid: " + device)
	}
	for _, opt := range options {
		if err := fn(strings.ToUpper(opt.Name)); err != nil {
			return err
		}
		for _, value := range opt.Value {
			if err := fn(strings.ToUpper(*value)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Turn off debugging.
func clearDebug(_ uint32, _ string, _ []config.Option) error {
	eis.DebugClear()
	return nil
}

// Set CPU registers and mode.
func setCPU(_ uint32, _ string, options []config.Option) error {
	for _, opt := range options {
		name := strings.ToUpper(opt.Name)
		if opt.EqualOpt == "" {
			return errors.New("cpu option requires value: " + name)
		}
		switch name {
		case "MODE":
			switch strings.ToUpper(opt.EqualOpt) {
			case "APPEND":
				cpu.SetAppend(true)
			case "ABSOLUTE":
				cpu.SetAppend(false)
			default:
				return errors.New("cpu mode invalid: " + opt.EqualOpt)
			}
		case "SEGMENT":
			v, err := strconv.ParseUint(opt.EqualOpt, 8, 15)
			if err != nil {
				return errors.New("segment must be octal: " + opt.EqualOpt)
			}
			cpu.SetProcedureSegment(eis.Segment{Number: uint16(v)})
		default:
			v, err := strconv.ParseUint(opt.EqualOpt, 8, 36)
			if err != nil {
				return fmt.Errorf("register %s value must be octal: %s", name, opt.EqualOpt)
			}
			if err := cpu.SetReg(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Set a pointer register.
func setPR(n uint32, _ string, options []config.Option) error {
	if n > 7 {
		return fmt.Errorf("pointer register %o out of range", n)
	}
	pr := cpu.GetPR(int(n))
	for _, opt := range options {
		name := strings.ToUpper(opt.Name)
		v, err := strconv.ParseUint(opt.EqualOpt, 8, 18)
		if err != nil {
			return fmt.Errorf("pointer register %s value must be octal: %s", name, opt.EqualOpt)
		}
		switch name {
		case "SEG":
			pr.Segment.Number = uint16(v)
		case "RING":
			pr.Segment.Ring = uint8(v)
		case "WORD":
			pr.WordNo = uint32(v)
		case "CHAR":
			pr.Char = uint8(v)
		case "BIT":
			pr.Bit = uint8(v)
		default:
			return errors.New("pointer register option invalid: " + name)
		}
	}
	return cpu.SetPR(int(n), pr)
}
