/*
 * DPS8 - Console commands
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

	command "github.com/rcornwell/DPS8/command/command"
	config "github.com/rcornwell/DPS8/config/configparser"
	_ "github.com/rcornwell/DPS8/config/machineconfig"
	core "github.com/rcornwell/DPS8/emu/core"
	"github.com/rcornwell/DPS8/emu/cpu"
	"github.com/rcornwell/DPS8/emu/eis"
	"github.com/rcornwell/DPS8/emu/memory"
	"github.com/rcornwell/DPS8/util/octal"
)

var cmdList = []cmd{
	{Name: "set", Min: 3, Process: set, Complete: setComplete},
	{Name: "show", Min: 2, Process: show, Complete: showComplete},
	{Name: "quit", Min: 4, Process: quit},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "continue", Min: 1, Process: cont},
	{Name: "start", Min: 3, Process: start},
	{Name: "step", Min: 3, Process: step},
	{Name: "reset", Min: 5, Process: reset},
	{Name: "examine", Min: 2, Process: examine},
	{Name: "deposit", Min: 2, Process: deposit},
	{Name: "disassemble", Min: 2, Process: disassemble},
}

var setOptions = []command.Options{
	{Name: "mode", OptionType: command.OptionList, OptionValid: command.ValidSet, OptionList: []string{"append", "absolute"}},
	{Name: "memory", OptionType: command.OptionNumber, OptionValid: command.ValidSet},
	{Name: "segment", OptionType: command.OptionOctal, OptionValid: command.ValidSet},
	{Name: "debug", OptionType: command.OptionName, OptionValid: command.ValidSet},
	{Name: "nodebug", OptionType: command.OptionSwitch, OptionValid: command.ValidSet},
	{Name: "debugfile", OptionType: command.OptionFile, OptionValid: command.ValidSet},
	{Name: "registers", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
	{Name: "fault", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
	{Name: "memory", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
	{Name: "pointers", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
}

// Handle set commands.
func set(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Set")

	optlist, err := line.getOptions(setOptions, command.ValidSet)
	if err != nil {
		return false, err
	}
	if len(optlist) == 0 {
		return false, errors.New("no options give to set command")
	}
	for _, opt := range optlist {
		switch opt.Name {
		case "mode":
			cpu.SetAppend(opt.EqualOpt == "append")
		case "memory":
			err = config.ParseLine(fmt.Sprintf("MEMORY %d", opt.Value))
		case "segment":
			if opt.Value > 077777 {
				return false, fmt.Errorf("segment %o out of range", opt.Value)
			}
			cpu.SetProcedureSegment(eis.Segment{Number: uint16(opt.Value)})
		case "debug":
			err = eis.Debug(strings.ToUpper(opt.EqualOpt))
		case "nodebug":
			eis.DebugClear()
		case "debugfile":
			err = config.ParseLine("DEBUGFILE " + opt.EqualOpt)
		}
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

// Set command completion.
func setComplete(line *cmdLine) []string {
	return line.scanOpts(setOptions, command.ValidSet)
}

// Process the show command.
func show(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Show")
	optlist, err := line.getOptions(setOptions, command.ValidShow)
	if err != nil {
		return false, err
	}
	if len(optlist) == 0 {
		optlist = append(optlist, &command.CmdOption{Name: "registers"})
	}

	var str strings.Builder
	for _, opt := range optlist {
		switch opt.Name {
		case "registers":
			str.WriteString(cpu.Registers())
		case "pointers":
			for n := range 8 {
				pr := cpu.GetPR(n)
				fmt.Fprintf(&str, "PR%d: %05o|%06o(%d) ring %d bit %d\n", n, pr.Segment.Number,
					pr.WordNo, pr.Char, pr.Segment.Ring, pr.Bit)
			}
		case "memory":
			fmt.Fprintf(&str, "Memory: %dK words\n", memory.GetSize()/1024)
		case "fault":
			f, ic := cpu.LastFault()
			if f == nil {
				str.WriteString("No fault\n")
			} else {
				str.WriteString("Fault at ")
				octal.FormatHalf(&str, ic)
				str.WriteString(": " + f.Error() + "\n")
			}
			fmt.Fprintf(&str, "IPR: %d OFL: %d DIV: %d STR: %d\n", cpu.FaultCount(eis.FaultIPR),
				cpu.FaultCount(eis.FaultOFL), cpu.FaultCount(eis.FaultDIV), cpu.FaultCount(eis.FaultSTR))
		}
	}
	fmt.Fprint(output, str.String())
	return false, nil
}

// Show command completion.
func showComplete(line *cmdLine) []string {
	return line.scanOpts(setOptions, command.ValidShow)
}

// Handle commands that quit simulation.
func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}

// Stop the CPU.
func stop(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Stop")
	core.SendStop()
	return false, nil
}

// Continue CPU from where it left off.
func cont(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Continue")
	core.SendContinue()
	return false, nil
}

// Start the CPU, at current IC or address given.
func start(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Start")
	addr := cpu.GetIC()
	if !line.isEOL() {
		var err error
		addr, err = line.getAddress()
		if err != nil {
			return false, err
		}
	}
	core.SendStart(addr)
	return false, nil
}

// Execute instructions and show where CPU stopped.
func step(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Step")
	count := uint64(1)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		count, err = line.getNumber()
		if err != nil {
			return false, err
		}
	}
	result := core.SendStep(int(count))
	var str strings.Builder
	fmt.Fprintf(&str, "Steps: %d IC: ", result.Steps)
	octal.FormatHalf(&str, result.IC)
	str.WriteByte('\n')
	if result.Err != nil {
		str.WriteString(result.Err.Error() + "\n")
	} else if result.Halted {
		str.WriteString("Halted\n")
	}
	if text, _ := disassembleAt(result.IC); text != "" {
		str.WriteString(text)
	}
	fmt.Fprint(output, str.String())
	return false, nil
}

// Stop CPU and return it to initial state.
func reset(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Reset")
	core.SendStop()
	cpu.InitializeCPU()
	return false, nil
}
