/*
 * DPS8 - Main process.
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	reader "github.com/rcornwell/DPS8/command/reader"
	config "github.com/rcornwell/DPS8/config/configparser"
	core "github.com/rcornwell/DPS8/emu/core"
	"github.com/rcornwell/DPS8/emu/cpu"
	master "github.com/rcornwell/DPS8/emu/master"
	"github.com/rcornwell/DPS8/emu/memory"
	logger "github.com/rcornwell/DPS8/util/logger"

	_ "github.com/rcornwell/DPS8/config/machineconfig"
)

const defaultMemory = 256 // K words

func main() {
	optConfig := getopt.StringLong("config", 'c', "DPS8.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("Unable to create log file: " + err.Error())
			os.Exit(1)
		}
		defer file.Close()
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(Logger)

	Logger.Info("DPS8 Started")

	memory.SetSize(defaultMemory)
	cpu.InitializeCPU()

	_, err := os.Stat(*optConfig)
	switch {
	case os.IsNotExist(err):
		Logger.Warn("Configuration file " + *optConfig + " can't be found, using defaults")
	default:
		err = config.LoadConfigFile(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	masterChannel := make(chan master.Packet)

	// Create new routine to run CPU.
	sim := core.NewCPU(masterChannel)

	// Start main emulator.
	sim.Start()

	msg := make(chan string, 1)
	go func() {
		reader.ConsoleReader(sim)
		msg <- ""
	}()

	// Wait on shutdown option
	<-msg

	sim.Stop()
	Logger.Info("Simulator stopped.")
}
