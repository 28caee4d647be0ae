/*
 * DPS8 - Simulator core
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

package core

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	cpu "github.com/rcornwell/DPS8/emu/cpu"
	"github.com/rcornwell/DPS8/emu/master"
)

type Core struct {
	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown simulator.
	running bool          // Indicate when simulator should run or not.
	Master  chan master.Packet
}

// Create instance of CPU.
func NewCPU(master chan master.Packet) *Core {
	return &Core{
		Master: master,
		done:   make(chan struct{}),
	}
}

// Start CPU goroutine. The wait group is counted before the goroutine
// runs so Stop always waits for it.
func (core *Core) Start() {
	core.wg.Add(1)
	go core.run()
}

// Main loop of CPU.
func (core *Core) run() {
	defer core.wg.Done()
	for {
		if core.running {
			_, core.running = cpu.CycleCPU()
			if !core.running {
				core.logStop()
			}
		}
		select {
		case <-core.done:
			return
		case packet := <-core.Master:
			core.processPacket(packet)
		default:
			if !core.running {
				// Nothing to do, wait for next request.
				select {
				case <-core.done:
					return
				case packet := <-core.Master:
					core.processPacket(packet)
				}
			}
		}
	}
}

// Stop a running server.
func (core *Core) Stop() {
	slog.Info("Shutting down CPU")
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for CPU to finish.")
		return
	}
}

// Start CPU at address.
func (core *Core) SendStart(addr uint32) {
	core.Master <- master.Packet{Msg: master.Start, Addr: addr}
}

// Continue CPU.
func (core *Core) SendContinue() {
	core.Master <- master.Packet{Msg: master.Continue}
}

// Stop CPU.
func (core *Core) SendStop() {
	core.Master <- master.Packet{Msg: master.Stop}
}

// Step CPU count instructions and wait for result.
func (core *Core) SendStep(count int) master.Result {
	reply := make(chan master.Result, 1)
	core.Master <- master.Packet{Msg: master.Step, Count: count, Reply: reply}
	return <-reply
}

// Return state of CPU.
func (core *Core) SendStatus() master.Result {
	reply := make(chan master.Result, 1)
	core.Master <- master.Packet{Msg: master.Status, Reply: reply}
	return <-reply
}

// Process a packet sent to system simulation.
func (core *Core) processPacket(packet master.Packet) {
	steps := 0
	switch packet.Msg {
	case master.Start:
		cpu.Start(packet.Addr)
		core.running = true
	case master.Continue:
		cpu.Resume()
		core.running = true
	case master.Stop:
		core.running = false
	case master.Step:
		core.running = false
		cpu.Resume()
		for steps < packet.Count {
			steps++
			if _, ok := cpu.CycleCPU(); !ok {
				core.logStop()
				break
			}
		}
	}
	if packet.Reply != nil {
		result := master.Result{IC: cpu.GetIC(), Running: core.running, Halted: cpu.Halted(), Steps: steps}
		if f, _ := cpu.LastFault(); f != nil {
			result.Err = f
		}
		packet.Reply <- result
	}
}

// Report why CPU stopped.
func (core *Core) logStop() {
	if f, ic := cpu.LastFault(); f != nil {
		slog.Warn("CPU stopped on fault at " + strconv.FormatUint(uint64(ic), 8) + ": " + f.Error())
		return
	}
	slog.Info("CPU halted at " + strconv.FormatUint(uint64(cpu.GetIC()), 8))
}
