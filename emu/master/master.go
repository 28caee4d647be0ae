/*
 * DPS8 - Messages to simulator core
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

package master

// Message types.
const (
	Start    = 1 + iota // Start CPU at Addr
	Continue            // Continue after stop
	Stop                // Stop CPU
	Step                // Execute Count instructions
	Status              // Report state
)

// Packet sent to the simulator core.
type Packet struct {
	Msg   int         // Message type
	Addr  uint32      // Start address
	Count int         // Instructions to step
	Reply chan Result // Optional channel for result
}

// State of CPU returned to sender.
type Result struct {
	IC      uint32 // Instruction counter
	Running bool   // CPU is running
	Halted  bool   // CPU stopped on DIS or fault
	Steps   int    // Instructions executed by Step
	Err     error  // Fault taken, if any
}
