/*
 * DPS8 - EIS operand address and word cache
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
	"github.com/rcornwell/DPS8/emu/word"
)

// OperandAddress is the resolved location of one operand along with a
// single word cache. At most one dirty word is held at a time.
type OperandAddress struct {
	proc    Processor
	Address uint32  // Current word address
	Char    int     // Character position in word
	Bit     int     // Bit position in character
	Segment Segment // Segment and ring when reached through a pointer register
	ViaPR   bool    // Use segment context for memory references
	Kind    AccessKind

	cacheValid bool
	cacheDirty bool
	cachedAddr uint32
	cachedWord uint64
	cachedSeg  Segment // Segment context the cached word came from
	cachedPR   bool
}

// Reset clears the cache and the pointer register context.
func (a *OperandAddress) Reset(p Processor) {
	a.proc = p
	a.Address = 0
	a.Char = 0
	a.Bit = 0
	a.Segment = Segment{}
	a.ViaPR = false
	a.Kind = OperandRead
	a.cacheValid = false
	a.cacheDirty = false
	a.cachedAddr = 0
	a.cachedWord = 0
	a.cachedSeg = Segment{}
	a.cachedPR = false
}

// Load word from memory, switching segment context if needed.
func (a *OperandAddress) memRead(addr uint32) (uint64, error) {
	if !a.ViaPR {
		return a.proc.ReadWord(addr, a.Kind, false)
	}
	save := a.proc.TargetSegment()
	a.proc.SetTargetSegment(a.Segment)
	data, err := a.proc.ReadWord(addr, a.Kind, true)
	a.proc.SetTargetSegment(save)
	return data, err
}

// Store word to memory in the context it was cached under.
func (a *OperandAddress) memWrite(addr uint32, data uint64, viaPR bool, seg Segment) error {
	if !viaPR {
		return a.proc.WriteWord(addr, data, OperandStore, false)
	}
	save := a.proc.TargetSegment()
	a.proc.SetTargetSegment(seg)
	err := a.proc.WriteWord(addr, data, OperandStore, true)
	a.proc.SetTargetSegment(save)
	return err
}

// Cache hit when address and segment context both match.
func (a *OperandAddress) hit(addr uint32) bool {
	if !a.cacheValid || a.cachedAddr != addr || a.cachedPR != a.ViaPR {
		return false
	}
	return !a.ViaPR || a.cachedSeg == a.Segment
}

// Flush writes back the cached word if it is dirty.
func (a *OperandAddress) Flush() error {
	if !a.cacheValid || !a.cacheDirty {
		return nil
	}
	tracef(debugCache, "flush %06o %012o", a.cachedAddr, a.cachedWord)
	if err := a.memWrite(a.cachedAddr, a.cachedWord, a.cachedPR, a.cachedSeg); err != nil {
		return err
	}
	a.cacheDirty = false
	return nil
}

// Invalidate writes back any dirty word and drops the cache.
func (a *OperandAddress) Invalidate() error {
	err := a.Flush()
	a.cacheValid = false
	a.cacheDirty = false
	return err
}

// SetContext switches the segment context, dropping a cached word taken
// under a different one.
func (a *OperandAddress) SetContext(viaPR bool, seg Segment) error {
	if a.ViaPR == viaPR && (!viaPR || a.Segment == seg) {
		return nil
	}
	err := a.Invalidate()
	a.ViaPR = viaPR
	a.Segment = seg
	return err
}

// Fetch word at addr through the cache.
func (a *OperandAddress) load(addr uint32) (uint64, error) {
	if a.hit(addr) {
		return a.cachedWord, nil
	}
	if a.cacheValid && a.cacheDirty {
		if err := a.Flush(); err != nil {
			return 0, err
		}
	}
	a.cacheDirty = false
	data, err := a.memRead(addr)
	if err != nil {
		a.cacheValid = false
		return 0, err
	}
	tracef(debugCache, "load %06o %012o", addr, data)
	a.cacheValid = true
	a.cachedAddr = addr
	a.cachedWord = data
	a.cachedSeg = a.Segment
	a.cachedPR = a.ViaPR
	return data, nil
}

// Read returns the word at the current address.
func (a *OperandAddress) Read() (uint64, error) {
	return a.load(a.Address)
}

// ReadIndexed returns the word n words past the current address.
func (a *OperandAddress) ReadIndexed(n uint32) (uint64, error) {
	return a.load((a.Address + n) & word.AMASK)
}

// WriteIndexed stores a word n words past the current address. The word is
// written through to memory before returning.
func (a *OperandAddress) WriteIndexed(n uint32, data uint64) error {
	addr := (a.Address + n) & word.AMASK
	if a.cacheValid && a.cacheDirty && !a.hit(addr) {
		if err := a.Flush(); err != nil {
			return err
		}
	}
	a.cacheValid = true
	a.cacheDirty = true
	a.cachedAddr = addr
	a.cachedWord = data & word.DMASK
	a.cachedSeg = a.Segment
	a.cachedPR = a.ViaPR
	return a.Flush()
}

// ReadSequential reads n words starting at the current address. The
// address is restored afterwards.
func (a *OperandAddress) ReadSequential(n int) ([]uint64, error) {
	save := a.Address
	defer func() { a.Address = save }()
	data := make([]uint64, 0, n)
	for range n {
		w, err := a.Read()
		if err != nil {
			return data, err
		}
		data = append(data, w)
		a.Address = (a.Address + 1) & word.AMASK
	}
	return data, nil
}
