package memory

/*
 * DPS8 - Low level memory
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

// Memory is an array of 36 bit words held in the low bits of a uint64.
type mem struct {
	mem  []uint64
	size uint32
}

var memory mem

const (
	MaxK  int    = 16 * 1024     // Largest memory in K words
	DMASK uint64 = 0777777777777 // Mask data bits
)

// Set size in K words.
func SetSize(k int) {
	if k > MaxK {
		k = MaxK
	}
	if k < 0 {
		k = 0
	}
	size := uint32(k * 1024)
	n := make([]uint64, size)
	copy(n, memory.mem)
	memory.mem = n
	memory.size = size
}

// Return size of memory in words.
func GetSize() uint32 {
	return memory.size
}

// Check if address out of range.
func CheckAddr(addr uint32) bool {
	return addr < memory.size
}

// Get memory value without range check.
func GetMemory(addr uint32) uint64 {
	return memory.mem[addr]
}

// Set memory to a value, without range check.
func SetMemory(addr uint32, data uint64) {
	memory.mem[addr] = data & DMASK
}

// Get a word from memory.
func GetWord(addr uint32) (value uint64, error bool) {
	if addr >= memory.size {
		return 0, true
	}
	return memory.mem[addr], false
}

// Put a word to memory.
func PutWord(addr uint32, data uint64) bool {
	if addr >= memory.size {
		return true
	}
	memory.mem[addr] = data & DMASK
	return false
}

// Put a word to memory, under mask.
func PutWordMask(addr uint32, data, mask uint64) bool {
	if addr >= memory.size {
		return true
	}
	memory.mem[addr] &= ^mask
	memory.mem[addr] |= data & mask & DMASK
	return false
}

// Clear all of memory.
func Clear() {
	clear(memory.mem)
}
