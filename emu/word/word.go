/*
 * DPS8 - 36 bit word and packed character fields
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

/*
   Bits in a word are numbered 0 (most significant) to 35. Characters are
   numbered left to right inside a word.

      9 bit:  |   0    |   1    |   2    |   3    |
      6 bit:  |  0  |  1  |  2  |  3  |  4  |  5  |
      4 bit:  |s 0 1 |s 2 3 |s 4 5 |s 6 7 |

   4 bit characters are packed two to a 9 bit byte, the high order bit of each
   byte (s) is not used.
*/

package word

const (
	DMASK  uint64 = 0777777777777 // 36 bit word
	SIGN36 uint64 = 0400000000000 // Sign of 36 bit word
	MASK18 uint64 = 0777777       // 18 bit half word
	SIGN18 uint64 = 0400000       // Sign of 18 bit half word
	MASK15 uint64 = 077777        // 15 bit offset
	SIGN15 uint64 = 040000        // Sign of 15 bit offset
	MASK9  uint64 = 0777          // 9 bit character
	MASK6  uint64 = 077           // 6 bit character
	MASK4  uint64 = 017           // 4 bit character

	AMASK uint32 = 0777777 // 18 bit address
)

// Bit offset from the right of each 4 bit character.
var offset4 = [8]uint{31, 27, 22, 18, 13, 9, 4, 0}

// Extract n bits with the rightmost at bit offset counted from the right.
func Extract(w uint64, offset, n uint) uint64 {
	return (w >> offset) & ((1 << n) - 1)
}

// Insert n bits of v at bit offset counted from the right.
func Insert(w uint64, v uint64, offset, n uint) uint64 {
	mask := ((uint64(1) << n) - 1) << offset
	return ((w &^ mask) | ((v << offset) & mask)) & DMASK
}

// GetBits36 returns n bits starting at bit i, bit 0 is the sign bit.
func GetBits36(w uint64, i, n uint) uint64 {
	if i+n > 36 {
		panic("word: bit field outside of word")
	}
	return Extract(w, 36-i-n, n)
}

// SetBits36 replaces n bits starting at bit i.
func SetBits36(w uint64, i, n uint, v uint64) uint64 {
	if i+n > 36 {
		panic("word: bit field outside of word")
	}
	return Insert(w, v, 36-i-n, n)
}

// GetBit returns bit i of the word.
func GetBit(w uint64, i uint) bool {
	return GetBits36(w, i, 1) != 0
}

// SetBit sets or clears bit i of the word.
func SetBit(w uint64, i uint, b bool) uint64 {
	v := uint64(0)
	if b {
		v = 1
	}
	return SetBits36(w, i, 1, v)
}

// Upper half word.
func High(w uint64) uint64 {
	return (w >> 18) & MASK18
}

// Lower half word.
func Low(w uint64) uint64 {
	return w & MASK18
}

// Get4 returns 4 bit character pos (0-7).
func Get4(w uint64, pos int) uint16 {
	return uint16(Extract(w, offset4[pos], 4))
}

// Get6 returns 6 bit character pos (0-5).
func Get6(w uint64, pos int) uint16 {
	if pos < 0 || pos > 5 {
		panic("word: 6 bit character position out of range")
	}
	return uint16(Extract(w, uint(30-6*pos), 6))
}

// Get9 returns 9 bit character pos (0-3).
func Get9(w uint64, pos int) uint16 {
	if pos < 0 || pos > 3 {
		panic("word: 9 bit character position out of range")
	}
	return uint16(Extract(w, uint(27-9*pos), 9))
}

// Put4 stores 4 bit character pos.
func Put4(w uint64, pos int, c uint16) uint64 {
	return Insert(w, uint64(c), offset4[pos], 4)
}

// Put6 stores 6 bit character pos.
func Put6(w uint64, pos int, c uint16) uint64 {
	if pos < 0 || pos > 5 {
		panic("word: 6 bit character position out of range")
	}
	return Insert(w, uint64(c), uint(30-6*pos), 6)
}

// Put9 stores 9 bit character pos.
func Put9(w uint64, pos int, c uint16) uint64 {
	if pos < 0 || pos > 3 {
		panic("word: 9 bit character position out of range")
	}
	return Insert(w, uint64(c), uint(27-9*pos), 9)
}

// CharsPerWord returns the number of characters of width bits in a word.
func CharsPerWord(width int) int {
	switch width {
	case 4:
		return 8
	case 6:
		return 6
	case 9:
		return 4
	}
	panic("word: unsupported character width")
}

// GetField returns character index of the given width.
func GetField(w uint64, index int, width int) uint16 {
	switch width {
	case 4:
		return Get4(w, index)
	case 6:
		return Get6(w, index)
	case 9:
		return Get9(w, index)
	}
	panic("word: unsupported character width")
}

// PutField stores character index of the given width.
func PutField(w uint64, index int, width int, c uint16) uint64 {
	switch width {
	case 4:
		return Put4(w, index, c)
	case 6:
		return Put6(w, index, c)
	case 9:
		return Put9(w, index, c)
	}
	panic("word: unsupported character width")
}

// SignExtend treats the low bits of v as a two's complement number.
func SignExtend(v uint64, bits uint) int64 {
	v &= (uint64(1) << bits) - 1
	if v&(uint64(1)<<(bits-1)) != 0 {
		return int64(v) - int64(uint64(1)<<bits)
	}
	return int64(v)
}

// SignExt15 extends a 15 bit offset to an 18 bit address increment.
func SignExt15(v uint64) uint32 {
	v &= MASK15
	if v&SIGN15 != 0 {
		v |= 0700000
	}
	return uint32(v)
}
