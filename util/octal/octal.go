/*
 * DPS8 - Octal formatting of words and characters
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

package octal

import "strings"

const octMap = "01234567"

// FormatWord appends 36 bit words as 12 octal digits each.
func FormatWord(str *strings.Builder, word []uint64) {
	for _, full := range word {
		shift := 33
		for range 12 {
			str.WriteByte(octMap[(full>>shift)&07])
			shift -= 3
		}
		str.WriteByte(' ')
	}
}

// FormatHalf appends an 18 bit value as 6 octal digits.
func FormatHalf(str *strings.Builder, half uint32) {
	shift := 15
	for range 6 {
		str.WriteByte(octMap[(half>>shift)&07])
		shift -= 3
	}
}

// FormatChar appends a 9 bit character as 3 octal digits.
func FormatChar(str *strings.Builder, c uint16) {
	str.WriteByte(octMap[(c>>6)&07])
	str.WriteByte(octMap[(c>>3)&07])
	str.WriteByte(octMap[c&07])
}

// FormatText appends the four 9 bit characters of each word as ASCII,
// characters that do not print are shown as '.'.
func FormatText(str *strings.Builder, word []uint64) {
	for _, full := range word {
		for shift := 27; shift >= 0; shift -= 9 {
			c := (full >> shift) & 0777
			if c < 040 || c > 0176 {
				c = '.'
			}
			str.WriteByte(byte(c))
		}
	}
}

// FormatNumber appends a small number in octal without leading zeros.
func FormatNumber(str *strings.Builder, num uint64) {
	if num >= 8 {
		FormatNumber(str, num>>3)
	}
	str.WriteByte(octMap[num&07])
}
