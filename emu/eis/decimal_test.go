/*
 * DPS8 - Decimal conversion tests
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
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digitsOf(s string) []uint8 {
	d := make([]uint8, len(s))
	for i := range len(s) {
		d[i] = s[i] - '0'
	}
	return d
}

func TestNumericLayout(t *testing.T) {
	l, ok := NumericLayout(6, CSFL, CTN9)
	require.True(t, ok)
	assert.Equal(t, Layout{Digits: 4, First: 1, Sign: 0, Exp: 5, ExpChars: 1}, l)
	l, ok = NumericLayout(6, CSFL, CTN4)
	require.True(t, ok)
	assert.Equal(t, Layout{Digits: 3, First: 1, Sign: 0, Exp: 4, ExpChars: 2}, l)
	l, ok = NumericLayout(4, CSTS, CTN9)
	require.True(t, ok)
	assert.Equal(t, Layout{Digits: 3, First: 0, Sign: 3, Exp: -1}, l)
	_, ok = NumericLayout(1, CSLS, CTN9)
	assert.False(t, ok)
	_, ok = NumericLayout(2, CSFL, CTN9)
	assert.False(t, ok)
}

// Digit strings convert to a value and back for all lengths and scales.
func TestDecimalRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 1; n <= 18; n++ {
		for sf := -8; sf <= 8; sf++ {
			digits := make([]uint8, n)
			for i := range digits {
				digits[i] = uint8(r.Intn(10))
			}
			neg := r.Intn(2) == 1
			v := BCDToDecimal(digits, neg, int32(sf))
			f := FormatDecimal(v, n, CSLS, sf, false)
			require.Equal(t, digits, f.Digits, "n %d sf %d", n, sf)
			require.False(t, f.Overflow)
			require.False(t, f.Truncated)
			if !f.Zero {
				require.Equal(t, neg, f.Negative)
			}
		}
	}
}

func TestBCDToDecimal(t *testing.T) {
	v := BCDToDecimal(digitsOf("000123"), true, -2)
	assert.True(t, v.Equal(decimal.RequireFromString("-1.23")), v.String())
	assert.Panics(t, func() { BCDToDecimal([]uint8{1, 10}, false, 0) })
}

func TestRescale(t *testing.T) {
	type TC struct {
		In    string
		Exp   int32
		Round bool
		Want  string
		Lost  bool
	}

	tcs := []TC{
		{"1.25", -1, true, "1.3", true},
		{"-1.25", -1, true, "-1.3", true},
		{"1.24", -1, true, "1.2", true},
		{"1.25", -1, false, "1.2", true},
		{"-1.29", -1, false, "-1.2", true},
		{"12", -2, false, "12.00", false},
		{"1200", 2, false, "1200", false},
	}

	for _, tc := range tcs {
		got, lost := rescale(decimal.RequireFromString(tc.In), tc.Exp, tc.Round)
		if !got.Equal(decimal.RequireFromString(tc.Want)) || got.Exponent() != tc.Exp || lost != tc.Lost {
			t.Errorf("rescale %s %d got: %s %v wanted: %s %v", tc.In, tc.Exp, got, lost, tc.Want, tc.Lost)
		}
	}
}

func TestFormatFixed(t *testing.T) {
	f := FormatDecimal(decimal.RequireFromString("12345"), 3, CSLS, 0, false)
	assert.True(t, f.Overflow)
	assert.Equal(t, "+345", f.String())

	f = FormatDecimal(decimal.RequireFromString("-0.00"), 3, CSLS, 0, false)
	assert.True(t, f.Zero)
	assert.False(t, f.Negative)

	f = FormatDecimal(decimal.RequireFromString("-1.235"), 4, CSTS, -2, false)
	assert.True(t, f.Truncated)
	assert.Equal(t, "-0123", f.String())

	f = FormatDecimal(decimal.RequireFromString("-1.235"), 4, CSTS, -2, true)
	assert.False(t, f.Truncated)
	assert.Equal(t, "-0124", f.String())
}

func TestFormatFloat(t *testing.T) {
	f := FormatDecimal(decimal.RequireFromString("12345"), 3, CSFL, 0, false)
	assert.Equal(t, "+123", f.String())
	assert.Equal(t, 2, f.Exponent)
	assert.True(t, f.Truncated)

	f = FormatDecimal(decimal.RequireFromString("12355"), 3, CSFL, 0, true)
	assert.Equal(t, "+124", f.String())
	assert.False(t, f.Truncated)

	// Rounding carries into a new digit.
	f = FormatDecimal(decimal.RequireFromString("999.6"), 3, CSFL, 0, true)
	assert.Equal(t, "+100", f.String())
	assert.Equal(t, 1, f.Exponent)

	f = FormatDecimal(decimal.Zero, 4, CSFL, 0, false)
	assert.True(t, f.Zero)
	assert.Equal(t, zeroExponent, f.Exponent)

	// Large exponents are brought in range by shifting left.
	f = FormatDecimal(decimal.New(1, 130), 5, CSFL, 0, false)
	assert.False(t, f.ExpOverflow)
	assert.Equal(t, 127, f.Exponent)
	assert.Equal(t, "+01000", f.String())

	f = FormatDecimal(decimal.New(1, 200), 3, CSFL, 0, false)
	assert.True(t, f.ExpOverflow)

	f = FormatDecimal(decimal.New(1, -130), 3, CSFL, 0, false)
	assert.True(t, f.ExpUnderflow)
}

// A divisor mantissa larger than the dividend gives a leading zero.
func TestQuotientFloat(t *testing.T) {
	q, lost := Quotient(decimal.New(1234, 1), decimal.New(58, 0), 6, CSFL, 0, false)
	assert.True(t, lost)
	f := FormatDecimal(q, 6, CSFL, 0, false)
	assert.Equal(t, "+021275", f.String())
	assert.Equal(t, -2, f.Exponent)

	q, _ = Quotient(decimal.New(58, 0), decimal.New(2, 0), 4, CSFL, 0, false)
	f = FormatDecimal(q, 4, CSFL, 0, false)
	assert.Equal(t, "+2900", f.String())
	assert.Equal(t, -2, f.Exponent)

	q, lost = Quotient(decimal.Zero, decimal.New(3, 0), 4, CSFL, 0, false)
	assert.True(t, q.IsZero())
	assert.False(t, lost)
}

func TestQuotientFixed(t *testing.T) {
	q, lost := Quotient(decimal.New(10, 0), decimal.New(3, 0), 4, CSLS, -2, false)
	assert.True(t, lost)
	assert.True(t, q.Equal(decimal.RequireFromString("3.33")), q.String())

	q, _ = Quotient(decimal.New(2, 0), decimal.New(3, 0), 4, CSLS, -2, true)
	assert.True(t, q.Equal(decimal.RequireFromString("0.67")), q.String())

	assert.Panics(t, func() { Quotient(decimal.New(1, 0), decimal.Zero, 4, CSLS, 0, false) })
}
