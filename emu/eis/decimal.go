/*
 * DPS8 - EIS decimal conversion
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
   Numeric operands are strings of 4 or 9 bit characters:

   CSFL:  sign, digits, exponent (one 9 bit or two 4 bit characters)
   CSLS:  sign, digits
   CSTS:  digits, sign
   CSNS:  digits

   Values are held as a coefficient and a power of ten exponent. Fixed
   point operands use the scale factor as the exponent.
*/

package eis

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Position of parts of a numeric field.
type Layout struct {
	Digits   int // Number of digits
	First    int // Index of first digit
	Sign     int // Index of sign, -1 if none
	Exp      int // Index of exponent, -1 if none
	ExpChars int // Characters in exponent
}

// NumericLayout returns the layout of a field of n characters, false if
// there is no room for a digit.
func NumericLayout(n uint32, s uint8, tn uint8) (Layout, bool) {
	l := Layout{Sign: -1, Exp: -1}
	switch s {
	case CSFL:
		l.ExpChars = 1
		if tn == CTN4 {
			l.ExpChars = 2
		}
		l.Digits = int(n) - 1 - l.ExpChars
		l.Sign = 0
		l.First = 1
		l.Exp = int(n) - l.ExpChars
	case CSLS:
		l.Digits = int(n) - 1
		l.Sign = 0
		l.First = 1
	case CSTS:
		l.Digits = int(n) - 1
		l.Sign = int(n) - 1
	case CSNS:
		l.Digits = int(n)
	}
	return l, l.Digits >= 1
}

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// Power of 10.
func pow10(n int32) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// BCDToDecimal converts a string of digits (0-9) to a value.
func BCDToDecimal(digits []uint8, negative bool, exponent int32) decimal.Decimal {
	c := new(big.Int)
	for _, d := range digits {
		if d > 9 {
			panic(fmt.Sprintf("eis: digit %d out of range", d))
		}
		c.Mul(c, bigTen)
		c.Add(c, big.NewInt(int64(d)))
	}
	if negative {
		c.Neg(c)
	}
	return decimal.NewFromBigInt(c, exponent)
}

// Digits of the coefficient of v.
func coefficientDigits(v decimal.Decimal) string {
	c := v.Coefficient()
	return c.Abs(c).String()
}

// Number of digits in the coefficient of v.
func digitCount(v decimal.Decimal) int {
	return len(coefficientDigits(v))
}

// rescale changes the exponent of v, dropping digits if needed. The second
// result is true if nonzero digits were dropped.
func rescale(v decimal.Decimal, exp int32, round bool) (decimal.Decimal, bool) {
	cur := v.Exponent()
	c := v.Coefficient()
	if cur >= exp {
		c.Mul(c, pow10(cur-exp))
		return decimal.NewFromBigInt(c, exp), false
	}
	div := pow10(exp - cur)
	q, r := new(big.Int).QuoRem(c, div, new(big.Int))
	lost := r.Sign() != 0
	if round {
		r.Abs(r)
		r.Lsh(r, 1)
		if r.Cmp(div) >= 0 {
			if c.Sign() < 0 {
				q.Sub(q, bigOne)
			} else {
				q.Add(q, bigOne)
			}
		}
	}
	return decimal.NewFromBigInt(q, exp), lost
}

// Reduce v to at most n digits.
func fitDigits(v decimal.Decimal, n int, round bool) (decimal.Decimal, bool) {
	d := digitCount(v)
	if d <= n {
		return v, false
	}
	exp := v.Exponent() + int32(d-n)
	r, lost := rescale(v, exp, round)
	if digitCount(r) > n {
		// Rounding carried into a new digit, the digit dropped is zero.
		r, _ = rescale(r, exp+1, false)
	}
	return r, lost
}

// Formatted is a value ready to be stored in a numeric field.
type Formatted struct {
	Digits       []uint8 // Digits, most significant first
	Exponent     int     // Exponent for floating fields
	Negative     bool    // Value is less than zero
	Zero         bool    // Value is zero
	Overflow     bool    // Digits were lost on the left
	Truncated    bool    // Digits were lost on the right without rounding
	ExpOverflow  bool    // Exponent too large
	ExpUnderflow bool    // Exponent too small
}

// Right justify digit string in n digits.
func justify(digits string, n int) []uint8 {
	out := make([]uint8, n)
	off := n - len(digits)
	for i := range len(digits) {
		out[off+i] = digits[i] - '0'
	}
	return out
}

// FormatDecimal converts v to n digits. Fixed point fields are scaled to
// sf, floating point fields carry their own exponent.
func FormatDecimal(v decimal.Decimal, n int, s uint8, sf int, round bool) Formatted {
	f := Formatted{Negative: v.Sign() < 0}
	if s == CSFL {
		r, lost := fitDigits(v, n, round)
		f.Truncated = lost && !round
		if r.IsZero() {
			f.Zero = true
			f.Negative = false
			f.Exponent = zeroExponent
			f.Digits = make([]uint8, n)
			return f
		}
		digits := coefficientDigits(r)
		exp := int(r.Exponent())
		for exp > 127 && len(digits) < n {
			digits += "0"
			exp--
		}
		f.ExpOverflow = exp > 127
		f.ExpUnderflow = exp < -128
		f.Exponent = exp
		f.Digits = justify(digits, n)
		return f
	}
	r, lost := rescale(v, int32(sf), round)
	f.Truncated = lost && !round
	f.Zero = r.IsZero()
	if f.Zero {
		f.Negative = false
	}
	digits := coefficientDigits(r)
	if len(digits) > n {
		f.Overflow = true
		digits = digits[len(digits)-n:]
	}
	f.Digits = justify(digits, n)
	return f
}

// String form of a formatted value, used in traces and tests.
func (f Formatted) String() string {
	var b strings.Builder
	if f.Negative {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	for _, d := range f.Digits {
		b.WriteByte('0' + d)
	}
	return b.String()
}

// Divisor mantissa greater than dividend mantissa, both left justified.
func mantissaLess(dividend, divisor decimal.Decimal) bool {
	a := coefficientDigits(dividend)
	b := coefficientDigits(divisor)
	for len(a) < len(b) {
		a += "0"
	}
	for len(b) < len(a) {
		b += "0"
	}
	return a < b
}

// Quotient divides dividend by divisor for a result field of n digits. The
// second result is true if nonzero digits were dropped. For floating
// results, when the divisor mantissa is larger than the dividend mantissa
// the quotient gets one less significant digit and a leading zero.
func Quotient(dividend, divisor decimal.Decimal, n int, s uint8, sf int, round bool) (decimal.Decimal, bool) {
	if divisor.IsZero() {
		panic("eis: quotient with zero divisor")
	}
	exp := int32(sf)
	if s == CSFL {
		if dividend.IsZero() {
			return dividend, false
		}
		lead := digitCount(dividend) - digitCount(divisor) + 1 +
			int(dividend.Exponent()-divisor.Exponent())
		nq := n
		if mantissaLess(dividend, divisor) {
			lead--
			nq--
		}
		exp = int32(lead - nq)
	}
	if round {
		q, _ := dividend.QuoRem(divisor, -exp+1)
		r, _ := rescale(q, exp, true)
		return r, false
	}
	q, r := dividend.QuoRem(divisor, -exp)
	return q, !r.IsZero()
}
