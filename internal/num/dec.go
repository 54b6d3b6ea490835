// Package num implements the arbitrary-precision decimal value type used by
// the decimal and integer datatypes, including the special values INF, -INF
// and NaN from the CSVW number value space.
package num

import (
	"math/big"
	"strconv"
	"strings"
)

// Class identifies the kind of a decimal value.
type Class uint8

const (
	// Finite is an ordinary decimal number.
	Finite Class = iota
	// Inf is positive infinity.
	Inf
	// NegInf is negative infinity.
	NegInf
	// NaN is not-a-number.
	NaN
)

// Dec is a decimal value. Finite values are represented as a sign, the
// decimal digits of the unscaled absolute value (leading zeros trimmed), and
// a scale counting fractional digits. The scale is preserved from the lexical
// form so that "3.50" formats back as "3.50".
type Dec struct {
	Class  Class
	Neg    bool
	Digits string
	Scale  int
}

// Infinity returns positive or negative infinity.
func Infinity(negative bool) Dec {
	if negative {
		return Dec{Class: NegInf}
	}
	return Dec{Class: Inf}
}

// NotANumber returns the NaN value.
func NotANumber() Dec {
	return Dec{Class: NaN}
}

// FromInt64 returns the decimal representation of v.
func FromInt64(v int64) Dec {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	return Dec{Neg: neg, Digits: strings.TrimPrefix(s, "-")}
}

// IsSpecial reports whether the value is INF, -INF or NaN.
func (d Dec) IsSpecial() bool {
	return d.Class != Finite
}

// String formats the value. Finite values keep their lexical scale; special
// values render as Infinity, -Infinity and NaN.
func (d Dec) String() string {
	switch d.Class {
	case Inf:
		return "Infinity"
	case NegInf:
		return "-Infinity"
	case NaN:
		return "NaN"
	}

	digits := d.Digits
	scale := d.Scale
	if scale < 0 {
		digits += strings.Repeat("0", -scale)
		scale = 0
	}

	var b strings.Builder
	if d.Neg {
		b.WriteByte('-')
	}
	if len(digits) > scale {
		b.WriteString(digits[:len(digits)-scale])
	} else {
		b.WriteByte('0')
	}
	if scale > 0 {
		frac := digits
		if len(digits) > scale {
			frac = digits[len(digits)-scale:]
		} else {
			frac = strings.Repeat("0", scale-len(digits)) + digits
		}
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// StringWith formats the value substituting the group and decimal characters.
// An empty groupChar disables grouping; an empty decimalChar keeps ".".
func (d Dec) StringWith(groupChar, decimalChar string) string {
	if d.IsSpecial() {
		return d.String()
	}

	s := d.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	if groupChar != "" {
		intPart = group(intPart, groupChar)
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if hasFrac {
		if decimalChar != "" {
			b.WriteString(decimalChar)
		} else {
			b.WriteByte('.')
		}
		b.WriteString(fracPart)
	}
	return b.String()
}

// group inserts sep between every group of three digits, counting from the
// right.
func group(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Cmp compares two decimal values. The second return value is false when the
// comparison is undefined because either operand is NaN.
func (a Dec) Cmp(b Dec) (int, bool) {
	if a.Class == NaN || b.Class == NaN {
		return 0, false
	}
	rank := func(d Dec) int {
		switch d.Class {
		case NegInf:
			return -1
		case Inf:
			return 1
		}
		return 0
	}
	ra, rb := rank(a), rank(b)
	if ra != 0 || rb != 0 {
		switch {
		case ra < rb:
			return -1, true
		case ra > rb:
			return 1, true
		default:
			return 0, true
		}
	}

	ia := a.scaledInt(maxScale(a, b))
	ib := b.scaledInt(maxScale(a, b))
	return ia.Cmp(ib), true
}

func maxScale(a, b Dec) int {
	scale := a.Scale
	if b.Scale > scale {
		scale = b.Scale
	}
	if scale < 0 {
		scale = 0
	}
	return scale
}

// scaledInt returns the signed unscaled value brought to the given scale.
func (d Dec) scaledInt(scale int) *big.Int {
	v := new(big.Int)
	if d.Digits != "" {
		v.SetString(d.Digits, 10)
	}
	shift := scale - d.Scale
	if shift > 0 {
		v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(shift)), nil))
	}
	if d.Neg {
		v.Neg(v)
	}
	return v
}

// IsZero reports whether a finite value equals zero.
func (d Dec) IsZero() bool {
	return d.Class == Finite && allZeros(d.Digits)
}

// Int64 truncates the value toward zero and returns it as an int64.
func (d Dec) Int64() (int64, bool) {
	if d.IsSpecial() {
		return 0, false
	}
	digits := d.Digits
	scale := d.Scale
	if scale < 0 {
		digits += strings.Repeat("0", -scale)
		scale = 0
	}
	if len(digits) <= scale {
		return 0, true
	}
	intDigits := digits[:len(digits)-scale]
	v, ok := new(big.Int).SetString(intDigits, 10)
	if !ok {
		return 0, false
	}
	if d.Neg {
		v.Neg(v)
	}
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}
