package num

import "strconv"

// ParseError represents a decimal parse failure.
type ParseError struct {
	Kind ParseErrKind
}

// Error returns the formatted error message.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return e.Kind.String()
}

// ParseErrKind identifies a parse failure category.
type ParseErrKind uint8

const (
	ParseInvalid ParseErrKind = iota
	ParseEmpty
	ParseBadChar
	ParseNoDigits
	ParseBadExponent
)

// String returns a stable label for the parse error kind.
func (k ParseErrKind) String() string {
	switch k {
	case ParseEmpty:
		return "empty"
	case ParseBadChar:
		return "bad character"
	case ParseNoDigits:
		return "no digits"
	case ParseBadExponent:
		return "bad exponent"
	default:
		return "invalid"
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

func allZeros(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}

// Parse parses a plain decimal lexical value: an optional sign, digits with
// an optional fractional part, and an optional exponent. Exponents are folded
// into the scale, so "1.5E2" parses as 150.
func Parse(s string) (Dec, error) {
	if s == "" {
		return Dec{}, &ParseError{Kind: ParseEmpty}
	}

	i := 0
	neg := false
	if s[i] == '+' || s[i] == '-' {
		neg = s[i] == '-'
		i++
	}

	var digits []byte
	for i < len(s) && isDigit(s[i]) {
		digits = append(digits, s[i])
		i++
	}

	scale := 0
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			digits = append(digits, s[i])
			scale++
			i++
		}
	}
	if len(digits) == 0 {
		return Dec{}, &ParseError{Kind: ParseNoDigits}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		exp, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Dec{}, &ParseError{Kind: ParseBadExponent}
		}
		scale -= exp
		i = len(s)
	}
	if i != len(s) {
		return Dec{}, &ParseError{Kind: ParseBadChar}
	}

	return Dec{Neg: neg, Digits: trimLeadingZeros(string(digits)), Scale: scale}, nil
}

// FromFloat64 converts a float to its shortest decimal representation.
func FromFloat64(f float64) (Dec, error) {
	return Parse(strconv.FormatFloat(f, 'f', -1, 64))
}
