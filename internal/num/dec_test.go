package num

import (
	"math"
	"testing"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "integer", in: "5", want: "5"},
		{name: "negative", in: "-12", want: "-12"},
		{name: "explicit plus", in: "+7", want: "7"},
		{name: "fraction", in: "3.50", want: "3.50"},
		{name: "leading zeros", in: "007", want: "7"},
		{name: "small fraction", in: "0.05", want: "0.05"},
		{name: "bare fraction", in: ".5", want: "0.5"},
		{name: "trailing dot", in: "5.", want: "5"},
		{name: "exponent", in: "1.5E2", want: "150"},
		{name: "negative exponent", in: "15e-1", want: "1.5"},
		{name: "zero", in: "0", want: "0"},
	}

	for _, tc := range tests {
		d, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("%s: Parse(%q): %v", tc.name, tc.in, err)
		}
		if got := d.String(); got != tc.want {
			t.Fatalf("%s: Parse(%q).String() = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "sign only", in: "-"},
		{name: "dot only", in: "."},
		{name: "letters", in: "abc"},
		{name: "trailing junk", in: "5x"},
		{name: "two dots", in: "1.2.3"},
		{name: "bad exponent", in: "1e"},
	}

	for _, tc := range tests {
		if _, err := Parse(tc.in); err == nil {
			t.Fatalf("%s: Parse(%q) succeeded, want error", tc.name, tc.in)
		}
	}
}

func TestSpecials(t *testing.T) {
	if got := Infinity(false).String(); got != "Infinity" {
		t.Fatalf("Infinity(false) = %q", got)
	}
	if got := Infinity(true).String(); got != "-Infinity" {
		t.Fatalf("Infinity(true) = %q", got)
	}
	if got := NotANumber().String(); got != "NaN" {
		t.Fatalf("NotANumber() = %q", got)
	}
	if !Infinity(false).IsSpecial() || NotANumber().Class != NaN {
		t.Fatal("special classification broken")
	}
}

func TestCmp(t *testing.T) {
	mustParse := func(s string) Dec {
		d, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		return d
	}

	tests := []struct {
		name string
		a, b Dec
		want int
		ok   bool
	}{
		{name: "equal different scale", a: mustParse("1.50"), b: mustParse("1.5"), want: 0, ok: true},
		{name: "less", a: mustParse("3"), b: mustParse("5"), want: -1, ok: true},
		{name: "greater", a: mustParse("10"), b: mustParse("9.99"), want: 1, ok: true},
		{name: "negative order", a: mustParse("-2"), b: mustParse("-1"), want: -1, ok: true},
		{name: "inf greater", a: Infinity(false), b: mustParse("1e10"), want: 1, ok: true},
		{name: "neg inf least", a: Infinity(true), b: mustParse("-1e10"), want: -1, ok: true},
		{name: "inf equals inf", a: Infinity(false), b: Infinity(false), want: 0, ok: true},
		{name: "nan incomparable", a: NotANumber(), b: mustParse("0"), ok: false},
	}

	for _, tc := range tests {
		got, ok := tc.a.Cmp(tc.b)
		if ok != tc.ok {
			t.Fatalf("%s: Cmp ok = %v, want %v", tc.name, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("%s: Cmp = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestStringWith(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		groupChar  string
		decChar    string
		want       string
	}{
		{name: "grouping", in: "1234567.89", groupChar: ",", want: "1,234,567.89"},
		{name: "swapped chars", in: "1234.5", groupChar: ".", decChar: ",", want: "1.234,5"},
		{name: "no grouping below thousand", in: "999.9", groupChar: ",", want: "999.9"},
		{name: "decimal char only", in: "5.5", decChar: ",", want: "5,5"},
		{name: "negative grouped", in: "-1234", groupChar: " ", want: "-1 234"},
		{name: "plain", in: "42", want: "42"},
	}

	for _, tc := range tests {
		d, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("%s: Parse(%q): %v", tc.name, tc.in, err)
		}
		if got := d.StringWith(tc.groupChar, tc.decChar); got != tc.want {
			t.Fatalf("%s: StringWith(%q, %q) = %q, want %q",
				tc.name, tc.groupChar, tc.decChar, got, tc.want)
		}
	}
}

func TestInt64(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
		ok   bool
	}{
		{name: "integer", in: "5", want: 5, ok: true},
		{name: "truncates", in: "3.7", want: 3, ok: true},
		{name: "negative truncates", in: "-3.7", want: -3, ok: true},
		{name: "all fraction", in: "0.9", want: 0, ok: true},
		{name: "overflow", in: "99999999999999999999999999", ok: false},
	}

	for _, tc := range tests {
		d, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("%s: Parse(%q): %v", tc.name, tc.in, err)
		}
		got, ok := d.Int64()
		if ok != tc.ok {
			t.Fatalf("%s: Int64 ok = %v, want %v", tc.name, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("%s: Int64 = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestFromInt64(t *testing.T) {
	if got := FromInt64(-42).String(); got != "-42" {
		t.Fatalf("FromInt64(-42) = %q", got)
	}
	if got := FromInt64(math.MinInt64).String(); got != "-9223372036854775808" {
		t.Fatalf("FromInt64(MinInt64) = %q", got)
	}
	if got := FromInt64(math.MaxInt64).String(); got != "9223372036854775807" {
		t.Fatalf("FromInt64(MaxInt64) = %q", got)
	}
	if got := FromInt64(0).String(); got != "0" {
		t.Fatalf("FromInt64(0) = %q", got)
	}
	d, err := FromFloat64(2.5)
	if err != nil || d.String() != "2.5" {
		t.Fatalf("FromFloat64(2.5) = %v, %v", d, err)
	}
}
