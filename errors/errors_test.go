package errors

import (
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "code and message",
			err:  New(ErrLexicalValue, "invalid lexical value for boolean: J"),
			want: "[csvw-invalid-lexical-value] invalid lexical value for boolean: J",
		},
		{
			name: "with column",
			err:  New(ErrRequiredMissing, "required column value is missing").WithColumn("ID"),
			want: "[csvw-required-column-missing] required column value is missing (column ID)",
		},
		{
			name: "with value",
			err:  &Error{Code: ErrConstraint, Message: "value out of range", Value: "12"},
			want: "[csvw-constraint-violation] value out of range (value: 12)",
		},
		{
			name: "nil receiver",
			err:  nil,
			want: "csvw error <nil>",
		},
	}

	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("%s: Error() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestIsCode(t *testing.T) {
	err := Newf(ErrUnknownDatatype, "unknown datatype: %s", "frobnicate")
	if !IsCode(err, ErrUnknownDatatype) {
		t.Fatalf("IsCode(err, %s) = false, want true", ErrUnknownDatatype)
	}
	if IsCode(err, ErrLexicalValue) {
		t.Fatalf("IsCode(err, %s) = true, want false", ErrLexicalValue)
	}

	wrapped := fmt.Errorf("reading table: %w", err)
	if !IsCode(wrapped, ErrUnknownDatatype) {
		t.Fatal("IsCode should see through wrapping")
	}
	if IsCode(nil, ErrLexicalValue) {
		t.Fatal("IsCode(nil) = true, want false")
	}
}

func TestAsError(t *testing.T) {
	err := New(ErrDatatypeConfig, "length facet inconsistent")
	wrapped := fmt.Errorf("column spec: %w", err)

	got, ok := AsError(wrapped)
	if !ok || got.Code != ErrDatatypeConfig {
		t.Fatalf("AsError(wrapped) = %v, %v", got, ok)
	}
	if _, ok := AsError(fmt.Errorf("plain")); ok {
		t.Fatal("AsError(plain) = true, want false")
	}
}
