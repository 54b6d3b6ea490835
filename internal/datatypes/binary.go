package datatypes

import (
	"encoding/base64"
	"encoding/hex"

	csvwerr "github.com/jacoelho/csvw/errors"
)

// asciiOnly reports whether s contains only ASCII bytes.
func asciiOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

func truncateForError(v string) string {
	if len(v) > 10 {
		return v[:10]
	}
	return v
}

// base64BinaryType validates base64-encoded content. The typed value keeps
// the encoded ASCII bytes; decoding only verifies well-formedness.
type base64BinaryType struct{}

func (base64BinaryType) Name() string  { return "binary" }
func (base64BinaryType) Ordered() bool { return false }

func (base64BinaryType) DerivedDescription(Facets) (Spec, error) { return nil, nil }

func (t base64BinaryType) Parse(v string, _ Spec) (any, error) {
	if !asciiOnly(v) {
		return nil, lexicalError(t.Name(), truncateForError(v))
	}
	if _, err := base64.StdEncoding.DecodeString(v); err != nil {
		return nil, csvwerr.New(csvwerr.ErrLexicalValue, "invalid base64 encoding")
	}
	return []byte(v), nil
}

func (t base64BinaryType) Format(v any, _ Spec) (string, error) {
	b, ok := v.([]byte)
	if !ok {
		return "", lexicalError(t.Name(), "")
	}
	return string(b), nil
}

// hexBinaryType validates hex-encoded content, keeping the encoded ASCII
// bytes as the typed value.
type hexBinaryType struct{}

func (hexBinaryType) Name() string  { return "hexBinary" }
func (hexBinaryType) Ordered() bool { return false }

func (hexBinaryType) DerivedDescription(Facets) (Spec, error) { return nil, nil }

func (t hexBinaryType) Parse(v string, _ Spec) (any, error) {
	if !asciiOnly(v) {
		return nil, lexicalError(t.Name(), truncateForError(v))
	}
	if _, err := hex.DecodeString(v); err != nil {
		return nil, csvwerr.New(csvwerr.ErrLexicalValue, "invalid hexBinary encoding")
	}
	return []byte(v), nil
}

func (t hexBinaryType) Format(v any, _ Spec) (string, error) {
	b, ok := v.([]byte)
	if !ok {
		return "", lexicalError(t.Name(), "")
	}
	return string(b), nil
}
