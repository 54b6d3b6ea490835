package datatypes

import (
	"slices"
	"strings"
)

// boolSpec holds the lexical tokens accepted for true and false.
type boolSpec struct {
	trueTokens  []string
	falseTokens []string
}

var defaultBoolSpec = boolSpec{
	trueTokens:  []string{"true", "1"},
	falseTokens: []string{"false", "0"},
}

type booleanType struct{}

func (booleanType) Name() string  { return "boolean" }
func (booleanType) Ordered() bool { return false }

// DerivedDescription splits a "true_token|false_token" format into the two
// token sets.
func (booleanType) DerivedDescription(f Facets) (Spec, error) {
	if f.Format == nil {
		return defaultBoolSpec, nil
	}
	format, ok := f.Format.(string)
	if !ok {
		return nil, configError("format of boolean must be a string")
	}
	parts := strings.Split(format, "|")
	if len(parts) != 2 {
		return nil, configError("invalid boolean format: %s", format)
	}
	return boolSpec{trueTokens: parts[:1], falseTokens: parts[1:]}, nil
}

func (t booleanType) Parse(v string, spec Spec) (any, error) {
	s, ok := spec.(boolSpec)
	if !ok {
		s = defaultBoolSpec
	}
	switch {
	case slices.Contains(s.trueTokens, v):
		return true, nil
	case slices.Contains(s.falseTokens, v):
		return false, nil
	}
	return nil, lexicalError(t.Name(), v)
}

func (t booleanType) Format(v any, spec Spec) (string, error) {
	s, ok := spec.(boolSpec)
	if !ok {
		s = defaultBoolSpec
	}
	b, ok := v.(bool)
	if !ok {
		return "", lexicalError(t.Name(), "")
	}
	if b {
		return s.trueTokens[0], nil
	}
	return s.falseTokens[0], nil
}
