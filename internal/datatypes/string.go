package datatypes

import (
	"encoding/json"
	"net/url"
	"regexp"
)

// stringSpec holds the compiled format regex for string-derived types; the
// regex is nil when no format was given.
type stringSpec struct {
	regex *regexp.Regexp
}

// stringType covers string and the string-derived types that add no behavior
// of their own (QName, the gregorian calendar fragments, xml, html).
type stringType struct {
	name string
}

func (t stringType) Name() string  { return t.name }
func (t stringType) Ordered() bool { return false }

// DerivedDescription compiles a format regex anchored on both ends, so a
// partial match does not validate.
func (t stringType) DerivedDescription(f Facets) (Spec, error) {
	if f.Format == nil {
		return stringSpec{}, nil
	}
	pattern, ok := f.Format.(string)
	if !ok {
		return nil, configError("format of %s must be a string", t.name)
	}
	re, err := regexp.Compile("^(" + pattern + ")$")
	if err != nil {
		return nil, configError("invalid format for %s: %s", t.name, pattern)
	}
	return stringSpec{regex: re}, nil
}

func (t stringType) Parse(v string, spec Spec) (any, error) {
	s, _ := spec.(stringSpec)
	if s.regex != nil && !s.regex.MatchString(v) {
		return nil, lexicalError(t.name, v)
	}
	return v, nil
}

func (t stringType) Format(v any, _ Spec) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", lexicalError(t.name, "")
	}
	return s, nil
}

// anyURIType parses values into structural URI references.
type anyURIType struct {
	stringType
}

func (t anyURIType) Parse(v string, spec Spec) (any, error) {
	checked, err := t.stringType.Parse(v, spec)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(checked.(string))
	if err != nil {
		return nil, lexicalError(t.name, v)
	}
	return u, nil
}

func (t anyURIType) Format(v any, _ Spec) (string, error) {
	u, ok := v.(*url.URL)
	if !ok {
		return "", lexicalError(t.name, "")
	}
	return u.String(), nil
}

// jsonType parses values as JSON documents.
type jsonType struct {
	stringType
}

func (t jsonType) Parse(v string, spec Spec) (any, error) {
	if _, err := t.stringType.Parse(v, spec); err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return nil, lexicalError(t.name, v)
	}
	return out, nil
}

func (t jsonType) Format(v any, _ Spec) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", lexicalError(t.name, "")
	}
	return string(b), nil
}
