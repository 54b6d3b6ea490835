package datatypes

import (
	"regexp"

	"github.com/jacoelho/csvw/internal/duration"
)

// durationSpec holds an optional additional regex constraint on the lexical
// form.
type durationSpec struct {
	format *regexp.Regexp
}

type durationType struct{}

func (durationType) Name() string  { return "duration" }
func (durationType) Ordered() bool { return false }

func (durationType) DerivedDescription(f Facets) (Spec, error) {
	if f.Format == nil {
		return durationSpec{}, nil
	}
	pattern, ok := f.Format.(string)
	if !ok {
		return nil, configError("format of duration must be a string")
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, configError("invalid duration format: %s", pattern)
	}
	return durationSpec{format: re}, nil
}

func (t durationType) Parse(v string, spec Spec) (any, error) {
	s, _ := spec.(durationSpec)
	if s.format != nil && !s.format.MatchString(v) {
		return nil, lexicalError(t.Name(), v)
	}
	d, err := duration.Parse(v)
	if err != nil {
		return nil, lexicalError(t.Name(), v)
	}
	return d, nil
}

func (t durationType) Format(v any, _ Spec) (string, error) {
	d, ok := v.(duration.Duration)
	if !ok {
		return "", lexicalError(t.Name(), "")
	}
	return d.String(), nil
}
