package datatypes

import (
	"fmt"
	"strings"
	"time"

	"github.com/jacoelho/csvw/internal/dtpattern"
)

// temporalSpec holds the compiled date/time pattern; nil means no explicit
// format was given and generic ISO 8601 parsing applies.
type temporalSpec struct {
	pattern *dtpattern.Pattern
}

// genericLayouts are the layouts tried for values without an explicit
// format, most specific first.
var genericLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// dateTimeType covers datetime and is the base for date, dateTimeStamp and
// time.
type dateTimeType struct {
	name string
}

func (t dateTimeType) Name() string  { return t.name }
func (t dateTimeType) Ordered() bool { return true }

func (t dateTimeType) DerivedDescription(f Facets) (Spec, error) {
	return compilePattern(t.name, f.Format, "", false)
}

func compilePattern(name string, format any, fallback string, timeOnly bool) (Spec, error) {
	pattern := fallback
	switch v := format.(type) {
	case nil:
	case string:
		pattern = v
	default:
		return nil, configError("format of %s must be a string", name)
	}
	if pattern == "" {
		return temporalSpec{}, nil
	}
	p, err := dtpattern.Compile(pattern, timeOnly)
	if err != nil {
		return nil, configError("%v", err)
	}
	return temporalSpec{pattern: p}, nil
}

func (t dateTimeType) Parse(v string, spec Spec) (any, error) {
	s, _ := spec.(temporalSpec)
	if s.pattern == nil {
		return parseGeneric(t.name, v)
	}
	return parseWithPattern(t.name, v, s.pattern)
}

func parseGeneric(name, v string) (time.Time, error) {
	for _, layout := range genericLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, lexicalError(name, v)
}

func parseWithPattern(name, v string, p *dtpattern.Pattern) (time.Time, error) {
	c, err := p.Parse(v)
	if err != nil {
		return time.Time{}, lexicalError(name, v)
	}
	loc := time.UTC
	if c.HasOffset {
		loc = time.FixedZone("", c.Offset)
	}
	month := c.Month
	if month == 0 {
		month = 1
	}
	day := c.Day
	if day == 0 {
		day = 1
	}
	return time.Date(c.Year, time.Month(month), day,
		c.Hour, c.Minute, c.Second, c.Microsecond*1000, loc), nil
}

func (t dateTimeType) Format(v any, spec Spec) (string, error) {
	value, ok := v.(time.Time)
	if !ok {
		return "", lexicalError(t.name, "")
	}
	s, _ := spec.(temporalSpec)
	if s.pattern == nil {
		return isoFormat(value), nil
	}
	return s.pattern.Format(value), nil
}

// isoFormat mirrors the generic ISO 8601 rendering used when no explicit
// format is configured: seconds always, fractional seconds when present, an
// offset suffix only for zoned values.
func isoFormat(v time.Time) string {
	var b strings.Builder
	b.WriteString(v.Format("2006-01-02T15:04:05"))
	if micro := v.Nanosecond() / 1000; micro != 0 {
		fmt.Fprintf(&b, ".%06d", micro)
	}
	name, offset := v.Zone()
	if name != "UTC" || offset != 0 {
		b.WriteString(v.Format("-07:00"))
	}
	return b.String()
}

// dateType truncates parsed values to their date component.
type dateType struct {
	dateTimeType
}

func (t dateType) DerivedDescription(f Facets) (Spec, error) {
	return compilePattern(t.name, f.Format, "yyyy-MM-dd", false)
}

func (t dateType) Parse(v string, spec Spec) (any, error) {
	parsed, err := t.dateTimeType.Parse(v, spec)
	if err != nil {
		return nil, err
	}
	value := parsed.(time.Time)
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC), nil
}

// dateTimeStampType is a dateTime whose format must carry a timezone marker.
type dateTimeStampType struct {
	dateTimeType
}

func (t dateTimeStampType) DerivedDescription(f Facets) (Spec, error) {
	spec, err := compilePattern(t.name, f.Format, "yyyy-MM-ddTHH:mm:ss.SSSSSSXXX", false)
	if err != nil {
		return nil, err
	}
	s := spec.(temporalSpec)
	if s.pattern == nil || s.pattern.TZMarker == "" {
		return nil, configError("dateTimeStamp must have timezone marker")
	}
	return s, nil
}

// timeType parses bare times; the date components are pinned to the zero
// date.
type timeType struct {
	dateTimeType
}

func (t timeType) DerivedDescription(f Facets) (Spec, error) {
	return compilePattern(t.name, f.Format, "HH:mm:ss", true)
}

func (t timeType) Parse(v string, spec Spec) (any, error) {
	s, _ := spec.(temporalSpec)
	if s.pattern == nil {
		return nil, configError("time requires a compiled format")
	}
	return parseWithPattern(t.name, v, s.pattern)
}
