// Package dsv reads and writes delimiter-separated value files under the
// control of a CSVW dialect description.
package dsv

import (
	"fmt"
	"slices"

	"github.com/jacoelho/csvw/internal/ordered"
)

// Trim selects the whitespace-trimming policy applied to cell values.
type Trim string

const (
	TrimFalse Trim = "false"
	TrimTrue  Trim = "true"
	TrimStart Trim = "start"
	TrimEnd   Trim = "end"
)

// Dialect describes how a delimited file is tokenized into rows and cells.
// The zero value is not useful; start from Default.
type Dialect struct {
	CommentPrefix    string
	Delimiter        string
	DoubleQuote      bool
	Encoding         string
	Header           bool
	HeaderRowCount   int
	LineTerminators  []string
	QuoteChar        string
	SkipBlankRows    bool
	SkipColumns      int
	SkipInitialSpace bool
	SkipRows         int
	Trim             Trim
}

// Default returns a dialect with the CSVW dialect-description defaults.
func Default() Dialect {
	return Dialect{
		Delimiter:       ",",
		DoubleQuote:     true,
		Encoding:        "utf-8",
		Header:          true,
		HeaderRowCount:  1,
		LineTerminators: []string{"\r\n", "\n"},
		QuoteChar:       `"`,
		Trim:            TrimTrue,
	}
}

// FromMap builds a dialect from a deserialized dialect description, applying
// defaults for absent properties.
func FromMap(m map[string]any) (Dialect, error) {
	d := Default()
	for k, v := range m {
		var err error
		switch k {
		case "commentPrefix":
			err = setString(&d.CommentPrefix, k, v)
		case "delimiter":
			err = setString(&d.Delimiter, k, v)
		case "doubleQuote":
			err = setBool(&d.DoubleQuote, k, v)
		case "encoding":
			err = setString(&d.Encoding, k, v)
		case "header":
			err = setBool(&d.Header, k, v)
		case "headerRowCount":
			err = setInt(&d.HeaderRowCount, k, v)
		case "lineTerminators":
			err = setStrings(&d.LineTerminators, k, v)
		case "quoteChar":
			err = setString(&d.QuoteChar, k, v)
		case "skipBlankRows":
			err = setBool(&d.SkipBlankRows, k, v)
		case "skipColumns":
			err = setInt(&d.SkipColumns, k, v)
		case "skipInitialSpace":
			err = setBool(&d.SkipInitialSpace, k, v)
		case "skipRows":
			err = setInt(&d.SkipRows, k, v)
		case "trim":
			err = setTrim(&d.Trim, v)
		default:
			return Dialect{}, fmt.Errorf("unknown dialect property: %s", k)
		}
		if err != nil {
			return Dialect{}, err
		}
	}
	return d, nil
}

func setString(dst *string, key string, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("dialect property %s must be a string", key)
	}
	*dst = s
	return nil
}

func setBool(dst *bool, key string, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("dialect property %s must be a boolean", key)
	}
	*dst = b
	return nil
}

func setInt(dst *int, key string, v any) error {
	// JSON numbers arrive as float64.
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return fmt.Errorf("dialect property %s must be an integer", key)
	}
	*dst = int(f)
	return nil
}

func setStrings(dst *[]string, key string, v any) error {
	switch value := v.(type) {
	case string:
		*dst = []string{value}
		return nil
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("dialect property %s must hold strings", key)
			}
			out = append(out, s)
		}
		*dst = out
		return nil
	}
	return fmt.Errorf("dialect property %s must be a string or list", key)
}

func setTrim(dst *Trim, v any) error {
	switch value := v.(type) {
	case bool:
		if value {
			*dst = TrimTrue
		} else {
			*dst = TrimFalse
		}
		return nil
	case string:
		switch Trim(value) {
		case TrimFalse, TrimTrue, TrimStart, TrimEnd:
			*dst = Trim(value)
			return nil
		}
	}
	return fmt.Errorf("invalid dialect trim value: %v", v)
}

// AsDict serializes the dialect as an ordered property map. With omitDefaults
// only properties differing from the CSVW defaults are included.
func (d Dialect) AsDict(omitDefaults bool) *ordered.Map {
	def := Default()
	out := ordered.NewMap()
	put := func(key string, value any, isDefault bool) {
		if omitDefaults && isDefault {
			return
		}
		out.Set(key, value)
	}
	put("commentPrefix", d.CommentPrefix, d.CommentPrefix == def.CommentPrefix)
	put("delimiter", d.Delimiter, d.Delimiter == def.Delimiter)
	put("doubleQuote", d.DoubleQuote, d.DoubleQuote == def.DoubleQuote)
	put("encoding", d.Encoding, d.Encoding == def.Encoding)
	put("header", d.Header, d.Header == def.Header)
	put("headerRowCount", d.HeaderRowCount, d.HeaderRowCount == def.HeaderRowCount)
	put("lineTerminators", d.LineTerminators, slices.Equal(d.LineTerminators, def.LineTerminators))
	put("quoteChar", d.QuoteChar, d.QuoteChar == def.QuoteChar)
	put("skipBlankRows", d.SkipBlankRows, d.SkipBlankRows == def.SkipBlankRows)
	put("skipColumns", d.SkipColumns, d.SkipColumns == def.SkipColumns)
	put("skipInitialSpace", d.SkipInitialSpace, d.SkipInitialSpace == def.SkipInitialSpace)
	put("skipRows", d.SkipRows, d.SkipRows == def.SkipRows)
	put("trim", string(d.Trim), d.Trim == def.Trim)
	return out
}

// trimCell applies the trim policy to one cell value.
func (d Dialect) trimCell(v string) string {
	switch d.Trim {
	case TrimTrue:
		return trimBoth(v)
	case TrimStart:
		return trimLeft(v)
	case TrimEnd:
		return trimRight(v)
	}
	if d.SkipInitialSpace {
		return trimLeft(v)
	}
	return v
}

func trimLeft(v string) string {
	for len(v) > 0 && (v[0] == ' ' || v[0] == '\t') {
		v = v[1:]
	}
	return v
}

func trimRight(v string) string {
	for len(v) > 0 && (v[len(v)-1] == ' ' || v[len(v)-1] == '\t') {
		v = v[:len(v)-1]
	}
	return v
}

func trimBoth(v string) string {
	return trimRight(trimLeft(v))
}
