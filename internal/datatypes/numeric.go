package datatypes

import (
	"strconv"
	"strings"

	"github.com/jacoelho/csvw/internal/num"
)

// decimalSpec holds the number-format facets. The pattern is stored but not
// applied when parsing; only the group and decimal characters affect the
// lexical mapping.
type decimalSpec struct {
	pattern     string
	decimalChar string
	groupChar   string
}

// specialDecimals maps the lexical special tokens to their values.
var specialDecimals = map[string]num.Dec{
	"INF":  num.Infinity(false),
	"-INF": num.Infinity(true),
	"NaN":  num.NotANumber(),
}

type decimalType struct{}

func (decimalType) Name() string  { return "decimal" }
func (decimalType) Ordered() bool { return true }

// DerivedDescription accepts either a bare pattern string or a nested facet
// mapping with decimalChar and groupChar.
func (decimalType) DerivedDescription(f Facets) (Spec, error) {
	switch format := f.Format.(type) {
	case nil:
		return decimalSpec{}, nil
	case string:
		return decimalSpec{pattern: format}, nil
	case map[string]any:
		var s decimalSpec
		for k, v := range format {
			sv, ok := v.(string)
			if !ok {
				return nil, configError("invalid decimal format property %s", k)
			}
			switch k {
			case "pattern":
				s.pattern = sv
			case "decimalChar":
				s.decimalChar = sv
			case "groupChar":
				s.groupChar = sv
			default:
				return nil, configError("invalid decimal format property %s", k)
			}
		}
		return s, nil
	}
	return nil, configError("invalid decimal format")
}

func (t decimalType) Parse(v string, spec Spec) (any, error) {
	d, err := parseDecimal(t.Name(), v, spec)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func parseDecimal(name, v string, spec Spec) (num.Dec, error) {
	if d, ok := specialDecimals[v]; ok {
		return d, nil
	}
	s, _ := spec.(decimalSpec)
	if s.groupChar != "" {
		v = strings.ReplaceAll(v, s.groupChar, "")
	}
	if s.decimalChar != "" && s.decimalChar != "." {
		v = strings.ReplaceAll(v, s.decimalChar, ".")
	}
	d, err := num.Parse(v)
	if err != nil {
		return num.Dec{}, lexicalError(name, v)
	}
	return d, nil
}

func (t decimalType) Format(v any, spec Spec) (string, error) {
	return formatDecimal(t.Name(), v, spec)
}

func formatDecimal(name string, v any, spec Spec) (string, error) {
	s, _ := spec.(decimalSpec)

	var d num.Dec
	switch value := v.(type) {
	case num.Dec:
		d = value
	case int64:
		d = num.FromInt64(value)
	case int:
		d = num.FromInt64(int64(value))
	case float64:
		var err error
		d, err = num.FromFloat64(value)
		if err != nil {
			return "", lexicalError(name, "")
		}
	default:
		return "", lexicalError(name, "")
	}

	switch d.Class {
	case num.Inf:
		return "INF", nil
	case num.NegInf:
		return "-INF", nil
	case num.NaN:
		return "NaN", nil
	}
	return d.StringWith(s.groupChar, s.decimalChar), nil
}

// integerType derives from decimal, truncating toward zero.
type integerType struct{}

func (integerType) Name() string  { return "integer" }
func (integerType) Ordered() bool { return true }

func (integerType) DerivedDescription(f Facets) (Spec, error) {
	return decimalType{}.DerivedDescription(f)
}

func (t integerType) Parse(v string, spec Spec) (any, error) {
	d, err := parseDecimal(t.Name(), v, spec)
	if err != nil {
		return nil, err
	}
	i, ok := d.Int64()
	if !ok {
		return nil, lexicalError(t.Name(), v)
	}
	return i, nil
}

func (t integerType) Format(v any, spec Spec) (string, error) {
	return formatDecimal(t.Name(), v, spec)
}

// floatType covers float and its derived alias number.
type floatType struct {
	name string
}

func (t floatType) Name() string  { return t.name }
func (t floatType) Ordered() bool { return true }

func (floatType) DerivedDescription(Facets) (Spec, error) { return nil, nil }

func (t floatType) Parse(v string, _ Spec) (any, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, lexicalError(t.name, v)
	}
	return f, nil
}

func (t floatType) Format(v any, _ Spec) (string, error) {
	switch value := v.(type) {
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	case int:
		return strconv.Itoa(value), nil
	}
	return "", lexicalError(t.name, "")
}
