package csvw

import (
	"fmt"
	"strconv"
	"time"

	csvwerr "github.com/jacoelho/csvw/errors"
	"github.com/jacoelho/csvw/internal/datatypes"
	"github.com/jacoelho/csvw/internal/num"
	"github.com/jacoelho/csvw/internal/ordered"
)

func configErrorf(format string, args ...any) error {
	return csvwerr.Newf(csvwerr.ErrDatatypeConfig, format, args...)
}

// Datatype is the facet bundle attached to a column (or inherited from its
// schema or table): a base type name from the registry plus the value
// constraints applied after parsing.
//
// A Datatype is immutable after construction; its derived parse parameters
// are computed once, during construction.
//
// See http://w3c.github.io/csvw/metadata/#datatypes
type Datatype struct {
	DescriptionBase

	Base      string
	Format    any
	Length    *int
	MinLength *int
	MaxLength *int
	Minimum   any
	Maximum   any
	// The inclusive/exclusive bound facets are stored and serialized but not
	// enforced; only Minimum and Maximum participate in Validate.
	MinInclusive any
	MaxInclusive any
	MinExclusive any
	MaxExclusive any

	typ  datatypes.Type
	spec datatypes.Spec
}

// NewDatatype builds a Datatype from a deserialized datatype property:
// an existing *Datatype (returned unchanged), a bare string naming the base
// type, or a datatype description object.
func NewDatatype(v any) (*Datatype, error) {
	switch value := v.(type) {
	case *Datatype:
		return value, nil
	case string:
		return buildDatatype(DescriptionBase{}, map[string]any{"base": value})
	case map[string]any:
		base, declared := partitionProperties(value)
		return buildDatatype(base, declared)
	}
	return nil, configErrorf("invalid datatype value: %v", v)
}

func buildDatatype(base DescriptionBase, declared map[string]any) (*Datatype, error) {
	dt := &Datatype{DescriptionBase: base}

	if v, ok := take(declared, "base"); ok {
		s, err := asString("base", v)
		if err != nil {
			return nil, err
		}
		dt.Base = s
	}
	if dt.Base == "" {
		return nil, configErrorf("datatype description requires a base")
	}
	typ, ok := datatypes.Lookup(dt.Base)
	if !ok {
		return nil, csvwerr.Newf(csvwerr.ErrUnknownDatatype, "unknown datatype: %s", dt.Base)
	}
	dt.typ = typ

	dt.Format, _ = take(declared, "format")

	for _, facet := range []struct {
		key string
		dst **int
	}{
		{"length", &dt.Length},
		{"minLength", &dt.MinLength},
		{"maxLength", &dt.MaxLength},
	} {
		v, ok := take(declared, facet.key)
		if !ok {
			continue
		}
		n, err := asInt(facet.key, v)
		if err != nil {
			return nil, err
		}
		*facet.dst = &n
	}

	dt.Minimum, _ = take(declared, "minimum")
	dt.Maximum, _ = take(declared, "maximum")
	dt.MinInclusive, _ = take(declared, "minInclusive")
	dt.MaxInclusive, _ = take(declared, "maxInclusive")
	dt.MinExclusive, _ = take(declared, "minExclusive")
	dt.MaxExclusive, _ = take(declared, "maxExclusive")

	for k := range declared {
		return nil, configErrorf("unknown datatype property: %s", k)
	}

	if dt.Length != nil {
		if dt.MinLength != nil && *dt.Length < *dt.MinLength {
			return nil, configErrorf("length %d below minLength %d", *dt.Length, *dt.MinLength)
		}
		if dt.MaxLength != nil && *dt.Length > *dt.MaxLength {
			return nil, configErrorf("length %d above maxLength %d", *dt.Length, *dt.MaxLength)
		}
	}
	if dt.MinLength != nil && dt.MaxLength != nil && *dt.MinLength > *dt.MaxLength {
		return nil, configErrorf("minLength %d above maxLength %d", *dt.MinLength, *dt.MaxLength)
	}

	spec, err := typ.DerivedDescription(datatypes.Facets{Format: dt.Format})
	if err != nil {
		return nil, err
	}
	dt.spec = spec
	return dt, nil
}

func asInt(key string, v any) (int, error) {
	switch value := v.(type) {
	case int:
		return value, nil
	case float64:
		if value != float64(int(value)) {
			return 0, configErrorf("property %s must be an integer", key)
		}
		return int(value), nil
	}
	return 0, configErrorf("property %s must be an integer", key)
}

// Parse converts a lexical value into a typed value without applying the
// constraint facets.
func (dt *Datatype) Parse(v string) (any, error) {
	return dt.typ.Parse(v, dt.spec)
}

// Formatted renders a typed value back into its lexical form.
func (dt *Datatype) Formatted(v any) (string, error) {
	return dt.typ.Format(v, dt.spec)
}

// Validate applies the constraint facets to a parsed value and returns it
// unchanged. Length facets apply only to values with a length; bound facets
// apply only to ordered types.
func (dt *Datatype) Validate(v any) (any, error) {
	if length, ok := lengthOf(v); ok {
		if dt.Length != nil && length != *dt.Length {
			return nil, constraintError("length", v)
		}
		if dt.MinLength != nil && length < *dt.MinLength {
			return nil, constraintError("minLength", v)
		}
		if dt.MaxLength != nil && length > *dt.MaxLength {
			return nil, constraintError("maxLength", v)
		}
	}
	if dt.typ.Ordered() {
		if dt.Minimum != nil {
			cmp, err := dt.compareBound(v, dt.Minimum)
			if err != nil {
				return nil, err
			}
			if cmp < 0 {
				return nil, constraintError("minimum", v)
			}
		}
		if dt.Maximum != nil {
			cmp, err := dt.compareBound(v, dt.Maximum)
			if err != nil {
				return nil, err
			}
			if cmp > 0 {
				return nil, constraintError("maximum", v)
			}
		}
	}
	return v, nil
}

// Read is the entry point used by row iteration: parse, then validate.
func (dt *Datatype) Read(v string) (any, error) {
	parsed, err := dt.Parse(v)
	if err != nil {
		return nil, err
	}
	return dt.Validate(parsed)
}

// nilPassthrough lists the base types whose parse is the identity on an
// absent value; a null-substituted cell keeps its nil for these and fails
// for everything else.
var nilPassthrough = map[string]bool{
	"any": true, "string": true, "QName": true,
	"gDay": true, "gMonth": true, "gMonthDay": true,
	"gYear": true, "gYearMonth": true,
	"xml": true, "html": true, "boolean": true,
}

// readNil handles a cell whose value was replaced by the null substitution
// before the datatype applies. The nil still passes through the length
// facets, which measure it as length zero.
func (dt *Datatype) readNil() (any, error) {
	if nilPassthrough[dt.Base] {
		return dt.Validate(nil)
	}
	return nil, csvwerr.Newf(csvwerr.ErrLexicalValue, "invalid lexical value for %s: <nil>", dt.Base)
}

func constraintError(facet string, v any) error {
	return csvwerr.Newf(csvwerr.ErrConstraint, "value violates %s facet: %v", facet, v)
}

func lengthOf(v any) (int, bool) {
	switch value := v.(type) {
	case nil:
		return 0, true
	case string:
		return len(value), true
	case []byte:
		return len(value), true
	}
	return 0, false
}

// compareBound compares a parsed value against a bound facet, converting the
// bound (a raw JSON value) into the value's domain.
func (dt *Datatype) compareBound(v, bound any) (int, error) {
	switch value := v.(type) {
	case num.Dec:
		b, err := boundAsDec(bound)
		if err != nil {
			return 0, err
		}
		cmp, ok := value.Cmp(b)
		if !ok {
			return 0, constraintError("bound", v)
		}
		return cmp, nil
	case int64:
		b, err := boundAsFloat(bound)
		if err != nil {
			return 0, err
		}
		return compareFloats(float64(value), b), nil
	case float64:
		b, err := boundAsFloat(bound)
		if err != nil {
			return 0, err
		}
		return compareFloats(value, b), nil
	case time.Time:
		b, err := dt.boundAsTime(bound)
		if err != nil {
			return 0, err
		}
		return value.Compare(b), nil
	}
	return 0, configErrorf("cannot compare %T against bound %v", v, bound)
}

func boundAsDec(bound any) (num.Dec, error) {
	switch b := bound.(type) {
	case float64:
		return num.FromFloat64(b)
	case int:
		return num.FromInt64(int64(b)), nil
	case string:
		return num.Parse(b)
	}
	return num.Dec{}, configErrorf("invalid bound: %v", bound)
}

func boundAsFloat(bound any) (float64, error) {
	switch b := bound.(type) {
	case float64:
		return b, nil
	case int:
		return float64(b), nil
	case string:
		f, err := strconv.ParseFloat(b, 64)
		if err != nil {
			return 0, configErrorf("invalid bound: %v", bound)
		}
		return f, nil
	}
	return 0, configErrorf("invalid bound: %v", bound)
}

func (dt *Datatype) boundAsTime(bound any) (time.Time, error) {
	switch b := bound.(type) {
	case time.Time:
		return b, nil
	case string:
		parsed, err := dt.Parse(b)
		if err != nil {
			return time.Time{}, configErrorf("invalid bound: %v", bound)
		}
		return parsed.(time.Time), nil
	}
	return time.Time{}, configErrorf("invalid bound: %v", bound)
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// AsDict serializes the datatype, collapsing to the bare base-name string
// when no other property is set.
func (dt *Datatype) AsDict(omitDefaults bool) any {
	out := dt.baseDict(omitDefaults)
	out.Set("base", dt.Base)
	putField(out, "format", dt.Format, omitDefaults)
	putIntFacet(out, "length", dt.Length)
	putIntFacet(out, "minLength", dt.MinLength)
	putIntFacet(out, "maxLength", dt.MaxLength)
	putField(out, "minimum", dt.Minimum, omitDefaults)
	putField(out, "maximum", dt.Maximum, omitDefaults)
	putField(out, "minInclusive", dt.MinInclusive, omitDefaults)
	putField(out, "maxInclusive", dt.MaxInclusive, omitDefaults)
	putField(out, "minExclusive", dt.MinExclusive, omitDefaults)
	putField(out, "maxExclusive", dt.MaxExclusive, omitDefaults)
	if out.Len() == 1 {
		if base, ok := out.Get("base"); ok {
			return base
		}
	}
	return out
}

func putIntFacet(out *ordered.Map, key string, v *int) {
	if v != nil {
		out.Set(key, *v)
	}
}

// String renders the datatype for display.
func (dt *Datatype) String() string {
	return fmt.Sprintf("datatype(%s)", dt.Base)
}
