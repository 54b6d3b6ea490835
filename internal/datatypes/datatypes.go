// Package datatypes implements the closed registry of CSVW atomic datatypes
// and their lexical parsing, formatting and derivation rules.
//
// The registry is populated once at package initialization from an explicit
// static table: first the base types, then the types derived from them.
// Dispatch is always by leaf type name; the derivation structure only
// determines which behavior a derived type reuses.
package datatypes

import (
	"fmt"

	csvwerr "github.com/jacoelho/csvw/errors"
)

// Facets carries the datatype-description properties a type may consult when
// deriving its parse parameters.
type Facets struct {
	// Format is the raw format property: nil, a string, or a nested facet
	// mapping (decimal).
	Format any
}

// Spec is a type-specific bundle of derived parse parameters, produced by
// DerivedDescription and passed back to Parse and Format.
type Spec any

// Type is the behavior bundle for one atomic datatype.
type Type interface {
	// Name returns the registry name of the type.
	Name() string
	// Ordered reports whether values of the type support minimum/maximum
	// bound checks.
	Ordered() bool
	// DerivedDescription compiles the facets into the type's parse
	// parameters.
	DerivedDescription(f Facets) (Spec, error)
	// Parse converts a lexical value into a typed value.
	Parse(v string, spec Spec) (any, error)
	// Format converts a typed value back into its lexical form.
	Format(v any, spec Spec) (string, error)
}

var registry = buildRegistry()

func buildRegistry() map[string]Type {
	reg := make(map[string]Type)
	register := func(types ...Type) {
		for _, t := range types {
			if _, exists := reg[t.Name()]; exists {
				continue
			}
			reg[t.Name()] = t
		}
	}

	// Base types.
	register(
		anyType{},
		stringType{name: "string"},
		booleanType{},
		decimalType{},
		floatType{name: "float"},
		dateTimeType{name: "datetime"},
		durationType{},
		base64BinaryType{},
		hexBinaryType{},
	)

	// Types derived from a base type.
	register(
		anyURIType{stringType{name: "anyURI"}},
		stringType{name: "QName"},
		stringType{name: "gDay"},
		stringType{name: "gMonth"},
		stringType{name: "gMonthDay"},
		stringType{name: "gYear"},
		stringType{name: "gYearMonth"},
		stringType{name: "xml"},
		stringType{name: "html"},
		jsonType{stringType{name: "json"}},
		integerType{},
		floatType{name: "number"},
		dateType{dateTimeType{name: "date"}},
		dateTimeStampType{dateTimeType{name: "dateTimeStamp"}},
		timeType{dateTimeType{name: "time"}},
	)

	return reg
}

// Lookup returns the registered type with the given name.
func Lookup(name string) (Type, bool) {
	t, ok := registry[name]
	return t, ok
}

// Known reports whether name is a registered datatype name.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

func lexicalError(name string, v string) error {
	e := csvwerr.Newf(csvwerr.ErrLexicalValue, "invalid lexical value for %s: %s", name, v)
	e.Value = v
	return e
}

func configError(format string, args ...any) error {
	return csvwerr.Newf(csvwerr.ErrDatatypeConfig, format, args...)
}

// anyType passes values through unchanged.
type anyType struct{}

func (anyType) Name() string  { return "any" }
func (anyType) Ordered() bool { return false }

func (anyType) DerivedDescription(Facets) (Spec, error) { return nil, nil }

func (anyType) Parse(v string, _ Spec) (any, error) { return v, nil }

func (anyType) Format(v any, _ Spec) (string, error) { return fmt.Sprint(v), nil }
