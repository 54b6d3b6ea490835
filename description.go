package csvw

import (
	"sort"
	"strings"

	"github.com/jacoelho/csvw/internal/ordered"
)

// dicter is implemented by values that know how to serialize themselves back
// into a metadata property value.
type dicter interface {
	AsDict(omitDefaults bool) any
}

// DescriptionBase carries the property buckets every description object has:
// common properties (namespaced keys) and @-properties (with the marker
// stripped).
//
// See http://w3c.github.io/csvw/metadata/#common-properties
type DescriptionBase struct {
	CommonProps map[string]any
	AtProps     map[string]any
}

// partitionProperties splits a raw property mapping by key shape: keys
// starting with "@" go to the at-bucket (marker stripped), keys containing
// ":" to the common bucket, everything else is a declared field left for the
// caller.
func partitionProperties(raw map[string]any) (base DescriptionBase, declared map[string]any) {
	base = DescriptionBase{
		CommonProps: make(map[string]any),
		AtProps:     make(map[string]any),
	}
	declared = make(map[string]any)
	for k, v := range raw {
		switch {
		case strings.HasPrefix(k, "@"):
			base.AtProps[k[1:]] = v
		case strings.Contains(k, ":"):
			base.CommonProps[k] = v
		default:
			declared[k] = v
		}
	}
	return base, declared
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asdictValue serializes one property value, recursing into objects and
// lists that carry their own serialization.
func asdictValue(v any, omitDefaults bool) any {
	switch value := v.(type) {
	case dicter:
		return value.AsDict(omitDefaults)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = asdictValue(item, omitDefaults)
		}
		return out
	}
	return v
}

// emptyValue reports whether a serialized property should be dropped from
// the output document.
func emptyValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case []any:
		return len(value) == 0
	case []string:
		return len(value) == 0
	case map[string]any:
		return len(value) == 0
	case *ordered.Map:
		return value == nil || value.Len() == 0
	}
	return false
}

// baseDict starts a serialized description: at-properties first (sorted,
// with the "@" restored), then common properties (sorted). Declared fields
// are appended by the caller via putField.
func (d DescriptionBase) baseDict(omitDefaults bool) *ordered.Map {
	out := ordered.NewMap()
	for _, k := range sortedKeys(d.AtProps) {
		putField(out, "@"+k, d.AtProps[k], omitDefaults)
	}
	for _, k := range sortedKeys(d.CommonProps) {
		putField(out, k, d.CommonProps[k], omitDefaults)
	}
	return out
}

// putField serializes a declared field into the output, skipping nil and
// empty collection values.
func putField(out *ordered.Map, key string, v any, omitDefaults bool) {
	serialized := asdictValue(v, omitDefaults)
	if emptyValue(serialized) {
		return
	}
	out.Set(key, serialized)
}

// Inherited holds the inherited properties a description may set directly or
// receive from its containing object.
//
// See http://w3c.github.io/csvw/metadata/#inherited-properties
type Inherited struct {
	AboutURL      URITemplate
	Datatype      *Datatype
	Default       string
	Lang          string
	Null          string
	Ordered       *bool
	PropertyURL   URITemplate
	Required      *bool
	Separator     *string
	TextDirection string
	ValueURL      URITemplate

	// parent links to the containing object's inherited properties; it is a
	// non-owning back-reference used only for inheritance lookups.
	parent *Inherited
}

// newInherited populates the inherited fields from a declared-property map,
// consuming the keys it recognizes.
func newInherited(declared map[string]any) (Inherited, error) {
	inh := Inherited{Lang: "und"}
	if v, ok := take(declared, "aboutUrl"); ok {
		s, err := asString("aboutUrl", v)
		if err != nil {
			return inh, err
		}
		inh.AboutURL = URITemplate(s)
	}
	if v, ok := take(declared, "datatype"); ok {
		dt, err := NewDatatype(v)
		if err != nil {
			return inh, err
		}
		inh.Datatype = dt
	}
	if v, ok := take(declared, "default"); ok {
		s, err := asString("default", v)
		if err != nil {
			return inh, err
		}
		inh.Default = s
	}
	if v, ok := take(declared, "lang"); ok {
		s, err := asString("lang", v)
		if err != nil {
			return inh, err
		}
		inh.Lang = s
	}
	if v, ok := take(declared, "null"); ok {
		s, err := asString("null", v)
		if err != nil {
			return inh, err
		}
		inh.Null = s
	}
	if v, ok := take(declared, "ordered"); ok {
		b, err := asBool("ordered", v)
		if err != nil {
			return inh, err
		}
		inh.Ordered = &b
	}
	if v, ok := take(declared, "propertyUrl"); ok {
		s, err := asString("propertyUrl", v)
		if err != nil {
			return inh, err
		}
		inh.PropertyURL = URITemplate(s)
	}
	if v, ok := take(declared, "required"); ok {
		b, err := asBool("required", v)
		if err != nil {
			return inh, err
		}
		inh.Required = &b
	}
	if v, ok := take(declared, "separator"); ok {
		s, err := asString("separator", v)
		if err != nil {
			return inh, err
		}
		inh.Separator = &s
	}
	if v, ok := take(declared, "textDirection"); ok {
		s, err := asString("textDirection", v)
		if err != nil {
			return inh, err
		}
		inh.TextDirection = s
	}
	if v, ok := take(declared, "valueUrl"); ok {
		s, err := asString("valueUrl", v)
		if err != nil {
			return inh, err
		}
		inh.ValueURL = URITemplate(s)
	}
	return inh, nil
}

// InheritedDatatype resolves the datatype through the inheritance chain.
func (inh *Inherited) InheritedDatatype() *Datatype {
	if inh.Datatype != nil {
		return inh.Datatype
	}
	if inh.parent != nil {
		return inh.parent.InheritedDatatype()
	}
	return nil
}

// InheritedRequired resolves the required flag through the inheritance
// chain; an unset flag everywhere resolves to false.
func (inh *Inherited) InheritedRequired() bool {
	if inh.Required != nil {
		return *inh.Required
	}
	if inh.parent != nil {
		return inh.parent.InheritedRequired()
	}
	return false
}

// InheritedSeparator resolves the separator through the inheritance chain;
// "" means no separator is declared anywhere.
func (inh *Inherited) InheritedSeparator() string {
	if inh.Separator != nil {
		return *inh.Separator
	}
	if inh.parent != nil {
		return inh.parent.InheritedSeparator()
	}
	return ""
}

// putInherited appends the inherited fields to a serialized description in
// declaration order.
func (inh *Inherited) putInherited(out *ordered.Map, omitDefaults bool) {
	putField(out, "aboutUrl", stringOrNil(string(inh.AboutURL)), omitDefaults)
	if inh.Datatype != nil {
		putField(out, "datatype", inh.Datatype, omitDefaults)
	}
	if !omitDefaults || inh.Default != "" {
		out.Set("default", inh.Default)
	}
	if !omitDefaults || inh.Lang != "und" {
		out.Set("lang", inh.Lang)
	}
	if !omitDefaults || inh.Null != "" {
		out.Set("null", inh.Null)
	}
	if inh.Ordered != nil {
		out.Set("ordered", *inh.Ordered)
	}
	putField(out, "propertyUrl", stringOrNil(string(inh.PropertyURL)), omitDefaults)
	if inh.Required != nil {
		out.Set("required", *inh.Required)
	}
	if inh.Separator != nil {
		out.Set("separator", *inh.Separator)
	}
	putField(out, "textDirection", stringOrNil(inh.TextDirection), omitDefaults)
	putField(out, "valueUrl", stringOrNil(string(inh.ValueURL)), omitDefaults)
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func take(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if ok {
		delete(m, key)
	}
	return v, ok
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", configErrorf("property %s must be a string", key)
	}
	return s, nil
}

func asBool(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, configErrorf("property %s must be a boolean", key)
	}
	return b, nil
}
