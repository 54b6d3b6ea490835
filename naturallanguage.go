package csvw

import (
	"fmt"

	"github.com/jacoelho/csvw/internal/ordered"
)

// noLang is the key under which values without a language tag are stored.
// It serializes as "und".
const noLang = ""

// NaturalLanguage holds natural-language strings keyed by language tag, in
// insertion order.
//
// See http://w3c.github.io/csvw/metadata/#natural-language-properties
type NaturalLanguage struct {
	langs  []string
	values map[string][]string
}

// NewNaturalLanguage builds a NaturalLanguage from a deserialized property
// value: a bare string, a list of strings, or a language-to-value(s) map.
func NewNaturalLanguage(value any) (*NaturalLanguage, error) {
	nl := &NaturalLanguage{values: make(map[string][]string)}
	switch v := value.(type) {
	case string:
		nl.set(noLang, []string{v})
	case []any:
		items, err := stringList(v)
		if err != nil {
			return nil, err
		}
		nl.set(noLang, items)
	case []string:
		nl.set(noLang, append([]string(nil), v...))
	case map[string]any:
		for _, k := range sortedKeys(v) {
			switch item := v[k].(type) {
			case string:
				nl.set(k, []string{item})
			case []any:
				items, err := stringList(item)
				if err != nil {
					return nil, err
				}
				nl.set(k, items)
			default:
				return nil, fmt.Errorf("invalid value type for NaturalLanguage: %T", item)
			}
		}
	default:
		return nil, fmt.Errorf("invalid value type for NaturalLanguage: %T", value)
	}
	return nl, nil
}

func stringList(items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("invalid value type for NaturalLanguage: %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func (nl *NaturalLanguage) set(lang string, values []string) {
	if _, ok := nl.values[lang]; !ok {
		nl.langs = append(nl.langs, lang)
	}
	nl.values[lang] = values
}

// Add appends a string under the given language tag; use an empty tag for
// untagged values.
func (nl *NaturalLanguage) Add(s, lang string) {
	nl.set(lang, append(nl.values[lang], s))
}

// GetFirst returns the first value stored under lang, or "" if absent.
func (nl *NaturalLanguage) GetFirst(lang string) string {
	if values := nl.values[lang]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// String returns the first untagged value, falling back to the first value
// of the first language.
func (nl *NaturalLanguage) String() string {
	if first := nl.GetFirst(noLang); first != "" {
		return first
	}
	for _, lang := range nl.langs {
		if values := nl.values[lang]; len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// AsDict serializes back to the most compact property shape: a bare string
// for a single untagged value, a list for several untagged values, and a
// language map otherwise. Singleton lists collapse to their value and the
// untagged key maps to "und".
func (nl *NaturalLanguage) AsDict(omitDefaults bool) any {
	if len(nl.langs) == 1 && nl.langs[0] == noLang {
		values := nl.values[noLang]
		if len(values) == 1 {
			return values[0]
		}
		return values
	}
	out := ordered.NewMap()
	for _, lang := range nl.langs {
		key := lang
		if key == noLang {
			key = "und"
		}
		values := nl.values[lang]
		if len(values) == 1 {
			out.Set(key, values[0])
		} else {
			out.Set(key, values)
		}
	}
	return out
}
