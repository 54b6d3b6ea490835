// Package csvw implements a subset of the W3C recommendation "Metadata
// Vocabulary for Tabular Data": the metadata document model, typed cell
// parsing and referential integrity checking.
//
// See https://www.w3.org/TR/tabular-metadata/
package csvw

import "strings"

// Link is a link property: a string resolved against a base directory or
// URL when the referenced resource is accessed.
//
// See http://w3c.github.io/csvw/metadata/#link-properties
type Link string

func (l Link) String() string { return string(l) }

// Resolve joins the link against base. An empty base leaves the link
// untouched.
func (l Link) Resolve(base string) string {
	if base == "" {
		return string(l)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + string(l)
}

// AsDict serializes the link as its bare string.
func (l Link) AsDict(omitDefaults bool) any { return string(l) }
