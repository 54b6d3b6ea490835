package csvw

import "regexp"

// URITemplate is a uri-template property. Templates are stored and
// serialized verbatim; expansion with the "_"-prefixed context variables is
// not supported.
//
// See http://w3c.github.io/csvw/metadata/#uri-template-properties
type URITemplate string

func (u URITemplate) String() string { return string(u) }

// AsDict serializes the template as its bare string.
func (u URITemplate) AsDict(omitDefaults bool) any { return string(u) }

// Level 1 variable names according to RFC 6570 section 2.3.
const varchar = `([a-zA-Z0-9_]|%[a-fA-F0-9]{2})`

var varname = regexp.MustCompile(`^(` + varchar + `([.]?` + varchar + `)*)$`)

// validVarname reports whether s is usable as a template variable name.
func validVarname(s string) bool {
	return varname.MatchString(s)
}
