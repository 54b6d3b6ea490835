package csvw

import (
	"fmt"

	"github.com/jacoelho/csvw/internal/ordered"
)

// Column describes one column of a table schema.
type Column struct {
	DescriptionBase
	Inherited

	Name           string
	SuppressOutput bool
	Titles         *NaturalLanguage
	Virtual        bool

	// number is the 1-based position, assigned once by the owning schema.
	number int
}

// NewColumn builds a column from a deserialized column description.
func NewColumn(v any) (*Column, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, configErrorf("invalid column description: %v", v)
	}
	base, declared := partitionProperties(raw)
	inh, err := newInherited(declared)
	if err != nil {
		return nil, err
	}
	col := &Column{DescriptionBase: base, Inherited: inh}

	if nv, ok := take(declared, "name"); ok {
		s, err := asString("name", nv)
		if err != nil {
			return nil, err
		}
		if !validVarname(s) {
			return nil, configErrorf("invalid column name: %s", s)
		}
		col.Name = s
	}
	if sv, ok := take(declared, "suppressOutput"); ok {
		b, err := asBool("suppressOutput", sv)
		if err != nil {
			return nil, err
		}
		col.SuppressOutput = b
	}
	if tv, ok := take(declared, "titles"); ok {
		titles, err := NewNaturalLanguage(tv)
		if err != nil {
			return nil, err
		}
		col.Titles = titles
	}
	if vv, ok := take(declared, "virtual"); ok {
		b, err := asBool("virtual", vv)
		if err != nil {
			return nil, err
		}
		col.Virtual = b
	}
	for k := range declared {
		return nil, configErrorf("unknown column property: %s", k)
	}
	return col, nil
}

// String returns the column's display name: its name, else its first title,
// else a positional placeholder.
func (c *Column) String() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Titles != nil {
		if first := c.Titles.String(); first != "" {
			return first
		}
	}
	return fmt.Sprintf("_col.%d", c.number)
}

// AsDict serializes the column description.
func (c *Column) AsDict(omitDefaults bool) any {
	out := c.baseDict(omitDefaults)
	putField(out, "name", stringOrNil(c.Name), omitDefaults)
	if !omitDefaults || c.SuppressOutput {
		out.Set("suppressOutput", c.SuppressOutput)
	}
	if c.Titles != nil {
		putField(out, "titles", c.Titles, omitDefaults)
	}
	if !omitDefaults || c.Virtual {
		out.Set("virtual", c.Virtual)
	}
	c.putInherited(out, omitDefaults)
	return out
}

// columnReference normalizes a column-reference property, which may be a
// single name or a list of names.
func columnReference(key string, v any) ([]string, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{value}, nil
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return nil, configErrorf("property %s must hold column names", key)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return value, nil
	}
	return nil, configErrorf("invalid %s: %v", key, v)
}

// Reference names the table (or schema) and columns a foreign key points
// at.
type Reference struct {
	Resource        Link
	SchemaReference Link
	ColumnReference []string
}

// ForeignKey declares that the values of the referencing columns must occur
// among the values of the referenced columns.
type ForeignKey struct {
	ColumnReference []string
	Reference       Reference
}

// NewForeignKey builds a foreign key from its deserialized description.
func NewForeignKey(v any) (*ForeignKey, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, configErrorf("invalid foreignKey description: %v", v)
	}
	fk := &ForeignKey{}
	var err error
	if fk.ColumnReference, err = columnReference("columnReference", raw["columnReference"]); err != nil {
		return nil, err
	}
	ref, ok := raw["reference"].(map[string]any)
	if !ok {
		return nil, configErrorf("foreignKey requires a reference object")
	}
	if resource, ok := ref["resource"].(string); ok {
		fk.Reference.Resource = Link(resource)
	}
	if schemaRef, ok := ref["schemaReference"].(string); ok {
		fk.Reference.SchemaReference = Link(schemaRef)
	}
	if fk.Reference.ColumnReference, err = columnReference("reference columnReference", ref["columnReference"]); err != nil {
		return nil, err
	}
	return fk, nil
}

// AsDict serializes the foreign key.
func (fk *ForeignKey) AsDict(omitDefaults bool) any {
	ref := ordered.NewMap()
	putField(ref, "resource", stringOrNil(string(fk.Reference.Resource)), omitDefaults)
	putField(ref, "schemaReference", stringOrNil(string(fk.Reference.SchemaReference)), omitDefaults)
	if len(fk.Reference.ColumnReference) > 0 {
		ref.Set("columnReference", fk.Reference.ColumnReference)
	}
	out := ordered.NewMap()
	if len(fk.ColumnReference) > 0 {
		out.Set("columnReference", fk.ColumnReference)
	}
	out.Set("reference", ref)
	return out
}

// Schema holds a table's ordered column descriptions plus the key
// declarations.
type Schema struct {
	DescriptionBase
	Inherited

	Columns     []*Column
	ForeignKeys []*ForeignKey
	PrimaryKey  []string
	RowTitles   []any
}

// NewSchema builds a schema from a deserialized tableSchema property. A nil
// value yields an empty schema. Column numbering is 1-based and assigned
// here, exactly once.
func NewSchema(v any) (*Schema, error) {
	switch value := v.(type) {
	case nil:
		return &Schema{}, nil
	case *Schema:
		return value, nil
	case map[string]any:
		base, declared := partitionProperties(value)
		inh, err := newInherited(declared)
		if err != nil {
			return nil, err
		}
		s := &Schema{DescriptionBase: base, Inherited: inh}

		if cols, ok := take(declared, "columns"); ok {
			list, ok := cols.([]any)
			if !ok {
				return nil, configErrorf("columns must be a list")
			}
			for _, item := range list {
				col, err := NewColumn(item)
				if err != nil {
					return nil, err
				}
				s.Columns = append(s.Columns, col)
			}
		}
		if fks, ok := take(declared, "foreignKeys"); ok && fks != nil {
			list, ok := fks.([]any)
			if !ok {
				return nil, configErrorf("foreignKeys must be a list")
			}
			for _, item := range list {
				fk, err := NewForeignKey(item)
				if err != nil {
					return nil, err
				}
				s.ForeignKeys = append(s.ForeignKeys, fk)
			}
		}
		if pk, ok := take(declared, "primaryKey"); ok {
			cols, err := columnReference("primaryKey", pk)
			if err != nil {
				return nil, err
			}
			s.PrimaryKey = cols
		}
		if titles, ok := take(declared, "rowTitles"); ok {
			list, ok := titles.([]any)
			if !ok {
				return nil, configErrorf("rowTitles must be a list")
			}
			s.RowTitles = list
		}
		for k := range declared {
			return nil, configErrorf("unknown schema property: %s", k)
		}

		for i, col := range s.Columns {
			col.number = i + 1
			col.Inherited.parent = &s.Inherited
		}
		return s, nil
	}
	return nil, configErrorf("invalid tableSchema: %v", v)
}

// AsDict serializes the schema.
func (s *Schema) AsDict(omitDefaults bool) any {
	out := s.baseDict(omitDefaults)
	if len(s.Columns) > 0 {
		cols := make([]any, len(s.Columns))
		for i, col := range s.Columns {
			cols[i] = col.AsDict(omitDefaults)
		}
		out.Set("columns", cols)
	}
	if len(s.ForeignKeys) > 0 {
		fks := make([]any, len(s.ForeignKeys))
		for i, fk := range s.ForeignKeys {
			fks[i] = fk.AsDict(omitDefaults)
		}
		out.Set("foreignKeys", fks)
	}
	if len(s.PrimaryKey) > 0 {
		out.Set("primaryKey", s.PrimaryKey)
	}
	if len(s.RowTitles) > 0 {
		out.Set("rowTitles", s.RowTitles)
	}
	s.putInherited(out, omitDefaults)
	return out
}
