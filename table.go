package csvw

import (
	"iter"
	"strings"
	"sync"

	csvwerr "github.com/jacoelho/csvw/errors"
	"github.com/jacoelho/csvw/internal/ordered"
	"github.com/jacoelho/csvw/pkg/dsv"
)

// Row is one typed table row: an ordered mapping from resolved column name
// to parsed value, list of values (separator columns), or nil (null cells).
type Row = *ordered.Map

// TableLike carries the properties shared by Table and TableGroup.
type TableLike struct {
	DescriptionBase
	Inherited

	Dialect         *dsv.Dialect
	Notes           []any
	TableDirection  string
	TableSchema     *Schema
	Transformations []any
}

func newTableLike(declared map[string]any) (TableLike, error) {
	inh, err := newInherited(declared)
	if err != nil {
		return TableLike{}, err
	}
	tl := TableLike{Inherited: inh, TableDirection: "auto"}

	if v, ok := take(declared, "dialect"); ok {
		raw, ok := v.(map[string]any)
		if !ok {
			return tl, configErrorf("dialect must be an object")
		}
		d, err := dsv.FromMap(raw)
		if err != nil {
			return tl, configErrorf("%v", err)
		}
		tl.Dialect = &d
	}
	if v, ok := take(declared, "notes"); ok {
		list, ok := v.([]any)
		if !ok {
			return tl, configErrorf("notes must be a list")
		}
		tl.Notes = list
	}
	if v, ok := take(declared, "tableDirection"); ok {
		s, err := asString("tableDirection", v)
		if err != nil {
			return tl, err
		}
		switch s {
		case "rtl", "ltr", "auto":
			tl.TableDirection = s
		default:
			return tl, configErrorf("invalid tableDirection: %s", s)
		}
	}
	schemaValue, _ := take(declared, "tableSchema")
	schema, err := NewSchema(schemaValue)
	if err != nil {
		return tl, err
	}
	tl.TableSchema = schema
	schema.Inherited.parent = &tl.Inherited

	if v, ok := take(declared, "transformations"); ok {
		list, ok := v.([]any)
		if !ok {
			return tl, configErrorf("transformations must be a list")
		}
		tl.Transformations = list
	}
	return tl, nil
}

// putTableLike appends the shared properties to a serialized description.
func (tl *TableLike) putTableLike(out *ordered.Map, omitDefaults bool) {
	if tl.Dialect != nil {
		putField(out, "dialect", tl.Dialect.AsDict(omitDefaults), omitDefaults)
	}
	if len(tl.Notes) > 0 {
		out.Set("notes", tl.Notes)
	}
	if !omitDefaults || tl.TableDirection != "auto" {
		out.Set("tableDirection", tl.TableDirection)
	}
	if tl.TableSchema != nil {
		putField(out, "tableSchema", tl.TableSchema, omitDefaults)
	}
	if len(tl.Transformations) > 0 {
		out.Set("transformations", tl.Transformations)
	}
	tl.putInherited(out, omitDefaults)
}

// Table describes one delimited data file: its location, schema and
// optional dialect override.
type Table struct {
	TableLike

	URL            Link
	SuppressOutput bool

	// parent is the owning table group; set when the group is built.
	parent *TableGroup

	colspecOnce sync.Once
	colspecMap  map[string]colSpec
}

// NewTable builds a table from its deserialized description.
func NewTable(v any) (*Table, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, configErrorf("invalid table description: %v", v)
	}
	base, declared := partitionProperties(raw)

	urlValue, ok := take(declared, "url")
	if !ok {
		return nil, configErrorf("table requires a url")
	}
	url, err := asString("url", urlValue)
	if err != nil {
		return nil, err
	}
	var suppress bool
	if sv, ok := take(declared, "suppressOutput"); ok {
		if suppress, err = asBool("suppressOutput", sv); err != nil {
			return nil, err
		}
	}

	tl, err := newTableLike(declared)
	if err != nil {
		return nil, err
	}
	tl.DescriptionBase = base
	for k := range declared {
		return nil, configErrorf("unknown table property: %s", k)
	}

	t := &Table{TableLike: tl, URL: Link(url), SuppressOutput: suppress}
	t.TableSchema.Inherited.parent = &t.Inherited
	return t, nil
}

// LocalName returns the table's url string, the name used to reference the
// table from foreign keys.
func (t *Table) LocalName() string {
	return string(t.URL)
}

// AsDict serializes the table description.
func (t *Table) AsDict(omitDefaults bool) any {
	out := t.baseDict(omitDefaults)
	out.Set("url", string(t.URL))
	if !omitDefaults || t.SuppressOutput {
		out.Set("suppressOutput", t.SuppressOutput)
	}
	t.putTableLike(out, omitDefaults)
	return out
}

// colSpec is a column's effective cell-handling description, with the
// inherited properties resolved once per table.
type colSpec struct {
	name      string
	datatype  *Datatype
	null      string
	required  bool
	separator string
	dflt      string
}

// colspec maps every column's display name (and first title, if distinct)
// to its effective description. It is memoized on first access; schema
// changes made afterwards are not observed.
func (t *Table) colspec() map[string]colSpec {
	t.colspecOnce.Do(func() {
		spec := make(map[string]colSpec)
		for _, col := range t.TableSchema.Columns {
			name := col.String()
			entry := colSpec{
				name:      name,
				datatype:  col.InheritedDatatype(),
				null:      col.Null,
				required:  col.InheritedRequired(),
				separator: col.InheritedSeparator(),
				dflt:      col.Default,
			}
			spec[name] = entry
			if col.Titles != nil {
				if title := col.Titles.String(); title != "" {
					if _, ok := spec[title]; !ok {
						spec[title] = entry
					}
				}
			}
		}
		t.colspecMap = spec
	})
	return t.colspecMap
}

func (t *Table) effectiveDialect() dsv.Dialect {
	if t.Dialect != nil {
		return *t.Dialect
	}
	if t.parent != nil && t.parent.Dialect != nil {
		return *t.parent.Dialect
	}
	return dsv.Default()
}

// Rows iterates the table's data file, yielding one typed row per record.
// Iteration stops at the first error, which is yielded with a nil row.
func (t *Table) Rows() iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		dialect := t.effectiveDialect()
		base := ""
		if t.parent != nil {
			base = t.parent.Base()
		}
		fname := t.URL.Resolve(base)

		records, err := dsv.ReadFile(fname, dialect)
		if err != nil {
			yield(nil, err)
			return
		}

		var header []string
		if dialect.Header {
			if len(records) == 0 {
				return
			}
			header = records[0]
			records = records[1:]
		} else {
			for _, col := range t.TableSchema.Columns {
				if !col.Virtual {
					header = append(header, col.String())
				}
			}
		}

		spec := t.colspec()
		for _, record := range records {
			row, err := t.readRow(header, record, spec)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// readRow applies the cell-parsing rules to one record.
//
// See http://w3c.github.io/csvw/syntax/#parsing-cells
func (t *Table) readRow(header, record []string, spec map[string]colSpec) (Row, error) {
	row := ordered.NewMap()
	n := len(header)
	if len(record) < n {
		n = len(record)
	}
	for i := 0; i < n; i++ {
		key := header[i]
		cell, err := readCell(key, record[i], spec)
		if err != nil {
			return nil, err
		}
		if cs, ok := spec[key]; ok {
			key = cs.name
		}
		row.Set(key, cell)
	}
	return row, nil
}

func readCell(key, v string, spec map[string]colSpec) (any, error) {
	cs, ok := spec[key]
	if !ok {
		return v, nil
	}

	var cell any = v
	if v == "" {
		if cs.required {
			return nil, requiredError(cs.name)
		}
		v = cs.dflt
		cell = v
	}

	if cs.separator != "" {
		if v == "" {
			cell = []any{}
		} else if v == cs.null {
			cell = nil
		} else {
			parts := strings.Split(v, cs.separator)
			items := make([]any, len(parts))
			for i, part := range parts {
				if part == "" {
					part = cs.dflt
				}
				if part == cs.null {
					items[i] = nil
				} else {
					items[i] = part
				}
			}
			cell = items
		}
	} else {
		if v == cs.null {
			if cs.required {
				return nil, requiredError(cs.name)
			}
			cell = nil
		}
	}

	if cs.datatype != nil {
		var err error
		if cell, err = readTyped(cell, cs.datatype); err != nil {
			if ce, ok := csvwerr.AsError(err); ok {
				return nil, ce.WithColumn(cs.name)
			}
			return nil, err
		}
	}
	return cell, nil
}

func readTyped(cell any, dt *Datatype) (any, error) {
	switch value := cell.(type) {
	case nil:
		return dt.readNil()
	case string:
		return dt.Read(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			var err error
			if s, ok := item.(string); ok {
				out[i], err = dt.Read(s)
			} else {
				out[i], err = dt.readNil()
			}
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return cell, nil
}

func requiredError(column string) error {
	return csvwerr.New(csvwerr.ErrRequiredMissing, "required column value is missing").WithColumn(column)
}

// ReadAll materializes all rows of the table.
func (t *Table) ReadAll() ([]Row, error) {
	var rows []Row
	for row, err := range t.Rows() {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
