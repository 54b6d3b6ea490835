package csvw

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	csvwerr "github.com/jacoelho/csvw/errors"
)

// TableGroup is the root of a metadata document: an ordered collection of
// tables plus the shared dialect and schema defaults they inherit.
type TableGroup struct {
	TableLike

	URL    string
	Tables []*Table

	// fname is the path the document was loaded from; relative table urls
	// resolve against its directory.
	fname string
}

// NewTableGroup builds a table group from a deserialized metadata document.
func NewTableGroup(v any) (*TableGroup, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, configErrorf("invalid table group description: %v", v)
	}
	base, declared := partitionProperties(raw)

	var url string
	if uv, ok := take(declared, "url"); ok {
		s, err := asString("url", uv)
		if err != nil {
			return nil, err
		}
		url = s
	}
	tablesValue, _ := take(declared, "tables")

	tl, err := newTableLike(declared)
	if err != nil {
		return nil, err
	}
	tl.DescriptionBase = base
	for k := range declared {
		return nil, configErrorf("unknown table group property: %s", k)
	}

	tg := &TableGroup{TableLike: tl, URL: url}
	tg.TableSchema.Inherited.parent = &tg.Inherited
	if tablesValue != nil {
		list, ok := tablesValue.([]any)
		if !ok {
			return nil, configErrorf("tables must be a list")
		}
		for _, item := range list {
			table, err := NewTable(item)
			if err != nil {
				return nil, err
			}
			table.parent = tg
			table.Inherited.parent = &tg.Inherited
			tg.Tables = append(tg.Tables, table)
		}
	}
	return tg, nil
}

// FromFile loads a metadata document from a JSON file.
func FromFile(path string) (*TableGroup, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	tg, err := NewTableGroup(doc)
	if err != nil {
		return nil, err
	}
	tg.fname = path
	return tg, nil
}

// Base returns the directory relative table urls resolve against; "" for a
// group built programmatically.
func (tg *TableGroup) Base() string {
	if tg.fname == "" {
		return ""
	}
	return filepath.Dir(tg.fname)
}

// TableDict maps each table's local name to the table.
func (tg *TableGroup) TableDict() map[string]*Table {
	out := make(map[string]*Table, len(tg.Tables))
	for _, table := range tg.Tables {
		out[table.LocalName()] = table
	}
	return out
}

// AsDict serializes the table group back to the metadata document shape.
func (tg *TableGroup) AsDict(omitDefaults bool) any {
	out := tg.baseDict(omitDefaults)
	putField(out, "url", stringOrNil(tg.URL), omitDefaults)
	if len(tg.Tables) > 0 {
		tables := make([]any, len(tg.Tables))
		for i, table := range tg.Tables {
			tables[i] = table.AsDict(omitDefaults)
		}
		out.Set("tables", tables)
	}
	tg.putTableLike(out, omitDefaults)
	return out
}

// ToFile serializes the table group to a JSON file. With omitDefaults,
// default-valued properties are dropped.
func (tg *TableGroup) ToFile(path string, omitDefaults bool) error {
	encoded, err := json.MarshalIndent(tg.AsDict(omitDefaults), "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(encoded, '\n'), 0o666)
}

// CheckReferentialIntegrity materializes all tables and verifies that every
// foreign key tuple occurs among the referenced table's rows. The scan is
// unindexed; dataset sizes this tool targets keep that acceptable.
func (tg *TableGroup) CheckReferentialIntegrity() error {
	tables := tg.TableDict()
	data := make(map[string][]Row, len(tables))
	for name, table := range tables {
		rows, err := table.ReadAll()
		if err != nil {
			return err
		}
		data[name] = rows
	}

	for name, table := range tables {
		for _, fk := range table.TableSchema.ForeignKeys {
			resource := string(fk.Reference.Resource)
			referenced, ok := data[resource]
			if !ok {
				return csvwerr.Newf(csvwerr.ErrReferentialIntegrity,
					"foreign key references unknown table %s", resource)
			}
			for _, row := range data[name] {
				key := rowKey(row, fk.ColumnReference)
				if !containsKey(referenced, fk.Reference.ColumnReference, key) {
					return csvwerr.Newf(csvwerr.ErrReferentialIntegrity,
						"key [%s] not found in table %s", strings.Join(key, ", "), resource)
				}
			}
		}
	}
	return nil
}

func containsKey(rows []Row, columns []string, key []string) bool {
	for _, row := range rows {
		if slices.Equal(rowKey(row, columns), key) {
			return true
		}
	}
	return false
}

// rowKey renders the values at the given columns as per-cell strings; tuples
// are compared element-wise, never as a joined string.
func rowKey(row Row, columns []string) []string {
	parts := make([]string, len(columns))
	for i, column := range columns {
		v, _ := row.Get(column)
		parts[i] = fmt.Sprintf("%v", v)
	}
	return parts
}
