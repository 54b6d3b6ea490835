package dsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader yields the records of a delimited file after applying the dialect's
// row-level filters (skipped rows, comments, blank rows) and cell-level trim
// policy.
type Reader struct {
	dialect Dialect
	cr      *csv.Reader
}

// NewReader reads all of r, applies the dialect's line-level filters and
// returns a record reader over the remaining content.
func NewReader(r io.Reader, d Dialect) (*Reader, error) {
	if d.QuoteChar != "" && d.QuoteChar != `"` {
		return nil, fmt.Errorf("unsupported quoteChar: %s", d.QuoteChar)
	}
	if d.Delimiter == "" {
		return nil, fmt.Errorf("dialect delimiter must not be empty")
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines := splitLines(string(raw), d.LineTerminators)

	if d.SkipRows > 0 {
		if d.SkipRows >= len(lines) {
			lines = nil
		} else {
			lines = lines[d.SkipRows:]
		}
	}
	kept := lines[:0:0]
	for _, line := range lines {
		if d.CommentPrefix != "" && strings.HasPrefix(line, d.CommentPrefix) {
			continue
		}
		if d.SkipBlankRows && line == "" {
			continue
		}
		kept = append(kept, line)
	}

	cr := csv.NewReader(strings.NewReader(strings.Join(kept, "\n")))
	cr.Comma = []rune(d.Delimiter)[0]
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = !d.DoubleQuote
	return &Reader{dialect: d, cr: cr}, nil
}

// splitLines breaks content on any of the configured terminators, longest
// first so "\r\n" is not consumed as a bare "\n". A trailing terminator does
// not produce an empty final line.
func splitLines(content string, terminators []string) []string {
	if len(terminators) == 0 {
		terminators = []string{"\r\n", "\n"}
	}
	normalized := content
	for _, term := range terminators {
		if term == "\n" {
			continue
		}
		normalized = strings.ReplaceAll(normalized, term, "\n")
	}
	normalized = strings.TrimSuffix(normalized, "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}

// Read returns the next record with skipped columns removed and the trim
// policy applied. It returns io.EOF after the last record.
func (r *Reader) Read() ([]string, error) {
	for {
		record, err := r.cr.Read()
		if err != nil {
			return nil, err
		}
		if r.dialect.SkipColumns > 0 {
			if r.dialect.SkipColumns >= len(record) {
				record = nil
			} else {
				record = record[r.dialect.SkipColumns:]
			}
		}
		for i, cell := range record {
			record[i] = r.dialect.trimCell(cell)
		}
		if r.dialect.SkipBlankRows && allEmpty(record) {
			continue
		}
		return record, nil
	}
}

// ReadAll returns all remaining records.
func (r *Reader) ReadAll() ([][]string, error) {
	var out [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
}

func allEmpty(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}

// ReadFile reads all records of the file at path under the dialect.
func ReadFile(path string, d Dialect) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := NewReader(f, d)
	if err != nil {
		return nil, err
	}
	return r.ReadAll()
}
