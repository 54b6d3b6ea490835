package dsv

import (
	"encoding/csv"
	"io"
	"os"
)

// Writer emits records under the dialect's delimiter.
type Writer struct {
	cw *csv.Writer
}

// NewWriter returns a writer targeting w. Only the delimiter influences the
// output; quoting follows the RFC 4180 rules.
func NewWriter(w io.Writer, d Dialect) *Writer {
	cw := csv.NewWriter(w)
	if d.Delimiter != "" {
		cw.Comma = []rune(d.Delimiter)[0]
	}
	return &Writer{cw: cw}
}

// WriteRow appends one record.
func (w *Writer) WriteRow(record []string) error {
	return w.cw.Write(record)
}

// Flush writes buffered records and reports any write error.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}

// WriteFile writes all records to the file at path.
func WriteFile(path string, records [][]string, d Dialect) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := NewWriter(f, d)
	for _, record := range records {
		if err := w.WriteRow(record); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
