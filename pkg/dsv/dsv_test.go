package dsv

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func readAll(t *testing.T, content string, d Dialect) [][]string {
	t.Helper()
	r, err := NewReader(strings.NewReader(content), d)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return records
}

func TestReader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		dialect func(Dialect) Dialect
		want    [][]string
	}{
		{
			name:    "plain",
			content: "a,b\n1,2\n",
			dialect: func(d Dialect) Dialect { return d },
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:    "crlf terminators",
			content: "a,b\r\n1,2\r\n",
			dialect: func(d Dialect) Dialect { return d },
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:    "tab delimiter",
			content: "a\tb\n1\t2\n",
			dialect: func(d Dialect) Dialect { d.Delimiter = "\t"; return d },
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:    "skip rows",
			content: "junk\na,b\n1,2\n",
			dialect: func(d Dialect) Dialect { d.SkipRows = 1; return d },
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:    "comments",
			content: "#note\na,b\n#other\n1,2\n",
			dialect: func(d Dialect) Dialect { d.CommentPrefix = "#"; return d },
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:    "skip columns",
			content: "x,a,b\nx,1,2\n",
			dialect: func(d Dialect) Dialect { d.SkipColumns = 1; return d },
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:    "blank rows skipped",
			content: "a,b\n\n1,2\n",
			dialect: func(d Dialect) Dialect { d.SkipBlankRows = true; return d },
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:    "trim",
			content: "a , b\n 1,2 \n",
			dialect: func(d Dialect) Dialect { return d },
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:    "trim start only",
			content: " a , b\n",
			dialect: func(d Dialect) Dialect { d.Trim = TrimStart; return d },
			want:    [][]string{{"a ", "b"}},
		},
		{
			name:    "no trim",
			content: "a , b\n",
			dialect: func(d Dialect) Dialect { d.Trim = TrimFalse; return d },
			want:    [][]string{{"a ", " b"}},
		},
		{
			name:    "quoted delimiter",
			content: "\"a,b\",c\n",
			dialect: func(d Dialect) Dialect { return d },
			want:    [][]string{{"a,b", "c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, tt.content, tt.dialect(Default()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("records = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReaderRejectsUnsupportedQuoteChar(t *testing.T) {
	d := Default()
	d.QuoteChar = "'"
	if _, err := NewReader(strings.NewReader("a\n"), d); err == nil {
		t.Fatal("NewReader accepted unsupported quoteChar")
	}
}

func TestFromMap(t *testing.T) {
	d, err := FromMap(map[string]any{
		"header":        false,
		"delimiter":     ";",
		"skipRows":      float64(2),
		"trim":          false,
		"commentPrefix": "#",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if d.Header || d.Delimiter != ";" || d.SkipRows != 2 || d.Trim != TrimFalse || d.CommentPrefix != "#" {
		t.Fatalf("FromMap = %+v", d)
	}
	if d.QuoteChar != `"` || !d.DoubleQuote {
		t.Fatalf("defaults not applied: %+v", d)
	}

	if _, err := FromMap(map[string]any{"nope": 1}); err == nil {
		t.Fatal("unknown property accepted")
	}
	if _, err := FromMap(map[string]any{"skipRows": "2"}); err == nil {
		t.Fatal("non-numeric skipRows accepted")
	}
}

func TestAsDict(t *testing.T) {
	d := Default()
	d.Header = false
	d.Delimiter = ";"

	m := d.AsDict(true)
	if m.Len() != 2 {
		t.Fatalf("AsDict(true) has %d keys", m.Len())
	}
	if v, _ := m.Get("header"); v != false {
		t.Fatalf("header = %v", v)
	}
	if v, _ := m.Get("delimiter"); v != ";" {
		t.Fatalf("delimiter = %v", v)
	}

	full := d.AsDict(false)
	if full.Len() != 13 {
		t.Fatalf("AsDict(false) has %d keys", full.Len())
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Default())
	records := [][]string{{"a", "b,c"}, {"1", "2"}}
	for _, record := range records {
		if err := w.WriteRow(record); err != nil {
			t.Fatalf("WriteRow: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := readAll(t, buf.String(), Default())
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("round trip = %v, want %v", got, records)
	}
}
