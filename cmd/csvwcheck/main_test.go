package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	md := `{
        "dialect": {"header": false},
        "tables": [
            {
                "url": "csv.txt",
                "tableSchema": {
                    "columns": [
                        {"name": "a", "datatype": "string"},
                        {"name": "b", "datatype": "integer"}
                    ]
                }
            }
        ]
    }`
	mdPath := filepath.Join(dir, "md.json")
	if err := os.WriteFile(mdPath, []byte(md), 0o666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "csv.txt"), []byte("abc,5\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	return mdPath
}

func TestValidateOK(t *testing.T) {
	mdPath := writeFixture(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"validate", mdPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "validates") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestValidateBadData(t *testing.T) {
	mdPath := writeFixture(t)
	if err := os.WriteFile(filepath.Join(filepath.Dir(mdPath), "csv.txt"),
		[]byte("abc,notanumber\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer

	code := run([]string{"validate", mdPath}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "fails to validate") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestValidateMissingMetadata(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"validate", "no-such-file.json"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
}

func TestDump(t *testing.T) {
	mdPath := writeFixture(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"dump", mdPath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"url": "csv.txt"`) {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"validate"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("exit code = %d", code)
	}
}
