package ordered

import (
	"encoding/json"
	"testing"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("a", 4) // overwrite keeps position

	want := []string{"b", "a", "c"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if v, ok := m.Get("a"); !ok || v != 4 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
}

func TestSetDefault(t *testing.T) {
	m := NewMap()
	m.Set("k", "first")
	m.SetDefault("k", "second")
	m.SetDefault("l", "third")

	if v, _ := m.Get("k"); v != "first" {
		t.Fatalf("Get(k) = %v, want first", v)
	}
	if v, _ := m.Get("l"); v != "third" {
		t.Fatalf("Get(l) = %v, want third", v)
	}
}

func TestMarshalJSON(t *testing.T) {
	inner := NewMap()
	inner.Set("base", "string")
	inner.Set("length", 5)

	m := NewMap()
	m.Set("@context", "http://www.w3.org/ns/csvw")
	m.Set("datatype", inner)
	m.Set("tables", []any{"a.csv"})

	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"@context":"http://www.w3.org/ns/csvw","datatype":{"base":"string","length":5},"tables":["a.csv"]}`
	if string(b) != want {
		t.Fatalf("Marshal = %s, want %s", b, want)
	}
}

func TestItems(t *testing.T) {
	m := NewMap()
	m.Set("x", 1)
	m.Set("y", 2)

	var keys []string
	for k, v := range m.Items() {
		keys = append(keys, k)
		if v == nil {
			t.Fatalf("nil value for %s", k)
		}
	}
	if len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
		t.Fatalf("Items order = %v", keys)
	}
}
