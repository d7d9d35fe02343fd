package tokenizer

import (
	"reflect"
	"testing"
)

func TestStartersFor(t *testing.T) {
	table := NewTableFromMap(map[string]string{
		"one":   "1",
		"three": "3",
		"two":   "2",
		"t":     "T",
		"x":     "X",
	})

	tests := []struct {
		c        rune
		dir      Direction
		expected []string
	}{
		{'t', Forward, []string{"three", "two"}},
		{'o', Forward, []string{"one"}},
		{'e', Backward, []string{"one", "three"}},
		{'o', Backward, []string{"two"}},
		{'x', Forward, nil},
		{'q', Backward, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.c)+"/"+tt.dir.String(), func(t *testing.T) {
			got := table.StartersFor(tt.c, tt.dir)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestStartersKeepInsertionOrder(t *testing.T) {
	table := NewTable(
		Entry{Pattern: "nine", Value: "9"},
		Entry{Pattern: "nil", Value: "0"},
		Entry{Pattern: "no", Value: "-"},
	)
	expected := []string{"nine", "nil", "no"}
	if got := table.StartersFor('n', Forward); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestSingleRunePatternsAreNotIndexed(t *testing.T) {
	table := NewTable(Entry{Pattern: "a", Value: "A"}, Entry{Pattern: "é", Value: "E"})
	for _, dir := range []Direction{Forward, Backward} {
		if got := table.StartersFor('a', dir); got != nil {
			t.Errorf("Expected no %s starters for 'a', got %v", dir, got)
		}
		if got := table.StartersFor('é', dir); got != nil {
			t.Errorf("Expected no %s starters for 'é', got %v", dir, got)
		}
	}
	if v, ok := table.Lookup("é"); !ok || v != "E" {
		t.Errorf("Expected 'é' to map to 'E', got %q (%v)", v, ok)
	}
}

func TestEmptyPatternsIgnored(t *testing.T) {
	table := NewTable(Entry{Pattern: "", Value: "nothing"}, Entry{Pattern: "ab", Value: "x"})
	if table.Len() != 1 {
		t.Errorf("Expected 1 pattern, got %d", table.Len())
	}
	if _, ok := table.Lookup(""); ok {
		t.Errorf("Expected empty pattern to be ignored")
	}
}

func TestSelfMappedTable(t *testing.T) {
	words := WordRules().Entries()
	table := NewSelfMappedTable(words...)

	for _, e := range words {
		v, ok := table.Lookup(e.Value)
		if !ok {
			t.Errorf("Expected value %q to be a pattern", e.Value)
			continue
		}
		if v != e.Value {
			t.Errorf("Expected %q to map to itself, got %q", e.Value, v)
		}
		if v, _ := table.Lookup(e.Pattern); v != e.Value {
			t.Errorf("Expected %q to map to %q, got %q", e.Pattern, e.Value, v)
		}
	}

	if table.Len() != 2*len(words) {
		t.Errorf("Expected %d patterns, got %d", 2*len(words), table.Len())
	}
}

func TestSelfMappedOverridesExistingPattern(t *testing.T) {
	// "b" is both a pattern (b->c) and a value (a->b); self-mapping wins.
	table := NewSelfMappedTable(
		Entry{Pattern: "a", Value: "b"},
		Entry{Pattern: "b", Value: "c"},
	)
	for _, p := range []string{"b", "c"} {
		if v, _ := table.Lookup(p); v != p {
			t.Errorf("Expected %q to map to itself, got %q", p, v)
		}
	}
	if v, _ := table.Lookup("a"); v != "b" {
		t.Errorf("Expected 'a' to map to 'b', got %q", v)
	}
	if table.Len() != 3 {
		t.Errorf("Expected 3 patterns, got %d", table.Len())
	}

	m, err := NewTokenizer(table).FirstToken("xb")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Pattern != "b" || m.Value != "b" {
		t.Errorf("Expected b=b, got %v", m)
	}
}

func TestSelfMappedOverrideKeepsPosition(t *testing.T) {
	// "two" is registered before "tao", so it stays ahead of it among the
	// starters ending in 'o' after being remapped to itself.
	table := NewSelfMappedTable(
		Entry{Pattern: "two", Value: "2"},
		Entry{Pattern: "tao", Value: "two"},
	)
	expected := []string{"two", "tao"}
	if got := table.StartersFor('o', Backward); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if v, _ := table.Lookup("two"); v != "two" {
		t.Errorf("Expected 'two' to map to itself, got %q", v)
	}
}

func TestEntriesSorted(t *testing.T) {
	table := NewTable(Entry{Pattern: "two", Value: "2"}, Entry{Pattern: "1", Value: "1"}, Entry{Pattern: "one", Value: "1"})
	expected := []Entry{{"1", "1"}, {"one", "1"}, {"two", "2"}}
	if got := table.Entries(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestDirectionText(t *testing.T) {
	for _, dir := range []Direction{Forward, Backward} {
		text, err := dir.MarshalText()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		var parsed Direction
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if parsed != dir {
			t.Errorf("Expected %s, got %s", dir, parsed)
		}
	}

	var d Direction
	if err := d.UnmarshalText([]byte("sideways")); err == nil {
		t.Errorf("Expected error for unknown direction")
	}
}
