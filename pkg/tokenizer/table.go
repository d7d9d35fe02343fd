package tokenizer

import (
	"sort"
	"unicode/utf8"
)

// Entry is a single pattern and the value it maps to.
type Entry struct {
	Pattern string
	Value   string
}

// Table holds the pattern to value mapping together with the starter
// indexes used by the scanner. A Table is read-only once built and may be
// shared between goroutines.
type Table struct {
	values  map[string]string
	singles map[rune]string // One-rune patterns, checked by membership

	// Multi-rune patterns in insertion order. heads and tails index into
	// these by first and last rune respectively.
	patterns [][]rune
	texts    []string
	heads    map[rune][]int
	tails    map[rune][]int
}

// NewTable builds a table from entries, keeping their order for the starter
// indexes. Empty patterns are ignored. A repeated pattern keeps its first
// position and takes the last value.
func NewTable(entries ...Entry) *Table {
	t := &Table{
		values:  make(map[string]string, len(entries)),
		singles: make(map[rune]string),
		heads:   make(map[rune][]int),
		tails:   make(map[rune][]int),
	}
	for _, e := range entries {
		t.add(e.Pattern, e.Value)
	}
	return t
}

// NewTableFromMap builds a table from a map. Keys are inserted in sorted
// order so the result does not depend on map iteration.
func NewTableFromMap(m map[string]string) *Table {
	return NewTable(sortedEntries(m)...)
}

// NewSelfMappedTable builds a table from entries plus, for every value, an
// entry mapping that value to itself. This lets a canonical symbol ("1") be
// recognised alongside its word form ("one") in the same scan. A value that
// is already a pattern is remapped to itself and keeps its position.
func NewSelfMappedTable(entries ...Entry) *Table {
	all := make([]Entry, 0, 2*len(entries))
	all = append(all, entries...)
	for _, e := range entries {
		all = append(all, Entry{Pattern: e.Value, Value: e.Value})
	}
	return NewTable(all...)
}

func (t *Table) add(pattern, value string) {
	if pattern == "" {
		return
	}
	if _, exists := t.values[pattern]; exists {
		t.values[pattern] = value
		if r, size := utf8.DecodeRuneInString(pattern); size == len(pattern) {
			t.singles[r] = value
		}
		return
	}
	t.values[pattern] = value

	runes := []rune(pattern)
	if len(runes) == 1 {
		t.singles[runes[0]] = value
		return
	}

	idx := len(t.patterns)
	t.patterns = append(t.patterns, runes)
	t.texts = append(t.texts, pattern)
	head, tail := runes[0], runes[len(runes)-1]
	t.heads[head] = append(t.heads[head], idx)
	t.tails[tail] = append(t.tails[tail], idx)
}

// Lookup returns the value mapped to pattern.
func (t *Table) Lookup(pattern string) (string, bool) {
	v, ok := t.values[pattern]
	return v, ok
}

// StartersFor returns, in insertion order, the multi-rune patterns that can
// begin matching at c when reading in direction dir: patterns starting with
// c for Forward, patterns ending with c for Backward.
func (t *Table) StartersFor(c rune, dir Direction) []string {
	idxs := t.starterIndex(dir)[c]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = t.texts[idx]
	}
	return out
}

func (t *Table) starterIndex(dir Direction) map[rune][]int {
	if dir == Backward {
		return t.tails
	}
	return t.heads
}

// Len returns the number of distinct patterns in the table.
func (t *Table) Len() int {
	return len(t.values)
}

// Entries returns every pattern with its value, sorted by pattern.
func (t *Table) Entries() []Entry {
	return sortedEntries(t.values)
}

func sortedEntries(m map[string]string) []Entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Pattern: k, Value: m[k]}
	}
	return entries
}
