package tokenizer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrNoTokenFound is returned when a scan reaches the end of its text
// without completing any pattern.
var ErrNoTokenFound = errors.New("no token found")

// Tokenizer finds the first or last token of a text in a single pass.
type Tokenizer struct {
	table *Table
}

// candidate is a multi-rune pattern partially matched during one scan.
type candidate struct {
	pattern int // Index into Table.patterns
	cursor  int // Next rune of the pattern to compare
}

// NewTokenizer creates a tokenizer over table.
func NewTokenizer(table *Table) *Tokenizer {
	return &Tokenizer{table: table}
}

// NewTokenizerWithRules creates a tokenizer from a rules file.
func NewTokenizerWithRules(rules *RulesFile) *Tokenizer {
	return NewTokenizer(rules.Table())
}

// Table returns the token table the tokenizer scans with.
func (t *Tokenizer) Table() *Table {
	return t.table
}

// FirstToken returns the first token of text reading left to right.
func (t *Tokenizer) FirstToken(text string) (Match, error) {
	return t.Scan(text, Forward)
}

// LastToken returns the last token of text reading right to left.
func (t *Tokenizer) LastToken(text string) (Match, error) {
	return t.Scan(text, Backward)
}

// Scan reads text once in direction dir and returns the first pattern to be
// fully matched.
//
// A one-rune pattern matches the moment it is read, even if a longer
// candidate was in progress. Otherwise each live candidate either advances
// on the current rune or is dropped; the earliest registered candidate to
// complete wins. New candidates are registered after the live ones have
// been advanced.
//
// A byte that is not valid UTF-8 never matches, not even a "\uFFFD"
// pattern, and drops every live candidate.
func (t *Tokenizer) Scan(text string, dir Direction) (Match, error) {
	s := strategyFor(dir)
	starters := t.table.starterIndex(s.dir)
	live := make([]candidate, 0, 8)

	for at, c := range s.runes(text) {
		if c == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[at:]); size == 1 {
				live = live[:0]
				continue
			}
		}

		if value, ok := t.table.singles[c]; ok {
			_, size := utf8.DecodeRuneInString(text[at:])
			return Match{
				Pattern:   string(c),
				Value:     value,
				Direction: s.dir,
				Span:      s.span(at, size, size),
			}, nil
		}

		n := 0
		for _, cand := range live {
			p := t.table.patterns[cand.pattern]
			if p[cand.cursor] != c {
				continue
			}
			cand.cursor += s.step
			if cand.cursor == s.terminal(p) {
				return t.complete(s, cand.pattern, text, at), nil
			}
			live[n] = cand
			n++
		}
		live = live[:n]

		for _, idx := range starters[c] {
			live = append(live, candidate{pattern: idx, cursor: s.initial(t.table.patterns[idx])})
		}
	}

	return Match{}, fmt.Errorf("%w scanning %s through %q", ErrNoTokenFound, s.dir, text)
}

// complete builds the match for a pattern completed by the rune at byte
// offset at of text.
func (t *Tokenizer) complete(s *strategy, idx int, text string, at int) Match {
	pattern := t.table.texts[idx]
	value, _ := t.table.Lookup(pattern)
	_, size := utf8.DecodeRuneInString(text[at:])
	return Match{
		Pattern:   pattern,
		Value:     value,
		Direction: s.dir,
		Span:      s.span(at, size, len(pattern)),
	}
}
