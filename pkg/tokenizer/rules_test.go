package tokenizer

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadRulesFile(t *testing.T) {
	content := `self_mapped: true
tokens:
  - text: uno
    value: "1"
  - text: dos
    value: "2"
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	rules, err := LoadRulesFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !rules.SelfMapped {
		t.Errorf("Expected self_mapped to be true")
	}
	if len(rules.Tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(rules.Tokens))
	}

	tok := NewTokenizerWithRules(rules)
	first, err := tok.FirstToken("xxdosuno")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first.Pattern != "dos" || first.Value != "2" {
		t.Errorf("Expected dos=2, got %v", first)
	}
	last, err := tok.LastToken("xx2uno1x")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if last.Pattern != "1" {
		t.Errorf("Expected '1', got %v", last)
	}
}

func TestLoadRulesFileErrors(t *testing.T) {
	_, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read rules file") {
		t.Errorf("Expected read error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("tokens: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}
	_, err = LoadRulesFile(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestRulesYAMLRoundTrip(t *testing.T) {
	for name, rules := range map[string]*RulesFile{"digits": DigitRules(), "words": WordRules()} {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalRules(rules)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			parsed, err := ParseRules(data)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(parsed, rules) {
				t.Errorf("Expected %+v, got %+v", rules, parsed)
			}
		})
	}
}

func TestBuiltinRules(t *testing.T) {
	digits := DigitRules().Table()
	if digits.Len() != 10 {
		t.Errorf("Expected 10 digit patterns, got %d", digits.Len())
	}

	words := WordRules().Table()
	if words.Len() != 20 {
		t.Errorf("Expected 20 word and digit patterns, got %d", words.Len())
	}
	if v, _ := words.Lookup("seven"); v != "7" {
		t.Errorf("Expected seven=7, got %q", v)
	}
	if v, _ := words.Lookup("0"); v != "0" {
		t.Errorf("Expected 0=0, got %q", v)
	}
}
