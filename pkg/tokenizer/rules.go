package tokenizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file
type RulesFile struct {
	SelfMapped bool        `yaml:"self_mapped,omitempty"`
	Tokens     []TokenRule `yaml:"tokens"`
}

// TokenRule represents a single pattern and the value it produces
type TokenRule struct {
	Text  string `yaml:"text"`
	Value string `yaml:"value"`
}

var numberWords = []string{
	"zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "nine",
}

// DigitRules returns rules mapping each decimal digit to itself.
func DigitRules() *RulesFile {
	rules := &RulesFile{}
	for d := range 10 {
		digit := fmt.Sprint(d)
		rules.Tokens = append(rules.Tokens, TokenRule{Text: digit, Value: digit})
	}
	return rules
}

// WordRules returns rules mapping the spelled-out numbers "zero" to "nine"
// onto their digits. The rules are self-mapped, so the digits themselves
// are recognised too.
func WordRules() *RulesFile {
	rules := &RulesFile{SelfMapped: true}
	for d, word := range numberWords {
		rules.Tokens = append(rules.Tokens, TokenRule{Text: word, Value: fmt.Sprint(d)})
	}
	return rules
}

// LoadRulesFile loads and parses a YAML rules file
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in rules file '%s': %w", filename, err)
	}

	return rules, nil
}

// ParseRules parses YAML rules from data.
func ParseRules(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

// MarshalRules renders rules as YAML.
func MarshalRules(rules *RulesFile) ([]byte, error) {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}
	return data, nil
}

// Entries returns the rules as table entries, in file order.
func (r *RulesFile) Entries() []Entry {
	entries := make([]Entry, len(r.Tokens))
	for i, rule := range r.Tokens {
		entries[i] = Entry{Pattern: rule.Text, Value: rule.Value}
	}
	return entries
}

// Table builds the token table described by the rules.
func (r *RulesFile) Table() *Table {
	if r.SelfMapped {
		return NewSelfMappedTable(r.Entries()...)
	}
	return NewTable(r.Entries()...)
}
