package tokenizer

import (
	"fmt"
	"iter"
	"unicode/utf8"
)

// Direction is the order in which a scan reads its text.
type Direction int

const (
	Forward  Direction = iota // Left to right, finds the first token
	Backward                  // Right to left, finds the last token
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "unknown"
}

// MarshalText lets a Direction appear as its name in JSON and YAML output.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a direction name written by MarshalText.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "forward":
		*d = Forward
	case "backward":
		*d = Backward
	default:
		return fmt.Errorf("unknown direction '%s'", text)
	}
	return nil
}

// strategy captures everything that differs between a forward and a
// backward scan. It is chosen once per scan, never per rune.
type strategy struct {
	dir      Direction
	runes    func(string) iter.Seq2[int, rune]
	initial  func(pattern []rune) int
	step     int
	terminal func(pattern []rune) int
	span     func(at, size, length int) Span
}

var forward = strategy{
	dir:      Forward,
	runes:    forwardRunes,
	initial:  func([]rune) int { return 1 },
	step:     1,
	terminal: func(p []rune) int { return len(p) },
	span: func(at, size, length int) Span {
		return Span{Start: at + size - length, End: at + size}
	},
}

var backward = strategy{
	dir:      Backward,
	runes:    backwardRunes,
	initial:  func(p []rune) int { return len(p) - 2 },
	step:     -1,
	terminal: func([]rune) int { return -1 },
	span: func(at, _, length int) Span {
		return Span{Start: at, End: at + length}
	},
}

func strategyFor(dir Direction) *strategy {
	if dir == Backward {
		return &backward
	}
	return &forward
}

// forwardRunes yields the byte offset and rune of each character, front to
// back.
func forwardRunes(s string) iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for i, r := range s {
			if !yield(i, r) {
				return
			}
		}
	}
}

// backwardRunes yields the byte offset and rune of each character, back to
// front.
func backwardRunes(s string) iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for end := len(s); end > 0; {
			r, size := utf8.DecodeLastRuneInString(s[:end])
			end -= size
			if !yield(end, r) {
				return
			}
		}
	}
}
