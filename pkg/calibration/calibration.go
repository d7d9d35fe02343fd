// Package calibration turns lines of text into calibration values: the
// number formed by the value of a line's first token followed by the value
// of its last token.
package calibration

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spicery/edge-tokenizer/pkg/tokenizer"
)

// ErrNotNumeric is returned when the joined token values of a line do not
// form an integer.
var ErrNotNumeric = errors.New("calibration value is not numeric")

// Options control how lines are calibrated. Lines may be of any length.
type Options struct {
	// FoldCase lowercases each line before scanning, so "Seven" matches
	// "seven".
	FoldCase bool
	// SkipUnmatched logs and skips lines without a token instead of
	// failing the run.
	SkipUnmatched bool
	Logger        zerolog.Logger
}

// Record is the calibration of a single line. Match spans are byte offsets
// into the line as read, also when FoldCase is set.
type Record struct {
	Line  int             `json:"line" cbor:"line"`
	First tokenizer.Match `json:"first" cbor:"first"`
	Last  tokenizer.Match `json:"last" cbor:"last"`
	Value int             `json:"value" cbor:"value"`
}

// Summary totals a run over many lines.
type Summary struct {
	Lines   int `json:"lines" cbor:"lines"`
	Skipped int `json:"skipped" cbor:"skipped"`
	Sum     int `json:"sum" cbor:"sum"`
}

// Calibrator computes calibration values with a tokenizer. It is not safe
// for concurrent use.
type Calibrator struct {
	tok  *tokenizer.Tokenizer
	opts Options
	fold cases.Caser
}

// New creates a calibrator. A zero Options.Logger discards output.
func New(tok *tokenizer.Tokenizer, opts Options) *Calibrator {
	c := &Calibrator{tok: tok, opts: opts}
	if opts.FoldCase {
		c.fold = cases.Lower(language.Und)
	}
	return c
}

// Line calibrates the text of line number n.
func (c *Calibrator) Line(n int, text string) (Record, error) {
	scanned, origin := text, []int(nil)
	if c.opts.FoldCase {
		scanned, origin = c.foldLine(text)
	}

	first, err := c.tok.FirstToken(scanned)
	if err != nil {
		return Record{}, fmt.Errorf("line %d: %w", n, err)
	}
	tokensMatched.WithLabelValues(first.Direction.String()).Inc()

	last, err := c.tok.LastToken(scanned)
	if err != nil {
		return Record{}, fmt.Errorf("line %d: %w", n, err)
	}
	tokensMatched.WithLabelValues(last.Direction.String()).Inc()

	if origin != nil {
		first.Span = originalSpan(first.Span, origin, text)
		last.Span = originalSpan(last.Span, origin, text)
	}

	joined := first.Value + last.Value
	value, err := strconv.Atoi(joined)
	if err != nil {
		return Record{}, fmt.Errorf("line %d: %w: %q", n, ErrNotNumeric, joined)
	}

	return Record{Line: n, First: first, Last: last, Value: value}, nil
}

// foldLine lowercases text one rune at a time. origin[i] is the byte offset
// in text of the rune that produced byte i of the folded line. Invalid
// bytes are copied through unchanged.
func (c *Calibrator) foldLine(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	origin := make([]int, 0, len(text))
	for at := 0; at < len(text); {
		r, size := utf8.DecodeRuneInString(text[at:])
		piece := text[at : at+size]
		if r != utf8.RuneError || size > 1 {
			piece = c.fold.String(piece)
		}
		b.WriteString(piece)
		for range len(piece) {
			origin = append(origin, at)
		}
		at += size
	}
	return b.String(), origin
}

// originalSpan maps a span over a folded line back onto text. A match that
// ends inside the folding of a rune extends to the end of that rune.
func originalSpan(span tokenizer.Span, origin []int, text string) tokenizer.Span {
	lastRune := origin[span.End-1]
	_, size := utf8.DecodeRuneInString(text[lastRune:])
	return tokenizer.Span{Start: origin[span.Start], End: lastRune + size}
}

// Run calibrates every line read from r, passing each record to emit, and
// returns the totals. Line numbers start at 1. A line without a token ends
// the run with an error unless SkipUnmatched is set; the summary up to that
// point is still returned.
func (c *Calibrator) Run(r io.Reader, emit func(Record) error) (Summary, error) {
	var summary Summary
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), math.MaxInt)
	for scanner.Scan() {
		summary.Lines++
		linesProcessed.Inc()

		record, err := c.Line(summary.Lines, scanner.Text())
		if err != nil {
			if c.opts.SkipUnmatched && errors.Is(err, tokenizer.ErrNoTokenFound) {
				summary.Skipped++
				linesSkipped.Inc()
				c.opts.Logger.Debug().Int("line", summary.Lines).Err(err).Msg("skipping line")
				continue
			}
			return summary, err
		}

		summary.Sum += record.Value
		if emit != nil {
			if err := emit(record); err != nil {
				return summary, fmt.Errorf("line %d: %w", summary.Lines, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read input: %w", err)
	}

	c.opts.Logger.Debug().
		Int("lines", summary.Lines).
		Int("skipped", summary.Skipped).
		Int("sum", summary.Sum).
		Msg("calibration complete")
	return summary, nil
}
