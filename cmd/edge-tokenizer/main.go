package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spicery/edge-tokenizer/pkg/calibration"
	"github.com/spicery/edge-tokenizer/pkg/tokenizer"
)

const (
	version = "0.1.0"
	usage   = `edge-tokenizer - Find the first and last token of each input line

Usage:
  edge-tokenizer [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --input <file>        Input file (defaults to stdin)
  --output <file>       Output file (defaults to stdout)
  --rules <file>        YAML rules file with the token table (optional)
  --words               Use the built-in number words instead of digits
  --make-rules          Generate the selected built-in rules as YAML to stdout
  --fold-case           Lowercase each line before scanning
  --skip-unmatched      Skip lines with no token instead of failing
  --format <fmt>        Output format: json (default) or cbor
  --verbose             Log progress to stderr
  --exit0               Exit with code 0 even on errors (suppress stderr)

Examples:
  edge-tokenizer --input calibration.txt             # Digits only
  edge-tokenizer --words --input calibration.txt     # Digits and number words
  edge-tokenizer --rules custom.yaml                 # Use a custom token table
  edge-tokenizer --words --make-rules > words.yaml   # Dump the built-in rules
  echo "a1b2c3" | edge-tokenizer                     # Read from stdin

Each line produces one record holding its first token, last token and
calibration value; a final record carries the sum.
`
)

// encoder is satisfied by both json.Encoder and cbor.Encoder.
type encoder interface {
	Encode(v any) error
}

func main() {
	var showHelp, showVersion, exit0, makeRules, words, foldCase, skipUnmatched, verbose bool
	var inputFile, outputFile, rulesFile, format string

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&exit0, "exit0", false, "Exit with code 0 even on errors")
	flag.BoolVar(&makeRules, "make-rules", false, "Generate built-in rules YAML")
	flag.BoolVar(&words, "words", false, "Use number words as well as digits")
	flag.BoolVar(&foldCase, "fold-case", false, "Lowercase lines before scanning")
	flag.BoolVar(&skipUnmatched, "skip-unmatched", false, "Skip lines with no token")
	flag.BoolVar(&verbose, "verbose", false, "Log progress to stderr")
	flag.StringVar(&inputFile, "input", "", "Input file (defaults to stdin)")
	flag.StringVar(&outputFile, "output", "", "Output file (defaults to stdout)")
	flag.StringVar(&rulesFile, "rules", "", "YAML rules file (optional)")
	flag.StringVar(&format, "format", "json", "Output format: json or cbor")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level)

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("edge-tokenizer version %s\n", version)
		os.Exit(0)
	}

	if makeRules {
		if err := writeRules(os.Stdout, builtinRules(words)); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating rules: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Reject any positional arguments
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if format != "json" && format != "cbor" {
		fmt.Fprintf(os.Stderr, "Error: Unknown format '%s'. Use json or cbor.\n", format)
		os.Exit(1)
	}

	// Select the token table
	rules := builtinRules(words)
	if rulesFile != "" {
		var err error
		rules, err = tokenizer.LoadRulesFile(rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rules file '%s': %v\n", rulesFile, err)
			os.Exit(1)
		}
	}
	tok := tokenizer.NewTokenizerWithRules(rules)
	log.Debug().Int("patterns", tok.Table().Len()).Str("rules", rulesFile).Bool("words", words).Msg("token table ready")

	// Open input
	var input io.Reader = os.Stdin
	if inputFile != "" {
		file, err := os.Open(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file '%s': %v\n", inputFile, err)
			os.Exit(1)
		}
		defer file.Close()
		input = file
	}

	// Prepare output destination
	var output io.Writer = os.Stdout
	var outputCloser io.Closer
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
		output = file
		outputCloser = file
	}

	enc := newEncoder(output, format)
	c := calibration.New(tok, calibration.Options{
		FoldCase:      foldCase,
		SkipUnmatched: skipUnmatched,
		Logger:        log.Logger,
	})

	// Records are written as they are produced; the summary follows even
	// when the run stops early.
	summary, runErr := c.Run(input, func(r calibration.Record) error {
		return enc.Encode(r)
	})
	if err := enc.Encode(summary); err != nil {
		fmt.Fprintf(os.Stderr, "Encoding error: %v\n", err)
		os.Exit(1)
	}

	// Close output file if we opened one
	if outputCloser != nil {
		if err := outputCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
	}

	if runErr != nil {
		if exit0 {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Calibration error: %v\n", runErr)
		os.Exit(1)
	}
}

// builtinRules returns the number-word rules when words is set, otherwise
// the digit rules.
func builtinRules(words bool) *tokenizer.RulesFile {
	if words {
		return tokenizer.WordRules()
	}
	return tokenizer.DigitRules()
}

// writeRules outputs rules in YAML format.
func writeRules(w io.Writer, rules *tokenizer.RulesFile) error {
	data, err := tokenizer.MarshalRules(rules)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func newEncoder(w io.Writer, format string) encoder {
	if format == "cbor" {
		return cbor.NewEncoder(w)
	}
	return json.NewEncoder(w)
}
