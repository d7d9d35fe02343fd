package tokenizer

import (
	"encoding/json"
	"fmt"
)

// Span is the half-open byte range [Start, End) of a match in the scanned
// text.
type Span struct {
	Start int `cbor:"start"`
	End   int `cbor:"end"`
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [2]int{s.Start, s.End}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [2]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start, s.End = arr[0], arr[1]
	return nil
}

// Match is a pattern found by a scan together with its mapped value.
type Match struct {
	Pattern   string    `json:"pattern" cbor:"pattern"`
	Value     string    `json:"value" cbor:"value"`
	Direction Direction `json:"direction" cbor:"direction"`
	Span      Span      `json:"span" cbor:"span"`
}

func (m Match) String() string {
	return fmt.Sprintf("%q=%q@[%d,%d)", m.Pattern, m.Value, m.Span.Start, m.Span.End)
}
