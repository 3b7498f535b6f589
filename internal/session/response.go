package session

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"
)

// Response is the user's self-graded recall of a study entry.
type Response int

const (
	Known   Response = iota + 1 // Recognized; the word is learned.
	Vague                       // Partly recognized; one more exposure.
	Unknown                     // Not recognized; three more exposures.
)

var (
	responseNames  = [...]string{Known: "known", Vague: "vague", Unknown: "unknown"}
	responseByName = map[string]Response{
		"known":   Known,
		"vague":   Vague,
		"unknown": Unknown,
		"k":       Known,
		"v":       Vague,
		"u":       Unknown,
	}
)

var (
	_ fmt.Stringer             = Response(0)
	_ json.Marshaler           = Response(0)
	_ json.Unmarshaler         = (*Response)(nil)
	_ encoding.TextMarshaler   = Response(0)
	_ encoding.TextUnmarshaler = (*Response)(nil)
)

// IsValid reports whether r is Known, Vague or Unknown.
func (r Response) IsValid() bool {
	return r >= Known && r <= Unknown
}

// String returns "known", "vague" or "unknown", or "Response(n)" for invalid values.
func (r Response) String() string {
	if r.IsValid() {
		return responseNames[r]
	}
	return fmt.Sprintf("Response(%d)", int(r))
}

// requeueCount is how many extra entries a response appends to the queue.
func (r Response) requeueCount() int {
	switch r {
	case Vague:
		return 1
	case Unknown:
		return 3
	}
	return 0
}

// ParseResponse accepts a response name or its one-letter shortcut, in any case.
func ParseResponse(s string) (Response, error) {
	r, ok := responseByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidResponse, s)
	}
	return r, nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Response) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResponse, int(r))
	}
	return []byte(responseNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Response) UnmarshalText(text []byte) error {
	v, err := ParseResponse(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalJSON implements json.Marshaler. Response serializes as a JSON string.
func (r Response) MarshalJSON() ([]byte, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (r *Response) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidResponse, data)
	}
	return r.UnmarshalText([]byte(s))
}

// Grade is the state of the current dictation entry.
type Grade int

const (
	Pending   Grade = iota // Waiting for a submission.
	Correct                // Typed text matched the word.
	Incorrect              // Typed text did not match.
)

var gradeNames = [...]string{Pending: "pending", Correct: "correct", Incorrect: "incorrect"}

func (g Grade) String() string {
	if g >= Pending && g <= Incorrect {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// MarshalText implements encoding.TextMarshaler.
func (g Grade) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}
