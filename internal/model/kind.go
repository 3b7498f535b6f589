package model

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// ErrorKind tells which session type produced an error record.
type ErrorKind int

const (
	KindLearning  ErrorKind = iota + 1 // Study (recognition) session.
	KindDictation                      // Dictation (spelling) session.
)

var (
	kindNames  = [...]string{KindLearning: "learning", KindDictation: "dictation"}
	kindByName = map[string]ErrorKind{
		"learning":  KindLearning,
		"dictation": KindDictation,
	}
)

var (
	_ fmt.Stringer             = ErrorKind(0)
	_ json.Marshaler           = ErrorKind(0)
	_ json.Unmarshaler         = (*ErrorKind)(nil)
	_ encoding.TextMarshaler   = ErrorKind(0)
	_ encoding.TextUnmarshaler = (*ErrorKind)(nil)
)

// IsValid reports whether k is a known kind.
func (k ErrorKind) IsValid() bool {
	return k >= KindLearning && k <= KindDictation
}

// String returns "learning" or "dictation", or "ErrorKind(n)" for invalid values.
func (k ErrorKind) String() string {
	if k.IsValid() {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseErrorKind parses a kind name.
func ParseErrorKind(s string) (ErrorKind, error) {
	var k ErrorKind
	err := k.UnmarshalText([]byte(s))
	return k, err
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("model: invalid error kind: %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	v, ok := kindByName[string(text)]
	if !ok {
		return fmt.Errorf("model: invalid error kind: %q", text)
	}
	*k = v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (k ErrorKind) MarshalJSON() ([]byte, error) {
	text, err := k.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *ErrorKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("model: invalid error kind: %s", data)
	}
	return k.UnmarshalText([]byte(s))
}
