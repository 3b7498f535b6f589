// Package model defines the core vocabulary data types.
package model

import "time"

// Word is a vocabulary item in a word book.
type Word struct {
	ID         string    `json:"id"`
	Book       string    `json:"book"`
	Text       string    `json:"text"`
	Phonetic   string    `json:"phonetic,omitempty"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"created_at"`
}

// ErrorRecord is one logged mistake for a word. Sessions produce at most one
// record per word; storage keeps one per word and kind.
type ErrorRecord struct {
	WordID         string    `json:"word_id"`
	WordText       string    `json:"word_text"`
	WordDefinition string    `json:"word_definition"`
	WordPhonetic   string    `json:"word_phonetic,omitempty"`
	Date           time.Time `json:"date"`
	Kind           ErrorKind `json:"kind"`
	Count          int       `json:"count,omitempty"`
}

// NewErrorRecord builds an error record from a word.
func NewErrorRecord(w Word, kind ErrorKind, date time.Time) ErrorRecord {
	return ErrorRecord{
		WordID:         w.ID,
		WordText:       w.Text,
		WordDefinition: w.Definition,
		WordPhonetic:   w.Phonetic,
		Date:           date,
		Kind:           kind,
	}
}

// Session is a finished study or dictation run as kept in history.
type Session struct {
	ID        string    `json:"id"`
	Kind      ErrorKind `json:"kind"`
	Book      string    `json:"book"`
	Total     int       `json:"total"`
	Errors    int       `json:"errors"`
	Learned   int       `json:"learned"`
	CreatedAt time.Time `json:"created_at"`
}

// Book summarizes a word book.
type Book struct {
	Name    string `json:"name"`
	Words   int    `json:"words"`
	Learned int    `json:"learned"`
}
