// Package store provides the word book storage interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/wordbook/internal/model"
)

// Word status filters for ListWords.
const (
	StatusAll       = "all"
	StatusLearned   = "learned"
	StatusUnlearned = "unlearned"
)

// AddWordsParams holds parameters for adding words to a book.
type AddWordsParams struct {
	Book  string
	Words []model.Word // ID, Book and CreatedAt are assigned by the store
}

// ListWordsParams holds parameters for listing words.
type ListWordsParams struct {
	Book   string
	Status string // all (default), learned, unlearned
	Limit  int    // 0 means no limit
}

// SearchParams holds parameters for searching words.
type SearchParams struct {
	Book  string
	Query string
	Limit int
}

// RmParams holds parameters for deleting a word.
type RmParams struct {
	Book string
	Text string
	Hard bool
}

// RecordSessionParams holds the outcome of a finished session.
type RecordSessionParams struct {
	Kind         model.ErrorKind
	Book         string
	Total        int
	Errors       []model.ErrorRecord
	LearnedIDs   []string
	UnlearnedIDs []string // words whose last answer in the session was wrong
}

// ErrorsParams holds parameters for listing the error log.
type ErrorsParams struct {
	Kind  model.ErrorKind // zero means all kinds
	Book  string
	Limit int
}

// Store defines the word book storage interface.
type Store interface {
	// AddWords inserts words into a book, skipping texts the book already has.
	// Returns the inserted words and how many were skipped.
	AddWords(ctx context.Context, p AddWordsParams) ([]model.Word, int, error)

	// ListWords lists words of a book in insertion order.
	ListWords(ctx context.Context, p ListWordsParams) ([]model.Word, error)

	// GetWord retrieves a word by book and text (case-insensitive).
	GetWord(ctx context.Context, book, text string) (*model.Word, error)

	// RmWord soft-deletes (or hard-deletes) a word.
	RmWord(ctx context.Context, p RmParams) error

	// RecordSession persists learned status, error records and a history row.
	RecordSession(ctx context.Context, p RecordSessionParams) (*model.Session, error)

	// ListErrors lists logged errors, most recent first.
	ListErrors(ctx context.Context, p ErrorsParams) ([]model.ErrorRecord, error)

	// Close closes the store.
	Close() error
}
