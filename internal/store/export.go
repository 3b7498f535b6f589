package store

import (
	"context"

	"github.com/rcliao/wordbook/internal/model"
)

// ExportAll returns all non-deleted words, optionally filtered by book.
func (s *SQLiteStore) ExportAll(ctx context.Context, book string) ([]model.Word, error) {
	return s.ListWords(ctx, ListWordsParams{Book: book})
}

// Import stores words from an export, grouped by their book. Words already
// present in their book are skipped. Returns how many were imported.
func (s *SQLiteStore) Import(ctx context.Context, words []model.Word, defaultBook string) (int, error) {
	var order []string
	byBook := map[string][]model.Word{}
	for _, w := range words {
		book := w.Book
		if book == "" {
			book = defaultBook
		}
		if _, ok := byBook[book]; !ok {
			order = append(order, book)
		}
		byBook[book] = append(byBook[book], w)
	}

	imported := 0
	for _, book := range order {
		added, _, err := s.AddWords(ctx, AddWordsParams{Book: book, Words: byBook[book]})
		if err != nil {
			return imported, err
		}
		imported += len(added)
	}
	return imported, nil
}
