package store

import (
	"context"
	"fmt"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath          string      `json:"db_path"`
	DBSizeBytes     int64       `json:"db_size_bytes"`
	TotalWords      int         `json:"total_words"`
	ActiveWords     int         `json:"active_words"`
	LearnedWords    int         `json:"learned_words"`
	LearningErrors  int         `json:"learning_errors"`
	DictationErrors int         `json:"dictation_errors"`
	Sessions        int         `json:"sessions"`
	Books           []BookStats `json:"books"`
}

// BookStats holds per-book counts.
type BookStats struct {
	Book    string `json:"book"`
	Words   int    `json:"words"`
	Learned int    `json:"learned"`
	Errors  int    `json:"errors"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Books: []BookStats{}}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM words`, &st.TotalWords},
		{`SELECT COUNT(*) FROM words WHERE deleted_at IS NULL`, &st.ActiveWords},
		{`SELECT COUNT(*) FROM learned l INNER JOIN words w ON w.id = l.word_id
			WHERE w.deleted_at IS NULL`, &st.LearnedWords},
		{`SELECT COUNT(*) FROM error_log WHERE kind = 'learning'`, &st.LearningErrors},
		{`SELECT COUNT(*) FROM error_log WHERE kind = 'dictation'`, &st.DictationErrors},
		{`SELECT COUNT(*) FROM sessions`, &st.Sessions},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT w.book, COUNT(*),
		       COUNT(l.word_id),
		       (SELECT COUNT(*) FROM error_log e INNER JOIN words w2 ON w2.id = e.word_id
		         WHERE w2.book = w.book AND w2.deleted_at IS NULL)
		FROM words w LEFT JOIN learned l ON l.word_id = w.id
		WHERE w.deleted_at IS NULL
		GROUP BY w.book ORDER BY COUNT(*) DESC, w.book`)
	if err != nil {
		return nil, fmt.Errorf("book stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b BookStats
		if err := rows.Scan(&b.Book, &b.Words, &b.Learned, &b.Errors); err != nil {
			return nil, fmt.Errorf("scan book stats: %w", err)
		}
		st.Books = append(st.Books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("book stats: %w", err)
	}

	return st, nil
}
