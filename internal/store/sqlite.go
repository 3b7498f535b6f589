package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/wordbook/internal/model"
)

// ErrNotFound is returned when a word does not exist.
var ErrNotFound = errors.New("store: not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS words (
		id          TEXT PRIMARY KEY,
		book        TEXT NOT NULL,
		text        TEXT NOT NULL,
		phonetic    TEXT,
		definition  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		deleted_at  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_words_book ON words(book);
	CREATE INDEX IF NOT EXISTS idx_words_book_text ON words(book, text COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_words_deleted ON words(deleted_at);

	CREATE TABLE IF NOT EXISTS learned (
		word_id     TEXT PRIMARY KEY REFERENCES words(id),
		learned_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS error_log (
		word_id         TEXT NOT NULL REFERENCES words(id),
		kind            TEXT NOT NULL,
		word_text       TEXT NOT NULL,
		word_definition TEXT NOT NULL DEFAULT '',
		word_phonetic   TEXT,
		date            TEXT NOT NULL,
		count           INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (word_id, kind)
	);
	CREATE INDEX IF NOT EXISTS idx_error_log_date ON error_log(date DESC);

	CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		book        TEXT NOT NULL,
		total       INTEGER NOT NULL,
		errors      INTEGER NOT NULL,
		learned     INTEGER NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_book ON sessions(book, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) AddWords(ctx context.Context, p AddWordsParams) ([]model.Word, int, error) {
	if strings.TrimSpace(p.Book) == "" {
		return nil, 0, fmt.Errorf("book is required")
	}
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var added []model.Word
	skipped := 0
	for _, w := range p.Words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			skipped++
			continue
		}

		var existing string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM words WHERE book = ? AND text = ? COLLATE NOCASE AND deleted_at IS NULL LIMIT 1`,
			p.Book, text).Scan(&existing)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, 0, fmt.Errorf("check word: %w", err)
		}

		var phonetic *string
		if w.Phonetic != "" {
			phonetic = &w.Phonetic
		}
		id := s.newID()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO words (id, book, text, phonetic, definition, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			id, p.Book, text, phonetic, strings.TrimSpace(w.Definition), now.Format(time.RFC3339))
		if err != nil {
			return nil, 0, fmt.Errorf("insert word: %w", err)
		}
		added = append(added, model.Word{
			ID:         id,
			Book:       p.Book,
			Text:       text,
			Phonetic:   w.Phonetic,
			Definition: strings.TrimSpace(w.Definition),
			CreatedAt:  now.Truncate(time.Second),
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return added, skipped, nil
}

const wordColumns = `w.id, w.book, w.text, w.phonetic, w.definition, w.created_at`

func (s *SQLiteStore) ListWords(ctx context.Context, p ListWordsParams) ([]model.Word, error) {
	where := []string{"w.deleted_at IS NULL"}
	var args []interface{}

	if p.Book != "" {
		where = append(where, "w.book = ?")
		args = append(args, p.Book)
	}
	switch p.Status {
	case "", StatusAll:
	case StatusLearned:
		where = append(where, "EXISTS (SELECT 1 FROM learned l WHERE l.word_id = w.id)")
	case StatusUnlearned:
		where = append(where, "NOT EXISTS (SELECT 1 FROM learned l WHERE l.word_id = w.id)")
	default:
		return nil, fmt.Errorf("invalid status %q (valid: all, learned, unlearned)", p.Status)
	}

	query := `SELECT ` + wordColumns + ` FROM words w WHERE ` + strings.Join(where, " AND ") + ` ORDER BY w.rowid`
	if p.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, p.Limit)
	}

	return s.queryWords(ctx, query, args...)
}

func (s *SQLiteStore) GetWord(ctx context.Context, book, text string) (*model.Word, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wordColumns+` FROM words w
		 WHERE w.book = ? AND w.text = ? COLLATE NOCASE AND w.deleted_at IS NULL
		 ORDER BY w.rowid LIMIT 1`, book, strings.TrimSpace(text))
	w, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, book, text)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *SQLiteStore) RmWord(ctx context.Context, p RmParams) error {
	w, err := s.GetWord(ctx, p.Book, p.Text)
	if err != nil {
		return err
	}

	if !p.Hard {
		now := time.Now().UTC().Format(time.RFC3339)
		_, err = s.db.ExecContext(ctx, `UPDATE words SET deleted_at = ? WHERE id = ?`, now, w.ID)
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM learned WHERE word_id = ?`,
		`DELETE FROM error_log WHERE word_id = ?`,
		`DELETE FROM words WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, w.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) RecordSession(ctx context.Context, p RecordSessionParams) (*model.Session, error) {
	kind, err := p.Kind.MarshalText()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, id := range p.LearnedIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO learned (word_id, learned_at) VALUES (?, ?) ON CONFLICT(word_id) DO NOTHING`,
			id, stamp)
		if err != nil {
			return nil, fmt.Errorf("mark learned: %w", err)
		}
	}
	for _, id := range p.UnlearnedIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM learned WHERE word_id = ?`, id); err != nil {
			return nil, fmt.Errorf("clear learned: %w", err)
		}
	}

	for _, e := range p.Errors {
		date := e.Date
		if date.IsZero() {
			date = now
		}
		var phonetic *string
		if e.WordPhonetic != "" {
			phonetic = &e.WordPhonetic
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO error_log (word_id, kind, word_text, word_definition, word_phonetic, date, count)
			 VALUES (?, ?, ?, ?, ?, ?, 1)
			 ON CONFLICT(word_id, kind) DO UPDATE SET
			   word_text = excluded.word_text,
			   word_definition = excluded.word_definition,
			   word_phonetic = excluded.word_phonetic,
			   date = excluded.date,
			   count = error_log.count + 1`,
			e.WordID, string(kind), e.WordText, e.WordDefinition, phonetic, date.UTC().Format(time.RFC3339))
		if err != nil {
			return nil, fmt.Errorf("record error: %w", err)
		}
	}

	sess := &model.Session{
		ID:        s.newID(),
		Kind:      p.Kind,
		Book:      p.Book,
		Total:     p.Total,
		Errors:    len(p.Errors),
		Learned:   len(p.LearnedIDs),
		CreatedAt: now.Truncate(time.Second),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, kind, book, total, errors, learned, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, string(kind), sess.Book, sess.Total, sess.Errors, sess.Learned, stamp)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	slog.Debug("session recorded", "id", sess.ID, "kind", p.Kind, "book", p.Book,
		"total", sess.Total, "errors", sess.Errors, "learned", sess.Learned)
	return sess, nil
}

func (s *SQLiteStore) ListErrors(ctx context.Context, p ErrorsParams) ([]model.ErrorRecord, error) {
	where := []string{"w.deleted_at IS NULL"}
	var args []interface{}

	if p.Kind != 0 {
		kind, err := p.Kind.MarshalText()
		if err != nil {
			return nil, err
		}
		where = append(where, "e.kind = ?")
		args = append(args, string(kind))
	}
	if p.Book != "" {
		where = append(where, "w.book = ?")
		args = append(args, p.Book)
	}

	query := `SELECT e.word_id, e.kind, e.word_text, e.word_definition, e.word_phonetic, e.date, e.count
		FROM error_log e INNER JOIN words w ON w.id = e.word_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY e.date DESC, w.rowid`
	if p.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, p.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ErrorRecord
	for rows.Next() {
		var r model.ErrorRecord
		var kind, date string
		var phonetic sql.NullString
		if err := rows.Scan(&r.WordID, &kind, &r.WordText, &r.WordDefinition, &phonetic, &date, &r.Count); err != nil {
			return nil, err
		}
		if err := r.Kind.UnmarshalText([]byte(kind)); err != nil {
			return nil, err
		}
		r.WordPhonetic = phonetic.String
		r.Date, _ = time.Parse(time.RFC3339, date)
		records = append(records, r)
	}
	return records, rows.Err()
}

// ClearErrors deletes error records, optionally restricted by kind and book.
func (s *SQLiteStore) ClearErrors(ctx context.Context, kind model.ErrorKind, book string) (int64, error) {
	where := []string{"1 = 1"}
	var args []interface{}
	if kind != 0 {
		k, err := kind.MarshalText()
		if err != nil {
			return 0, err
		}
		where = append(where, "kind = ?")
		args = append(args, string(k))
	}
	if book != "" {
		where = append(where, "word_id IN (SELECT id FROM words WHERE book = ?)")
		args = append(args, book)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM error_log WHERE `+strings.Join(where, " AND "), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListSessions returns session history, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context, book string, limit int) ([]model.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	where := "1 = 1"
	args := []interface{}{}
	if book != "" {
		where = "book = ?"
		args = append(args, book)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, book, total, errors, learned, created_at FROM sessions
		 WHERE `+where+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var sess model.Session
		var kind, created string
		if err := rows.Scan(&sess.ID, &kind, &sess.Book, &sess.Total, &sess.Errors, &sess.Learned, &created); err != nil {
			return nil, err
		}
		if err := sess.Kind.UnmarshalText([]byte(kind)); err != nil {
			return nil, err
		}
		sess.CreatedAt, _ = time.Parse(time.RFC3339, created)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// ListBooks returns every book with its word and learned counts.
func (s *SQLiteStore) ListBooks(ctx context.Context) ([]model.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT w.book, COUNT(*), COUNT(l.word_id)
		FROM words w LEFT JOIN learned l ON l.word_id = w.id
		WHERE w.deleted_at IS NULL
		GROUP BY w.book ORDER BY w.book`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.Name, &b.Words, &b.Learned); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryWords(ctx context.Context, query string, args ...interface{}) ([]model.Word, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []model.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWord(row scanner) (model.Word, error) {
	var w model.Word
	var phonetic sql.NullString
	var createdAt string

	if err := row.Scan(&w.ID, &w.Book, &w.Text, &phonetic, &w.Definition, &createdAt); err != nil {
		return w, err
	}
	w.Phonetic = phonetic.String
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return w, nil
}
