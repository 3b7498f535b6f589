package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/wordbook/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addWords(t *testing.T, s *SQLiteStore, book string, texts ...string) []model.Word {
	t.Helper()
	in := make([]model.Word, len(texts))
	for i, text := range texts {
		in[i] = model.Word{Text: text, Definition: "meaning of " + text}
	}
	added, _, err := s.AddWords(context.Background(), AddWordsParams{Book: book, Words: in})
	if err != nil {
		t.Fatalf("add words: %v", err)
	}
	return added
}

func TestAddAndListWords(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	added, skipped, err := s.AddWords(ctx, AddWordsParams{
		Book: "gre",
		Words: []model.Word{
			{Text: "abate", Phonetic: "/əˈbeɪt/", Definition: "to lessen"},
			{Text: "  belie ", Definition: "to contradict"},
			{Text: "Abate", Definition: "duplicate"},
			{Text: "   "},
		},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 added, got %d", len(added))
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", skipped)
	}
	if added[0].ID == "" || added[0].ID == added[1].ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", added[0].ID, added[1].ID)
	}
	if added[1].Text != "belie" {
		t.Errorf("expected trimmed text, got %q", added[1].Text)
	}

	words, err := s.ListWords(ctx, ListWordsParams{Book: "gre"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Text != "abate" || words[1].Text != "belie" {
		t.Errorf("expected insertion order, got %q, %q", words[0].Text, words[1].Text)
	}
	if words[0].Phonetic != "/əˈbeɪt/" {
		t.Errorf("expected phonetic to round-trip, got %q", words[0].Phonetic)
	}
}

func TestAddWordsRequiresBook(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.AddWords(context.Background(), AddWordsParams{Words: []model.Word{{Text: "x"}}})
	if err == nil {
		t.Error("expected error without book")
	}
}

func TestSameTextInDifferentBooks(t *testing.T) {
	s := newTestStore(t)
	addWords(t, s, "a", "apple")
	added := addWords(t, s, "b", "apple")
	if len(added) != 1 {
		t.Errorf("expected word to be added to second book, got %d", len(added))
	}
}

func TestListWordsByStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	words := addWords(t, s, "book", "one", "two", "three")

	_, err := s.RecordSession(ctx, RecordSessionParams{
		Kind: model.KindLearning, Book: "book", Total: 2,
		LearnedIDs: []string{words[0].ID, words[2].ID},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	learned, _ := s.ListWords(ctx, ListWordsParams{Book: "book", Status: StatusLearned})
	if len(learned) != 2 {
		t.Errorf("expected 2 learned, got %d", len(learned))
	}
	unlearned, _ := s.ListWords(ctx, ListWordsParams{Book: "book", Status: StatusUnlearned})
	if len(unlearned) != 1 || unlearned[0].Text != "two" {
		t.Errorf("expected only 'two' unlearned, got %+v", unlearned)
	}
	limited, _ := s.ListWords(ctx, ListWordsParams{Book: "book", Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}
	if _, err := s.ListWords(ctx, ListWordsParams{Status: "mastered"}); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestRecordSessionUnlearns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	words := addWords(t, s, "book", "one")

	s.RecordSession(ctx, RecordSessionParams{Kind: model.KindLearning, Book: "book", LearnedIDs: []string{words[0].ID}})
	s.RecordSession(ctx, RecordSessionParams{Kind: model.KindDictation, Book: "book", UnlearnedIDs: []string{words[0].ID}})

	learned, _ := s.ListWords(ctx, ListWordsParams{Book: "book", Status: StatusLearned})
	if len(learned) != 0 {
		t.Errorf("expected word to be unlearned, got %d learned", len(learned))
	}
}

func TestErrorLogUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	words := addWords(t, s, "book", "one", "two")

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	s.RecordSession(ctx, RecordSessionParams{
		Kind: model.KindLearning, Book: "book", Total: 2,
		Errors: []model.ErrorRecord{model.NewErrorRecord(words[0], model.KindLearning, first)},
	})
	s.RecordSession(ctx, RecordSessionParams{
		Kind: model.KindLearning, Book: "book", Total: 2,
		Errors: []model.ErrorRecord{model.NewErrorRecord(words[0], model.KindLearning, second)},
	})
	s.RecordSession(ctx, RecordSessionParams{
		Kind: model.KindDictation, Book: "book", Total: 1,
		Errors: []model.ErrorRecord{model.NewErrorRecord(words[1], model.KindDictation, first)},
	})

	all, err := s.ListErrors(ctx, ErrorsParams{})
	if err != nil {
		t.Fatalf("list errors: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records (one per word and kind), got %d", len(all))
	}
	if all[0].WordID != words[0].ID || all[0].Count != 2 || !all[0].Date.Equal(second) {
		t.Errorf("expected refreshed record for 'one', got %+v", all[0])
	}

	dict, _ := s.ListErrors(ctx, ErrorsParams{Kind: model.KindDictation})
	if len(dict) != 1 || dict[0].WordText != "two" || dict[0].Kind != model.KindDictation {
		t.Errorf("unexpected dictation errors: %+v", dict)
	}

	n, err := s.ClearErrors(ctx, model.KindLearning, "book")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 cleared, got %d", n)
	}
	left, _ := s.ListErrors(ctx, ErrorsParams{})
	if len(left) != 1 {
		t.Errorf("expected 1 record left, got %d", len(left))
	}
}

func TestSessionHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	words := addWords(t, s, "book", "one")

	sess, err := s.RecordSession(ctx, RecordSessionParams{
		Kind: model.KindDictation, Book: "book", Total: 1,
		Errors:     []model.ErrorRecord{model.NewErrorRecord(words[0], model.KindDictation, time.Now())},
		LearnedIDs: nil,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if sess.ID == "" || sess.Errors != 1 || sess.Total != 1 {
		t.Errorf("unexpected session: %+v", sess)
	}

	hist, err := s.ListSessions(ctx, "book", 10)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(hist) != 1 || hist[0].Kind != model.KindDictation {
		t.Errorf("unexpected history: %+v", hist)
	}
	other, _ := s.ListSessions(ctx, "other", 10)
	if len(other) != 0 {
		t.Errorf("expected no sessions for other book, got %d", len(other))
	}
}

func TestSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	addWords(t, s, "book", "one")

	if err := s.RmWord(ctx, RmParams{Book: "book", Text: "ONE"}); err != nil {
		t.Fatalf("rm: %v", err)
	}
	_, err := s.GetWord(ctx, "book", "one")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after soft delete, got %v", err)
	}

	// A soft-deleted text can be added again.
	if added := addWords(t, s, "book", "one"); len(added) != 1 {
		t.Errorf("expected re-add after delete, got %d", len(added))
	}
}

func TestHardDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	words := addWords(t, s, "book", "one")
	s.RecordSession(ctx, RecordSessionParams{
		Kind: model.KindLearning, Book: "book",
		Errors:     []model.ErrorRecord{model.NewErrorRecord(words[0], model.KindLearning, time.Now())},
		LearnedIDs: []string{words[0].ID},
	})

	if err := s.RmWord(ctx, RmParams{Book: "book", Text: "one", Hard: true}); err != nil {
		t.Fatalf("rm hard: %v", err)
	}
	st, _ := s.Stats(ctx, "")
	if st.TotalWords != 0 || st.LearningErrors != 0 || st.LearnedWords != 0 {
		t.Errorf("expected everything removed, got %+v", st)
	}
	if err := s.RmWord(ctx, RmParams{Book: "book", Text: "one"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchWords(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.AddWords(ctx, AddWordsParams{Book: "book", Words: []model.Word{
		{Text: "lucid", Definition: "clear and easy to understand"},
		{Text: "clear", Definition: "free of obstruction"},
		{Text: "opaque", Definition: "not transparent"},
	}})

	got, err := s.SearchWords(ctx, SearchParams{Book: "book", Query: "clear"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Text != "clear" {
		t.Errorf("expected text match first, got %q", got[0].Text)
	}
}

func TestSearchWordsWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.AddWords(ctx, AddWordsParams{Book: "book", Words: []model.Word{
		{Text: "lucid", Definition: "clear"},
		{Text: "opaque", Definition: "not transparent"},
		{Text: "per_se", Definition: "by itself, 100% intrinsically"},
	}})

	for _, tc := range []struct {
		query string
		want  int
	}{
		{"%", 1},
		{"_", 1},
		{`\`, 0},
		{"100%", 1},
		{"per_se", 1},
		{"pe_", 0},
	} {
		got, err := s.SearchWords(ctx, SearchParams{Book: "book", Query: tc.query})
		if err != nil {
			t.Fatalf("search %q: %v", tc.query, err)
		}
		if len(got) != tc.want {
			t.Errorf("search %q: expected %d matches, got %d", tc.query, tc.want, len(got))
		}
	}
}

func TestBooksAndStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	words := addWords(t, s, "a", "one", "two")
	addWords(t, s, "b", "three")
	s.RecordSession(ctx, RecordSessionParams{Kind: model.KindLearning, Book: "a", LearnedIDs: []string{words[0].ID}})

	books, err := s.ListBooks(ctx)
	if err != nil {
		t.Fatalf("books: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].Name != "a" || books[0].Words != 2 || books[0].Learned != 1 {
		t.Errorf("unexpected book a: %+v", books[0])
	}

	st, err := s.Stats(ctx, filepath.Join(t.TempDir(), "missing.db"))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.ActiveWords != 3 || st.LearnedWords != 1 || st.Sessions != 1 || len(st.Books) != 2 {
		t.Errorf("unexpected stats: %+v", st)
	}
}

func TestStatsReportsQueryErrors(t *testing.T) {
	s := newTestStore(t)
	s.Close()

	st, err := s.Stats(context.Background(), "")
	if err == nil {
		t.Fatalf("expected error from closed store, got %+v", st)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	addWords(t, src, "a", "one", "two")
	addWords(t, src, "b", "three")

	exported, err := src.ExportAll(ctx, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported) != 3 {
		t.Fatalf("expected 3 exported, got %d", len(exported))
	}

	dst := newTestStore(t)
	n, err := dst.Import(ctx, append(exported, model.Word{Text: "four"}), "misc")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 imported, got %d", n)
	}
	again, _ := dst.Import(ctx, exported, "misc")
	if again != 0 {
		t.Errorf("expected duplicates skipped, got %d", again)
	}
	misc, _ := dst.ListWords(ctx, ListWordsParams{Book: "misc"})
	if len(misc) != 1 {
		t.Errorf("expected default book to receive bookless word, got %d", len(misc))
	}
}
