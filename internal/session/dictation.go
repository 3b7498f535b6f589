package session

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/rcliao/wordbook/internal/model"
)

// DictationSummary is emitted after the last dictation entry is advanced.
type DictationSummary struct {
	TotalCount int                 `json:"total_count"`
	Errors     []model.ErrorRecord `json:"errors"`
	LearnedIDs []string            `json:"learned_ids"`
}

// DictationEngine runs a spelling session over a fixed, shuffled queue. Each
// entry goes pending -> graded -> advanced exactly once; there is no requeue.
type DictationEngine struct {
	q       queue
	cursor  int
	grade   Grade
	learned learnedSet
	errs    errorLog
	now     func() time.Time
	rate    float64
	summary *DictationSummary
}

// NewDictationEngine shuffles the candidates and keeps the first targetCount.
// The input slice is not modified.
func NewDictationEngine(candidates []model.Word, targetCount int, opts ...Option) *DictationEngine {
	o := applyOptions(opts)
	words := make([]model.Word, len(candidates))
	copy(words, candidates)
	o.rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	e := &DictationEngine{
		learned: make(learnedSet),
		now:     o.now,
		rate:    o.playbackRate,
	}
	for _, w := range words[:clampTarget(targetCount, len(words))] {
		e.q.push(w)
	}
	return e
}

// Current returns the entry at the cursor. ok is false once the session is done.
func (e *DictationEngine) Current() (entry QueueEntry, ok bool) {
	if e.Done() {
		return QueueEntry{}, false
	}
	return e.q.entries[e.cursor], true
}

// Submit grades typed text against the current word, ignoring case and
// surrounding whitespace. Submitting again before Advance returns the
// existing grade unchanged.
func (e *DictationEngine) Submit(typed string) (Grade, error) {
	if e.q.len() == 0 {
		return Pending, ErrEmptyQueue
	}
	if e.Done() {
		return Pending, ErrSessionFinished
	}
	if e.grade != Pending {
		return e.grade, nil
	}

	w := e.q.entries[e.cursor].Word
	if Matches(typed, w.Text) {
		e.learned.add(w.ID)
		e.grade = Correct
	} else {
		e.errs.record(w, model.KindDictation, e.now())
		e.learned.remove(w.ID)
		e.grade = Incorrect
	}
	return e.grade, nil
}

// Advance moves past a graded entry. On the last entry it returns the summary;
// otherwise the summary is nil.
func (e *DictationEngine) Advance() (*DictationSummary, error) {
	if e.q.len() == 0 {
		return nil, ErrEmptyQueue
	}
	if e.Done() {
		return nil, ErrSessionFinished
	}
	if e.grade == Pending {
		return nil, ErrNotGraded
	}

	e.cursor++
	e.grade = Pending
	if e.cursor < e.q.len() {
		return nil, nil
	}
	res := finalize(&e.q, e.learned, &e.errs)
	e.summary = &DictationSummary{
		TotalCount: res.count,
		Errors:     res.errors,
		LearnedIDs: res.learned,
	}
	return e.summary, nil
}

// Grade returns the grade of the current entry.
func (e *DictationEngine) Grade() Grade {
	return e.grade
}

// Done reports whether every entry has been advanced.
func (e *DictationEngine) Done() bool {
	return e.cursor >= e.q.len()
}

// Summary returns the final summary, or nil before the session ends.
func (e *DictationEngine) Summary() *DictationSummary {
	return e.summary
}

// Len returns the session size.
func (e *DictationEngine) Len() int {
	return e.q.len()
}

// Cursor returns the index of the current entry.
func (e *DictationEngine) Cursor() int {
	return e.cursor
}

// PlaybackRate returns the caller-supplied playback-rate hint.
func (e *DictationEngine) PlaybackRate() float64 {
	return e.rate
}

// Matches reports whether typed spells word: exact after trimming and
// lowercasing both sides. Both sides are NFC-normalized first so a decomposed
// accent typed by an input method equals the stored composed form.
func Matches(typed, word string) bool {
	return fold(typed) == fold(word)
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
