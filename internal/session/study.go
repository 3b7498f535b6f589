package session

import (
	"fmt"
	"time"

	"github.com/rcliao/wordbook/internal/model"
)

// StudySummary is emitted once the study queue is exhausted.
type StudySummary struct {
	ReviewedCount int                 `json:"reviewed_count"`
	Errors        []model.ErrorRecord `json:"errors"`
	LearnedIDs    []string            `json:"learned_ids"`
}

// StudyEngine runs a recognition session. Vague answers requeue the word once,
// unknown answers three times; the session ends when the cursor reaches the
// end of the grown queue.
type StudyEngine struct {
	q       queue
	cursor  int
	learned learnedSet
	errs    errorLog
	now     func() time.Time
	summary *StudySummary
}

// NewStudyEngine queues the first targetCount candidates. Candidates are
// expected to exclude words the caller already considers learned.
func NewStudyEngine(candidates []model.Word, targetCount int, opts ...Option) *StudyEngine {
	o := applyOptions(opts)
	e := &StudyEngine{
		learned: make(learnedSet),
		now:     o.now,
	}
	for _, w := range candidates[:clampTarget(targetCount, len(candidates))] {
		e.q.push(w)
	}
	return e
}

// Current returns the entry at the cursor. ok is false once the session is done.
func (e *StudyEngine) Current() (entry QueueEntry, ok bool) {
	if e.Done() {
		return QueueEntry{}, false
	}
	return e.q.entries[e.cursor], true
}

// Advance applies the response for the word at the cursor and moves on. On the
// last entry it returns the summary; otherwise the summary is nil.
func (e *StudyEngine) Advance(wordID string, r Response) (*StudySummary, error) {
	if e.q.len() == 0 {
		return nil, ErrEmptyQueue
	}
	if e.Done() {
		return nil, ErrSessionFinished
	}
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResponse, int(r))
	}
	w := e.q.entries[e.cursor].Word
	if w.ID != wordID {
		return nil, fmt.Errorf("%w: got %q, cursor holds %q", ErrWordMismatch, wordID, w.ID)
	}

	if r == Known {
		e.learned.add(w.ID)
	} else {
		for range r.requeueCount() {
			e.q.push(w)
		}
		e.errs.record(w, model.KindLearning, e.now())
		e.learned.remove(w.ID)
	}
	e.cursor++

	if e.cursor < e.q.len() {
		return nil, nil
	}
	res := finalize(&e.q, e.learned, &e.errs)
	e.summary = &StudySummary{
		ReviewedCount: res.count,
		Errors:        res.errors,
		LearnedIDs:    res.learned,
	}
	return e.summary, nil
}

// Done reports whether no entries remain. An engine with an empty queue is done
// from the start and never produces a summary.
func (e *StudyEngine) Done() bool {
	return e.cursor >= e.q.len()
}

// Summary returns the final summary, or nil before the session ends.
func (e *StudyEngine) Summary() *StudySummary {
	return e.summary
}

// Queue returns a copy of every entry produced so far, including passed ones.
func (e *StudyEngine) Queue() []QueueEntry {
	return e.q.snapshot()
}

// Cursor returns the index of the current entry.
func (e *StudyEngine) Cursor() int {
	return e.cursor
}

// Remaining returns how many entries are left, the current one included.
func (e *StudyEngine) Remaining() int {
	return e.q.len() - e.cursor
}

// IsLearned reports whether the word is in the learned set as of the last response.
func (e *StudyEngine) IsLearned(wordID string) bool {
	return e.learned.has(wordID)
}
