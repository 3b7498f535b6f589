package session

import (
	"math/rand"
	"time"

	"github.com/rcliao/wordbook/internal/model"
)

// QueueEntry is one exposure of a word. A word may occupy several entries
// after requeueing; InstanceID tells them apart.
type QueueEntry struct {
	Word       model.Word `json:"word"`
	InstanceID int64      `json:"instance_id"`
}

// queue is append-only: past entries are never removed, requeues go to the tail.
type queue struct {
	entries []QueueEntry
	seq     int64
}

func (q *queue) push(w model.Word) {
	q.seq++
	q.entries = append(q.entries, QueueEntry{Word: w, InstanceID: q.seq})
}

func (q *queue) len() int { return len(q.entries) }

func (q *queue) snapshot() []QueueEntry {
	out := make([]QueueEntry, len(q.entries))
	copy(out, q.entries)
	return out
}

// distinctWordIDs returns word IDs in first-appearance order.
func (q *queue) distinctWordIDs() []string {
	seen := make(map[string]bool, len(q.entries))
	ids := make([]string, 0, len(q.entries))
	for _, e := range q.entries {
		if seen[e.Word.ID] {
			continue
		}
		seen[e.Word.ID] = true
		ids = append(ids, e.Word.ID)
	}
	return ids
}

// learnedSet holds the words whose latest response counts as mastered.
type learnedSet map[string]struct{}

func (s learnedSet) add(id string)    { s[id] = struct{}{} }
func (s learnedSet) remove(id string) { delete(s, id) }

func (s learnedSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// errorLog keeps one record per word, the first one logged.
type errorLog struct {
	records []model.ErrorRecord
	seen    map[string]bool
}

func (l *errorLog) record(w model.Word, kind model.ErrorKind, now time.Time) {
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	if l.seen[w.ID] {
		return
	}
	l.seen[w.ID] = true
	l.records = append(l.records, model.NewErrorRecord(w, kind, now))
}

func (l *errorLog) snapshot() []model.ErrorRecord {
	out := make([]model.ErrorRecord, len(l.records))
	copy(out, l.records)
	return out
}

// result is what both summaries are built from.
type result struct {
	count   int
	errors  []model.ErrorRecord
	learned []string
}

// finalize derives counts from the final queue in one pass over the
// post-mutation state.
func finalize(q *queue, learned learnedSet, errs *errorLog) result {
	ids := q.distinctWordIDs()
	learnedIDs := make([]string, 0, len(learned))
	for _, id := range ids {
		if learned.has(id) {
			learnedIDs = append(learnedIDs, id)
		}
	}
	return result{count: len(ids), errors: errs.snapshot(), learned: learnedIDs}
}

// Option configures an engine.
type Option func(*options)

type options struct {
	now          func() time.Time
	rand         *rand.Rand
	playbackRate float64
}

func defaultOptions() options {
	return options{
		now:          time.Now,
		playbackRate: 1,
	}
}

// WithClock sets the time source used to date error records.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRand sets the random source used to shuffle dictation words.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rand = r }
}

// WithPlaybackRate sets the audio playback-rate hint handed back to callers.
// The value is not interpreted.
func WithPlaybackRate(rate float64) Option {
	return func(o *options) { o.playbackRate = rate }
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(o.now().UnixNano()))
	}
	return o
}

func clampTarget(target, available int) int {
	if target < 0 {
		return 0
	}
	return min(target, available)
}
