package session

import "errors"

// Sentinel errors for out-of-state calls.
// Use errors.Is to check: errors.Is(err, session.ErrSessionFinished)
var (
	ErrSessionFinished = errors.New("session: session already finished")
	ErrEmptyQueue      = errors.New("session: queue is empty")
	ErrWordMismatch    = errors.New("session: word is not at the cursor")
	ErrNotGraded       = errors.New("session: entry has not been graded")
	ErrInvalidResponse = errors.New("session: invalid response")
)
