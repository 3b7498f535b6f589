// Package session implements the in-session review queues for study and
// dictation.
//
// Both engines are synchronous state machines driven by a single caller. Each
// call either moves the session to its next entry or, on the last entry,
// returns the session summary computed from the state after that call's
// mutation. Engines never perform I/O; persistence of learned words and error
// records is left to the caller.
package session
