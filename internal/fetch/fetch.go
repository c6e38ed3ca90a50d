// Package fetch models the lifecycle of an asynchronous load as an explicit
// state machine: Idle → Loading → Success or Failure. Each load carries a
// generation token; completing a superseded load is discarded rather than
// applied, so a response that arrives after the caller moved on can never
// overwrite newer state.
package fetch

import "sync"

// Status is the lifecycle phase of a tracked load.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// State is a snapshot of a tracked load.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Token identifies one issued load. Only the most recently issued token may
// complete its tracker.
type Token struct {
	generation uint64
}

// Tracker serializes the lifecycle of repeated loads of one logical
// resource. Safe for concurrent use.
type Tracker[T any] struct {
	mu         sync.Mutex
	generation uint64
	state      State[T]
}

// NewTracker returns a tracker in the Idle state.
func NewTracker[T any]() *Tracker[T] {
	return &Tracker[T]{}
}

// Begin starts a new load, superseding any load still in flight, and
// returns the token the eventual completion must present.
func (t *Tracker[T]) Begin() Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.generation++
	t.state.Status = Loading
	t.state.Err = nil
	return Token{generation: t.generation}
}

// Complete applies a load result. Returns false without touching state when
// the token has been superseded by a later Begin or a Reset; the stale
// response is discarded, never applied.
func (t *Tracker[T]) Complete(tok Token, data T, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tok.generation != t.generation {
		return false
	}
	if err != nil {
		t.state = State[T]{Status: Failure, Err: err}
		return true
	}
	t.state = State[T]{Status: Success, Data: data}
	return true
}

// Reset returns the tracker to Idle and invalidates any in-flight token.
// Used when the consuming component goes away.
func (t *Tracker[T]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.generation++
	t.state = State[T]{}
}

// State returns the current snapshot.
func (t *Tracker[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
