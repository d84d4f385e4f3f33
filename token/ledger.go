package token

import (
	"sync"
	"time"
)

// Ledger tracks raw token values that have already been consumed,
// enforcing at-most-one-use.
type Ledger interface {
	// Contains reports whether raw has been recorded.
	Contains(raw string) bool

	// Record marks raw as consumed and reports whether this call was the
	// first to record it. Idempotent; the insert-if-absent semantics are
	// what closes the window between two concurrent presentations of the
	// same token.
	Record(raw string) bool

	// Cleanup removes entries recorded longer than maxAge ago.
	Cleanup(maxAge time.Duration)
}

// InMemoryLedger is a mutex-guarded in-memory Ledger.
type InMemoryLedger struct {
	mu       sync.Mutex
	consumed map[string]time.Time
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		consumed: make(map[string]time.Time),
	}
}

func (l *InMemoryLedger) Contains(raw string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.consumed[raw]
	return exists
}

func (l *InMemoryLedger) Record(raw string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.consumed[raw]; exists {
		return false
	}
	l.consumed[raw] = time.Now()
	return true
}

// Cleanup prunes entries older than maxAge. Called with the token expiry,
// it only removes entries whose tokens can no longer verify anyway.
func (l *InMemoryLedger) Cleanup(maxAge time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	for raw, recordedAt := range l.consumed {
		if recordedAt.Before(cutoff) {
			delete(l.consumed, raw)
		}
	}
}
