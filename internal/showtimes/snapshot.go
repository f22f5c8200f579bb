package showtimes

import (
	"sync/atomic"
	"time"
)

// Snapshot pairs the most recently fetched document with its fetch time.
// A Snapshot value is immutable; the store replaces it wholesale on every
// successful fetch.
type Snapshot struct {
	Document  *Showtime // nil until the first successful fetch
	FetchedAt time.Time
}

// Age returns how long ago the snapshot was fetched.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// SnapshotStore holds the single cached snapshot. Reads never block and never
// observe a partially written value: the current snapshot lives behind an
// atomic pointer and writes swap the whole thing.
type SnapshotStore struct {
	current atomic.Pointer[Snapshot]
}

// NewSnapshotStore returns a store holding an empty snapshot.
func NewSnapshotStore() *SnapshotStore {
	s := &SnapshotStore{}
	s.current.Store(&Snapshot{})
	return s
}

// Read returns the current snapshot, possibly empty.
func (s *SnapshotStore) Read() Snapshot {
	return *s.current.Load()
}

// Write replaces the stored snapshot with the given document and fetch time.
func (s *SnapshotStore) Write(doc *Showtime, now time.Time) {
	s.current.Store(&Snapshot{Document: doc, FetchedAt: now})
}

// IsFresh reports whether a document is present and was fetched less than ttl
// ago. Freshness is a single absolute window from fetch time; it is not
// extended by reads.
func (s *SnapshotStore) IsFresh(now time.Time, ttl time.Duration) bool {
	snap := s.current.Load()
	return snap.Document != nil && snap.Age(now) < ttl
}
