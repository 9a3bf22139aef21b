package store

import "sync"

// Store is an in-memory record store keyed by a monotonically assigned
// integer identifier. Each service owns exactly one Store per record type;
// no record is reachable from another service except through messages.
//
// All operations take the mutex, so identifier allocation and insertion are
// a single atomic step and concurrent creates always receive distinct ids.
type Store[T any] struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]T
	assign  func(rec *T, id int64)
}

// New creates an empty store. assign writes the allocated identifier into
// the record; identifiers start at 1 and are never reused.
func New[T any](assign func(rec *T, id int64)) *Store[T] {
	return &Store[T]{
		nextID:  1,
		records: make(map[int64]T),
		assign:  assign,
	}
}

// Create allocates the next identifier, inserts the record and returns the
// stored copy.
func (s *Store[T]) Create(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.assign(&rec, id)
	s.records[id] = rec
	return rec
}

// Get returns the record for id. Absence is an expected result, reported
// through the second return value.
func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	return rec, ok
}

// Update applies mutate to the record for id under the lock and returns the
// updated record, or reports not-found.
func (s *Store[T]) Update(id int64, mutate func(rec *T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		var zero T
		return zero, false
	}

	mutate(&rec)
	s.records[id] = rec
	return rec, true
}

// Delete removes the record for id and reports whether it existed.
func (s *Store[T]) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[id]
	delete(s.records, id)
	return ok
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
