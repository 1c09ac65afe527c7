package store

import "sync"

// Sequencer issues strictly increasing identifiers starting at 1. Every store
// owns its own instance; identifiers are never reused within a store's
// lifetime and reset only when the process restarts.
type Sequencer struct {
	mu   sync.Mutex
	next int
}

func NewSequencer() *Sequencer {
	return &Sequencer{next: 1}
}

func (s *Sequencer) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	return id
}
