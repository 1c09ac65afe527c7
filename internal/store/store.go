// Package store provides a concurrency-safe in-memory container for records
// keyed by a store-assigned integer identity. Contents are volatile; nothing
// survives a process restart.
package store

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"
)

// DefaultPageSize is used when a caller passes a page size below 1.
const DefaultPageSize = 10

// ValidateFunc inspects an entity before insertion and reports every failed
// constraint, or nil when the entity is acceptable.
type ValidateFunc[T Entity] func(T) *ValidationError

// MergeFunc copies the set fields of patch onto existing. Implementations
// list exactly which fields are patchable; identity fields are owned by the
// store and must not be touched.
type MergeFunc[T Entity] func(existing, patch T)

// Store holds entities of one type behind a single RWMutex. It is safe for
// simultaneous readers and writers without external locking. Updates mutate
// the stored instance in place, so two concurrent updates to the same ID can
// interleave field by field; that last-writer-wins-per-field behavior is the
// documented consistency contract of this container.
type Store[T Entity] struct {
	mu       sync.RWMutex
	seq      *Sequencer
	entities map[int]T
	validate ValidateFunc[T]
	merge    MergeFunc[T]
}

// New constructs an empty store with its own identifier sequence.
func New[T Entity](validate ValidateFunc[T], merge MergeFunc[T]) *Store[T] {
	return &Store[T]{
		seq:      NewSequencer(),
		entities: make(map[int]T),
		validate: validate,
		merge:    merge,
	}
}

// Get returns the entity with the given ID, or false when absent.
func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[id]
	return e, ok
}

// List returns a fresh slice of all entities ordered by ascending ID.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Store[T]) sortedLocked() []T {
	out := make([]T, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out
}

// Page returns one page of the ID-ascending listing. A page below 1 is
// clamped to the first page and a size below 1 to DefaultPageSize.
func (s *Store[T]) Page(page, size int) []T {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	all := s.List()
	start := (page - 1) * size
	if start >= len(all) {
		return []T{}
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// Find returns all entities matching pred, ordered by ascending ID.
func (s *Store[T]) Find(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, e := range s.sortedLocked() {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// FindFirst returns the first entity (in ID order) matching pred.
func (s *Store[T]) FindFirst(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.sortedLocked() {
		if pred(e) {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// Add validates the entity, assigns it a fresh ID and creation timestamp and
// inserts it. Validation failures are reported before any state changes.
func (s *Store[T]) Add(e T) (T, error) {
	var zero T
	if isNil(e) {
		return zero, ErrNilEntity
	}
	if s.validate != nil {
		if verr := s.validate(e); verr != nil {
			return zero, verr
		}
	}

	id := s.seq.Next()
	e.stamp(id, time.Now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()

	// The sequencer never repeats, so a collision here means the entity map
	// was corrupted by something outside this package.
	if _, exists := s.entities[id]; exists {
		return zero, fmt.Errorf("store: id %d already present", id)
	}
	s.entities[id] = e
	return e, nil
}

// AddAll inserts entities in order, stopping at the first failure.
func (s *Store[T]) AddAll(entities ...T) ([]T, error) {
	added := make([]T, 0, len(entities))
	for _, e := range entities {
		a, err := s.Add(e)
		if err != nil {
			return added, err
		}
		added = append(added, a)
	}
	return added, nil
}

// Update merges the set fields of patch onto the stored entity with the
// given ID and returns the stored instance, which is mutated in place. The
// second return is false when no entity has that ID; nothing is changed in
// that case. ID and CreatedAt are never touched.
func (s *Store[T]) Update(id int, patch T) (T, bool, error) {
	var zero T
	if isNil(patch) {
		return zero, false, ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entities[id]
	if !ok {
		return zero, false, nil
	}
	s.merge(existing, patch)
	return existing, true, nil
}

// Delete removes the entity with the given ID and reports whether anything
// was removed.
func (s *Store[T]) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return false
	}
	delete(s.entities, id)
	return true
}

// DeleteRange removes every entity matching pred and returns how many were
// removed. Each removal is atomic but the batch as a whole is not: writers
// running concurrently may interleave between removals.
func (s *Store[T]) DeleteRange(pred func(T) bool) int {
	matches := s.Find(pred)

	removed := 0
	for _, e := range matches {
		if s.Delete(e.EntityID()) {
			removed++
		}
	}
	return removed
}

// Count returns the number of stored entities.
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// CountWhere returns the number of entities matching pred.
func (s *Store[T]) CountWhere(pred func(T) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entities {
		if pred(e) {
			n++
		}
	}
	return n
}

// Exists reports whether an entity with the given ID is present.
func (s *Store[T]) Exists(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entities[id]
	return ok
}

// Any reports whether at least one entity matches pred.
func (s *Store[T]) Any(pred func(T) bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entities {
		if pred(e) {
			return true
		}
	}
	return false
}

// Clear removes every entity. The sequencer is not reset, so IDs issued
// after a Clear never collide with IDs issued before it.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = make(map[int]T)
}

func isNil[T Entity](e T) bool {
	v := reflect.ValueOf(e)
	return !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil())
}
