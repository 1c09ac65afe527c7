package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencerStartsAtOne(t *testing.T) {
	s := NewSequencer()

	assert.Equal(t, 1, s.Next())
	assert.Equal(t, 2, s.Next())
	assert.Equal(t, 3, s.Next())
}

func TestSequencerConcurrentCallersGetUniqueIDs(t *testing.T) {
	const (
		goroutines = 50
		perCaller  = 20
	)

	s := NewSequencer()
	ids := make(chan int, goroutines*perCaller)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perCaller; i++ {
				ids <- s.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines*perCaller)
}
