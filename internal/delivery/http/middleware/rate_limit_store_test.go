package middleware

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func storeLen(s *memoryStore) int {
	n := 0
	s.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func TestMemoryStoreSweep(t *testing.T) {
	t.Run("Should drop keys whose window has ended", func(t *testing.T) {
		store := &memoryStore{}
		past := time.Now().Add(-time.Hour)

		for i := 0; i < 10000; i++ {
			store.check(fmt.Sprintf("rl:contact:10.0.%d.%d", i/256, i%256), time.Minute, past)
		}
		assert.Equal(t, 10000, storeLen(store))

		count, _ := store.check("rl:contact:192.0.2.1", time.Minute, time.Now())

		assert.Equal(t, 1, count)
		assert.Equal(t, 1, storeLen(store))
	})

	t.Run("Should keep counting live keys across a sweep", func(t *testing.T) {
		store := &memoryStore{}
		now := time.Now()

		store.check("a", time.Minute, now)
		store.check("b", time.Minute, now.Add(-2*time.Minute))

		count, _ := store.check("a", time.Minute, now.Add(30*time.Second))
		assert.Equal(t, 2, count)

		// Next sweep is due one window after the first check
		count, _ = store.check("a", time.Minute, now.Add(61*time.Second))
		assert.Equal(t, 1, count, "window for a ended, counter restarts")
		_, ok := store.entries.Load("b")
		assert.False(t, ok)
	})
}
