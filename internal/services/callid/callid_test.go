package callid

import (
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Format(t *testing.T) {
	idRegex := regexp.MustCompile(`^call_[0-9a-hjkmnp-tv-z]{26}$`)

	id := New().Next()
	assert.True(t, idRegex.MatchString(id), "unexpected id format: %s", id)
	assert.True(t, Valid(id))
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("01H4PG5QR7KJB9S8VW9X1234MT"), "missing prefix")
	assert.False(t, Valid("call_01H4PG5QR7KJB9S8VW9X1234MT"), "uppercase")
	assert.False(t, Valid("call_not-a-ulid"))
}

func TestNext_MonotonicWithinMillisecond(t *testing.T) {
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	g := New()
	g.now = func() time.Time { return fixed }

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = g.Next()
	}

	assert.True(t, sort.StringsAreSorted(ids), "ids issued in the same millisecond must sort in issue order")
}

func TestNext_ConcurrentUniqueness(t *testing.T) {
	g := New()

	const goroutines = 10
	const perGoroutine = 100

	var mu sync.Mutex
	seen := make(map[string]bool, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				id := g.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, goroutines*perGoroutine)
}
