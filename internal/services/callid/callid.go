// Package callid issues identifiers for bridge calls: lowercase, monotonic ULIDs
// with a "call_" prefix, so ids sort in issue order within a process.
package callid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefix starts every id produced by a Generator.
const Prefix = "call_"

// Generator produces call ids. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     time.Now,
	}
}

// Next returns a new id such as "call_01h4pg5qr7kjb9s8vw9x1234mt".
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
	return Prefix + strings.ToLower(id.String())
}

// Valid reports whether s has the shape of an id produced by a Generator.
func Valid(s string) bool {
	rest, ok := strings.CutPrefix(s, Prefix)
	if !ok || rest != strings.ToLower(rest) {
		return false
	}
	_, err := ulid.ParseStrict(rest)
	return err == nil
}
