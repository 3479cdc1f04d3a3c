/*
Package shuffle defines the Shuffler collaborator spec.md §1 scopes out of
this core: persistent, no-repeat-until-exhausted random selection over the
library. This package owns only the interface and a minimal non-persistent
default, so `cmd/wallsync random` is runnable without a real shuffler
wired in; a durable implementation (e.g. backed by the `database` config
path) is left to an external collaborator.
*/
package shuffle

import (
	"math/rand"
	"time"
)

// Shuffler selects wallpapers for random-mode display without repeating
// one before the rest of the pool has been shown.
type Shuffler interface {
	// TryUniqueN returns up to n distinct, not-recently-shown item keys.
	TryUniqueN(n int) ([]string, error)
	// Compact discards any exhausted internal bookkeeping, e.g. resetting
	// the shown-set once every item has appeared.
	Compact() error
	// Close releases any resources (open database handles, etc).
	Close() error
}

// Simple is a non-persistent Shuffler: each call draws a fresh
// math/rand permutation of the supplied pool and does not remember what
// was shown across process restarts.
type Simple struct {
	Pool []string
	rng  *rand.Rand
}

// NewSimple returns a Simple shuffler drawing from pool.
func NewSimple(pool []string) *Simple {
	return &Simple{Pool: pool, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// TryUniqueN implements Shuffler.
func (s *Simple) TryUniqueN(n int) ([]string, error) {
	if n > len(s.Pool) {
		n = len(s.Pool)
	}
	perm := s.rng.Perm(len(s.Pool))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, s.Pool[i])
	}
	return out, nil
}

// Compact is a no-op for Simple: there is no persisted state to compact.
func (s *Simple) Compact() error { return nil }

// Close is a no-op for Simple.
func (s *Simple) Close() error { return nil }
