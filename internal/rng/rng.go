// Package rng provides a goroutine-safe random source that tests can seed.
package rng

import (
	"math/rand/v2"
	"sync"
)

type Source interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a deterministic source for the given seed.
func New(seed uint64) Source {
	return &locked{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

type global struct{}

// Global is backed by the runtime-seeded top-level generator.
var Global Source = global{}

func (global) IntN(n int) int { return rand.IntN(n) }

// Between returns a uniform int64 in [lo, hi].
func Between(src Source, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(src.IntN(int(hi-lo+1)))
}

// Sample returns up to k distinct elements of items in random order.
func Sample[T any](src Source, items []T, k int) []T {
	pool := append([]T(nil), items...)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Pick returns one uniformly chosen element. items must not be empty.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
