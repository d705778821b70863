// Package activity keeps a best-effort, in-memory record of when chat members
// last spoke. It is lost on restart and never feeds the ledger.
package activity

import (
	"sort"
	"sync"
	"time"
)

type Tracker interface {
	Touch(chatID, userID int64, at time.Time)
	// Idle lists users whose last activity in the chat lies strictly between
	// now-maxIdle and now-minIdle.
	Idle(chatID int64, now time.Time, minIdle, maxIdle time.Duration) []int64
	Prune(before time.Time) int
}

type MemoryTracker struct {
	mu     sync.Mutex
	byChat map[int64]map[int64]time.Time
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{byChat: map[int64]map[int64]time.Time{}}
}

func (t *MemoryTracker) Touch(chatID, userID int64, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	users := t.byChat[chatID]
	if users == nil {
		users = map[int64]time.Time{}
		t.byChat[chatID] = users
	}
	if prev, ok := users[userID]; !ok || at.After(prev) {
		users[userID] = at
	}
}

func (t *MemoryTracker) Idle(chatID int64, now time.Time, minIdle, maxIdle time.Duration) []int64 {
	lower := now.Add(-maxIdle)
	upper := now.Add(-minIdle)
	t.mu.Lock()
	defer t.mu.Unlock()
	out := []int64{}
	for userID, last := range t.byChat[chatID] {
		if last.After(lower) && last.Before(upper) {
			out = append(out, userID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Prune forgets activity older than before and reports how many entries went.
func (t *MemoryTracker) Prune(before time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for chatID, users := range t.byChat {
		for userID, last := range users {
			if last.Before(before) {
				delete(users, userID)
				n++
			}
		}
		if len(users) == 0 {
			delete(t.byChat, chatID)
		}
	}
	return n
}
