// Package handshake keeps short-lived two-step interactions (propose then
// confirm, post then accept) as explicit tickets with an expiry, so pending
// state never depends on a rendered chat control still existing.
package handshake

import (
	"context"
	"errors"
	"sync"
	"time"

	"lizard-economy/internal/store"
)

var (
	ErrNotFound = errors.New("ticket_not_found")
	ErrExpired  = errors.New("ticket_expired")
	ErrClaimed  = errors.New("ticket_claimed")
	ErrNotOwner = errors.New("not_ticket_owner")
)

type State string

const (
	StateOpen    State = "open"
	StateClaimed State = "claimed"
)

type Ticket[T any] struct {
	ID        string
	Owner     int64
	Payload   T
	State     State
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Registry holds tickets of one kind. Each owner has at most one open ticket;
// opening another replaces it.
type Registry[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	tickets map[string]*Ticket[T]
	byOwner map[int64]string
	expired map[string]time.Time
}

func NewRegistry[T any](ttl time.Duration, now func() time.Time) *Registry[T] {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &Registry[T]{
		ttl:     ttl,
		now:     now,
		tickets: map[string]*Ticket[T]{},
		byOwner: map[int64]string{},
		expired: map[string]time.Time{},
	}
}

// Open issues a ticket and returns it along with any ticket it replaced.
func (r *Registry[T]) Open(owner int64, payload T) (Ticket[T], *Ticket[T]) {
	now := r.now()
	t := &Ticket[T]{
		ID:        store.NewID(),
		Owner:     owner,
		Payload:   payload,
		State:     StateOpen,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var replaced *Ticket[T]
	if prevID, ok := r.byOwner[owner]; ok {
		if prev, ok := r.tickets[prevID]; ok && prev.State == StateOpen {
			cp := *prev
			replaced = &cp
			delete(r.tickets, prevID)
		}
	}
	r.tickets[t.ID] = t
	r.byOwner[owner] = t.ID
	return *t, replaced
}

func (r *Registry[T]) Get(id string) (Ticket[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.lookupLocked(id, r.now())
	if err != nil {
		return Ticket[T]{}, err
	}
	return *t, nil
}

// OpenFor returns the owner's open ticket, if any.
func (r *Registry[T]) OpenFor(owner int64) (Ticket[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byOwner[owner]
	if !ok {
		return Ticket[T]{}, false
	}
	t, err := r.lookupLocked(id, r.now())
	if err != nil || t.State != StateOpen {
		return Ticket[T]{}, false
	}
	return *t, true
}

// Claim moves an open ticket to claimed. Exactly one concurrent caller wins;
// the rest get ErrClaimed.
func (r *Registry[T]) Claim(id string) (Ticket[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.lookupLocked(id, r.now())
	if err != nil {
		return Ticket[T]{}, err
	}
	if t.State != StateOpen {
		return Ticket[T]{}, ErrClaimed
	}
	t.State = StateClaimed
	return *t, nil
}

// ClaimOwned claims a ticket only on behalf of its owner.
func (r *Registry[T]) ClaimOwned(id string, owner int64) (Ticket[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.lookupLocked(id, r.now())
	if err != nil {
		return Ticket[T]{}, err
	}
	if t.Owner != owner {
		return Ticket[T]{}, ErrNotOwner
	}
	if t.State != StateOpen {
		return Ticket[T]{}, ErrClaimed
	}
	t.State = StateClaimed
	return *t, nil
}

// Release returns a claimed ticket to open so another attempt can resolve it.
func (r *Registry[T]) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tickets[id]; ok && t.State == StateClaimed {
		t.State = StateOpen
	}
}

// Complete removes a resolved ticket.
func (r *Registry[T]) Complete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(id)
}

// Cancel removes an open ticket on behalf of its owner.
func (r *Registry[T]) Cancel(id string, owner int64) (Ticket[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.lookupLocked(id, r.now())
	if err != nil {
		return Ticket[T]{}, err
	}
	if t.Owner != owner {
		return Ticket[T]{}, ErrNotOwner
	}
	if t.State != StateOpen {
		return Ticket[T]{}, ErrClaimed
	}
	out := *t
	r.removeLocked(id)
	return out, nil
}

// Sweep drops open tickets past their expiry and returns them. Claimed
// tickets are left to their resolver.
func (r *Registry[T]) Sweep(now time.Time) []Ticket[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Ticket[T]
	for id, t := range r.tickets {
		if t.State == StateOpen && !now.Before(t.ExpiresAt) {
			out = append(out, *t)
			r.expireLocked(id, now)
		}
	}
	for id, at := range r.expired {
		if now.Sub(at) > r.ttl {
			delete(r.expired, id)
		}
	}
	return out
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickets)
}

// StartJanitor sweeps expired tickets until ctx is done. onExpire, if set, is
// called outside the lock for each swept ticket.
func (r *Registry[T]) StartJanitor(ctx context.Context, interval time.Duration, onExpire func(Ticket[T])) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, t := range r.Sweep(r.now()) {
					if onExpire != nil {
						onExpire(t)
					}
				}
			}
		}
	}()
}

func (r *Registry[T]) lookupLocked(id string, now time.Time) (*Ticket[T], error) {
	t, ok := r.tickets[id]
	if !ok {
		if _, gone := r.expired[id]; gone {
			return nil, ErrExpired
		}
		return nil, ErrNotFound
	}
	if t.State == StateOpen && !now.Before(t.ExpiresAt) {
		r.expireLocked(id, now)
		return nil, ErrExpired
	}
	return t, nil
}

func (r *Registry[T]) expireLocked(id string, now time.Time) {
	r.removeLocked(id)
	r.expired[id] = now
}

func (r *Registry[T]) removeLocked(id string) {
	t, ok := r.tickets[id]
	if !ok {
		return
	}
	delete(r.tickets, id)
	if r.byOwner[t.Owner] == id {
		delete(r.byOwner, t.Owner)
	}
}
