package notify

import "sync"

// Recorder keeps every notice in memory. Useful where delivery is not wanted.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return true
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// OfKind returns the recorded notices of one kind.
func (r *Recorder) OfKind(k Kind) []Notice {
	var out []Notice
	for _, n := range r.Notices() {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}
