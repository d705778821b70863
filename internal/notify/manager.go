package notify

import (
	"context"
	"strconv"
	"sync"
	"time"

	"lizard-economy/internal/notify/platforms"

	"github.com/rs/zerolog/log"
)

type breakerState struct {
	consecutiveFailures int
	openUntil           time.Time
}

// Manager fans notices out to chat platforms on a worker pool with retries
// and a per-target circuit breaker. Delivery never blocks the caller.
type Manager struct {
	cfg      Config
	adapters map[string]platforms.Adapter

	dispatchCh chan job
	retryQ     *retryQueue
	done       chan struct{}

	mu           sync.Mutex
	started      bool
	breakerByKey map[string]breakerState
}

func NewManager(cfg Config, adapters ...platforms.Adapter) *Manager {
	if cfg.DispatchBuffer <= 0 {
		cfg.DispatchBuffer = 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.CircuitOpenDuration <= 0 {
		cfg.CircuitOpenDuration = 30 * time.Second
	}

	m := &Manager{
		cfg:          cfg,
		adapters:     map[string]platforms.Adapter{},
		dispatchCh:   make(chan job, cfg.DispatchBuffer),
		done:         make(chan struct{}),
		breakerByKey: map[string]breakerState{},
	}
	for _, a := range adapters {
		if a != nil {
			m.adapters[a.Name()] = a
		}
	}
	m.retryQ = newRetryQueue(m.dispatchCh, m.done)
	return m
}

func (m *Manager) Start(ctx context.Context) error {
	if !m.cfg.Enabled {
		return nil
	}

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	for i := 0; i < m.cfg.Workers; i++ {
		go m.worker(ctx)
	}
	go func() {
		<-ctx.Done()
		close(m.done)
	}()
	log.Info().Int("workers", m.cfg.Workers).Int("adapters", len(m.adapters)).Msg("notifier started")
	return nil
}

// Notify routes n to its targets and queues one delivery per target.
func (m *Manager) Notify(n Notice) bool {
	if !m.cfg.Enabled {
		return false
	}
	targets := m.targetsFor(n)
	if len(targets) == 0 {
		log.Debug().Str("kind", string(n.Kind)).Int64("user_id", n.UserID).Msg("notice has no delivery target")
		return false
	}
	msg := Format(n)
	queued := false
	for _, t := range targets {
		if m.enqueue(job{Target: t, Notice: n, Message: msg}) {
			queued = true
			continue
		}
		metricDroppedTotal.Add(1)
		log.Warn().Str("kind", string(n.Kind)).Str("platform", t.Platform).Msg("notify queue full, notice dropped")
	}
	return queued
}

func (m *Manager) targetsFor(n Notice) []Target {
	var out []Target
	_, hasTelegram := m.adapters["telegram"]
	_, hasDiscord := m.adapters["discord"]
	switch n.Audience {
	case AudienceUser:
		if hasTelegram && n.UserID != 0 {
			out = append(out, Target{Platform: "telegram", Endpoint: strconv.FormatInt(n.UserID, 10)})
		}
	case AudienceAdmins:
		if hasTelegram {
			for _, id := range m.cfg.AdminChatIDs {
				out = append(out, Target{Platform: "telegram", Endpoint: strconv.FormatInt(id, 10)})
			}
		}
		if hasDiscord && m.cfg.DiscordWebhook != "" {
			out = append(out, Target{Platform: "discord", Endpoint: m.cfg.DiscordWebhook})
		}
	}
	return out
}

func (m *Manager) enqueue(j job) bool {
	select {
	case <-m.done:
		return false
	case m.dispatchCh <- j:
		metricQueuedTotal.Add(1)
		metricQueueLen.Set(int64(len(m.dispatchCh)))
		return true
	default:
		return false
	}
}
