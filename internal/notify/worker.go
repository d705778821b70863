package notify

import (
	"context"
	"errors"
	"time"

	"lizard-economy/internal/notify/platforms"

	"github.com/rs/zerolog/log"
)

var errCircuitOpen = errors.New("circuit_open")

func (m *Manager) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case j := <-m.dispatchCh:
			metricQueueLen.Set(int64(len(m.dispatchCh)))
			m.process(ctx, j)
		}
	}
}

func (m *Manager) process(ctx context.Context, j job) {
	adapter := m.adapters[j.Target.Platform]
	if adapter == nil {
		metricDroppedTotal.Add(1)
		return
	}

	key := j.Target.key()
	if err := m.beforeSend(key, time.Now()); err != nil {
		metricCircuitOpenTotal.Add(1)
		m.retryOrDrop(j, err)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, m.requestTimeout())
	err := adapter.Send(sendCtx, j.Target.Endpoint, j.Message)
	cancel()
	if err == nil {
		metricSentTotal.Add(1)
		m.afterSuccess(key)
		return
	}

	metricFailedTotal.Add(1)
	if errors.Is(err, platforms.ErrPermanent) {
		// The recipient is unreachable, not the platform.
		metricPermanentTotal.Add(1)
		log.Warn().Err(err).Str("kind", string(j.Notice.Kind)).Str("platform", j.Target.Platform).
			Int64("user_id", j.Notice.UserID).Msg("notification undeliverable")
		return
	}
	m.afterFailure(key, time.Now())
	m.retryOrDrop(j, err)
}

func (m *Manager) requestTimeout() time.Duration {
	if m.cfg.RequestTimeout <= 0 {
		return 5 * time.Second
	}
	return m.cfg.RequestTimeout
}

func (m *Manager) retryOrDrop(j job, err error) bool {
	if j.Attempt >= m.cfg.RetryMax {
		metricRetryDroppedTotal.Add(1)
		log.Warn().Err(err).Str("kind", string(j.Notice.Kind)).Str("platform", j.Target.Platform).
			Int("attempts", j.Attempt+1).Msg("notification dropped after retries")
		return false
	}
	j.Attempt++
	metricRetryTotal.Add(1)
	delay := m.cfg.RetryBase * time.Duration(1<<(j.Attempt-1))
	m.retryQ.Enqueue(j, delay)
	return true
}

func (m *Manager) beforeSend(key string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.breakerByKey[key]
	if !state.openUntil.IsZero() && now.Before(state.openUntil) {
		return errCircuitOpen
	}
	return nil
}

func (m *Manager) afterFailure(key string, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.breakerByKey[key]
	state.consecutiveFailures++
	if state.consecutiveFailures >= m.cfg.FailureThreshold {
		state.openUntil = now.Add(m.cfg.CircuitOpenDuration)
		state.consecutiveFailures = 0
	}
	m.breakerByKey[key] = state
}

func (m *Manager) afterSuccess(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.breakerByKey, key)
}
