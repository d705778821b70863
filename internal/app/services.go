// Package app wires the economy services that the transports share.
package app

import (
	"context"
	"time"

	"lizard-economy/internal/activity"
	"lizard-economy/internal/app/account"
	"lizard-economy/internal/app/casino"
	"lizard-economy/internal/app/duel"
	"lizard-economy/internal/app/marriage"
	"lizard-economy/internal/app/pets"
	"lizard-economy/internal/app/quiz"
	"lizard-economy/internal/config"
	"lizard-economy/internal/notify"
	"lizard-economy/internal/rng"
	"lizard-economy/internal/store"
)

type Services struct {
	Accounts *account.Service
	Marriage *marriage.Service
	Duels    *duel.Service
	Pets     *pets.Service
	Quiz     *quiz.Service
	Casino   *casino.Service
	Ping     *activity.Pinger
}

// Options overrides the defaults NewServices would otherwise pick.
type Options struct {
	Notifier notify.Notifier
	Rand     rng.Source
	Now      func() time.Time
	Tracker  activity.Tracker
}

func NewServices(st *store.Store, cfg config.EconomyConfig, opts Options) *Services {
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard{}
	}
	if opts.Rand == nil {
		opts.Rand = rng.Global
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Tracker == nil {
		opts.Tracker = activity.NewMemoryTracker()
	}
	return &Services{
		Accounts: account.NewService(st, cfg, opts.Notifier, opts.Rand, opts.Now),
		Marriage: marriage.NewService(st, cfg, opts.Notifier, opts.Now),
		Duels:    duel.NewService(st, cfg, opts.Rand, opts.Now),
		Pets:     pets.NewService(st, cfg, opts.Notifier, opts.Rand, opts.Now),
		Quiz:     quiz.NewService(st, cfg, opts.Rand, opts.Now),
		Casino:   casino.NewService(st, cfg, opts.Rand, opts.Now),
		Ping:     activity.NewPinger(opts.Tracker, cfg, opts.Rand, opts.Now),
	}
}

// StartBackground runs the sweepers for in-memory handshakes and activity
// until ctx is done.
func (s *Services) StartBackground(ctx context.Context, interval time.Duration) {
	s.Marriage.StartJanitor(ctx, interval)
	s.Duels.StartJanitor(ctx, interval)
	s.Ping.StartJanitor(ctx, interval)
}

func (s *Services) Shutdown() {
	s.Quiz.Shutdown()
}
