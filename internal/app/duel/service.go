package duel

import (
	"context"
	"errors"
	"time"

	"lizard-economy/internal/config"
	"lizard-economy/internal/handshake"
	"lizard-economy/internal/ledger"
	"lizard-economy/internal/rng"
	"lizard-economy/internal/store"

	"github.com/rs/zerolog/log"
)

const dieFaces = 6

type Service struct {
	store  *store.Store
	rnd    rng.Source
	pacing time.Duration
	duels  *handshake.Registry[int64]
}

func NewService(st *store.Store, cfg config.EconomyConfig, rnd rng.Source, now func() time.Time) *Service {
	if rnd == nil {
		rnd = rng.Global
	}
	return &Service{
		store:  st,
		rnd:    rnd,
		pacing: cfg.DuelRollPacing,
		duels:  handshake.NewRegistry[int64](cfg.DuelExpiry, now),
	}
}

// StartJanitor drops duels nobody accepted in time.
func (s *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	s.duels.StartJanitor(ctx, interval, func(t handshake.Ticket[int64]) {
		log.Info().Str("duel_id", t.ID).Int64("host_id", t.Owner).Int64("bet", t.Payload).Msg("duel expired")
	})
}

func mapTicketErr(err error) error {
	switch {
	case errors.Is(err, handshake.ErrNotFound):
		return ErrDuelNotFound
	case errors.Is(err, handshake.ErrExpired):
		return ErrDuelExpired
	case errors.Is(err, handshake.ErrClaimed):
		return ErrDuelTaken
	case errors.Is(err, handshake.ErrNotOwner):
		return ErrNotHost
	default:
		return err
	}
}

func toDuel(t handshake.Ticket[int64]) *Duel {
	return &Duel{
		ID:        t.ID,
		HostID:    t.Owner,
		Bet:       t.Payload,
		State:     string(t.State),
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}

// Start posts an open duel. The bet is checked but not reserved.
func (s *Service) Start(ctx context.Context, hostID, bet int64) (*Duel, error) {
	if bet <= 0 {
		return nil, ErrInvalidBet
	}
	acc, err := s.store.GetAccount(ctx, hostID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if acc.Balance < bet {
		return nil, &store.InsufficientFundsError{Balance: acc.Balance, Required: bet}
	}
	t, replaced := s.duels.Open(hostID, bet)
	if replaced != nil {
		log.Info().Str("duel_id", replaced.ID).Int64("host_id", hostID).Msg("duel replaced")
	}
	log.Info().Str("duel_id", t.ID).Int64("host_id", hostID).Int64("bet", bet).Msg("duel opened")
	return toDuel(t), nil
}

func (s *Service) Get(duelID string) (*Duel, error) {
	t, err := s.duels.Get(duelID)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	return toDuel(t), nil
}

// Cancel withdraws an open duel on behalf of its host.
func (s *Service) Cancel(hostID int64, duelID string) error {
	_, err := s.duels.Cancel(duelID, hostID)
	return mapTicketErr(err)
}

// Accept resolves a duel against the challenger. Only one concurrent accept
// claims the duel. A challenger who cannot cover the bet leaves the duel open
// for others; a host who can no longer cover it voids the duel.
func (s *Service) Accept(ctx context.Context, duelID string, challengerID int64) (*Result, error) {
	open, err := s.duels.Get(duelID)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	if open.Owner == challengerID {
		return nil, ErrSelfDuel
	}
	t, err := s.duels.Claim(duelID)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	res := Result{DuelID: t.ID, HostID: t.Owner, ChallengerID: challengerID, Bet: t.Payload}

	res.HostRoll = s.roll()
	res.ChallengerRoll = s.roll()
	if err := s.pace(ctx); err != nil {
		s.duels.Release(t.ID)
		return nil, err
	}

	err = s.store.InTx(ctx, func(q *store.Queries) error {
		accs, err := q.LockAccounts(ctx, res.HostID, challengerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		host, challenger := accs[res.HostID], accs[challengerID]
		if challenger.Balance < res.Bet {
			return &store.InsufficientFundsError{Balance: challenger.Balance, Required: res.Bet}
		}
		if host.Balance < res.Bet {
			return ErrConditionsChanged
		}
		res.HostBalance, res.ChallengerBalance = host.Balance, challenger.Balance

		switch {
		case res.HostRoll > res.ChallengerRoll:
			res.WinnerID = res.HostID
			res.HostBalance += res.Bet
			res.ChallengerBalance -= res.Bet
			return ledger.On(q).SettleDuel(ctx, res.HostID, challengerID, res.Bet, res.DuelID)
		case res.ChallengerRoll > res.HostRoll:
			res.WinnerID = challengerID
			res.ChallengerBalance += res.Bet
			res.HostBalance -= res.Bet
			return ledger.On(q).SettleDuel(ctx, challengerID, res.HostID, res.Bet, res.DuelID)
		default:
			return nil
		}
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConditionsChanged):
			s.duels.Complete(t.ID)
		default:
			s.duels.Release(t.ID)
		}
		return nil, err
	}
	s.duels.Complete(t.ID)

	log.Info().
		Str("duel_id", res.DuelID).
		Int64("host_id", res.HostID).
		Int64("challenger_id", challengerID).
		Int("host_roll", res.HostRoll).
		Int("challenger_roll", res.ChallengerRoll).
		Int64("winner_id", res.WinnerID).
		Msg("duel resolved")
	return &res, nil
}

func (s *Service) roll() int {
	return 1 + s.rnd.IntN(dieFaces)
}

func (s *Service) pace(ctx context.Context) error {
	if s.pacing <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
