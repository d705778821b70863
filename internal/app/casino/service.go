package casino

import (
	"context"
	"errors"
	"strings"
	"time"

	"lizard-economy/internal/config"
	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/ledger"
	"lizard-economy/internal/rng"
	"lizard-economy/internal/store"

	"github.com/rs/zerolog/log"
)

type Service struct {
	store  *store.Store
	minBet int64
	maxBet int64
	policy cooldown.Policy
	rnd    rng.Source
	now    func() time.Time
}

func NewService(st *store.Store, cfg config.EconomyConfig, rnd rng.Source, now func() time.Time) *Service {
	if rnd == nil {
		rnd = rng.Global
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:  st,
		minBet: cfg.CasinoMinBet,
		maxBet: cfg.CasinoMaxBet,
		policy: cooldown.Policy{Kind: cooldown.KindCasino, Duration: cfg.CasinoCooldown},
		rnd:    rnd,
		now:    now,
	}
}

// Play debits the stake, spins, pays out on a match and logs the play, all in
// one transaction. Plays are gated by the casino cooldown.
func (s *Service) Play(ctx context.Context, userID, bet int64, color string) (*PlayResult, error) {
	chosen := Color(strings.ToLower(strings.TrimSpace(color)))
	sl, ok := slotFor(chosen)
	if !ok {
		return nil, ErrUnknownColor
	}
	if bet < s.minBet || bet > s.maxBet {
		return nil, &BetRangeError{Bet: bet, Min: s.minBet, Max: s.maxBet}
	}

	res := PlayResult{PlayID: store.NewID(), Chosen: chosen, Bet: bet}
	now := s.now()
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		acc, err := q.GetAccountForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		if err := s.policy.Enforce(acc.LastCasinoAt, now); err != nil {
			return err
		}
		if err := q.StampCasino(ctx, userID, now); err != nil {
			return err
		}
		l := ledger.On(q)
		bal, err := l.DebitCasinoBet(ctx, userID, bet, res.PlayID)
		if err != nil {
			return err
		}
		res.Landed = spin(s.rnd)
		if res.Landed == chosen {
			res.Won = true
			res.Payout = bet * sl.Multiplier
			if bal, err = l.CreditCasinoPayout(ctx, userID, res.Payout, res.PlayID); err != nil {
				return err
			}
		}
		res.Balance = bal
		return q.InsertCasinoPlay(ctx, store.CasinoPlay{
			ID:     res.PlayID,
			UserID: userID,
			Color:  string(chosen),
			Bet:    bet,
			Payout: res.Payout,
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("user_id", userID).Str("chosen", string(chosen)).Str("landed", string(res.Landed)).Int64("bet", bet).Int64("payout", res.Payout).Msg("casino play")
	return &res, nil
}

// Stats aggregates the play log for one user, or everyone when userID is 0.
func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	agg, err := s.store.Queries().CasinoStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &Stats{
		UserID:  userID,
		Plays:   agg.Plays,
		Wins:    agg.Wins,
		Staked:  agg.Staked,
		PaidOut: agg.PaidOut,
		Net:     agg.PaidOut - agg.Staked,
	}
	if !agg.LastPlay.IsZero() {
		last := agg.LastPlay
		out.LastPlay = &last
	}
	return out, nil
}
