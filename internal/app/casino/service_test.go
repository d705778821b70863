package casino

import (
	"context"
	"errors"
	"testing"
	"time"

	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/store"
	"lizard-economy/internal/testutil"
)

func TestPlayValidation(t *testing.T) {
	svc := NewService(nil, testutil.Economy(), fixed(0), nil)
	ctx := context.Background()
	if _, err := svc.Play(ctx, 1, 100, "purple"); !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("expected ErrUnknownColor, got %v", err)
	}
	var rangeErr *BetRangeError
	if _, err := svc.Play(ctx, 1, 9, "red"); !errors.As(err, &rangeErr) || rangeErr.Min != 10 {
		t.Fatalf("expected bet range error, got %v", err)
	}
	if _, err := svc.Play(ctx, 1, 10001, "red"); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet, got %v", err)
	}
}

func TestPlaySettlesAndLogs(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	testutil.MustAccount(t, st, 1, 1000)

	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	green := NewService(st, testutil.Economy(), fixed(960), clock.Now)
	win, err := green.Play(ctx, 1, 100, "Green")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !win.Won || win.Payout != 1000 || win.Balance != 1900 {
		t.Fatalf("unexpected win: %+v", win)
	}

	clock.Advance(time.Minute)
	loss, err := green.Play(ctx, 1, 100, "red")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if loss.Won || loss.Payout != 0 || loss.Balance != 1800 || loss.Landed != Green {
		t.Fatalf("unexpected loss: %+v", loss)
	}

	clock.Advance(time.Minute)
	if _, err := green.Play(ctx, 1, 5000, "red"); !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	stats, err := green.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Plays != 2 || stats.Wins != 1 || stats.Staked != 200 || stats.PaidOut != 1000 || stats.Net != 800 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	all, err := green.Stats(ctx, 0)
	if err != nil || all.Plays != 2 {
		t.Fatalf("global stats: %+v %v", all, err)
	}
}

func TestPlayCooldownLeavesStateUntouched(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	testutil.MustAccount(t, st, 1, 1000)

	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := NewService(st, testutil.Economy(), fixed(0), clock.Now)
	first, err := svc.Play(ctx, 1, 100, "black")
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	clock.Advance(20 * time.Second)
	_, err = svc.Play(ctx, 1, 100, "black")
	var cdErr *cooldown.Error
	if !errors.As(err, &cdErr) || cdErr.Kind != cooldown.KindCasino || cdErr.Remaining != 40*time.Second {
		t.Fatalf("expected casino cooldown, got %v", err)
	}
	if !errors.Is(err, cooldown.ErrActive) {
		t.Fatalf("expected ErrActive, got %v", err)
	}

	acc, err := st.Queries().GetAccount(ctx, 1)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if acc.Balance != first.Balance {
		t.Fatalf("balance moved under cooldown: %d != %d", acc.Balance, first.Balance)
	}
	if !acc.LastCasinoAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("cooldown stamp moved: %v", acc.LastCasinoAt)
	}
	stats, err := svc.Stats(ctx, 1)
	if err != nil || stats.Plays != 1 {
		t.Fatalf("log grew under cooldown: %+v %v", stats, err)
	}

	clock.Advance(40 * time.Second)
	if _, err := svc.Play(ctx, 1, 100, "black"); err != nil {
		t.Fatalf("play after cooldown: %v", err)
	}
}
