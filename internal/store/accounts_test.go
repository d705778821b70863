package store

import (
	"errors"
	"testing"
	"time"
)

func TestEnsureAccountIsIdempotent(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	created, err := st.EnsureAccount(ctx, 42, "lizardfan")
	if err != nil || !created {
		t.Fatalf("first ensure: created=%v err=%v", created, err)
	}
	if err := st.Queries().SetNickname(ctx, 42, "Geckolord"); err != nil {
		t.Fatalf("set nickname: %v", err)
	}
	created, err = st.EnsureAccount(ctx, 42, "renamed")
	if err != nil || created {
		t.Fatalf("second ensure: created=%v err=%v", created, err)
	}
	acc, err := st.GetAccount(ctx, 42)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if acc.Username != "lizardfan" || acc.DisplayName() != "Geckolord" {
		t.Fatalf("ensure overwrote fields: %+v", acc)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	if _, err := st.GetAccount(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDebitRejectsOverdraw(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	mustAccount(t, st, ctx, 1, 30)

	bal, err := st.Debit(ctx, 1, 20, "perk_debit", "perk", "prefix")
	if err != nil || bal != 10 {
		t.Fatalf("debit: bal=%d err=%v", bal, err)
	}
	_, err = st.Debit(ctx, 1, 11, "perk_debit", "perk", "prefix")
	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if insufficient.Balance != 10 || insufficient.Shortfall() != 1 {
		t.Fatalf("unexpected shortfall detail: %+v", insufficient)
	}
	acc, _ := st.GetAccount(ctx, 1)
	if acc.Balance != 10 {
		t.Fatalf("balance changed after rejected debit: %d", acc.Balance)
	}

	entries, err := st.ListLedgerEntries(ctx, LedgerFilter{UserID: 1}, 10, 0)
	if err != nil {
		t.Fatalf("list ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected seed and debit rows, got %d", len(entries))
	}
}

func TestExtendPerkStacksFromLaterOfEndAndNow(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	mustAccount(t, st, ctx, 7, 0)
	q := st.Queries()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end, err := q.ExtendPerk(ctx, 7, PerkVIP, now, 24*time.Hour)
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	if !end.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("unexpected first end %s", end)
	}
	end, err = q.ExtendPerk(ctx, 7, PerkVIP, now.Add(time.Hour), 72*time.Hour)
	if err != nil {
		t.Fatalf("extend again: %v", err)
	}
	if !end.Equal(now.Add(96 * time.Hour)) {
		t.Fatalf("extension did not stack: %s", end)
	}

	changed, err := q.SweepExpiredPerks(ctx, 7, now.Add(100*time.Hour))
	if err != nil || !changed {
		t.Fatalf("sweep: changed=%v err=%v", changed, err)
	}
	acc, _ := st.GetAccount(ctx, 7)
	if !acc.VIPEnd.IsZero() {
		t.Fatalf("expected vip cleared, got %s", acc.VIPEnd)
	}
}

func TestPartnershipAndProposals(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	for _, id := range []int64{1, 2, 3} {
		mustAccount(t, st, ctx, id, 0)
	}
	q := st.Queries()

	if err := q.SetProposal(ctx, 2, 1); err != nil {
		t.Fatalf("set proposal: %v", err)
	}
	if err := q.SetProposal(ctx, 3, 2); err != nil {
		t.Fatalf("set proposal: %v", err)
	}
	if err := q.SetPartners(ctx, 1, 2); err != nil {
		t.Fatalf("set partners: %v", err)
	}
	if n, err := q.ClearProposalsBy(ctx, 1, 2); err != nil || n != 2 {
		t.Fatalf("clear proposals: n=%d err=%v", n, err)
	}
	a, _ := st.GetAccount(ctx, 1)
	b, _ := st.GetAccount(ctx, 2)
	if a.PartnerID != 2 || b.PartnerID != 1 || b.ProposalFromID != 0 {
		t.Fatalf("unexpected partner state: %+v %+v", a, b)
	}
	if err := q.ClearPartnership(ctx, 2, 1); err != nil {
		t.Fatalf("clear partnership: %v", err)
	}
	a, _ = st.GetAccount(ctx, 1)
	b, _ = st.GetAccount(ctx, 2)
	if a.PartnerID != 0 || b.PartnerID != 0 {
		t.Fatalf("partnership not cleared: %+v %+v", a, b)
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	mustAccount(t, st, ctx, 5, 100)

	boom := errors.New("boom")
	err := st.InTx(ctx, func(q *Queries) error {
		if _, err := q.Debit(ctx, 5, 60, "casino_bet_debit", "casino", "x"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	acc, _ := st.GetAccount(ctx, 5)
	if acc.Balance != 100 {
		t.Fatalf("rollback did not restore balance: %d", acc.Balance)
	}
}
