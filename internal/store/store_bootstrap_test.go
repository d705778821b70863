package store

import (
	"testing"
	"time"
)

func TestStoreBootstrapPing(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	if err := st.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestStoreBootstrapSchema(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	tables := []string{"accounts", "ledger_entries", "topups", "pets", "owned_eggs", "quiz_questions", "casino_log"}
	for _, name := range tables {
		var found bool
		err := st.Pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, name).Scan(&found)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if !found {
			t.Fatalf("table %s missing after migration", name)
		}
	}
}

func TestStampCasinoRoundTrip(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	mustAccount(t, st, ctx, 7, 0)

	acc, err := st.GetAccount(ctx, 7)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !acc.LastCasinoAt.IsZero() {
		t.Fatalf("fresh account has casino stamp %v", acc.LastCasinoAt)
	}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := st.Queries().StampCasino(ctx, 7, at); err != nil {
		t.Fatalf("stamp casino: %v", err)
	}
	acc, err = st.GetAccount(ctx, 7)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !acc.LastCasinoAt.Equal(at) {
		t.Fatalf("LastCasinoAt = %v, want %v", acc.LastCasinoAt, at)
	}
	if err := st.Queries().StampCasino(ctx, 404, at); err == nil {
		t.Fatal("expected error for unknown account")
	}
}
