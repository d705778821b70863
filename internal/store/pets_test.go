package store

import (
	"errors"
	"testing"
	"time"
)

func TestDeleteNeglectedPetsUsesLatestCare(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	mustAccount(t, st, ctx, 10, 0)
	q := st.Queries()

	born := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old, err := q.InsertPet(ctx, 10, "Old", "gecko", born)
	if err != nil {
		t.Fatalf("insert pet: %v", err)
	}
	fresh, err := q.InsertPet(ctx, 10, "Fresh", "iguana", born)
	if err != nil {
		t.Fatalf("insert pet: %v", err)
	}
	if _, err := q.StampCare(ctx, fresh.ID, CareWalk, born.Add(47*time.Hour)); err != nil {
		t.Fatalf("stamp care: %v", err)
	}

	gone, err := q.DeleteNeglectedPets(ctx, 10, born.Add(72*time.Hour).Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("delete neglected: %v", err)
	}
	if len(gone) != 1 || gone[0].ID != old.ID {
		t.Fatalf("unexpected removed pets: %+v", gone)
	}
	n, _ := q.CountPets(ctx, 10)
	if n != 1 {
		t.Fatalf("expected one pet left, got %d", n)
	}
}

func TestStampCareGrowRaisesLevel(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	mustAccount(t, st, ctx, 11, 0)
	q := st.Queries()

	p, err := q.InsertPet(ctx, 11, "Rex", "monitor", time.Now())
	if err != nil {
		t.Fatalf("insert pet: %v", err)
	}
	grown, err := q.StampCare(ctx, p.ID, CareGrow, time.Now())
	if err != nil {
		t.Fatalf("grow: %v", err)
	}
	if grown.Level != p.Level+1 || grown.GrownAt.IsZero() {
		t.Fatalf("unexpected grown pet: %+v", grown)
	}
}

func TestTakeEggOnlyForOwner(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()
	mustAccount(t, st, ctx, 12, 0)
	mustAccount(t, st, ctx, 13, 0)
	q := st.Queries()

	egg, err := q.InsertEgg(ctx, 12, "rare")
	if err != nil {
		t.Fatalf("insert egg: %v", err)
	}
	if _, err := q.TakeEgg(ctx, 13, egg.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign egg, got %v", err)
	}
	got, err := q.TakeEgg(ctx, 12, egg.ID)
	if err != nil || got.EggType != "rare" {
		t.Fatalf("take egg: %+v err=%v", got, err)
	}
}
