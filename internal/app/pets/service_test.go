package pets

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/notify"
	"lizard-economy/internal/rng"
	"lizard-economy/internal/store"
	"lizard-economy/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *store.Store, *testutil.Clock, *notify.Recorder, func()) {
	t.Helper()
	st, cleanup := testutil.OpenTestStore(t)
	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	rec := &notify.Recorder{}
	return NewService(st, testutil.Economy(), rec, rng.New(3), clock.Now), st, clock, rec, cleanup
}

func TestEggCatalogue(t *testing.T) {
	offers := EggCatalogue()
	want := map[string]int64{"common": 100, "rare": 500, "epic": 1500, "legendary": 5000}
	if len(offers) != len(want) {
		t.Fatalf("offers = %d", len(offers))
	}
	for _, o := range offers {
		if want[o.Type] != o.Price || len(o.Species) == 0 {
			t.Fatalf("unexpected offer %+v", o)
		}
	}
}

func TestPurchaseAndHatchRareEgg(t *testing.T) {
	svc, st, _, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	testutil.MustAccount(t, st, 1, 600)
	testutil.MustLevel(t, st, 1, 2)

	if _, err := svc.PurchaseEgg(ctx, 1, "mythic"); !errors.Is(err, ErrUnknownEgg) {
		t.Fatalf("expected ErrUnknownEgg, got %v", err)
	}
	buy, err := svc.PurchaseEgg(ctx, 1, "Rare")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if buy.Balance != 100 || buy.Egg.Type != "rare" {
		t.Fatalf("unexpected purchase: %+v", buy)
	}

	if _, err := svc.Hatch(ctx, 1, buy.Egg.ID, "   "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	pet, err := svc.Hatch(ctx, 1, buy.Egg.ID, " Spike ")
	if err != nil {
		t.Fatalf("hatch: %v", err)
	}
	if pet.Name != "Spike" || pet.Level != 1 || !slices.Contains(eggKinds["rare"].Species, pet.Species) {
		t.Fatalf("unexpected pet: %+v", pet)
	}
	eggs, _ := svc.Eggs(ctx, 1)
	if len(eggs) != 0 {
		t.Fatalf("egg should be consumed, got %d", len(eggs))
	}
	if _, err := svc.Hatch(ctx, 1, buy.Egg.ID, "Again"); !errors.Is(err, ErrEggNotFound) {
		t.Fatalf("expected ErrEggNotFound, got %v", err)
	}
}

func TestHatchRejectionsKeepEgg(t *testing.T) {
	svc, st, _, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	testutil.MustAccount(t, st, 1, 1000)

	buy, err := svc.PurchaseEgg(ctx, 1, "common")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if _, err := svc.Hatch(ctx, 1, buy.Egg.ID, "Early"); !errors.Is(err, ErrLevelTooLow) {
		t.Fatalf("expected ErrLevelTooLow, got %v", err)
	}

	testutil.MustLevel(t, st, 1, 2)
	for i := 0; i < 5; i++ {
		if _, err := st.Queries().InsertPet(ctx, 1, "filler", "Gecko", time.Now()); err != nil {
			t.Fatalf("insert pet: %v", err)
		}
	}
	if _, err := svc.Hatch(ctx, 1, buy.Egg.ID, "Sixth"); !errors.Is(err, ErrPetCapReached) {
		t.Fatalf("expected ErrPetCapReached, got %v", err)
	}
	eggs, _ := svc.Eggs(ctx, 1)
	if len(eggs) != 1 {
		t.Fatalf("rejected hatch consumed the egg")
	}
}

func TestCareRules(t *testing.T) {
	svc, st, clock, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	testutil.MustAccount(t, st, 1, 1000)
	p, err := st.Queries().InsertPet(ctx, 1, "Rex", "Gecko", clock.Now())
	if err != nil {
		t.Fatalf("insert pet: %v", err)
	}

	if _, err := svc.Care(ctx, 1, p.ID, "dance"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if _, err := svc.Care(ctx, 1, p.ID, "water"); !errors.Is(err, ErrPetLevelTooLow) {
		t.Fatalf("expected ErrPetLevelTooLow, got %v", err)
	}
	if _, err := svc.Care(ctx, 2, p.ID, "feed"); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}

	fed, err := svc.Care(ctx, 1, p.ID, "feed")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if fed.Balance != 990 || fed.Pet.FedAt == nil {
		t.Fatalf("unexpected feed result: %+v", fed)
	}
	clock.Advance(time.Hour)
	var cdErr *cooldown.Error
	if _, err := svc.Care(ctx, 1, p.ID, "feed"); !errors.As(err, &cdErr) || cdErr.Remaining != 3*time.Hour {
		t.Fatalf("expected 3h feed cooldown, got %v", err)
	}

	grown, err := svc.Care(ctx, 1, p.ID, "grow")
	if err != nil {
		t.Fatalf("grow: %v", err)
	}
	if grown.Pet.Level != 2 || grown.Balance != 940 {
		t.Fatalf("unexpected grow result: %+v", grown)
	}
}

func TestCareInsufficientFundsLeavesPetUntouched(t *testing.T) {
	svc, st, clock, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	testutil.MustAccount(t, st, 1, 5)
	p, _ := st.Queries().InsertPet(ctx, 1, "Rex", "Gecko", clock.Now())

	if _, err := svc.Care(ctx, 1, p.ID, "feed"); !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	list, _ := svc.List(ctx, 1)
	if len(list) != 1 || list[0].FedAt != nil {
		t.Fatalf("failed care must not stamp: %+v", list)
	}
}

func TestNeglectedPetDiesOnRead(t *testing.T) {
	svc, st, clock, rec, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	testutil.MustAccount(t, st, 1, 100)
	old, _ := st.Queries().InsertPet(ctx, 1, "Old", "Gecko", clock.Now())
	clock.Advance(24 * time.Hour)
	young, _ := st.Queries().InsertPet(ctx, 1, "Young", "Skink", clock.Now())
	clock.Advance(25 * time.Hour)

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != young.ID {
		t.Fatalf("expected only the young pet, got %+v", list)
	}
	died := rec.OfKind(notify.KindPetDied)
	if len(died) != 1 || died[0].UserID != 1 {
		t.Fatalf("expected one death notice, got %+v", died)
	}
	if _, err := svc.Care(ctx, 1, old.ID, "feed"); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("dead pet must not be actionable, got %v", err)
	}
}
