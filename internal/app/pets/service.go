package pets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"lizard-economy/internal/config"
	"lizard-economy/internal/ledger"
	"lizard-economy/internal/notify"
	"lizard-economy/internal/rng"
	"lizard-economy/internal/store"

	"github.com/rs/zerolog/log"
)

const maxNameRunes = 24

type Service struct {
	store    *store.Store
	cfg      config.EconomyConfig
	notifier notify.Notifier
	rnd      rng.Source
	now      func() time.Time
}

func NewService(st *store.Store, cfg config.EconomyConfig, notifier notify.Notifier, rnd rng.Source, now func() time.Time) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if rnd == nil {
		rnd = rng.Global
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: st, cfg: cfg, notifier: notifier, rnd: rnd, now: now}
}

func optTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (s *Service) toPet(p store.Pet) Pet {
	return Pet{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Level:     p.Level,
		FedAt:     optTime(p.FedAt),
		WateredAt: optTime(p.WateredAt),
		WalkedAt:  optTime(p.WalkedAt),
		GrownAt:   optTime(p.GrownAt),
		DiesAt:    p.LastCare().Add(s.cfg.PetNeglectTTL),
		CreatedAt: p.CreatedAt,
	}
}

// sweep deletes the owner's neglected pets and tells the owner. Notification
// failures never bring a pet back.
func (s *Service) sweep(ctx context.Context, ownerID int64) error {
	dead, err := s.store.Queries().DeleteNeglectedPets(ctx, ownerID, s.now().Add(-s.cfg.PetNeglectTTL))
	if err != nil {
		return err
	}
	for _, p := range dead {
		log.Info().Int64("owner_id", ownerID).Int64("pet_id", p.ID).Str("name", p.Name).Msg("pet died of neglect")
		n := notify.ToUser(ownerID, notify.KindPetDied, "Your pet has died",
			fmt.Sprintf("%s the %s was not cared for and passed away.", p.Name, p.Species))
		if !s.notifier.Notify(n) {
			log.Debug().Int64("owner_id", ownerID).Int64("pet_id", p.ID).Msg("pet death notice not queued")
		}
	}
	return nil
}

// List returns the owner's living pets after the neglect sweep.
func (s *Service) List(ctx context.Context, ownerID int64) ([]Pet, error) {
	if err := s.sweep(ctx, ownerID); err != nil {
		return nil, err
	}
	rows, err := s.store.Queries().ListPets(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]Pet, 0, len(rows))
	for _, p := range rows {
		out = append(out, s.toPet(p))
	}
	return out, nil
}

func (s *Service) Eggs(ctx context.Context, ownerID int64) ([]Egg, error) {
	rows, err := s.store.Queries().ListEggs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]Egg, 0, len(rows))
	for _, e := range rows {
		out = append(out, Egg{ID: e.ID, Type: e.EggType, CreatedAt: e.CreatedAt})
	}
	return out, nil
}

func (s *Service) PurchaseEgg(ctx context.Context, ownerID int64, eggType string) (*EggPurchase, error) {
	eggType = strings.ToLower(strings.TrimSpace(eggType))
	kind, ok := eggKinds[eggType]
	if !ok {
		return nil, ErrUnknownEgg
	}
	var res EggPurchase
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetAccountForUpdate(ctx, ownerID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		bal, err := ledger.On(q).DebitEgg(ctx, ownerID, kind.Price, eggType)
		if err != nil {
			return err
		}
		egg, err := q.InsertEgg(ctx, ownerID, eggType)
		if err != nil {
			return err
		}
		res = EggPurchase{Egg: Egg{ID: egg.ID, Type: egg.EggType, CreatedAt: egg.CreatedAt}, Balance: bal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("owner_id", ownerID).Str("egg_type", eggType).Int64("price", kind.Price).Msg("egg purchased")
	return &res, nil
}

// Hatch turns an owned egg into a named pet. A rejected hatch leaves the egg
// in place.
func (s *Service) Hatch(ctx context.Context, ownerID, eggID int64, name string) (*Pet, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > maxNameRunes {
		return nil, ErrInvalidName
	}
	if err := s.sweep(ctx, ownerID); err != nil {
		return nil, err
	}
	var pet store.Pet
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		acc, err := q.GetAccountForUpdate(ctx, ownerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		if acc.Level < s.cfg.PetUnlockLevel {
			return ErrLevelTooLow
		}
		count, err := q.CountPets(ctx, ownerID)
		if err != nil {
			return err
		}
		if count >= s.cfg.PetCap {
			return ErrPetCapReached
		}
		egg, err := q.TakeEgg(ctx, ownerID, eggID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrEggNotFound
			}
			return err
		}
		kind, ok := eggKinds[egg.EggType]
		if !ok {
			return ErrUnknownEgg
		}
		pet, err = q.InsertPet(ctx, ownerID, name, rng.Pick(s.rnd, kind.Species), s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("owner_id", ownerID).Int64("pet_id", pet.ID).Str("species", pet.Species).Msg("egg hatched")
	out := s.toPet(pet)
	return &out, nil
}

// Care applies one care action. Cooldown, pet level and funds are checked
// under the pet row lock; the debit and stamp commit together.
func (s *Service) Care(ctx context.Context, ownerID, petID int64, actionName string) (*CareResult, error) {
	action := store.CareAction(strings.ToLower(strings.TrimSpace(actionName)))
	rule, ok := careRules[action]
	if !ok {
		return nil, ErrUnknownAction
	}
	if err := s.sweep(ctx, ownerID); err != nil {
		return nil, err
	}
	now := s.now()
	res := CareResult{Action: string(action), Cost: rule.Cost}
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		p, err := q.GetPetForUpdate(ctx, ownerID, petID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPetNotFound
			}
			return err
		}
		if p.Level < rule.MinLevel {
			return ErrPetLevelTooLow
		}
		policy := cooldownPolicy(rule)
		if err := policy.Enforce(lastStamp(p, action), now); err != nil {
			return err
		}
		bal, err := ledger.On(q).DebitPetCare(ctx, ownerID, rule.Cost, strconv.FormatInt(petID, 10))
		if err != nil {
			return err
		}
		updated, err := q.StampCare(ctx, petID, action, now)
		if err != nil {
			return err
		}
		res.Balance = bal
		res.Pet = s.toPet(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("owner_id", ownerID).Int64("pet_id", petID).Str("action", res.Action).Msg("pet cared for")
	return &res, nil
}
