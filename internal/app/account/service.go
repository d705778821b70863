package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"lizard-economy/internal/config"
	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/ledger"
	"lizard-economy/internal/notify"
	"lizard-economy/internal/rng"
	"lizard-economy/internal/store"

	"github.com/rs/zerolog/log"
)

const (
	maxNicknameRunes = 32
	leaderboardMax   = 50
)

type Service struct {
	store    *store.Store
	cfg      config.EconomyConfig
	notifier notify.Notifier
	rnd      rng.Source
	now      func() time.Time
	hunt     cooldown.Policy
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
	return &Service{
		store:    st,
		cfg:      cfg,
		notifier: notifier,
		rnd:      rnd,
		now:      now,
		hunt:     cooldown.Policy{Kind: cooldown.KindHunt, Duration: cfg.HuntCooldown},
	}
}

func mapAccountErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// Ensure creates the account if it does not exist yet.
func (s *Service) Ensure(ctx context.Context, userID int64, displayHint string) error {
	if userID == 0 {
		return ErrInvalidRequest
	}
	created, err := s.store.EnsureAccount(ctx, userID, strings.TrimSpace(displayHint))
	if err != nil {
		return err
	}
	if created {
		log.Info().Int64("user_id", userID).Msg("account created")
	}
	return nil
}

// Profile sweeps expired perks and renders the account for viewerID. Hidden
// fields are withheld from everyone but the owner.
func (s *Service) Profile(ctx context.Context, userID, viewerID int64) (*Profile, error) {
	now := s.now()
	q := s.store.Queries()
	if _, err := q.SweepExpiredPerks(ctx, userID, now); err != nil {
		return nil, err
	}
	acc, err := q.GetAccount(ctx, userID)
	if err != nil {
		return nil, mapAccountErr(err)
	}

	self := viewerID == userID
	p := &Profile{
		UserID:         acc.UserID,
		Name:           acc.DisplayName(),
		Username:       acc.Username,
		Nickname:       acc.Nickname,
		PartnerID:      acc.PartnerID,
		ProposalFromID: acc.ProposalFromID,
		QuizBestStreak: acc.QuizBestStreak,
		HideBalance:    acc.HideBalance,
		HideLevel:      acc.HideLevel,
		CreatedAt:      acc.CreatedAt,
	}
	if self || !acc.HideBalance {
		bal := acc.Balance
		p.Balance = &bal
	}
	if self || !acc.HideLevel {
		lvl := acc.Level
		p.Level = &lvl
	}
	if !self {
		p.ProposalFromID = 0
	}
	for _, perk := range perkOrder {
		st := PerkStatus{Perk: string(perk), Active: acc.PerkActive(perk, now)}
		if st.Active {
			end := acc.PerkEnd(perk)
			st.ExpiresAt = &end
		}
		p.Perks = append(p.Perks, st)
	}
	if acc.PartnerID != 0 {
		if partner, err := q.GetAccount(ctx, acc.PartnerID); err == nil {
			p.PartnerName = partner.DisplayName()
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	return p, nil
}

// Hunt grants a random reward once per cooldown window.
func (s *Service) Hunt(ctx context.Context, userID int64) (*HuntResult, error) {
	now := s.now()
	var res HuntResult
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		acc, err := q.GetAccountForUpdate(ctx, userID)
		if err != nil {
			return mapAccountErr(err)
		}
		if err := s.hunt.Enforce(acc.LastHuntAt, now); err != nil {
			return err
		}
		reward := rng.Between(s.rnd, s.cfg.HuntRewardMin, s.cfg.HuntRewardMax)
		bal, err := ledger.On(q).CreditHunt(ctx, userID, reward, store.NewID())
		if err != nil {
			return err
		}
		if err := q.StampHunt(ctx, userID, now); err != nil {
			return err
		}
		res = HuntResult{Reward: reward, Balance: bal, NextAt: now.Add(s.hunt.Duration)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("user_id", userID).Int64("reward", res.Reward).Msg("hunt completed")
	return &res, nil
}

// Transfer moves currency between two existing accounts atomically.
func (s *Service) Transfer(ctx context.Context, fromID, toID, amount int64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSelfTarget
	}
	res := TransferResult{TransferID: store.NewID(), FromID: fromID, ToID: toID, Amount: amount}
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		if _, err := q.LockAccounts(ctx, fromID, toID); err != nil {
			return mapAccountErr(err)
		}
		bal, err := ledger.On(q).Transfer(ctx, fromID, toID, amount, res.TransferID)
		if err != nil {
			return err
		}
		res.FromBalance = bal
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("from_id", fromID).Int64("to_id", toID).Int64("amount", amount).Str("transfer_id", res.TransferID).Msg("transfer completed")
	return &res, nil
}

// PurchasePerk debits the tier price and extends the perk from the later of
// its current end and now.
func (s *Service) PurchasePerk(ctx context.Context, userID int64, perkName string, days int) (*PurchaseResult, error) {
	perk := store.Perk(strings.ToLower(strings.TrimSpace(perkName)))
	price, ok := perkPrice(perk, days)
	if !ok {
		return nil, ErrUnknownItem
	}
	now := s.now()
	res := PurchaseResult{Perk: string(perk), Days: days, Price: price}
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetAccountForUpdate(ctx, userID); err != nil {
			return mapAccountErr(err)
		}
		bal, err := ledger.On(q).DebitPerk(ctx, userID, price, perk)
		if err != nil {
			return err
		}
		end, err := q.ExtendPerk(ctx, userID, perk, now, time.Duration(days)*24*time.Hour)
		if err != nil {
			return err
		}
		res.Balance = bal
		res.ExpiresAt = end
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", userID).Str("perk", res.Perk).Int("days", days).Int64("price", price).Msg("perk purchased")
	n := notify.ToAdmins(notify.KindPurchase, "Shop purchase",
		fmt.Sprintf("%s for %d day(s)", shopItems[perk].Name, days),
		notify.IntField("price", price))
	n.UserID = userID
	s.notifier.Notify(n)
	return &res, nil
}

// TopUp credits a confirmed external payment once per payment reference.
func (s *Service) TopUp(ctx context.Context, paymentRef string, userID, amount int64, displayHint string) (*TopUpResult, error) {
	paymentRef = strings.TrimSpace(paymentRef)
	if paymentRef == "" || userID == 0 {
		return nil, ErrInvalidRequest
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	res := TopUpResult{PaymentRef: paymentRef, Amount: amount}
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		if _, err := q.EnsureAccount(ctx, userID, strings.TrimSpace(displayHint)); err != nil {
			return err
		}
		inserted, err := q.InsertTopup(ctx, paymentRef, userID, amount)
		if err != nil {
			return err
		}
		if !inserted {
			prev, err := q.GetTopup(ctx, paymentRef)
			if err != nil {
				return err
			}
			if prev.UserID != userID || prev.Amount != amount {
				return ErrTopUpConflict
			}
			acc, err := q.GetAccount(ctx, userID)
			if err != nil {
				return err
			}
			res.Balance = acc.Balance
			return nil
		}
		bal, err := ledger.On(q).CreditTopUp(ctx, userID, amount, paymentRef)
		if err != nil {
			return err
		}
		res.Applied = true
		res.Balance = bal
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !res.Applied {
		log.Info().Str("payment_ref", paymentRef).Int64("user_id", userID).Msg("duplicate top-up ignored")
		return &res, nil
	}

	log.Info().Str("payment_ref", paymentRef).Int64("user_id", userID).Int64("amount", amount).Msg("top-up applied")
	s.notifier.Notify(notify.ToUser(userID, notify.KindTopUpCredited, "Payment received",
		fmt.Sprintf("Credited %d lizards.", amount), notify.IntField("balance", res.Balance)))
	return &res, nil
}

// Grant credits any account on behalf of an operator, creating it if needed.
func (s *Service) Grant(ctx context.Context, operator string, userID, amount int64) (*GrantResult, error) {
	if userID == 0 {
		return nil, ErrInvalidRequest
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	res := GrantResult{UserID: userID, Amount: amount}
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		if _, err := q.EnsureAccount(ctx, userID, "Unknown"); err != nil {
			return err
		}
		bal, err := ledger.On(q).CreditAdminGrant(ctx, userID, amount, store.NewID())
		if err != nil {
			return err
		}
		res.Balance = bal
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("operator", operator).Int64("user_id", userID).Int64("amount", amount).Msg("admin grant applied")
	n := notify.ToAdmins(notify.KindAdminGrant, "Admin grant", fmt.Sprintf("%s granted %d lizards", operator, amount))
	n.UserID = userID
	s.notifier.Notify(n)
	return &res, nil
}

// SetNickname sets a display override; an empty nickname clears it.
func (s *Service) SetNickname(ctx context.Context, userID int64, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if utf8.RuneCountInString(nickname) > maxNicknameRunes || strings.ContainsAny(nickname, "\n\r\t") {
		return ErrInvalidName
	}
	return mapAccountErr(s.store.Queries().SetNickname(ctx, userID, nickname))
}

func (s *Service) SetPrivacy(ctx context.Context, userID int64, hideBalance, hideLevel bool) error {
	return mapAccountErr(s.store.Queries().SetPrivacy(ctx, userID, hideBalance, hideLevel))
}

func (s *Service) Leaderboard(ctx context.Context, kind LeaderboardKind, limit int) (*Leaderboard, error) {
	if limit <= 0 || limit > leaderboardMax {
		limit = 10
	}
	var (
		rows []store.LeaderboardEntry
		err  error
	)
	switch kind {
	case LeaderboardRichest, "":
		kind = LeaderboardRichest
		rows, err = s.store.Queries().ListRichest(ctx, limit)
	case LeaderboardQuiz:
		rows, err = s.store.Queries().ListQuizRecords(ctx, limit)
	default:
		return nil, ErrInvalidRequest
	}
	if err != nil {
		return nil, err
	}
	out := &Leaderboard{Kind: kind, Items: make([]LeaderboardRow, 0, len(rows))}
	for i, r := range rows {
		out.Items = append(out.Items, LeaderboardRow{Rank: i + 1, UserID: r.UserID, Name: r.Name, Value: r.Value})
	}
	return out, nil
}

func (s *Service) Ledger(ctx context.Context, f store.LedgerFilter, limit, offset int) ([]store.LedgerEntry, error) {
	return s.store.ListLedgerEntries(ctx, f, limit, offset)
}
