package ledger

import (
	"context"

	"lizard-economy/internal/store"
)

// Entry types written to ledger_entries.type.
const (
	TypeHuntCredit         = "hunt_credit"
	TypeTransferDebit      = "transfer_debit"
	TypeTransferCredit     = "transfer_credit"
	TypePerkDebit          = "perk_debit"
	TypeEggDebit           = "egg_debit"
	TypePetCareDebit       = "pet_care_debit"
	TypeMarriageDebit      = "marriage_debit"
	TypeCasinoBetDebit     = "casino_bet_debit"
	TypeCasinoPayoutCredit = "casino_payout_credit"
	TypeDuelWinCredit      = "duel_win_credit"
	TypeDuelLossDebit      = "duel_loss_debit"
	TypeQuizRewardCredit   = "quiz_reward_credit"
	TypeTopUpCredit        = "topup_credit"
	TypeAdminGrantCredit   = "admin_grant_credit"
)

// Reference types written to ledger_entries.ref_type.
const (
	RefHunt     = "hunt"
	RefTransfer = "transfer"
	RefPerk     = "perk"
	RefEgg      = "egg"
	RefPet      = "pet"
	RefMarriage = "marriage"
	RefCasino   = "casino"
	RefDuel     = "duel"
	RefQuiz     = "quiz"
	RefTopUp    = "topup"
	RefAdmin    = "admin"
)

// Ledger names every balance movement the economy makes. It wraps a query set
// so it can run inside the caller's transaction.
type Ledger struct {
	q *store.Queries
}

func On(q *store.Queries) Ledger {
	return Ledger{q: q}
}

func (l Ledger) CreditHunt(ctx context.Context, userID, amount int64, huntID string) (int64, error) {
	return l.q.Credit(ctx, userID, amount, TypeHuntCredit, RefHunt, huntID)
}

// Transfer moves amount from one account to another. Both rows must already
// be locked by the caller.
func (l Ledger) Transfer(ctx context.Context, fromID, toID, amount int64, transferID string) (int64, error) {
	bal, err := l.q.Debit(ctx, fromID, amount, TypeTransferDebit, RefTransfer, transferID)
	if err != nil {
		return 0, err
	}
	if _, err := l.q.Credit(ctx, toID, amount, TypeTransferCredit, RefTransfer, transferID); err != nil {
		return 0, err
	}
	return bal, nil
}

func (l Ledger) DebitPerk(ctx context.Context, userID, amount int64, perk store.Perk) (int64, error) {
	return l.q.Debit(ctx, userID, amount, TypePerkDebit, RefPerk, string(perk))
}

func (l Ledger) DebitEgg(ctx context.Context, userID, amount int64, eggType string) (int64, error) {
	return l.q.Debit(ctx, userID, amount, TypeEggDebit, RefEgg, eggType)
}

func (l Ledger) DebitPetCare(ctx context.Context, userID, amount int64, petRef string) (int64, error) {
	return l.q.Debit(ctx, userID, amount, TypePetCareDebit, RefPet, petRef)
}

func (l Ledger) DebitMarriage(ctx context.Context, userID, amount int64, ticketID string) (int64, error) {
	return l.q.Debit(ctx, userID, amount, TypeMarriageDebit, RefMarriage, ticketID)
}

func (l Ledger) DebitCasinoBet(ctx context.Context, userID, amount int64, playID string) (int64, error) {
	return l.q.Debit(ctx, userID, amount, TypeCasinoBetDebit, RefCasino, playID)
}

func (l Ledger) CreditCasinoPayout(ctx context.Context, userID, amount int64, playID string) (int64, error) {
	return l.q.Credit(ctx, userID, amount, TypeCasinoPayoutCredit, RefCasino, playID)
}

// SettleDuel moves the stake from loser to winner with the duel as reference.
func (l Ledger) SettleDuel(ctx context.Context, winnerID, loserID, amount int64, duelID string) error {
	if _, err := l.q.Debit(ctx, loserID, amount, TypeDuelLossDebit, RefDuel, duelID); err != nil {
		return err
	}
	_, err := l.q.Credit(ctx, winnerID, amount, TypeDuelWinCredit, RefDuel, duelID)
	return err
}

func (l Ledger) CreditQuizReward(ctx context.Context, userID, amount int64, sessionID string) (int64, error) {
	return l.q.Credit(ctx, userID, amount, TypeQuizRewardCredit, RefQuiz, sessionID)
}

func (l Ledger) CreditTopUp(ctx context.Context, userID, amount int64, paymentRef string) (int64, error) {
	return l.q.Credit(ctx, userID, amount, TypeTopUpCredit, RefTopUp, paymentRef)
}

func (l Ledger) CreditAdminGrant(ctx context.Context, userID, amount int64, grantID string) (int64, error) {
	return l.q.Credit(ctx, userID, amount, TypeAdminGrantCredit, RefAdmin, grantID)
}
