package marriage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lizard-economy/internal/config"
	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/handshake"
	"lizard-economy/internal/ledger"
	"lizard-economy/internal/notify"
	"lizard-economy/internal/store"

	"github.com/rs/zerolog/log"
)

type Service struct {
	store    *store.Store
	cfg      config.EconomyConfig
	notifier notify.Notifier
	now      func() time.Time
	cooldown cooldown.Policy

	drafts   *handshake.Registry[draftPayload]
	divorces *handshake.Registry[int64]

	mu           sync.Mutex
	lastProposed map[int64]time.Time
}

func NewService(st *store.Store, cfg config.EconomyConfig, notifier notify.Notifier, now func() time.Time) *Service {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:        st,
		cfg:          cfg,
		notifier:     notifier,
		now:          now,
		cooldown:     cooldown.Policy{Kind: cooldown.KindProposal, Duration: cfg.MarriageProposalCooldown},
		drafts:       handshake.NewRegistry[draftPayload](cfg.HandshakeTTL, now),
		divorces:     handshake.NewRegistry[int64](cfg.HandshakeTTL, now),
		lastProposed: map[int64]time.Time{},
	}
}

// StartJanitor drops expired drafts in the background.
func (s *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	s.drafts.StartJanitor(ctx, interval, func(t handshake.Ticket[draftPayload]) {
		log.Debug().Str("ticket_id", t.ID).Int64("proposer_id", t.Owner).Msg("proposal draft expired")
	})
	s.divorces.StartJanitor(ctx, interval, nil)
}

func mapTicketErr(err error) error {
	switch {
	case errors.Is(err, handshake.ErrNotFound), errors.Is(err, handshake.ErrNotOwner):
		return ErrDraftNotFound
	case errors.Is(err, handshake.ErrExpired):
		return ErrDraftExpired
	case errors.Is(err, handshake.ErrClaimed):
		return ErrDraftAlreadyClosed
	default:
		return err
	}
}

func mapAccountErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// checkProposal runs every guard a proposal must pass against current rows.
func (s *Service) checkProposal(proposer, target store.Account) error {
	if proposer.PartnerID != 0 {
		return ErrAlreadyPartnered
	}
	if proposer.Level < s.cfg.MarriageMinLevel || target.Level < s.cfg.MarriageMinLevel {
		return ErrLevelTooLow
	}
	if proposer.Balance < s.cfg.MarriageCost {
		return &store.InsufficientFundsError{Balance: proposer.Balance, Required: s.cfg.MarriageCost}
	}
	if target.PartnerID != 0 {
		return ErrTargetPartnered
	}
	if target.ProposalFromID != 0 {
		return ErrProposalPending
	}
	return nil
}

func (s *Service) checkCooldown(proposerID int64, now time.Time) error {
	s.mu.Lock()
	last := s.lastProposed[proposerID]
	s.mu.Unlock()
	return s.cooldown.Enforce(last, now)
}

// Propose validates a proposal and returns a draft disclosing its cost.
func (s *Service) Propose(ctx context.Context, req ProposeRequest) (*Draft, error) {
	if req.ProposerID == req.TargetID {
		return nil, ErrSelfTarget
	}
	if req.TargetIsBot {
		return nil, ErrTargetIsBot
	}
	if err := s.checkCooldown(req.ProposerID, s.now()); err != nil {
		return nil, err
	}
	q := s.store.Queries()
	proposer, err := q.GetAccount(ctx, req.ProposerID)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	target, err := q.GetAccount(ctx, req.TargetID)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	if err := s.checkProposal(proposer, target); err != nil {
		return nil, err
	}

	t, _ := s.drafts.Open(req.ProposerID, draftPayload{targetID: req.TargetID, cost: s.cfg.MarriageCost})
	return &Draft{
		TicketID:   t.ID,
		ProposerID: req.ProposerID,
		TargetID:   req.TargetID,
		Cost:       s.cfg.MarriageCost,
		ExpiresAt:  t.ExpiresAt,
	}, nil
}

// Confirm pays for a drafted proposal and places it in the target's slot.
// Guards are re-checked under row locks; anything that no longer holds is
// reported as ErrConditionsChanged.
func (s *Service) Confirm(ctx context.Context, proposerID int64, ticketID string) (*Proposal, error) {
	t, err := s.drafts.ClaimOwned(ticketID, proposerID)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	targetID := t.Payload.targetID
	res := Proposal{ProposerID: proposerID, TargetID: targetID, Cost: t.Payload.cost}

	err = s.store.InTx(ctx, func(q *store.Queries) error {
		accs, err := q.LockAccounts(ctx, proposerID, targetID)
		if err != nil {
			return mapAccountErr(err)
		}
		if err := s.checkProposal(accs[proposerID], accs[targetID]); err != nil {
			return fmt.Errorf("%w: %w", ErrConditionsChanged, err)
		}
		bal, err := ledger.On(q).DebitMarriage(ctx, proposerID, res.Cost, t.ID)
		if errors.Is(err, store.ErrInsufficientFunds) {
			return fmt.Errorf("%w: %w", ErrConditionsChanged, err)
		}
		if err != nil {
			return err
		}
		res.Balance = bal
		return q.SetProposal(ctx, targetID, proposerID)
	})
	if err != nil {
		if errors.Is(err, ErrConditionsChanged) || errors.Is(err, ErrAccountNotFound) {
			s.drafts.Complete(t.ID)
		} else {
			s.drafts.Release(t.ID)
		}
		return nil, err
	}
	s.drafts.Complete(t.ID)

	now := s.now()
	s.mu.Lock()
	s.lastProposed[proposerID] = now
	s.mu.Unlock()

	log.Info().Int64("proposer_id", proposerID).Int64("target_id", targetID).Int64("cost", res.Cost).Msg("proposal sent")
	s.notifier.Notify(notify.ToUser(targetID, notify.KindProposalReceived, "Marriage proposal",
		"Someone has proposed to you.", notify.IntField("from_user_id", proposerID)))
	return &res, nil
}

// CancelDraft drops an unconfirmed draft.
func (s *Service) CancelDraft(proposerID int64, ticketID string) error {
	_, err := s.drafts.Cancel(ticketID, proposerID)
	return mapTicketErr(err)
}

// Withdraw takes back a confirmed proposal. The cost is not refunded.
func (s *Service) Withdraw(ctx context.Context, proposerID, targetID int64) error {
	cleared, err := s.store.Queries().ClearProposalFrom(ctx, targetID, proposerID)
	if err != nil {
		return err
	}
	if !cleared {
		return ErrNoProposal
	}
	log.Info().Int64("proposer_id", proposerID).Int64("target_id", targetID).Msg("proposal withdrawn")
	return nil
}

// Decline empties the caller's incoming proposal slot.
func (s *Service) Decline(ctx context.Context, targetID int64) error {
	q := s.store.Queries()
	acc, err := q.GetAccount(ctx, targetID)
	if err != nil {
		return mapAccountErr(err)
	}
	if acc.ProposalFromID == 0 {
		return ErrNoProposal
	}
	cleared, err := q.ClearProposalFrom(ctx, targetID, acc.ProposalFromID)
	if err != nil {
		return err
	}
	if !cleared {
		return ErrNoProposal
	}
	log.Info().Int64("target_id", targetID).Int64("proposer_id", acc.ProposalFromID).Msg("proposal declined")
	return nil
}

// Accept marries the caller to whoever holds their proposal slot. If the
// proposer married someone else meanwhile the slot is cleared and
// ErrConditionsChanged returned.
func (s *Service) Accept(ctx context.Context, targetID int64) (*Marriage, error) {
	acc, err := s.store.GetAccount(ctx, targetID)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	proposerID := acc.ProposalFromID
	if proposerID == 0 {
		return nil, ErrNoProposal
	}

	var stale error
	err = s.store.InTx(ctx, func(q *store.Queries) error {
		accs, err := q.LockAccounts(ctx, targetID, proposerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				stale = ErrConditionsChanged
				return q.ClearProposal(ctx, targetID)
			}
			return err
		}
		target, proposer := accs[targetID], accs[proposerID]
		if target.ProposalFromID != proposerID {
			return ErrConditionsChanged
		}
		if proposer.PartnerID != 0 || target.PartnerID != 0 {
			stale = ErrConditionsChanged
			return q.ClearProposal(ctx, targetID)
		}
		if err := q.SetPartners(ctx, targetID, proposerID); err != nil {
			return err
		}
		if err := q.ClearProposal(ctx, targetID); err != nil {
			return err
		}
		if err := q.ClearProposal(ctx, proposerID); err != nil {
			return err
		}
		_, err = q.ClearProposalsBy(ctx, targetID, proposerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if stale != nil {
		log.Info().Int64("target_id", targetID).Int64("proposer_id", proposerID).Msg("stale proposal cleared")
		return nil, stale
	}

	log.Info().Int64("a", proposerID).Int64("b", targetID).Msg("marriage registered")
	s.notifier.Notify(notify.ToUser(proposerID, notify.KindProposalAccepted, "Proposal accepted",
		"Your proposal was accepted.", notify.IntField("partner_id", targetID)))
	return &Marriage{A: proposerID, B: targetID}, nil
}

// RequestDivorce opens a confirmation ticket for ending the caller's marriage.
func (s *Service) RequestDivorce(ctx context.Context, userID int64) (*DivorceDraft, error) {
	acc, err := s.store.GetAccount(ctx, userID)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	if acc.PartnerID == 0 {
		return nil, ErrNotPartnered
	}
	t, _ := s.divorces.Open(userID, acc.PartnerID)
	return &DivorceDraft{TicketID: t.ID, UserID: userID, PartnerID: acc.PartnerID, ExpiresAt: t.ExpiresAt}, nil
}

// ConfirmDivorce clears both partner ids in one statement.
func (s *Service) ConfirmDivorce(ctx context.Context, userID int64, ticketID string) error {
	t, err := s.divorces.ClaimOwned(ticketID, userID)
	if err != nil {
		return mapTicketErr(err)
	}
	defer s.divorces.Complete(t.ID)
	partnerID := t.Payload

	err = s.store.InTx(ctx, func(q *store.Queries) error {
		accs, err := q.LockAccounts(ctx, userID, partnerID)
		if err != nil {
			return mapAccountErr(err)
		}
		if accs[userID].PartnerID != partnerID || accs[partnerID].PartnerID != userID {
			return ErrConditionsChanged
		}
		return q.ClearPartnership(ctx, userID, partnerID)
	})
	if err != nil {
		return err
	}
	log.Info().Int64("a", userID).Int64("b", partnerID).Msg("marriage dissolved")
	return nil
}

// CancelDivorce drops an unconfirmed divorce request.
func (s *Service) CancelDivorce(userID int64, ticketID string) error {
	_, err := s.divorces.Cancel(ticketID, userID)
	return mapTicketErr(err)
}
