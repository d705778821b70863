package marriage

import "errors"

var (
	ErrSelfTarget         = errors.New("self_target")
	ErrTargetIsBot        = errors.New("target_is_bot")
	ErrAccountNotFound    = errors.New("account_not_found")
	ErrAlreadyPartnered   = errors.New("already_partnered")
	ErrTargetPartnered    = errors.New("target_partnered")
	ErrLevelTooLow        = errors.New("level_too_low")
	ErrProposalPending    = errors.New("proposal_pending")
	ErrNoProposal         = errors.New("no_proposal")
	ErrNotPartnered       = errors.New("not_partnered")
	ErrConditionsChanged  = errors.New("conditions_changed")
	ErrDraftNotFound      = errors.New("draft_not_found")
	ErrDraftExpired       = errors.New("draft_expired")
	ErrDraftAlreadyClosed = errors.New("draft_already_closed")
)
