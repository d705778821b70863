package duel

import "errors"

var (
	ErrInvalidBet        = errors.New("invalid_bet")
	ErrSelfDuel          = errors.New("self_duel")
	ErrAccountNotFound   = errors.New("account_not_found")
	ErrDuelNotFound      = errors.New("duel_not_found")
	ErrDuelExpired       = errors.New("duel_expired")
	ErrDuelTaken         = errors.New("duel_taken")
	ErrNotHost           = errors.New("not_duel_host")
	ErrConditionsChanged = errors.New("conditions_changed")
)
