package casino

import "errors"

var (
	ErrAccountNotFound = errors.New("account_not_found")
	ErrUnknownColor    = errors.New("unknown_color")
	ErrInvalidBet      = errors.New("invalid_bet")
)

// BetRangeError reports the accepted stake bounds for a rejected bet.
type BetRangeError struct {
	Bet int64
	Min int64
	Max int64
}

func (e *BetRangeError) Error() string {
	return ErrInvalidBet.Error()
}

func (e *BetRangeError) Unwrap() error {
	return ErrInvalidBet
}
