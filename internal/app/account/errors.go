package account

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidName     = errors.New("invalid_name")
	ErrUnknownItem     = errors.New("unknown_item")
	ErrSelfTarget      = errors.New("self_target")
	ErrAccountNotFound = errors.New("account_not_found")
	ErrInvalidTopUp    = errors.New("invalid_topup_amount")
	ErrTopUpConflict   = errors.New("topup_reference_conflict")
)

// TopUpAmountError carries the nearest acceptable amounts around a rejected
// top-up request. Zero bounds mean no suggestion on that side.
type TopUpAmountError struct {
	Amount int64
	Lower  int64
	Upper  int64
}

func (e *TopUpAmountError) Error() string {
	msg := fmt.Sprintf("%s: %d", ErrInvalidTopUp.Error(), e.Amount)
	switch {
	case e.Lower > 0 && e.Upper > 0:
		return fmt.Sprintf("%s (try %d or %d)", msg, e.Lower, e.Upper)
	case e.Lower > 0:
		return fmt.Sprintf("%s (try %d)", msg, e.Lower)
	case e.Upper > 0:
		return fmt.Sprintf("%s (try %d)", msg, e.Upper)
	}
	return msg
}

func (e *TopUpAmountError) Unwrap() error {
	return ErrInvalidTopUp
}
