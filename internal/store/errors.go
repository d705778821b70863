package store

import (
	"errors"
	"fmt"
)

var ErrInsufficientFunds = errors.New("insufficient_funds")

// InsufficientFundsError reports the shortfall of a rejected debit.
type InsufficientFundsError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: have %d, need %d", ErrInsufficientFunds.Error(), e.Balance, e.Required)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// Shortfall is how much currency the account is missing.
func (e *InsufficientFundsError) Shortfall() int64 {
	if e.Required <= e.Balance {
		return 0
	}
	return e.Required - e.Balance
}
