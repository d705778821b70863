package account

import (
	"fmt"
	"strconv"
	"strings"
)

const invoicePayloadPrefix = "lizard_topup"

// QuoteTopUp validates a requested top-up amount and prices it in stars.
func (s *Service) QuoteTopUp(amount int64) (TopUpQuote, error) {
	unit := s.cfg.TopUpUnitsPerStar
	if unit <= 0 {
		unit = 1
	}
	lo, hi := s.cfg.TopUpMin, s.cfg.TopUpMax
	firstValid := ((lo + unit - 1) / unit) * unit
	lastValid := (hi / unit) * unit

	switch {
	case amount < lo:
		return TopUpQuote{}, &TopUpAmountError{Amount: amount, Upper: firstValid}
	case amount > hi:
		return TopUpQuote{}, &TopUpAmountError{Amount: amount, Lower: lastValid}
	case amount%unit != 0:
		lower := (amount / unit) * unit
		upper := lower + unit
		if lower < lo {
			lower = 0
		}
		if upper > hi {
			upper = 0
		}
		return TopUpQuote{}, &TopUpAmountError{Amount: amount, Lower: lower, Upper: upper}
	}
	return TopUpQuote{Amount: amount, Stars: amount / unit}, nil
}

// InvoicePayload encodes who is buying how much into the payment payload.
func InvoicePayload(userID, amount int64) string {
	return fmt.Sprintf("%s:%d:%d", invoicePayloadPrefix, userID, amount)
}

func ParseInvoicePayload(payload string) (int64, int64, error) {
	parts := strings.Split(strings.TrimSpace(payload), ":")
	if len(parts) != 3 || parts[0] != invoicePayloadPrefix {
		return 0, 0, ErrInvalidRequest
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, ErrInvalidRequest
	}
	amount, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || amount <= 0 {
		return 0, 0, ErrInvalidRequest
	}
	return userID, amount, nil
}
