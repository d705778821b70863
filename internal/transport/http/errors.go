package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lizard-economy/internal/activity"
	"lizard-economy/internal/app/account"
	"lizard-economy/internal/app/casino"
	"lizard-economy/internal/app/duel"
	"lizard-economy/internal/app/marriage"
	"lizard-economy/internal/app/pets"
	"lizard-economy/internal/app/quiz"
	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/store"

	"github.com/rs/zerolog/log"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is checked in order; the first sentinel matched decides the
// response status. The error text itself is the response code.
var errorStatuses = []errorStatus{
	{marriage.ErrConditionsChanged, http.StatusConflict},
	{duel.ErrConditionsChanged, http.StatusConflict},

	{account.ErrAccountNotFound, http.StatusNotFound},
	{marriage.ErrAccountNotFound, http.StatusNotFound},
	{duel.ErrAccountNotFound, http.StatusNotFound},
	{pets.ErrAccountNotFound, http.StatusNotFound},
	{quiz.ErrAccountNotFound, http.StatusNotFound},
	{casino.ErrAccountNotFound, http.StatusNotFound},
	{marriage.ErrDraftNotFound, http.StatusNotFound},
	{duel.ErrDuelNotFound, http.StatusNotFound},
	{pets.ErrEggNotFound, http.StatusNotFound},
	{pets.ErrPetNotFound, http.StatusNotFound},
	{store.ErrNotFound, http.StatusNotFound},

	{marriage.ErrDraftExpired, http.StatusGone},
	{duel.ErrDuelExpired, http.StatusGone},

	{account.ErrInvalidRequest, http.StatusBadRequest},
	{account.ErrInvalidAmount, http.StatusBadRequest},
	{account.ErrInvalidName, http.StatusBadRequest},
	{account.ErrUnknownItem, http.StatusBadRequest},
	{account.ErrInvalidTopUp, http.StatusBadRequest},
	{pets.ErrUnknownEgg, http.StatusBadRequest},
	{pets.ErrUnknownAction, http.StatusBadRequest},
	{pets.ErrInvalidName, http.StatusBadRequest},
	{duel.ErrInvalidBet, http.StatusBadRequest},
	{casino.ErrInvalidBet, http.StatusBadRequest},
	{casino.ErrUnknownColor, http.StatusBadRequest},
	{quiz.ErrInvalidOption, http.StatusBadRequest},

	{account.ErrSelfTarget, http.StatusUnprocessableEntity},
	{marriage.ErrSelfTarget, http.StatusUnprocessableEntity},
	{marriage.ErrTargetIsBot, http.StatusUnprocessableEntity},
	{duel.ErrSelfDuel, http.StatusUnprocessableEntity},
	{store.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	{marriage.ErrLevelTooLow, http.StatusUnprocessableEntity},
	{pets.ErrLevelTooLow, http.StatusUnprocessableEntity},
	{pets.ErrPetLevelTooLow, http.StatusUnprocessableEntity},
	{pets.ErrPetCapReached, http.StatusUnprocessableEntity},
	{marriage.ErrAlreadyPartnered, http.StatusUnprocessableEntity},
	{marriage.ErrTargetPartnered, http.StatusUnprocessableEntity},
	{marriage.ErrProposalPending, http.StatusUnprocessableEntity},
	{marriage.ErrNoProposal, http.StatusUnprocessableEntity},
	{marriage.ErrNotPartnered, http.StatusUnprocessableEntity},
	{quiz.ErrNoQuestions, http.StatusUnprocessableEntity},
	{activity.ErrNoCandidates, http.StatusUnprocessableEntity},

	{cooldown.ErrActive, http.StatusTooManyRequests},

	{marriage.ErrDraftAlreadyClosed, http.StatusConflict},
	{duel.ErrDuelTaken, http.StatusConflict},
	{account.ErrTopUpConflict, http.StatusConflict},
	{quiz.ErrSessionActive, http.StatusConflict},
	{quiz.ErrNoActiveSession, http.StatusConflict},

	{duel.ErrNotHost, http.StatusForbidden},
	{activity.ErrNotChatAdmin, http.StatusForbidden},
}

func statusFor(err error) (int, string) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status, es.err.Error()
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, "request_cancelled"
	}
	return http.StatusInternalServerError, "internal_error"
}

// errorDetails lifts the human-facing fields out of typed errors.
func errorDetails(err error) map[string]any {
	details := map[string]any{}
	var cd *cooldown.Error
	if errors.As(err, &cd) {
		details["cooldown"] = string(cd.Kind)
		details["remaining_seconds"] = int64(cd.Remaining.Seconds())
		details["remaining"] = cooldown.FormatRemaining(cd.Remaining)
	}
	var funds *store.InsufficientFundsError
	if errors.As(err, &funds) {
		details["balance"] = funds.Balance
		details["required"] = funds.Required
		details["shortfall"] = funds.Shortfall()
	}
	var topup *account.TopUpAmountError
	if errors.As(err, &topup) {
		if topup.Lower > 0 {
			details["suggest_lower"] = topup.Lower
		}
		if topup.Upper > 0 {
			details["suggest_upper"] = topup.Upper
		}
	}
	var bet *casino.BetRangeError
	if errors.As(err, &bet) {
		details["min_bet"] = bet.Min
		details["max_bet"] = bet.Max
	}
	return details
}

// WriteServiceError maps a service error to a status and a JSON body with the
// snake_case code plus any typed detail.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	metricRequestErrors.Add(1)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	body := map[string]any{"error": code}
	for k, v := range errorDetails(err) {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
