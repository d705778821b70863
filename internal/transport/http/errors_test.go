package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lizard-economy/internal/app/account"
	"lizard-economy/internal/app/duel"
	"lizard-economy/internal/app/marriage"
	"lizard-economy/internal/cooldown"
	"lizard-economy/internal/store"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{account.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
		{duel.ErrDuelExpired, http.StatusGone, duel.ErrDuelExpired.Error()},
		{&cooldown.Error{Kind: cooldown.KindHunt, Remaining: time.Hour}, http.StatusTooManyRequests, "cooldown_active"},
		{&store.InsufficientFundsError{Balance: 1, Required: 5}, http.StatusUnprocessableEntity, store.ErrInsufficientFunds.Error()},
		{fmt.Errorf("%w: %w", marriage.ErrConditionsChanged, store.ErrInsufficientFunds), http.StatusConflict, marriage.ErrConditionsChanged.Error()},
		{context.Canceled, http.StatusServiceUnavailable, "request_cancelled"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		status, code := statusFor(tc.err)
		if status != tc.status || code != tc.code {
			t.Fatalf("%v: expected %d %s, got %d %s", tc.err, tc.status, tc.code, status, code)
		}
	}
}

func TestWriteServiceErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/1/topup/quote", nil)
	WriteServiceError(rec, req, &account.TopUpAmountError{Amount: 50, Lower: 48, Upper: 51})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != account.ErrInvalidTopUp.Error() {
		t.Fatalf("unexpected code: %v", body["error"])
	}
	if body["suggest_lower"] != float64(48) || body["suggest_upper"] != float64(51) {
		t.Fatalf("missing suggestions: %v", body)
	}

	rec = httptest.NewRecorder()
	WriteServiceError(rec, req, &store.InsufficientFundsError{Balance: 3, Required: 10})
	body = map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["shortfall"] != float64(7) {
		t.Fatalf("expected shortfall 7, got %v", body)
	}
}
