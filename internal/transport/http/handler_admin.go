package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"lizard-economy/internal/app/account"
	"lizard-economy/internal/store"
)

type AdminHandlers struct {
	store    *store.Store
	accounts *account.Service
}

func NewAdminHandlers(st *store.Store, accounts *account.Service) *AdminHandlers {
	return &AdminHandlers{store: st, accounts: accounts}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		q := r.URL.Query()
		f := store.LedgerFilter{
			UserID:  queryID(r, "user_id"),
			Type:    q.Get("type"),
			RefType: q.Get("ref_type"),
			RefID:   q.Get("ref_id"),
		}
		if v := q.Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := q.Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		items, err := h.accounts.Ledger(r.Context(), f, limit, offset)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

// Give credits an account out of thin air. The operator name lands in the
// ledger reference and the admin notice.
func (h *AdminHandlers) Give() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID   int64  `json:"user_id"`
			Amount   int64  `json:"amount"`
			Operator string `json:"operator"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Operator == "" {
			body.Operator = "admin"
		}
		resp, err := h.accounts.Grant(r.Context(), body.Operator, body.UserID, body.Amount)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

// Topup replays a payment by reference, for payments the bot failed to report.
func (h *AdminHandlers) Topup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PaymentRef string `json:"payment_ref"`
			UserID     int64  `json:"user_id"`
			Amount     int64  `json:"amount"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.PaymentRef == "" || body.UserID <= 0 || body.Amount <= 0 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		resp, err := h.accounts.TopUp(r.Context(), body.PaymentRef, body.UserID, body.Amount, "")
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		if resp.Applied {
			metricTopUpTotal.Add(1)
			metricTopUpVolume.Add(resp.Amount)
		}
		writeJSON(w, resp)
	}
}
