package httptransport

import (
	"net/http"
	"strconv"

	"lizard-economy/internal/app/account"
	"lizard-economy/internal/app/pets"
)

type AccountHandlers struct {
	svc *account.Service
}

func NewAccountHandlers(svc *account.Service) *AccountHandlers {
	return &AccountHandlers{svc: svc}
}

func (h *AccountHandlers) Ensure() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			DisplayHint string `json:"display_hint"`
		}
		if r.ContentLength != 0 && !decodeJSON(w, r, &body) {
			return
		}
		if err := h.svc.Ensure(r.Context(), userID, body.DisplayHint); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "user_id": userID})
	}
}

func (h *AccountHandlers) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		viewerID := queryID(r, "viewer_id")
		if viewerID == 0 {
			viewerID = userID
		}
		resp, err := h.svc.Profile(r.Context(), userID, viewerID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *AccountHandlers) Hunt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		resp, err := h.svc.Hunt(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricHuntTotal.Add(1)
		writeJSON(w, resp)
	}
}

func (h *AccountHandlers) Transfer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			ToID   int64 `json:"to_id"`
			Amount int64 `json:"amount"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.svc.Transfer(r.Context(), userID, body.ToID, body.Amount)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricTransferTotal.Add(1)
		metricTransferVolume.Add(resp.Amount)
		writeJSON(w, resp)
	}
}

func (h *AccountHandlers) Nickname() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			Nickname string `json:"nickname"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.svc.SetNickname(r.Context(), userID, body.Nickname); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *AccountHandlers) Privacy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			HideBalance bool `json:"hide_balance"`
			HideLevel   bool `json:"hide_level"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.svc.SetPrivacy(r.Context(), userID, body.HideBalance, body.HideLevel); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *AccountHandlers) PurchasePerk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			Perk string `json:"perk"`
			Days int    `json:"days"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.svc.PurchasePerk(r.Context(), userID, body.Perk, body.Days)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricPurchaseTotal.Add(1)
		writeJSON(w, resp)
	}
}

func (h *AccountHandlers) Shop() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"perks": account.Catalogue(),
			"eggs":  pets.EggCatalogue(),
		})
	}
}

func (h *AccountHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		kind := account.LeaderboardKind(r.URL.Query().Get("kind"))
		resp, err := h.svc.Leaderboard(r.Context(), kind, limit)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

// TopUpQuote validates an amount and returns the star price with the invoice
// payload the chat layer attaches to the payment.
func (h *AccountHandlers) TopUpQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			Amount int64 `json:"amount"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		q, err := h.svc.QuoteTopUp(body.Amount)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{
			"amount":  q.Amount,
			"stars":   q.Stars,
			"payload": account.InvoicePayload(userID, q.Amount),
		})
	}
}

// TopUpConfirm credits a completed payment identified by its charge id.
func (h *AccountHandlers) TopUpConfirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PaymentRef  string `json:"payment_ref"`
			Payload     string `json:"payload"`
			DisplayHint string `json:"display_hint"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		userID, amount, err := account.ParseInvoicePayload(body.Payload)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		resp, err := h.svc.TopUp(r.Context(), body.PaymentRef, userID, amount, body.DisplayHint)
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
