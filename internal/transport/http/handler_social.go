package httptransport

import (
	"net/http"

	"lizard-economy/internal/app/duel"
	"lizard-economy/internal/app/marriage"

	"github.com/go-chi/chi/v5"
)

type SocialHandlers struct {
	marriage *marriage.Service
	duels    *duel.Service
}

func NewSocialHandlers(m *marriage.Service, d *duel.Service) *SocialHandlers {
	return &SocialHandlers{marriage: m, duels: d}
}

type ticketBody struct {
	UserID   int64  `json:"user_id"`
	TicketID string `json:"ticket_id"`
}

func (h *SocialHandlers) Propose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProposerID  int64 `json:"proposer_id"`
			TargetID    int64 `json:"target_id"`
			TargetIsBot bool  `json:"target_is_bot"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.marriage.Propose(r.Context(), marriage.ProposeRequest{
			ProposerID:  body.ProposerID,
			TargetID:    body.TargetID,
			TargetIsBot: body.TargetIsBot,
		})
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *SocialHandlers) ConfirmProposal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ticketBody
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.marriage.Confirm(r.Context(), body.UserID, body.TicketID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *SocialHandlers) CancelProposal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ticketBody
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.marriage.CancelDraft(body.UserID, body.TicketID); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *SocialHandlers) WithdrawProposal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProposerID int64 `json:"proposer_id"`
			TargetID   int64 `json:"target_id"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.marriage.Withdraw(r.Context(), body.ProposerID, body.TargetID); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *SocialHandlers) DeclineProposal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ticketBody
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.marriage.Decline(r.Context(), body.UserID); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *SocialHandlers) AcceptProposal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ticketBody
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.marriage.Accept(r.Context(), body.UserID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricMarriageTotal.Add(1)
		writeJSON(w, resp)
	}
}

func (h *SocialHandlers) RequestDivorce() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ticketBody
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.marriage.RequestDivorce(r.Context(), body.UserID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *SocialHandlers) ConfirmDivorce() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ticketBody
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.marriage.ConfirmDivorce(r.Context(), body.UserID, body.TicketID); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *SocialHandlers) CancelDivorce() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ticketBody
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.marriage.CancelDivorce(body.UserID, body.TicketID); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *SocialHandlers) StartDuel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			HostID int64 `json:"host_id"`
			Bet    int64 `json:"bet"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.duels.Start(r.Context(), body.HostID, body.Bet)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricDuelOpenTotal.Add(1)
		writeJSON(w, resp)
	}
}

func (h *SocialHandlers) GetDuel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.duels.Get(chi.URLParam(r, "duel_id"))
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *SocialHandlers) AcceptDuel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ChallengerID int64 `json:"challenger_id"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.duels.Accept(r.Context(), chi.URLParam(r, "duel_id"), body.ChallengerID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricDuelSettled.Add(1)
		writeJSON(w, resp)
	}
}

func (h *SocialHandlers) CancelDuel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			HostID int64 `json:"host_id"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.duels.Cancel(body.HostID, chi.URLParam(r, "duel_id")); err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}
