package httptransport

import (
	"net/http"

	"lizard-economy/internal/activity"
	"lizard-economy/internal/app/casino"
	"lizard-economy/internal/app/quiz"
)

type GameHandlers struct {
	quiz   *quiz.Service
	casino *casino.Service
	ping   *activity.Pinger
}

func NewGameHandlers(q *quiz.Service, c *casino.Service, p *activity.Pinger) *GameHandlers {
	return &GameHandlers{quiz: q, casino: c, ping: p}
}

func (h *GameHandlers) StartQuiz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		resp, err := h.quiz.Start(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *GameHandlers) AnswerQuiz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			SessionID string `json:"session_id"`
			Option    int    `json:"option"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.quiz.Answer(r.Context(), userID, body.SessionID, body.Option)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		switch resp.Outcome {
		case quiz.OutcomeWon:
			metricQuizWonTotal.Add(1)
		case quiz.OutcomeLost:
			metricQuizLostTotal.Add(1)
		}
		writeJSON(w, resp)
	}
}

func (h *GameHandlers) PlayCasino() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			Bet   int64  `json:"bet"`
			Color string `json:"color"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.casino.Play(r.Context(), userID, body.Bet, body.Color)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricCasinoPlayTotal.Add(1)
		metricCasinoStaked.Add(resp.Bet)
		metricCasinoPaidOut.Add(resp.Payout)
		writeJSON(w, resp)
	}
}

func (h *GameHandlers) CasinoStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.casino.Stats(r.Context(), queryID(r, "user_id"))
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}

// Activity records that a member wrote to a group chat.
func (h *GameHandlers) Activity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, ok := chatIDParam(w, r)
		if !ok {
			return
		}
		var body struct {
			UserID int64 `json:"user_id"`
			IsBot  bool  `json:"is_bot"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if !body.IsBot && body.UserID != 0 {
			h.ping.Touch(chatID, body.UserID)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *GameHandlers) Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID, ok := chatIDParam(w, r)
		if !ok {
			return
		}
		var body struct {
			CallerID     int64   `json:"caller_id"`
			CallerAdmin  bool    `json:"caller_admin"`
			ChatAdminIDs []int64 `json:"chat_admin_ids"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.ping.Ping(r.Context(), activity.PingRequest{
			ChatID:       chatID,
			CallerID:     body.CallerID,
			CallerAdmin:  body.CallerAdmin,
			ChatAdminIDs: body.ChatAdminIDs,
		})
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}
