package duel

import "time"

type Duel struct {
	ID        string    `json:"id"`
	HostID    int64     `json:"host_id"`
	Bet       int64     `json:"bet"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Result is a resolved duel. WinnerID is zero on a tie.
type Result struct {
	DuelID            string `json:"duel_id"`
	HostID            int64  `json:"host_id"`
	ChallengerID      int64  `json:"challenger_id"`
	Bet               int64  `json:"bet"`
	HostRoll          int    `json:"host_roll"`
	ChallengerRoll    int    `json:"challenger_roll"`
	WinnerID          int64  `json:"winner_id,omitempty"`
	HostBalance       int64  `json:"host_balance"`
	ChallengerBalance int64  `json:"challenger_balance"`
}

func (r Result) Tie() bool {
	return r.WinnerID == 0
}
