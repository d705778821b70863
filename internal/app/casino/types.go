package casino

import "time"

type PlayResult struct {
	PlayID  string `json:"play_id"`
	Chosen  Color  `json:"chosen"`
	Landed  Color  `json:"landed"`
	Bet     int64  `json:"bet"`
	Payout  int64  `json:"payout"`
	Won     bool   `json:"won"`
	Balance int64  `json:"balance"`
}

type Stats struct {
	UserID   int64      `json:"user_id,omitempty"`
	Plays    int64      `json:"plays"`
	Wins     int64      `json:"wins"`
	Staked   int64      `json:"staked"`
	PaidOut  int64      `json:"paid_out"`
	Net      int64      `json:"net"`
	LastPlay *time.Time `json:"last_play,omitempty"`
}
