package quiz

import "time"

// Question is what the player sees. The correct option stays server side.
type Question struct {
	SessionID string    `json:"session_id"`
	Number    int       `json:"number"`
	Of        int       `json:"of"`
	Text      string    `json:"text"`
	Options   []string  `json:"options"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Outcome string

const (
	OutcomeContinue Outcome = "continue"
	OutcomeWon      Outcome = "won"
	OutcomeLost     Outcome = "lost"
	OutcomeTimeout  Outcome = "timeout"
)

type AnswerResult struct {
	Correct       bool      `json:"correct"`
	CorrectOption int       `json:"correct_option"`
	Streak        int       `json:"streak"`
	Outcome       Outcome   `json:"outcome"`
	Next          *Question `json:"next,omitempty"`
	Reward        int64     `json:"reward,omitempty"`
	Level         int       `json:"level"`
	NextAt        time.Time `json:"next_at,omitempty"`
}

// TimeoutEvent is reported when a question runs out of time.
type TimeoutEvent struct {
	UserID    int64
	SessionID string
	Streak    int
	NextAt    time.Time
}
