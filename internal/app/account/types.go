package account

import "time"

type PerkStatus struct {
	Perk      string     `json:"perk"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Profile is an account as seen by a viewer. Balance and Level are nil when
// the owner hides them from others.
type Profile struct {
	UserID         int64        `json:"user_id"`
	Name           string       `json:"name"`
	Username       string       `json:"username"`
	Nickname       string       `json:"nickname,omitempty"`
	Balance        *int64       `json:"balance,omitempty"`
	Level          *int         `json:"level,omitempty"`
	Perks          []PerkStatus `json:"perks"`
	PartnerID      int64        `json:"partner_id,omitempty"`
	PartnerName    string       `json:"partner_name,omitempty"`
	ProposalFromID int64        `json:"proposal_from_id,omitempty"`
	QuizBestStreak int          `json:"quiz_best_streak"`
	HideBalance    bool         `json:"hide_balance"`
	HideLevel      bool         `json:"hide_level"`
	CreatedAt      time.Time    `json:"created_at"`
}

type HuntResult struct {
	Reward  int64     `json:"reward"`
	Balance int64     `json:"balance"`
	NextAt  time.Time `json:"next_at"`
}

type TransferResult struct {
	TransferID  string `json:"transfer_id"`
	FromID      int64  `json:"from_id"`
	ToID        int64  `json:"to_id"`
	Amount      int64  `json:"amount"`
	FromBalance int64  `json:"from_balance"`
}

type PurchaseResult struct {
	Perk      string    `json:"perk"`
	Days      int       `json:"days"`
	Price     int64     `json:"price"`
	ExpiresAt time.Time `json:"expires_at"`
	Balance   int64     `json:"balance"`
}

type ShopTier struct {
	Days  int   `json:"days"`
	Price int64 `json:"price"`
}

type ShopItem struct {
	Perk  string     `json:"perk"`
	Name  string     `json:"name"`
	Tiers []ShopTier `json:"tiers"`
}

type TopUpQuote struct {
	Amount int64 `json:"amount"`
	Stars  int64 `json:"stars"`
}

type TopUpResult struct {
	PaymentRef string `json:"payment_ref"`
	Amount     int64  `json:"amount"`
	Applied    bool   `json:"applied"`
	Balance    int64  `json:"balance"`
}

type GrantResult struct {
	UserID  int64 `json:"user_id"`
	Amount  int64 `json:"amount"`
	Balance int64 `json:"balance"`
}

type LeaderboardKind string

const (
	LeaderboardRichest LeaderboardKind = "richest"
	LeaderboardQuiz    LeaderboardKind = "quiz"
)

type LeaderboardRow struct {
	Rank   int    `json:"rank"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Value  int64  `json:"value"`
}

type Leaderboard struct {
	Kind  LeaderboardKind  `json:"kind"`
	Items []LeaderboardRow `json:"items"`
}
