package store

import (
	"strings"
	"time"
)

// Perk is a time-limited cosmetic or protective bonus stored as an expiry on
// the account row.
type Perk string

const (
	PerkPrefix  Perk = "prefix"
	PerkAntitar Perk = "antitar"
	PerkVIP     Perk = "vip"
)

var perkColumns = map[Perk]string{
	PerkPrefix:  "prefix_end",
	PerkAntitar: "antitar_end",
	PerkVIP:     "vip_end",
}

func (p Perk) Valid() bool {
	_, ok := perkColumns[p]
	return ok
}

// Account is the per-user economic record. Zero times mean "never" for
// stamps and "inactive" for perk expirations.
type Account struct {
	UserID         int64
	Username       string
	Nickname       string
	Balance        int64
	Level          int
	PrefixEnd      time.Time
	AntitarEnd     time.Time
	VIPEnd         time.Time
	PartnerID      int64
	ProposalFromID int64
	LastHuntAt     time.Time
	LastQuizAt     time.Time
	LastQuizWon    bool
	QuizBestStreak int
	LastCasinoAt   time.Time
	HideBalance    bool
	HideLevel      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName prefers the nickname over the platform username.
func (a Account) DisplayName() string {
	if n := strings.TrimSpace(a.Nickname); n != "" {
		return n
	}
	return a.Username
}

func (a Account) PerkEnd(p Perk) time.Time {
	switch p {
	case PerkPrefix:
		return a.PrefixEnd
	case PerkAntitar:
		return a.AntitarEnd
	case PerkVIP:
		return a.VIPEnd
	default:
		return time.Time{}
	}
}

func (a Account) PerkActive(p Perk, now time.Time) bool {
	end := a.PerkEnd(p)
	return !end.IsZero() && end.After(now)
}

type LedgerEntry struct {
	ID        string
	UserID    int64
	Type      string
	Amount    int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}

type Topup struct {
	PaymentRef string
	UserID     int64
	Amount     int64
	CreatedAt  time.Time
}

type Pet struct {
	ID        int64
	OwnerID   int64
	Name      string
	Species   string
	Level     int
	FedAt     time.Time
	WateredAt time.Time
	WalkedAt  time.Time
	GrownAt   time.Time
	CreatedAt time.Time
}

// LastCare is the most recent of the neglect-relevant stamps.
func (p Pet) LastCare() time.Time {
	latest := p.CreatedAt
	for _, t := range []time.Time{p.FedAt, p.WateredAt, p.WalkedAt} {
		if t.After(latest) {
			latest = t
		}
	}
	return latest
}

type OwnedEgg struct {
	ID        int64
	OwnerID   int64
	EggType   string
	CreatedAt time.Time
}

type QuizQuestion struct {
	ID       int64
	Question string
	Options  []string
	Correct  int
}

type CasinoPlay struct {
	ID        string
	UserID    int64
	Color     string
	Bet       int64
	Payout    int64
	CreatedAt time.Time
}

type CasinoStats struct {
	Plays     int64
	Wins      int64
	Staked    int64
	PaidOut   int64
	LastPlay  time.Time
	UserScope int64
}

type LeaderboardEntry struct {
	UserID int64
	Name   string
	Value  int64
}
