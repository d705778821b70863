package cooldown

import (
	"errors"
	"fmt"
	"time"
)

var ErrActive = errors.New("cooldown_active")

type Kind string

const (
	KindHunt     Kind = "hunt"
	KindQuiz     Kind = "quiz"
	KindCasino   Kind = "casino"
	KindProposal Kind = "marriage_proposal"
	KindPing     Kind = "ping"
	KindPetFeed  Kind = "pet_feed"
	KindPetWater Kind = "pet_water"
	KindPetWalk  Kind = "pet_walk"
	KindPetGrow  Kind = "pet_grow"
)

// Policy gates an action to once per Duration.
type Policy struct {
	Kind     Kind
	Duration time.Duration
}

type Decision struct {
	Eligible  bool
	Remaining time.Duration
}

// Check reports whether the action may run at now given its last use. A zero
// last means the action was never used.
func (p Policy) Check(last, now time.Time) Decision {
	if last.IsZero() || p.Duration <= 0 {
		return Decision{Eligible: true}
	}
	elapsed := now.Sub(last)
	if elapsed >= p.Duration {
		return Decision{Eligible: true}
	}
	return Decision{Remaining: p.Duration - elapsed}
}

// Enforce returns a *Error when the action is still cooling down.
func (p Policy) Enforce(last, now time.Time) error {
	d := p.Check(last, now)
	if d.Eligible {
		return nil
	}
	return &Error{Kind: p.Kind, Remaining: d.Remaining}
}

// Bifurcated picks the cooldown by how the previous attempt ended: a long
// interval after success, a short penalty after failure.
type Bifurcated struct {
	Kind    Kind
	Success time.Duration
	Failure time.Duration
}

func (b Bifurcated) Policy(lastWon bool) Policy {
	if lastWon {
		return Policy{Kind: b.Kind, Duration: b.Success}
	}
	return Policy{Kind: b.Kind, Duration: b.Failure}
}

func (b Bifurcated) Check(last time.Time, lastWon bool, now time.Time) Decision {
	return b.Policy(lastWon).Check(last, now)
}

func (b Bifurcated) Enforce(last time.Time, lastWon bool, now time.Time) error {
	return b.Policy(lastWon).Enforce(last, now)
}

type Error struct {
	Kind      Kind
	Remaining time.Duration
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s for %s", ErrActive.Error(), FormatRemaining(e.Remaining), e.Kind)
}

func (e *Error) Unwrap() error {
	return ErrActive
}

// FormatRemaining renders a wait as hours and minutes, rounding partial
// minutes up so a wait is never shown as zero.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	minutes := int64((d + time.Minute - 1) / time.Minute)
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
