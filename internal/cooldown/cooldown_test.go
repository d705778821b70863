package cooldown

import (
	"errors"
	"testing"
	"time"
)

func TestPolicyCheck(t *testing.T) {
	p := Policy{Kind: KindHunt, Duration: 24 * time.Hour}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	if d := p.Check(time.Time{}, now); !d.Eligible {
		t.Fatalf("never-used action should be eligible: %+v", d)
	}
	d := p.Check(now.Add(-23*time.Hour), now)
	if d.Eligible || d.Remaining != time.Hour {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if d := p.Check(now.Add(-24*time.Hour), now); !d.Eligible {
		t.Fatalf("exact boundary should be eligible: %+v", d)
	}
}

func TestRemainingShrinksOverTime(t *testing.T) {
	p := Policy{Kind: KindHunt, Duration: 24 * time.Hour}
	last := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	first := p.Check(last, last.Add(time.Minute))
	later := p.Check(last, last.Add(2*time.Hour))
	if first.Eligible || later.Eligible || later.Remaining >= first.Remaining {
		t.Fatalf("remaining did not shrink: %+v then %+v", first, later)
	}
}

func TestEnforceReturnsTypedError(t *testing.T) {
	p := Policy{Kind: KindPetGrow, Duration: time.Hour}
	now := time.Now()
	err := p.Enforce(now.Add(-20*time.Minute), now)
	if !errors.Is(err, ErrActive) {
		t.Fatalf("expected ErrActive, got %v", err)
	}
	var cdErr *Error
	if !errors.As(err, &cdErr) || cdErr.Remaining != 40*time.Minute || cdErr.Kind != KindPetGrow {
		t.Fatalf("unexpected error detail: %#v", err)
	}
}

func TestBifurcatedQuiz(t *testing.T) {
	b := Bifurcated{Kind: KindQuiz, Success: 12 * time.Hour, Failure: 30 * time.Minute}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-time.Hour)

	if d := b.Check(last, false, now); !d.Eligible {
		t.Fatalf("failure penalty should have elapsed: %+v", d)
	}
	d := b.Check(last, true, now)
	if d.Eligible || d.Remaining != 11*time.Hour {
		t.Fatalf("success interval not applied: %+v", d)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{30 * time.Second, "1m"},
		{59 * time.Minute, "59m"},
		{2 * time.Hour, "2h"},
		{23*time.Hour + 4*time.Minute + time.Second, "23h 5m"},
	}
	for _, tc := range cases {
		if got := FormatRemaining(tc.in); got != tc.want {
			t.Fatalf("FormatRemaining(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
