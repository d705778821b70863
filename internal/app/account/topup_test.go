package account

import (
	"errors"
	"testing"

	"lizard-economy/internal/testutil"
)

func TestQuoteTopUp(t *testing.T) {
	svc := &Service{cfg: testutil.Economy()}
	cases := []struct {
		name      string
		amount    int64
		stars     int64
		wantErr   bool
		wantLower int64
		wantUpper int64
	}{
		{name: "valid minimum multiple", amount: 21, stars: 7},
		{name: "valid max", amount: 9999, stars: 3333},
		{name: "not a multiple", amount: 100, wantErr: true, wantLower: 99, wantUpper: 102},
		{name: "not a multiple near min", amount: 20, wantErr: true, wantLower: 0, wantUpper: 21},
		{name: "below range", amount: 5, wantErr: true, wantUpper: 21},
		{name: "above range", amount: 20000, wantErr: true, wantLower: 9999},
		{name: "near max", amount: 10000, wantErr: true, wantLower: 9999, wantUpper: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := svc.QuoteTopUp(tc.amount)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				if q.Stars != tc.stars || q.Amount != tc.amount {
					t.Fatalf("unexpected quote: %+v", q)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTopUp) {
				t.Fatalf("expected ErrInvalidTopUp, got %v", err)
			}
			var amtErr *TopUpAmountError
			if !errors.As(err, &amtErr) {
				t.Fatalf("expected *TopUpAmountError, got %T", err)
			}
			if amtErr.Lower != tc.wantLower || amtErr.Upper != tc.wantUpper {
				t.Fatalf("suggestions = %d/%d, want %d/%d", amtErr.Lower, amtErr.Upper, tc.wantLower, tc.wantUpper)
			}
		})
	}
}

func TestTopUpAmountErrorText(t *testing.T) {
	cases := []struct {
		err  TopUpAmountError
		want string
	}{
		{TopUpAmountError{Amount: 100, Lower: 99, Upper: 102}, "invalid_topup_amount: 100 (try 99 or 102)"},
		{TopUpAmountError{Amount: 20, Upper: 21}, "invalid_topup_amount: 20 (try 21)"},
		{TopUpAmountError{Amount: 10000, Lower: 9999}, "invalid_topup_amount: 10000 (try 9999)"},
		{TopUpAmountError{Amount: 7}, "invalid_topup_amount: 7"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestInvoicePayloadRoundTrip(t *testing.T) {
	userID, amount, err := ParseInvoicePayload(InvoicePayload(42, 300))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 || amount != 300 {
		t.Fatalf("got %d/%d", userID, amount)
	}
	for _, bad := range []string{"", "other:1:2", "lizard_topup:x:3", "lizard_topup:1:-3", "lizard_topup:1"} {
		if _, _, err := ParseInvoicePayload(bad); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("payload %q: expected ErrInvalidRequest, got %v", bad, err)
		}
	}
}

func TestCatalogueIsOrdered(t *testing.T) {
	items := Catalogue()
	if len(items) != 3 || items[0].Perk != "prefix" || items[2].Perk != "vip" {
		t.Fatalf("unexpected catalogue: %+v", items)
	}
	for _, it := range items {
		for i := 1; i < len(it.Tiers); i++ {
			if it.Tiers[i-1].Days >= it.Tiers[i].Days {
				t.Fatalf("tiers not sorted for %s", it.Perk)
			}
		}
	}
}
