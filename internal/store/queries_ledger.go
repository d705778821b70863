package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type LedgerFilter struct {
	UserID  int64
	Type    string
	RefType string
	RefID   string
	From    *time.Time
	To      *time.Time
}

func (q *Queries) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	where := []string{"TRUE"}
	args := []any{}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != 0 {
		add("user_id = $%d", f.UserID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.RefType != "" {
		add("ref_type = $%d", f.RefType)
	}
	if f.RefID != "" {
		add("ref_id = $%d", f.RefID)
	}
	if f.From != nil {
		add("created_at >= $%d", timeParam(f.From))
	}
	if f.To != nil {
		add("created_at < $%d", timeParam(f.To))
	}
	args = append(args, limit, offset)
	sql := fmt.Sprintf(`
SELECT id, user_id, type, amount, ref_type, ref_id, created_at
FROM ledger_entries
WHERE %s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d`, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LedgerEntry{}
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertTopup records a payment reference. It reports false when the
// reference was already applied.
func (q *Queries) InsertTopup(ctx context.Context, paymentRef string, userID, amount int64) (bool, error) {
	tag, err := q.db.Exec(ctx, `
INSERT INTO topups (payment_ref, user_id, amount)
VALUES ($1, $2, $3)
ON CONFLICT (payment_ref) DO NOTHING`, paymentRef, userID, amount)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (q *Queries) GetTopup(ctx context.Context, paymentRef string) (Topup, error) {
	var t Topup
	err := q.db.QueryRow(ctx, `
SELECT payment_ref, user_id, amount, created_at FROM topups WHERE payment_ref = $1`, paymentRef).
		Scan(&t.PaymentRef, &t.UserID, &t.Amount, &t.CreatedAt)
	if err != nil {
		return Topup{}, mapNotFound(err)
	}
	return t, nil
}
