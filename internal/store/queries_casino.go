package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

func (q *Queries) InsertCasinoPlay(ctx context.Context, p CasinoPlay) error {
	_, err := q.db.Exec(ctx, `
INSERT INTO casino_log (id, user_id, color, bet, payout)
VALUES ($1, $2, $3, $4, $5)`, p.ID, p.UserID, p.Color, p.Bet, p.Payout)
	return err
}

// CasinoStats aggregates the log for one user, or for everyone when userID is 0.
func (q *Queries) CasinoStats(ctx context.Context, userID int64) (CasinoStats, error) {
	var (
		st   CasinoStats
		last pgtype.Timestamptz
	)
	err := q.db.QueryRow(ctx, `
SELECT count(*),
       count(*) FILTER (WHERE payout > 0),
       COALESCE(sum(bet), 0),
       COALESCE(sum(payout), 0),
       max(created_at)
FROM casino_log
WHERE $1::bigint = 0 OR user_id = $1`, userID).Scan(&st.Plays, &st.Wins, &st.Staked, &st.PaidOut, &last)
	if err != nil {
		return CasinoStats{}, err
	}
	st.LastPlay = timeVal(last)
	st.UserScope = userID
	return st, nil
}
