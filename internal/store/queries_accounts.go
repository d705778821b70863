package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const accountColumns = `user_id, username, nickname, balance, level,
  prefix_end, antitar_end, vip_end, partner_id, proposal_from_id,
  last_hunt_at, last_quiz_at, last_quiz_won, quiz_best_streak,
  last_casino_at, hide_balance, hide_level, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var (
		a                              Account
		prefixEnd, antitarEnd, vipEnd  pgtype.Timestamptz
		lastHunt, lastQuiz, lastCasino pgtype.Timestamptz
		createdAt, updatedAt           pgtype.Timestamptz
	)
	err := row.Scan(
		&a.UserID, &a.Username, &a.Nickname, &a.Balance, &a.Level,
		&prefixEnd, &antitarEnd, &vipEnd, &a.PartnerID, &a.ProposalFromID,
		&lastHunt, &lastQuiz, &a.LastQuizWon, &a.QuizBestStreak,
		&lastCasino, &a.HideBalance, &a.HideLevel, &createdAt, &updatedAt,
	)
	if err != nil {
		return Account{}, mapNotFound(err)
	}
	a.PrefixEnd = timeVal(prefixEnd)
	a.AntitarEnd = timeVal(antitarEnd)
	a.VIPEnd = timeVal(vipEnd)
	a.LastHuntAt = timeVal(lastHunt)
	a.LastQuizAt = timeVal(lastQuiz)
	a.LastCasinoAt = timeVal(lastCasino)
	a.CreatedAt = timeVal(createdAt)
	a.UpdatedAt = timeVal(updatedAt)
	return a, nil
}

// EnsureAccount creates the row if absent. Existing rows are left untouched.
func (q *Queries) EnsureAccount(ctx context.Context, userID int64, username string) (bool, error) {
	tag, err := q.db.Exec(ctx, `
INSERT INTO accounts (user_id, username)
VALUES ($1, $2)
ON CONFLICT (user_id) DO NOTHING`, userID, username)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (q *Queries) GetAccount(ctx context.Context, userID int64) (Account, error) {
	return scanAccount(q.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1`, userID))
}

func (q *Queries) GetAccountForUpdate(ctx context.Context, userID int64) (Account, error) {
	return scanAccount(q.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 FOR UPDATE`, userID))
}

// LockAccounts row-locks the given accounts in ascending id order so two
// transactions touching the same pair cannot deadlock.
func (q *Queries) LockAccounts(ctx context.Context, ids ...int64) (map[int64]Account, error) {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := make(map[int64]Account, len(sorted))
	for _, id := range sorted {
		if _, ok := out[id]; ok {
			continue
		}
		acc, err := q.GetAccountForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = acc
	}
	return out, nil
}

func (q *Queries) insertLedgerEntry(ctx context.Context, userID, amount int64, entryType, refType, refID string) error {
	_, err := q.db.Exec(ctx, `
INSERT INTO ledger_entries (id, user_id, type, amount, ref_type, ref_id)
VALUES ($1, $2, $3, $4, $5, $6)`, NewID(), userID, entryType, amount, refType, refID)
	return err
}

// Credit adds amount and appends a ledger row. Returns the new balance.
func (q *Queries) Credit(ctx context.Context, userID, amount int64, entryType, refType, refID string) (int64, error) {
	if amount <= 0 {
		return 0, errors.New("amount must be positive")
	}
	var bal int64
	err := q.db.QueryRow(ctx, `
UPDATE accounts SET balance = balance + $2, updated_at = now()
WHERE user_id = $1
RETURNING balance`, userID, amount).Scan(&bal)
	if err != nil {
		return 0, mapNotFound(err)
	}
	if err := q.insertLedgerEntry(ctx, userID, amount, entryType, refType, refID); err != nil {
		return 0, err
	}
	return bal, nil
}

// Debit subtracts amount only if the balance covers it. A rejected debit
// returns *InsufficientFundsError and leaves the row unchanged.
func (q *Queries) Debit(ctx context.Context, userID, amount int64, entryType, refType, refID string) (int64, error) {
	if amount <= 0 {
		return 0, errors.New("amount must be positive")
	}
	var bal int64
	err := q.db.QueryRow(ctx, `
UPDATE accounts SET balance = balance - $2, updated_at = now()
WHERE user_id = $1 AND balance >= $2
RETURNING balance`, userID, amount).Scan(&bal)
	if errors.Is(err, pgx.ErrNoRows) {
		var current int64
		if err := q.db.QueryRow(ctx, `SELECT balance FROM accounts WHERE user_id = $1`, userID).Scan(&current); err != nil {
			return 0, mapNotFound(err)
		}
		return 0, &InsufficientFundsError{Balance: current, Required: amount}
	}
	if err != nil {
		return 0, err
	}
	if err := q.insertLedgerEntry(ctx, userID, -amount, entryType, refType, refID); err != nil {
		return 0, err
	}
	return bal, nil
}

// ExtendPerk pushes the perk expiry to max(current end, now) + d and returns
// the new end.
func (q *Queries) ExtendPerk(ctx context.Context, userID int64, perk Perk, now time.Time, d time.Duration) (time.Time, error) {
	col, ok := perkColumns[perk]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown perk %q", perk)
	}
	var end time.Time
	err := q.db.QueryRow(ctx, fmt.Sprintf(`
UPDATE accounts
SET %[1]s = GREATEST(COALESCE(%[1]s, $2), $2) + make_interval(secs => $3), updated_at = now()
WHERE user_id = $1
RETURNING %[1]s`, col), userID, now, d.Seconds()).Scan(&end)
	if err != nil {
		return time.Time{}, mapNotFound(err)
	}
	return end, nil
}

// SweepExpiredPerks nulls every perk whose end is not after now. It reports
// whether anything changed.
func (q *Queries) SweepExpiredPerks(ctx context.Context, userID int64, now time.Time) (bool, error) {
	tag, err := q.db.Exec(ctx, `
UPDATE accounts
SET prefix_end  = CASE WHEN prefix_end  <= $2 THEN NULL ELSE prefix_end  END,
    antitar_end = CASE WHEN antitar_end <= $2 THEN NULL ELSE antitar_end END,
    vip_end     = CASE WHEN vip_end     <= $2 THEN NULL ELSE vip_end     END,
    updated_at  = now()
WHERE user_id = $1
  AND (prefix_end <= $2 OR antitar_end <= $2 OR vip_end <= $2)`, userID, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) StampHunt(ctx context.Context, userID int64, at time.Time) error {
	return q.execOne(ctx, `UPDATE accounts SET last_hunt_at = $2, updated_at = now() WHERE user_id = $1`, userID, at)
}

func (q *Queries) StampCasino(ctx context.Context, userID int64, at time.Time) error {
	return q.execOne(ctx, `UPDATE accounts SET last_casino_at = $2, updated_at = now() WHERE user_id = $1`, userID, at)
}

// AdjustLevel adds delta to the level, flooring at zero, and returns the new level.
func (q *Queries) AdjustLevel(ctx context.Context, userID int64, delta int) (int, error) {
	var level int
	err := q.db.QueryRow(ctx, `
UPDATE accounts SET level = GREATEST(level + $2, 0), updated_at = now()
WHERE user_id = $1
RETURNING level`, userID, delta).Scan(&level)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return level, nil
}

// RecordQuizResult stamps a finished quiz session. The best streak only moves
// on a won session.
func (q *Queries) RecordQuizResult(ctx context.Context, userID int64, at time.Time, won bool, streak int) error {
	return q.execOne(ctx, `
UPDATE accounts
SET last_quiz_at = $2, last_quiz_won = $3,
    quiz_best_streak = CASE WHEN $3 THEN GREATEST(quiz_best_streak, $4) ELSE quiz_best_streak END,
    updated_at = now()
WHERE user_id = $1`, userID, at, won, streak)
}

func (q *Queries) SetPartners(ctx context.Context, a, b int64) error {
	tag, err := q.db.Exec(ctx, `
UPDATE accounts
SET partner_id = CASE WHEN user_id = $1 THEN $2 ELSE $1 END, updated_at = now()
WHERE user_id IN ($1, $2)`, a, b)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 2 {
		return ErrNotFound
	}
	return nil
}

// ClearPartnership resets both sides of a partnership in one statement.
func (q *Queries) ClearPartnership(ctx context.Context, a, b int64) error {
	_, err := q.db.Exec(ctx, `
UPDATE accounts SET partner_id = 0, updated_at = now()
WHERE (user_id = $1 AND partner_id = $2) OR (user_id = $2 AND partner_id = $1)`, a, b)
	return err
}

func (q *Queries) SetProposal(ctx context.Context, target, from int64) error {
	return q.execOne(ctx, `UPDATE accounts SET proposal_from_id = $2, updated_at = now() WHERE user_id = $1`, target, from)
}

func (q *Queries) ClearProposal(ctx context.Context, target int64) error {
	_, err := q.db.Exec(ctx, `UPDATE accounts SET proposal_from_id = 0, updated_at = now() WHERE user_id = $1`, target)
	return err
}

// ClearProposalFrom clears target's slot only if it still holds from's proposal.
func (q *Queries) ClearProposalFrom(ctx context.Context, target, from int64) (bool, error) {
	tag, err := q.db.Exec(ctx, `
UPDATE accounts SET proposal_from_id = 0, updated_at = now()
WHERE user_id = $1 AND proposal_from_id = $2`, target, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ClearProposalsBy clears every slot holding a proposal sent by any of ids.
func (q *Queries) ClearProposalsBy(ctx context.Context, ids ...int64) (int64, error) {
	tag, err := q.db.Exec(ctx, `
UPDATE accounts SET proposal_from_id = 0, updated_at = now()
WHERE proposal_from_id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ProposalTargets lists accounts whose slot holds a proposal from the user.
func (q *Queries) ProposalTargets(ctx context.Context, from int64) ([]int64, error) {
	rows, err := q.db.Query(ctx, `SELECT user_id FROM accounts WHERE proposal_from_id = $1 ORDER BY user_id`, from)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (q *Queries) SetNickname(ctx context.Context, userID int64, nickname string) error {
	return q.execOne(ctx, `UPDATE accounts SET nickname = $2, updated_at = now() WHERE user_id = $1`, userID, nickname)
}

func (q *Queries) SetUsername(ctx context.Context, userID int64, username string) error {
	_, err := q.db.Exec(ctx, `
UPDATE accounts SET username = $2, updated_at = now()
WHERE user_id = $1 AND username <> $2`, userID, username)
	return err
}

func (q *Queries) SetPrivacy(ctx context.Context, userID int64, hideBalance, hideLevel bool) error {
	return q.execOne(ctx, `
UPDATE accounts SET hide_balance = $2, hide_level = $3, updated_at = now()
WHERE user_id = $1`, userID, hideBalance, hideLevel)
}

// ListRichest ranks accounts by balance, skipping those that hide it.
func (q *Queries) ListRichest(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return q.leaderboard(ctx, `
SELECT user_id, COALESCE(NULLIF(nickname, ''), username), balance
FROM accounts
WHERE NOT hide_balance AND balance > 0
ORDER BY balance DESC, user_id ASC
LIMIT $1`, limit)
}

func (q *Queries) ListQuizRecords(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return q.leaderboard(ctx, `
SELECT user_id, COALESCE(NULLIF(nickname, ''), username), quiz_best_streak
FROM accounts
WHERE quiz_best_streak > 0
ORDER BY quiz_best_streak DESC, user_id ASC
LIMIT $1`, limit)
}

func (q *Queries) leaderboard(ctx context.Context, sql string, limit int) ([]LeaderboardEntry, error) {
	rows, err := q.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (q *Queries) execOne(ctx context.Context, sql string, args ...any) error {
	tag, err := q.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
