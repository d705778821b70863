package store

import "context"

func (s *Store) EnsureAccount(ctx context.Context, userID int64, username string) (bool, error) {
	return s.q.EnsureAccount(ctx, userID, username)
}

func (s *Store) GetAccount(ctx context.Context, userID int64) (Account, error) {
	return s.q.GetAccount(ctx, userID)
}

// Credit applies a standalone credit in its own transaction.
func (s *Store) Credit(ctx context.Context, userID, amount int64, entryType, refType, refID string) (int64, error) {
	var bal int64
	err := s.InTx(ctx, func(q *Queries) error {
		var err error
		bal, err = q.Credit(ctx, userID, amount, entryType, refType, refID)
		return err
	})
	return bal, err
}

// Debit applies a standalone conditional debit in its own transaction.
func (s *Store) Debit(ctx context.Context, userID, amount int64, entryType, refType, refID string) (int64, error) {
	var bal int64
	err := s.InTx(ctx, func(q *Queries) error {
		var err error
		bal, err = q.Debit(ctx, userID, amount, entryType, refType, refID)
		return err
	})
	return bal, err
}

func (s *Store) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	return s.q.ListLedgerEntries(ctx, f, limit, offset)
}
