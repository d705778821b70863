package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CareAction names a pet care stamp column.
type CareAction string

const (
	CareFeed  CareAction = "feed"
	CareWater CareAction = "water"
	CareWalk  CareAction = "walk"
	CareGrow  CareAction = "grow"
)

var careColumns = map[CareAction]string{
	CareFeed:  "fed_at",
	CareWater: "watered_at",
	CareWalk:  "walked_at",
	CareGrow:  "grown_at",
}

const petColumns = `id, owner_id, name, species, level, fed_at, watered_at, walked_at, grown_at, created_at`

func scanPet(row pgx.Row) (Pet, error) {
	var (
		p                         Pet
		fed, watered, walked, grw pgtype.Timestamptz
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Species, &p.Level, &fed, &watered, &walked, &grw, &p.CreatedAt); err != nil {
		return Pet{}, mapNotFound(err)
	}
	p.FedAt = timeVal(fed)
	p.WateredAt = timeVal(watered)
	p.WalkedAt = timeVal(walked)
	p.GrownAt = timeVal(grw)
	return p, nil
}

func collectPets(rows pgx.Rows) ([]Pet, error) {
	defer rows.Close()
	out := []Pet{}
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (q *Queries) InsertPet(ctx context.Context, ownerID int64, name, species string, at time.Time) (Pet, error) {
	return scanPet(q.db.QueryRow(ctx, `
INSERT INTO pets (owner_id, name, species, created_at)
VALUES ($1, $2, $3, $4)
RETURNING `+petColumns, ownerID, name, species, at))
}

func (q *Queries) ListPets(ctx context.Context, ownerID int64) ([]Pet, error) {
	rows, err := q.db.Query(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectPets(rows)
}

func (q *Queries) CountPets(ctx context.Context, ownerID int64) (int, error) {
	var n int
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM pets WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

func (q *Queries) GetPetForUpdate(ctx context.Context, ownerID, petID int64) (Pet, error) {
	return scanPet(q.db.QueryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1 AND owner_id = $2 FOR UPDATE`, petID, ownerID))
}

// DeleteNeglectedPets removes the owner's pets whose latest care stamp is
// before cutoff and returns what was removed.
func (q *Queries) DeleteNeglectedPets(ctx context.Context, ownerID int64, cutoff time.Time) ([]Pet, error) {
	rows, err := q.db.Query(ctx, `
DELETE FROM pets
WHERE owner_id = $1
  AND GREATEST(created_at, COALESCE(fed_at, created_at), COALESCE(watered_at, created_at), COALESCE(walked_at, created_at)) < $2
RETURNING `+petColumns, ownerID, cutoff)
	if err != nil {
		return nil, err
	}
	return collectPets(rows)
}

// StampCare records a care action. Grow also raises the pet level by one.
func (q *Queries) StampCare(ctx context.Context, petID int64, action CareAction, at time.Time) (Pet, error) {
	col, ok := careColumns[action]
	if !ok {
		return Pet{}, fmt.Errorf("unknown care action %q", action)
	}
	levelUp := 0
	if action == CareGrow {
		levelUp = 1
	}
	return scanPet(q.db.QueryRow(ctx, fmt.Sprintf(`
UPDATE pets SET %s = $2, level = level + $3
WHERE id = $1
RETURNING `+petColumns, col), petID, at, levelUp))
}

func (q *Queries) InsertEgg(ctx context.Context, ownerID int64, eggType string) (OwnedEgg, error) {
	var e OwnedEgg
	err := q.db.QueryRow(ctx, `
INSERT INTO owned_eggs (owner_id, egg_type)
VALUES ($1, $2)
RETURNING id, owner_id, egg_type, created_at`, ownerID, eggType).Scan(&e.ID, &e.OwnerID, &e.EggType, &e.CreatedAt)
	return e, err
}

func (q *Queries) ListEggs(ctx context.Context, ownerID int64) ([]OwnedEgg, error) {
	rows, err := q.db.Query(ctx, `
SELECT id, owner_id, egg_type, created_at FROM owned_eggs
WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []OwnedEgg{}
	for rows.Next() {
		var e OwnedEgg
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.EggType, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// TakeEgg deletes an owned egg and returns it. Callers run it inside the
// hatch transaction so a later failure restores the egg.
func (q *Queries) TakeEgg(ctx context.Context, ownerID, eggID int64) (OwnedEgg, error) {
	var e OwnedEgg
	err := q.db.QueryRow(ctx, `
DELETE FROM owned_eggs WHERE id = $1 AND owner_id = $2
RETURNING id, owner_id, egg_type, created_at`, eggID, ownerID).Scan(&e.ID, &e.OwnerID, &e.EggType, &e.CreatedAt)
	if err != nil {
		return OwnedEgg{}, mapNotFound(err)
	}
	return e, nil
}
