package repository

import (
	"context"

	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/pkg/pgconv"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OfferingRepository struct {
	db db.DBTX
}

func NewOfferingRepository(dbtx db.DBTX) *OfferingRepository {
	return &OfferingRepository{db: dbtx}
}

// FindForUpdate takes a row lock on the offering; every confirmation path
// goes through it so the capacity re-check and the registration insert form
// one atomic unit.
func (r *OfferingRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.OfferingSnapshot, error) {
	row := r.db.QueryRow(ctx,
		offeringSelect+` WHERE id = $1 FOR UPDATE`,
		id,
	)

	snap, err := scanOfferingSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offering not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock offering", err)
	}
	return snap, nil
}

func (r *OfferingRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int32) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE offerings
		    SET stock = stock - $2, updated_at = now()
		  WHERE id = $1
		    AND stock >= $2`,
		id, quantity,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement stock", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OfferingRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int32) error {
	_, err := r.db.Exec(ctx,
		`UPDATE offerings
		    SET stock = stock + $2, updated_at = now()
		  WHERE id = $1
		    AND stock IS NOT NULL`,
		id, quantity,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to increment stock", err)
	}
	return nil
}

const offeringSelect = `
SELECT id, house_id, kind, title, price_cents, capacity, stock, is_free, starts_at
  FROM offerings`

type offeringRow interface {
	Scan(dest ...any) error
}

func scanOfferingSnapshot(row offeringRow) (*shared.OfferingSnapshot, error) {
	var (
		snap     shared.OfferingSnapshot
		kind     string
		capacity pgtype.Int4
		stock    pgtype.Int4
		startsAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&snap.ID, &snap.HouseID, &kind, &snap.Title, &snap.PriceCents,
		&capacity, &stock, &snap.IsFree, &startsAt,
	); err != nil {
		return nil, err
	}

	snap.Kind = offering.Kind(kind)
	snap.Capacity = pgconv.Int32PtrFromPgtype(capacity)
	snap.Stock = pgconv.Int32PtrFromPgtype(stock)
	snap.StartsAt = pgconv.TimePtrFromPgtype(startsAt)
	return &snap, nil
}
