package readstore

import (
	"context"

	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/pkg/pgconv"
	"casaraiz-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// AvailabilityReadStore derives remaining units from the authoritative
// confirmed-registration sum (or stock for products); no cached counter is
// ever consulted here.
type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

const availabilitySelect = `
SELECT o.id,
       o.house_id,
       o.kind,
       o.title,
       o.price_cents,
       o.is_free,
       o.capacity,
       o.stock,
       o.starts_at,
       COALESCE((SELECT SUM(r.quantity)
                   FROM registrations r
                  WHERE r.offering_id = o.id
                    AND r.status = 'confirmed'), 0) AS confirmed_units,
       (SELECT COUNT(*)
          FROM waitlist_entries w
         WHERE w.offering_id = o.id) AS waitlist_len
  FROM offerings o`

func (r *AvailabilityReadStore) FindByOfferingID(ctx context.Context, offeringID uuid.UUID) (*queries.AvailabilityView, error) {
	row := r.db.QueryRow(ctx, availabilitySelect+` WHERE o.id = $1`, offeringID)

	view, err := scanAvailabilityView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offering not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load availability", err)
	}
	return view, nil
}

func (r *AvailabilityReadStore) FindByHouseID(ctx context.Context, houseID uuid.UUID) ([]*queries.AvailabilityView, error) {
	rows, err := r.db.Query(ctx,
		availabilitySelect+` WHERE o.house_id = $1 ORDER BY o.starts_at NULLS LAST, o.created_at`,
		houseID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability", err)
	}
	defer rows.Close()

	var result []*queries.AvailabilityView
	for rows.Next() {
		view, err := scanAvailabilityView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability rows", err)
	}
	return result, nil
}

type availabilityRow interface {
	Scan(dest ...any) error
}

func scanAvailabilityView(row availabilityRow) (*queries.AvailabilityView, error) {
	var (
		view     queries.AvailabilityView
		capacity pgtype.Int4
		stock    pgtype.Int4
		startsAt pgtype.Timestamptz
		units    int64
		wlen     int64
	)
	if err := row.Scan(
		&view.OfferingID, &view.HouseID, &view.Kind, &view.Title, &view.PriceCents,
		&view.IsFree, &capacity, &stock, &startsAt, &units, &wlen,
	); err != nil {
		return nil, err
	}

	view.Capacity = pgconv.Int32PtrFromPgtype(capacity)
	view.ConfirmedUnits = int32(units)
	view.WaitlistLen = int32(wlen)
	view.StartsAt = pgconv.TimePtrFromPgtype(startsAt)

	switch {
	case view.Kind == "product":
		view.Remaining = pgconv.Int32PtrFromPgtype(stock)
		view.SoldOut = stock.Valid && stock.Int32 <= 0
	case view.Capacity != nil:
		remaining := *view.Capacity - view.ConfirmedUnits
		if remaining < 0 {
			remaining = 0
		}
		view.Remaining = &remaining
		view.SoldOut = remaining <= 0
	default:
		// Unlimited capacity: Remaining stays nil, never sold out.
	}
	return &view, nil
}
