package readstore

import (
	"context"
	"time"

	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/pkg/pgconv"
	"casaraiz-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type RegistrationReadStore struct {
	db db.DBTX
}

func NewRegistrationReadStore(dbtx db.DBTX) *RegistrationReadStore {
	return &RegistrationReadStore{db: dbtx}
}

func (r *RegistrationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RegistrationView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT r.id, r.offering_id, o.title, r.house_id, r.user_id, r.kind,
		        r.quantity, r.method, r.status, r.amount_cents, r.created_at, r.cancelled_at
		   FROM registrations r
		   JOIN offerings o ON o.id = r.offering_id
		  WHERE r.id = $1`,
		id,
	)

	var (
		view        queries.RegistrationView
		cancelledAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.ID, &view.OfferingID, &view.OfferingTitle, &view.HouseID, &view.UserID,
		&view.Kind, &view.Quantity, &view.Method, &view.Status, &view.AmountCents,
		&view.CreatedAt, &cancelledAt,
	); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("registration not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find registration by ID", err)
	}

	view.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &view, nil
}

const registrationListSelect = `
SELECT r.id, r.offering_id, o.title, r.user_id, r.kind, r.quantity, r.status, r.amount_cents, r.created_at
  FROM registrations r
  JOIN offerings o ON o.id = r.offering_id`

func (r *RegistrationReadStore) FindByUserIDFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.RegistrationListItem, error) {
	rows, err := r.db.Query(ctx,
		registrationListSelect+`
		 WHERE r.user_id = $1
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find registrations first page", err)
	}
	return collectRegistrationListItems(rows)
}

func (r *RegistrationReadStore) FindByUserIDKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RegistrationListItem, error) {
	rows, err := r.db.Query(ctx,
		registrationListSelect+`
		 WHERE r.user_id = $1
		   AND (r.created_at, r.id) < ($2, $3)
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT $4`,
		userID, pgconv.TimeToPgtype(lastCreatedAt), lastID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find registrations keyset", err)
	}
	return collectRegistrationListItems(rows)
}

func (r *RegistrationReadStore) FindByOfferingIDFirstPage(ctx context.Context, offeringID, houseID uuid.UUID, limit int32) ([]*queries.RegistrationListItem, error) {
	rows, err := r.db.Query(ctx,
		registrationListSelect+`
		 WHERE r.offering_id = $1
		   AND r.house_id = $2
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT $3`,
		offeringID, houseID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find offering registrations first page", err)
	}
	return collectRegistrationListItems(rows)
}

func (r *RegistrationReadStore) FindByOfferingIDKeyset(ctx context.Context, offeringID, houseID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RegistrationListItem, error) {
	rows, err := r.db.Query(ctx,
		registrationListSelect+`
		 WHERE r.offering_id = $1
		   AND r.house_id = $2
		   AND (r.created_at, r.id) < ($3, $4)
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT $5`,
		offeringID, houseID, pgconv.TimeToPgtype(lastCreatedAt), lastID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find offering registrations keyset", err)
	}
	return collectRegistrationListItems(rows)
}

func collectRegistrationListItems(rows pgx.Rows) ([]*queries.RegistrationListItem, error) {
	defer rows.Close()

	var result []*queries.RegistrationListItem
	for rows.Next() {
		var item queries.RegistrationListItem
		if err := rows.Scan(
			&item.ID, &item.OfferingID, &item.OfferingTitle, &item.UserID, &item.Kind,
			&item.Quantity, &item.Status, &item.AmountCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan registration row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate registration rows", err)
	}
	return result, nil
}
