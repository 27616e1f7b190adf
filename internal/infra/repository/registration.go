package repository

import (
	"context"
	"time"

	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/domain/registration"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/pkg/pgconv"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RegistrationRepository struct {
	db db.DBTX
}

func NewRegistrationRepository(dbtx db.DBTX) *RegistrationRepository {
	return &RegistrationRepository{db: dbtx}
}

// Create relies on the partial unique index over active
// (offering_id, user_id) pairs to reject double registration at the store
// level; callers see KindDuplicateKey.
func (r *RegistrationRepository) Create(ctx context.Context, reg *registration.Registration) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO registrations
		        (id, offering_id, house_id, user_id, kind, quantity, method, status, amount_cents, created_at, updated_at, cancelled_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10, $11)`,
		reg.ID(), reg.OfferingID(), reg.HouseID(), reg.UserID(), reg.Kind().String(),
		reg.Quantity(), reg.Method().String(), reg.Status().String(), reg.AmountCents(),
		reg.CreatedAt(), pgconv.TimePtrToPgtype(reg.CancelledAt()),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create registration", err)
	}
	return reg.ID(), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.RegistrationSnapshot, error) {
	row := r.db.QueryRow(ctx,
		registrationSelect+` WHERE id = $1`,
		id,
	)

	snap, err := scanRegistrationSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("registration not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find registration", err)
	}
	return snap, nil
}

// ConfirmedUnits is the authoritative capacity figure: a sum over confirmed
// rows, never a cached counter.
func (r *RegistrationRepository) ConfirmedUnits(ctx context.Context, offeringID uuid.UUID) (int32, error) {
	var units int32
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)
		   FROM registrations
		  WHERE offering_id = $1
		    AND status = 'confirmed'`,
		offeringID,
	).Scan(&units)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count confirmed units", err)
	}
	return units, nil
}

func (r *RegistrationRepository) MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE registrations
		    SET status = 'cancelled', cancelled_at = $2, updated_at = now()
		  WHERE id = $1
		    AND status = 'confirmed'`,
		id, at,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel registration", err)
	}
	return tag.RowsAffected() > 0, nil
}

const registrationSelect = `
SELECT id, offering_id, house_id, user_id, kind, quantity, method, status, amount_cents, created_at, cancelled_at
  FROM registrations`

type registrationRow interface {
	Scan(dest ...any) error
}

func scanRegistrationSnapshot(row registrationRow) (*shared.RegistrationSnapshot, error) {
	var (
		snap        shared.RegistrationSnapshot
		kind        string
		method      string
		status      string
		cancelledAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&snap.ID, &snap.OfferingID, &snap.HouseID, &snap.UserID, &kind,
		&snap.Quantity, &method, &status, &snap.AmountCents, &snap.CreatedAt, &cancelledAt,
	); err != nil {
		return nil, err
	}

	snap.Kind = offering.Kind(kind)
	snap.Method = registration.Method(method)
	snap.Status = registration.Status(status)
	snap.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &snap, nil
}
