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

// CommandReads serves the write-side validation reads as snapshots. It runs
// over whatever DBTX the unit of work hands it, so the same reads work both
// inside a transaction and against the pool.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) OfferingByID(ctx context.Context, id uuid.UUID) (*shared.OfferingSnapshot, error) {
	row := r.db.QueryRow(ctx,
		offeringSelect+` WHERE id = $1`,
		id,
	)
	snap, err := scanOfferingSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offering not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offering", err)
	}
	return snap, nil
}

func (r *CommandReads) HouseByID(ctx context.Context, id uuid.UUID) (*shared.HouseSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, slug, mp_connected, mp_collector_id,
		        ceremony_commission_pct, product_commission_pct, course_commission_pct
		   FROM houses
		  WHERE id = $1`,
		id,
	)

	var (
		snap        shared.HouseSnapshot
		collectorID pgtype.Text
	)
	if err := row.Scan(
		&snap.ID, &snap.Name, &snap.Slug, &snap.MPConnected, &collectorID,
		&snap.CeremonyPct, &snap.ProductPct, &snap.CoursePct,
	); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("house not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find house", err)
	}

	snap.MPCollectorID = pgconv.StringPtrFromPgtype(collectorID)
	return &snap, nil
}

// IsUserBlocked matches both category-scoped and house-wide blocks
// (category IS NULL blocks everything).
func (r *CommandReads) IsUserBlocked(ctx context.Context, houseID, userID uuid.UUID, category offering.Kind) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		        SELECT 1
		          FROM house_blocks
		         WHERE house_id = $1
		           AND user_id = $2
		           AND (category IS NULL OR category = $3)
		 )`,
		houseID, userID, string(category),
	)

	var blocked bool
	if err := row.Scan(&blocked); err != nil {
		return false, infra.WrapRepoErr("failed to check user block", err)
	}
	return blocked, nil
}

func (r *CommandReads) ActiveRegistration(ctx context.Context, offeringID, userID uuid.UUID) (*shared.RegistrationSnapshot, error) {
	row := r.db.QueryRow(ctx,
		registrationSelect+`
		  WHERE offering_id = $1
		    AND user_id = $2
		    AND status IN ('pending', 'confirmed')`,
		offeringID, userID,
	)
	snap, err := scanRegistrationSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find active registration", err)
	}
	return snap, nil
}

func (r *CommandReads) ConfirmedUnits(ctx context.Context, offeringID uuid.UUID) (int32, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)
		   FROM registrations
		  WHERE offering_id = $1
		    AND status = 'confirmed'`,
		offeringID,
	)

	var units int64
	if err := row.Scan(&units); err != nil {
		return 0, infra.WrapRepoErr("failed to count confirmed units", err)
	}
	return int32(units), nil
}

func (r *CommandReads) IsWaitlisted(ctx context.Context, offeringID, userID uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		        SELECT 1
		          FROM waitlist_entries
		         WHERE offering_id = $1
		           AND user_id = $2
		 )`,
		offeringID, userID,
	)

	var waitlisted bool
	if err := row.Scan(&waitlisted); err != nil {
		return false, infra.WrapRepoErr("failed to check waitlist membership", err)
	}
	return waitlisted, nil
}

func (r *CommandReads) PaymentByID(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	row := r.db.QueryRow(ctx,
		paymentSelect+` WHERE id = $1`,
		id,
	)
	snap, err := scanPaymentSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return snap, nil
}

func (r *CommandReads) PaymentByExternalReference(ctx context.Context, ref string) (*shared.PaymentSnapshot, error) {
	row := r.db.QueryRow(ctx,
		paymentSelect+` WHERE external_reference = $1`,
		ref,
	)
	snap, err := scanPaymentSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by external reference", err)
	}
	return snap, nil
}

func (r *CommandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT key, user_id, status, request_hash, result_payment_id, expires_at
		   FROM idempotency_keys
		  WHERE key = $1
		    AND user_id = $2`,
		key, userID,
	)

	var (
		rec       shared.IdempotencyRecord
		paymentID pgtype.UUID
	)
	if err := row.Scan(&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash, &paymentID, &rec.ExpiresAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}

	rec.ResultPaymentID = pgconv.UUIDPtrFromPgtype(paymentID)
	return &rec, nil
}
