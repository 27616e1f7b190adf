package repository

import (
	"context"

	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/pkg/pgconv"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment, initPoint, sandboxInitPoint string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payments
		        (id, house_id, user_id, offering_id, kind, registration_id, quantity,
		         amount_cents, original_price_cents, fee_cents, sub_method,
		         external_reference, preference_id, external_payment_id, status,
		         split_applied, commission_pct, init_point, sandbox_init_point,
		         created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20)`,
		p.ID(), p.HouseID(), p.UserID(), p.OfferingID(), p.Kind().String(),
		pgconv.UUIDPtrToPgtype(p.RegistrationID()), p.Quantity(),
		p.AmountCents(), p.OriginalPriceCents(), p.FeeCents(), p.SubMethod(),
		p.ExternalRef().String(), p.PreferenceID(), pgconv.StringPtrToPgtype(p.ExternalPaymentID()),
		p.Status().String(), p.SplitApplied(), p.CommissionPct(), initPoint, sandboxInitPoint,
		p.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

// FindForUpdate locks the payment row; duplicate webhook deliveries for the
// same external payment serialize here before the terminal-state check.
func (r *PaymentRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	row := r.db.QueryRow(ctx,
		paymentSelect+` WHERE id = $1 FOR UPDATE`,
		id,
	)

	snap, err := scanPaymentSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock payment", err)
	}
	return snap, nil
}

// TransitionFromPending is the single conditional write that decides the
// webhook race: zero rows affected means the payment already left pending.
func (r *PaymentRepository) TransitionFromPending(
	ctx context.Context,
	id uuid.UUID,
	next payment.Status,
	externalPaymentID *string,
	registrationID *uuid.UUID,
) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE payments
		    SET status = $2,
		        external_payment_id = COALESCE($3, external_payment_id),
		        registration_id = COALESCE($4, registration_id),
		        updated_at = now()
		  WHERE id = $1
		    AND status = 'pending'`,
		id, next.String(), pgconv.StringPtrToPgtype(externalPaymentID), pgconv.UUIDPtrToPgtype(registrationID),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition payment", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PaymentRepository) CreateSplit(ctx context.Context, s *payment.Split) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payment_splits
		        (payment_id, house_id, total_cents, platform_cents, house_cents,
		         commission_pct, category, transfer_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		s.PaymentID(), s.HouseID(), s.TotalCents(), s.PlatformCents(), s.HouseCents(),
		s.CommissionPct(), s.Category().String(), s.TransferStatus().String(), s.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment split", err)
	}
	return nil
}

func (r *PaymentRepository) UpdateSplitTransfer(ctx context.Context, paymentID uuid.UUID, status payment.TransferStatus) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE payment_splits
		    SET transfer_status = $2, updated_at = now()
		  WHERE payment_id = $1`,
		paymentID, status.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update split transfer status", err)
	}
	return tag.RowsAffected() > 0, nil
}

const paymentSelect = `
	SELECT id, house_id, user_id, offering_id, kind, registration_id, quantity,
	       amount_cents, original_price_cents, fee_cents, sub_method,
	       external_reference, preference_id, external_payment_id, status,
	       split_applied, commission_pct, init_point, sandbox_init_point, created_at
	  FROM payments`
