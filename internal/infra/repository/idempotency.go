package repository

import (
	"context"
	"time"

	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

// TryInsert reserves the key. A concurrent or replayed request hits the
// primary key and surfaces as DUPLICATE_KEY; callers then consult the
// stored record instead of re-running the checkout.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		 VALUES ($1, $2, $3, $4, 'processing', $5)
		 ON CONFLICT (key, user_id) DO NOTHING`,
		key, userID, endpoint, requestHash, expiresAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key already exists", nil, infra.KindDuplicateKey)
	}
	return nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, responseBodyHash string, resultPaymentID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE idempotency_keys
		    SET status = 'completed',
		        response_body_hash = $3,
		        result_payment_id = $4
		  WHERE key = $1
		    AND user_id = $2
		    AND status = 'processing'`,
		key, userID, responseBodyHash, resultPaymentID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not in processing state", nil, infra.KindConflict)
	}
	return nil
}
