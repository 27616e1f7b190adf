package repository

import (
	"context"
	"time"

	"casaraiz-backend/internal/domain/waitlist"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/pkg/pgconv"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type WaitlistRepository struct {
	db db.DBTX
}

func NewWaitlistRepository(dbtx db.DBTX) *WaitlistRepository {
	return &WaitlistRepository{db: dbtx}
}

func (r *WaitlistRepository) Create(ctx context.Context, e *waitlist.Entry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO waitlist_entries (id, offering_id, user_id, joined_at, notified_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID(), e.OfferingID(), e.UserID(), e.JoinedAt(), pgconv.TimePtrToPgtype(e.NotifiedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create waitlist entry", err)
	}
	return nil
}

func (r *WaitlistRepository) Delete(ctx context.Context, offeringID, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM waitlist_entries
		  WHERE offering_id = $1
		    AND user_id = $2`,
		offeringID, userID,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete waitlist entry", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClaimNextUnnotified picks the promotion candidate deterministically:
// earliest joined_at, then lower user id. SKIP LOCKED keeps two concurrent
// frees from offering the same entry; one claim per freed unit.
func (r *WaitlistRepository) ClaimNextUnnotified(ctx context.Context, offeringID uuid.UUID, at time.Time) (*shared.WaitlistEntrySnapshot, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE waitlist_entries
		    SET notified_at = $2
		  WHERE id = (
		        SELECT id
		          FROM waitlist_entries
		         WHERE offering_id = $1
		           AND notified_at IS NULL
		         ORDER BY joined_at, user_id
		         LIMIT 1
		           FOR UPDATE SKIP LOCKED
		  )
		 RETURNING id, offering_id, user_id, joined_at, notified_at`,
		offeringID, at,
	)

	var (
		snap       shared.WaitlistEntrySnapshot
		notifiedAt pgtype.Timestamptz
	)
	if err := row.Scan(&snap.ID, &snap.OfferingID, &snap.UserID, &snap.JoinedAt, &notifiedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to claim waitlist entry", err)
	}

	snap.NotifiedAt = pgconv.TimePtrFromPgtype(notifiedAt)
	return &snap, nil
}
