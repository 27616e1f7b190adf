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

type WaitlistReadStore struct {
	db db.DBTX
}

func NewWaitlistReadStore(dbtx db.DBTX) *WaitlistReadStore {
	return &WaitlistReadStore{db: dbtx}
}

// FindPosition ranks by join time with a lower-user-id tie break, mirroring
// the promotion order. Departures ahead of the user shrink the position
// automatically since it is computed, not stored.
func (r *WaitlistReadStore) FindPosition(ctx context.Context, offeringID, userID uuid.UUID) (*queries.WaitlistPositionView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT w.joined_at,
		        w.notified_at,
		        1 + (SELECT COUNT(*)
		               FROM waitlist_entries e
		              WHERE e.offering_id = w.offering_id
		                AND (e.joined_at, e.user_id) < (w.joined_at, w.user_id)) AS position
		   FROM waitlist_entries w
		  WHERE w.offering_id = $1
		    AND w.user_id = $2`,
		offeringID, userID,
	)

	var (
		view       queries.WaitlistPositionView
		notifiedAt pgtype.Timestamptz
		position   int64
	)
	if err := row.Scan(&view.JoinedAt, &notifiedAt, &position); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("waitlist entry not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find waitlist position", err)
	}

	view.OfferingID = offeringID
	view.UserID = userID
	view.Position = int32(position)
	view.Notified = notifiedAt.Valid
	return &view, nil
}

// FindByOfferingID returns the queue in promotion order. The offerings join
// scopes the read to the requesting operator's house.
func (r *WaitlistReadStore) FindByOfferingID(ctx context.Context, offeringID, houseID uuid.UUID) ([]*queries.WaitlistPositionView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT w.user_id, w.joined_at, w.notified_at,
		        ROW_NUMBER() OVER (ORDER BY w.joined_at, w.user_id) AS position
		   FROM waitlist_entries w
		   JOIN offerings o ON o.id = w.offering_id
		  WHERE w.offering_id = $1
		    AND o.house_id = $2
		  ORDER BY w.joined_at, w.user_id`,
		offeringID, houseID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list waitlist entries", err)
	}
	defer rows.Close()

	var result []*queries.WaitlistPositionView
	for rows.Next() {
		var (
			view       queries.WaitlistPositionView
			notifiedAt pgtype.Timestamptz
			position   int64
		)
		if err := rows.Scan(&view.UserID, &view.JoinedAt, &notifiedAt, &position); err != nil {
			return nil, infra.WrapRepoErr("failed to scan waitlist row", err)
		}
		view.OfferingID = offeringID
		view.Position = int32(position)
		view.Notified = notifiedAt.Valid
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate waitlist rows", err)
	}
	return result, nil
}
