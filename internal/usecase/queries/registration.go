package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RegistrationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RegistrationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*RegistrationListItem, *Cursor, error)
	// ListByOffering is the operator view; houseID scopes it so other
	// houses' offerings come back empty.
	ListByOffering(ctx context.Context, offeringID, houseID uuid.UUID, after *Cursor, limit int) ([]*RegistrationListItem, *Cursor, error)
}

type RegistrationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RegistrationView, error)
	FindByUserIDFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*RegistrationListItem, error)
	FindByUserIDKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*RegistrationListItem, error)
	FindByOfferingIDFirstPage(ctx context.Context, offeringID, houseID uuid.UUID, limit int32) ([]*RegistrationListItem, error)
	FindByOfferingIDKeyset(ctx context.Context, offeringID, houseID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*RegistrationListItem, error)
}

type registrationQueriesImpl struct {
	repo RegistrationViewRepo
}

func NewRegistrationQueries(repo RegistrationViewRepo) RegistrationQueries {
	return &registrationQueriesImpl{repo: repo}
}

func (q *registrationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RegistrationView, error) {
	return q.repo.FindByID(ctx, id)
}

// Fetches limit+1 rows to decide whether a next-page cursor exists.
func (q *registrationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*RegistrationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*RegistrationListItem
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.repo.FindByUserIDFirstPage(ctx, userID, int32(limit)+1)
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.repo.FindByUserIDKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit)+1)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}

	rows = rows[:limit]
	last := rows[len(rows)-1]
	next := &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	return rows, next, nil
}

func (q *registrationQueriesImpl) ListByOffering(ctx context.Context, offeringID, houseID uuid.UUID, after *Cursor, limit int) ([]*RegistrationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*RegistrationListItem
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.repo.FindByOfferingIDFirstPage(ctx, offeringID, houseID, int32(limit)+1)
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.repo.FindByOfferingIDKeyset(ctx, offeringID, houseID, lastCreatedAt, lastID, int32(limit)+1)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}

	rows = rows[:limit]
	last := rows[len(rows)-1]
	next := &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	return rows, next, nil
}
