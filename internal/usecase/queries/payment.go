package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentListFilter narrows the operator ledger; an empty Status means all.
type PaymentListFilter struct {
	Status string
}

type PaymentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	ListByHouse(ctx context.Context, houseID uuid.UUID, filter PaymentListFilter, after *Cursor, limit int) ([]*PaymentListItem, *Cursor, error)
}

type PaymentViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	FindByHouseIDFirstPage(ctx context.Context, houseID uuid.UUID, status string, limit int32) ([]*PaymentListItem, error)
	FindByHouseIDKeyset(ctx context.Context, houseID uuid.UUID, status string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*PaymentListItem, error)
}

type paymentQueriesImpl struct {
	repo PaymentViewRepo
}

func NewPaymentQueries(repo PaymentViewRepo) PaymentQueries {
	return &paymentQueriesImpl{repo: repo}
}

func (q *paymentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *paymentQueriesImpl) ListByHouse(ctx context.Context, houseID uuid.UUID, filter PaymentListFilter, after *Cursor, limit int) ([]*PaymentListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*PaymentListItem
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.repo.FindByHouseIDFirstPage(ctx, houseID, filter.Status, int32(limit)+1)
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.repo.FindByHouseIDKeyset(ctx, houseID, filter.Status, lastCreatedAt, lastID, int32(limit)+1)
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
