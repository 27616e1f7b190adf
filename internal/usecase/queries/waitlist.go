package queries

import (
	"context"

	"github.com/google/uuid"
)

type WaitlistQueries interface {
	PositionFor(ctx context.Context, offeringID, userID uuid.UUID) (*WaitlistPositionView, error)
	// ListByOffering returns the full queue in promotion order for the
	// operator of the owning house.
	ListByOffering(ctx context.Context, offeringID, houseID uuid.UUID) ([]*WaitlistPositionView, error)
}

type WaitlistViewRepo interface {
	// FindPosition computes the 1-based queue position from earlier joins,
	// never from a stored rank.
	FindPosition(ctx context.Context, offeringID, userID uuid.UUID) (*WaitlistPositionView, error)
	FindByOfferingID(ctx context.Context, offeringID, houseID uuid.UUID) ([]*WaitlistPositionView, error)
}

type waitlistQueriesImpl struct {
	repo WaitlistViewRepo
}

func NewWaitlistQueries(repo WaitlistViewRepo) WaitlistQueries {
	return &waitlistQueriesImpl{repo: repo}
}

func (q *waitlistQueriesImpl) PositionFor(ctx context.Context, offeringID, userID uuid.UUID) (*WaitlistPositionView, error) {
	return q.repo.FindPosition(ctx, offeringID, userID)
}

func (q *waitlistQueriesImpl) ListByOffering(ctx context.Context, offeringID, houseID uuid.UUID) ([]*WaitlistPositionView, error) {
	return q.repo.FindByOfferingID(ctx, offeringID, houseID)
}
