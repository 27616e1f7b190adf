package queries

import (
	"context"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	GetByOfferingID(ctx context.Context, offeringID uuid.UUID) (*AvailabilityView, error)
	ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*AvailabilityView, error)
}

type AvailabilityViewRepo interface {
	FindByOfferingID(ctx context.Context, offeringID uuid.UUID) (*AvailabilityView, error)
	FindByHouseID(ctx context.Context, houseID uuid.UUID) ([]*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	repo AvailabilityViewRepo
}

func NewAvailabilityQueries(repo AvailabilityViewRepo) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo}
}

func (q *availabilityQueriesImpl) GetByOfferingID(ctx context.Context, offeringID uuid.UUID) (*AvailabilityView, error) {
	return q.repo.FindByOfferingID(ctx, offeringID)
}

func (q *availabilityQueriesImpl) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*AvailabilityView, error) {
	return q.repo.FindByHouseID(ctx, houseID)
}
