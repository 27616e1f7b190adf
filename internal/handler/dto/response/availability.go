package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"casaraiz-backend/internal/usecase/queries"
)

type AvailabilityResponse struct {
	OfferingID     uuid.UUID  `json:"offeringId"`
	HouseID        uuid.UUID  `json:"houseId"`
	Kind           string     `json:"kind"`
	Title          string     `json:"title"`
	PriceCents     int64      `json:"priceCents"`
	IsFree         bool       `json:"isFree"`
	Capacity       *int32     `json:"capacity,omitempty"`
	ConfirmedUnits int32      `json:"confirmedUnits"`
	Remaining      *int32     `json:"remaining,omitempty"`
	SoldOut        bool       `json:"soldOut"`
	WaitlistLen    int32      `json:"waitlistLen"`
	StartsAt       *time.Time `json:"startsAt,omitempty"`
}

func FromAvailabilityView(view *queries.AvailabilityView) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}
