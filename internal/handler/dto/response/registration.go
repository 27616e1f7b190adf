package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"casaraiz-backend/internal/usecase/queries"
)

type RegistrationResponse struct {
	ID            uuid.UUID  `json:"id"`
	OfferingID    uuid.UUID  `json:"offeringId"`
	OfferingTitle string     `json:"offeringTitle"`
	HouseID       uuid.UUID  `json:"houseId"`
	UserID        uuid.UUID  `json:"userId"`
	Kind          string     `json:"kind"`
	Quantity      int32      `json:"quantity"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	AmountCents   int64      `json:"amountCents"`
	CreatedAt     time.Time  `json:"createdAt"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
}

type RegistrationListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	OfferingID    uuid.UUID `json:"offeringId"`
	OfferingTitle string    `json:"offeringTitle"`
	UserID        uuid.UUID `json:"userId"`
	Kind          string    `json:"kind"`
	Quantity      int32     `json:"quantity"`
	Status        string    `json:"status"`
	AmountCents   int64     `json:"amountCents"`
	CreatedAt     time.Time `json:"createdAt"`
}

type RegistrationListResponse struct {
	Items      []RegistrationListItemResponse `json:"items"`
	NextCursor *string                        `json:"nextCursor,omitempty"`
}

func FromRegistrationView(view *queries.RegistrationView) (*RegistrationResponse, error) {
	var resp RegistrationResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromRegistrationList(items []*queries.RegistrationListItem, nextCursor *string) (*RegistrationListResponse, error) {
	resp := RegistrationListResponse{
		Items:      make([]RegistrationListItemResponse, 0, len(items)),
		NextCursor: nextCursor,
	}
	for i := range items {
		var item RegistrationListItemResponse
		if err := copier.Copy(&item, items[i]); err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, item)
	}
	return &resp, nil
}
