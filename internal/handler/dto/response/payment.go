package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"casaraiz-backend/internal/usecase/queries"
)

type PaymentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	HouseID            uuid.UUID  `json:"houseId"`
	UserID             uuid.UUID  `json:"userId"`
	OfferingID         uuid.UUID  `json:"offeringId"`
	OfferingTitle      string     `json:"offeringTitle"`
	RegistrationID     *uuid.UUID `json:"registrationId,omitempty"`
	Kind               string     `json:"kind"`
	Quantity           int32      `json:"quantity"`
	AmountCents        int64      `json:"amountCents"`
	OriginalPriceCents int64      `json:"originalPriceCents"`
	FeeCents           int64      `json:"feeCents"`
	SubMethod          string     `json:"subMethod"`
	ExternalReference  string     `json:"externalReference"`
	ExternalPaymentID  *string    `json:"externalPaymentId,omitempty"`
	Status             string     `json:"status"`
	SplitApplied       bool       `json:"splitApplied"`
	CommissionPct      float64    `json:"commissionPct"`
	PlatformCents      *int64     `json:"platformCents,omitempty"`
	HouseCents         *int64     `json:"houseCents,omitempty"`
	TransferStatus     *string    `json:"transferStatus,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type PaymentListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	OfferingID    uuid.UUID `json:"offeringId"`
	OfferingTitle string    `json:"offeringTitle"`
	UserID        uuid.UUID `json:"userId"`
	Kind          string    `json:"kind"`
	AmountCents   int64     `json:"amountCents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PaymentListResponse struct {
	Items      []PaymentListItemResponse `json:"items"`
	NextCursor *string                   `json:"nextCursor,omitempty"`
}

func FromPaymentView(view *queries.PaymentView) (*PaymentResponse, error) {
	var resp PaymentResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromPaymentList(items []*queries.PaymentListItem, nextCursor *string) (*PaymentListResponse, error) {
	resp := PaymentListResponse{
		Items:      make([]PaymentListItemResponse, 0, len(items)),
		NextCursor: nextCursor,
	}
	for i := range items {
		var item PaymentListItemResponse
		if err := copier.Copy(&item, items[i]); err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, item)
	}
	return &resp, nil
}
