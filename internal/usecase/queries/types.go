package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type AvailabilityView struct {
	OfferingID     uuid.UUID `json:"offering_id"`
	HouseID        uuid.UUID `json:"house_id"`
	Kind           string    `json:"kind"`
	Title          string    `json:"title"`
	PriceCents     int64     `json:"price_cents"`
	IsFree         bool      `json:"is_free"`
	Capacity       *int32    `json:"capacity,omitempty"`
	ConfirmedUnits int32     `json:"confirmed_units"`
	Remaining      *int32    `json:"remaining,omitempty"`
	SoldOut        bool      `json:"sold_out"`
	WaitlistLen    int32     `json:"waitlist_len"`
	StartsAt       *time.Time `json:"starts_at,omitempty"`
}

type RegistrationView struct {
	ID            uuid.UUID  `json:"id"`
	OfferingID    uuid.UUID  `json:"offering_id"`
	OfferingTitle string     `json:"offering_title"`
	HouseID       uuid.UUID  `json:"house_id"`
	UserID        uuid.UUID  `json:"user_id"`
	Kind          string     `json:"kind"`
	Quantity      int32      `json:"quantity"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	AmountCents   int64      `json:"amount_cents"`
	CreatedAt     time.Time  `json:"created_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

type RegistrationListItem struct {
	ID            uuid.UUID `json:"id"`
	OfferingID    uuid.UUID `json:"offering_id"`
	OfferingTitle string    `json:"offering_title"`
	UserID        uuid.UUID `json:"user_id"`
	Kind          string    `json:"kind"`
	Quantity      int32     `json:"quantity"`
	Status        string    `json:"status"`
	AmountCents   int64     `json:"amount_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaymentView struct {
	ID                 uuid.UUID  `json:"id"`
	HouseID            uuid.UUID  `json:"house_id"`
	UserID             uuid.UUID  `json:"user_id"`
	OfferingID         uuid.UUID  `json:"offering_id"`
	OfferingTitle      string     `json:"offering_title"`
	RegistrationID     *uuid.UUID `json:"registration_id,omitempty"`
	Kind               string     `json:"kind"`
	Quantity           int32      `json:"quantity"`
	AmountCents        int64      `json:"amount_cents"`
	OriginalPriceCents int64      `json:"original_price_cents"`
	FeeCents           int64      `json:"fee_cents"`
	SubMethod          string     `json:"sub_method"`
	ExternalReference  string     `json:"external_reference"`
	ExternalPaymentID  *string    `json:"external_payment_id,omitempty"`
	Status             string     `json:"status"`
	SplitApplied       bool       `json:"split_applied"`
	CommissionPct      float64    `json:"commission_pct"`
	PlatformCents      *int64     `json:"platform_cents,omitempty"`
	HouseCents         *int64     `json:"house_cents,omitempty"`
	TransferStatus     *string    `json:"transfer_status,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type PaymentListItem struct {
	ID            uuid.UUID `json:"id"`
	OfferingID    uuid.UUID `json:"offering_id"`
	OfferingTitle string    `json:"offering_title"`
	UserID        uuid.UUID `json:"user_id"`
	Kind          string    `json:"kind"`
	AmountCents   int64     `json:"amount_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type WaitlistPositionView struct {
	OfferingID uuid.UUID `json:"offering_id"`
	UserID     uuid.UUID `json:"user_id"`
	Position   int32     `json:"position"`
	JoinedAt   time.Time `json:"joined_at"`
	Notified   bool      `json:"notified"`
}
