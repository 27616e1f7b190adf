package shared

import (
	"time"

	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/domain/registration"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)

type OfferingSnapshot struct {
	ID         uuid.UUID
	HouseID    uuid.UUID
	Kind       offering.Kind
	Title      string
	PriceCents int64
	Capacity   *int32
	Stock      *int32
	IsFree     bool
	StartsAt   *time.Time
}

func (s *OfferingSnapshot) ToDomain() (*offering.Offering, error) {
	return offering.NewOffering(
		s.ID, s.HouseID, s.Kind, s.Title, s.PriceCents, s.Capacity, s.Stock, s.IsFree, s.StartsAt,
	)
}

type HouseSnapshot struct {
	ID            uuid.UUID
	Name          string
	Slug          string
	MPConnected   bool
	MPCollectorID *string
	CeremonyPct   float64
	ProductPct    float64
	CoursePct     float64
}

// CommissionFor resolves the house's plan percentage for a payable category.
func (h *HouseSnapshot) CommissionFor(category offering.Kind) float64 {
	switch category {
	case offering.KindProduct:
		return h.ProductPct
	case offering.KindCourse:
		return h.CoursePct
	default:
		return h.CeremonyPct
	}
}

type RegistrationSnapshot struct {
	ID          uuid.UUID
	OfferingID  uuid.UUID
	HouseID     uuid.UUID
	UserID      uuid.UUID
	Kind        offering.Kind
	Quantity    int32
	Method      registration.Method
	Status      registration.Status
	AmountCents int64
	CreatedAt   time.Time
	CancelledAt *time.Time
}

type PaymentSnapshot struct {
	ID                 uuid.UUID
	HouseID            uuid.UUID
	UserID             uuid.UUID
	OfferingID         uuid.UUID
	Kind               offering.Kind
	RegistrationID     *uuid.UUID
	Quantity           int32
	AmountCents        int64
	OriginalPriceCents int64
	FeeCents           int64
	SubMethod          string
	ExternalReference  string
	PreferenceID       string
	ExternalPaymentID  *string
	Status             payment.Status
	SplitApplied       bool
	CommissionPct      float64
	InitPoint          string
	SandboxInitPoint   string
	CreatedAt          time.Time
}

type WaitlistEntrySnapshot struct {
	ID         uuid.UUID
	OfferingID uuid.UUID
	UserID     uuid.UUID
	JoinedAt   time.Time
	NotifiedAt *time.Time
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultPaymentID *uuid.UUID
	ExpiresAt       time.Time
}
