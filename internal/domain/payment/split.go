package payment

import (
	"errors"
	"math"
	"time"

	"casaraiz-backend/internal/domain/offering"

	"github.com/google/uuid"
)

var (
	ErrInvalidCommission = errors.New("commission percent must be within [0, 100]")
	ErrNonPositiveTotal  = errors.New("split total must be positive")
)

// Split is the platform/house revenue division for one payment. It exists
// only when the house has an active connected processor account.
// Invariant: PlatformCents + HouseCents == TotalCents, exactly.
type Split struct {
	paymentID      uuid.UUID
	houseID        uuid.UUID
	totalCents     int64
	platformCents  int64
	houseCents     int64
	commissionPct  float64
	category       offering.Kind
	transferStatus TransferStatus
	createdAt      time.Time
}

// ComputeSplit rounds the platform cut half away from zero; the house amount
// is the remainder, so additivity holds by construction.
func ComputeSplit(
	paymentID, houseID uuid.UUID,
	totalCents int64,
	commissionPct float64,
	category offering.Kind,
	now time.Time,
) (*Split, error) {
	if totalCents <= 0 {
		return nil, ErrNonPositiveTotal
	}
	if commissionPct < 0 || commissionPct > 100 {
		return nil, ErrInvalidCommission
	}

	platform := int64(math.Round(float64(totalCents) * commissionPct / 100))

	return &Split{
		paymentID:      paymentID,
		houseID:        houseID,
		totalCents:     totalCents,
		platformCents:  platform,
		houseCents:     totalCents - platform,
		commissionPct:  commissionPct,
		category:       category,
		transferStatus: TransferPending,
		createdAt:      now,
	}, nil
}

func ReconstructSplit(
	paymentID, houseID uuid.UUID,
	totalCents, platformCents, houseCents int64,
	commissionPct float64,
	category offering.Kind,
	transferStatus TransferStatus,
	createdAt time.Time,
) *Split {
	return &Split{
		paymentID:      paymentID,
		houseID:        houseID,
		totalCents:     totalCents,
		platformCents:  platformCents,
		houseCents:     houseCents,
		commissionPct:  commissionPct,
		category:       category,
		transferStatus: transferStatus,
		createdAt:      createdAt,
	}
}

func (s *Split) PaymentID() uuid.UUID           { return s.paymentID }
func (s *Split) HouseID() uuid.UUID             { return s.houseID }
func (s *Split) TotalCents() int64              { return s.totalCents }
func (s *Split) PlatformCents() int64           { return s.platformCents }
func (s *Split) HouseCents() int64              { return s.houseCents }
func (s *Split) CommissionPct() float64         { return s.commissionPct }
func (s *Split) Category() offering.Kind        { return s.category }
func (s *Split) TransferStatus() TransferStatus { return s.transferStatus }
func (s *Split) CreatedAt() time.Time           { return s.createdAt }

func (s *Split) MarkTransferred() {
	s.transferStatus = TransferTransferred
}

func (s *Split) MarkTransferFailed() {
	s.transferStatus = TransferFailed
}
