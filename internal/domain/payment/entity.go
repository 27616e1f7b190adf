package payment

import (
	"errors"
	"time"

	"casaraiz-backend/internal/domain/offering"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrFeeBelowBase      = errors.New("final price cannot be below the base price")
	ErrInvalidTransition = errors.New("invalid payment status transition")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Payment is one external checkout attempt. AmountCents is the final,
// fee-inclusive figure the processor charges; OriginalPriceCents is the base
// offering price and FeeCents the processor convenience fee on top of it.
type Payment struct {
	id             uuid.UUID
	houseID        uuid.UUID
	userID         uuid.UUID
	offeringID     uuid.UUID
	kind           offering.Kind
	registrationID *uuid.UUID
	quantity       int32
	amountCents    int64
	originalCents  int64
	feeCents       int64
	subMethod      string
	externalRef    ExternalReference
	preferenceID   string
	externalPayID  *string
	status         Status
	splitApplied   bool
	commissionPct  float64
	createdAt      time.Time
}

func NewPayment(
	houseID, userID uuid.UUID,
	off *offering.Offering,
	quantity int32,
	finalCents, baseCents int64,
	subMethod string,
	ref ExternalReference,
	splitApplied bool,
	commissionPct float64,
	now time.Time,
) (*Payment, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if finalCents <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if finalCents < baseCents {
		return nil, ErrFeeBelowBase
	}

	return &Payment{
		id:            uuid.New(),
		houseID:       houseID,
		userID:        userID,
		offeringID:    off.ID(),
		kind:          off.Kind(),
		quantity:      quantity,
		amountCents:   finalCents,
		originalCents: baseCents,
		feeCents:      finalCents - baseCents,
		subMethod:     subMethod,
		externalRef:   ref,
		status:        StatusPending,
		splitApplied:  splitApplied,
		commissionPct: commissionPct,
		createdAt:     now,
	}, nil
}

func Reconstruct(
	id, houseID, userID, offeringID uuid.UUID,
	kind offering.Kind,
	registrationID *uuid.UUID,
	quantity int32,
	amountCents, originalCents, feeCents int64,
	subMethod string,
	ref ExternalReference,
	preferenceID string,
	externalPayID *string,
	status Status,
	splitApplied bool,
	commissionPct float64,
	createdAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		houseID:       houseID,
		userID:        userID,
		offeringID:    offeringID,
		kind:          kind,
		registrationID: registrationID,
		quantity:      quantity,
		amountCents:   amountCents,
		originalCents: originalCents,
		feeCents:      feeCents,
		subMethod:     subMethod,
		externalRef:   ref,
		preferenceID:  preferenceID,
		externalPayID: externalPayID,
		status:        status,
		splitApplied:  splitApplied,
		commissionPct: commissionPct,
		createdAt:     createdAt,
	}
}

func (p *Payment) ID() uuid.UUID               { return p.id }
func (p *Payment) HouseID() uuid.UUID          { return p.houseID }
func (p *Payment) UserID() uuid.UUID           { return p.userID }
func (p *Payment) OfferingID() uuid.UUID       { return p.offeringID }
func (p *Payment) Kind() offering.Kind         { return p.kind }
func (p *Payment) RegistrationID() *uuid.UUID  { return p.registrationID }
func (p *Payment) Quantity() int32             { return p.quantity }
func (p *Payment) AmountCents() int64          { return p.amountCents }
func (p *Payment) OriginalPriceCents() int64   { return p.originalCents }
func (p *Payment) FeeCents() int64             { return p.feeCents }
func (p *Payment) SubMethod() string           { return p.subMethod }
func (p *Payment) ExternalRef() ExternalReference { return p.externalRef }
func (p *Payment) PreferenceID() string        { return p.preferenceID }
func (p *Payment) ExternalPaymentID() *string  { return p.externalPayID }
func (p *Payment) Status() Status              { return p.status }
func (p *Payment) SplitApplied() bool          { return p.splitApplied }
func (p *Payment) CommissionPct() float64      { return p.commissionPct }
func (p *Payment) CreatedAt() time.Time        { return p.createdAt }

func (p *Payment) AttachPreference(preferenceID string) {
	p.preferenceID = preferenceID
}

func (p *Payment) transition(next Status) error {
	if p.status.IsTerminal() {
		return ErrInvalidTransition
	}
	p.status = next
	return nil
}

// Approve binds the materialized registration to the payment.
func (p *Payment) Approve(registrationID uuid.UUID, externalPaymentID string) error {
	if err := p.transition(StatusApproved); err != nil {
		return err
	}
	p.registrationID = &registrationID
	p.externalPayID = &externalPaymentID
	return nil
}

func (p *Payment) Reject(externalPaymentID string) error {
	if err := p.transition(StatusRejected); err != nil {
		return err
	}
	p.externalPayID = &externalPaymentID
	return nil
}

func (p *Payment) Expire() error {
	return p.transition(StatusExpired)
}

// MarkUnfulfilled records a capacity race loss: the processor approved the
// charge but a faster confirmation exhausted the units.
func (p *Payment) MarkUnfulfilled(externalPaymentID string) error {
	if err := p.transition(StatusUnfulfilled); err != nil {
		return err
	}
	p.externalPayID = &externalPaymentID
	return nil
}
