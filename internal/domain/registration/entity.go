package registration

import (
	"errors"
	"time"

	"casaraiz-backend/internal/domain/offering"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrInvalidStatus     = errors.New("invalid registration status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrFreeMethodOnPaid  = errors.New("free method requires a free offering")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)

// Registration is one user's claim on units of one offering. A row counts
// against capacity only while status is confirmed.
type Registration struct {
	id          uuid.UUID
	offeringID  uuid.UUID
	kind        offering.Kind
	houseID     uuid.UUID
	userID      uuid.UUID
	quantity    int32
	method      Method
	status      Status
	amountCents int64
	createdAt   time.Time
	cancelledAt *time.Time
}

func newRegistration(
	off *offering.Offering,
	userID uuid.UUID,
	quantity int32,
	method Method,
	status Status,
	amountCents int64,
	now time.Time,
) (*Registration, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	if method == MethodFree && !off.IsFree() {
		return nil, ErrFreeMethodOnPaid
	}
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}

	return &Registration{
		id:          uuid.New(),
		offeringID:  off.ID(),
		kind:        off.Kind(),
		houseID:     off.HouseID(),
		userID:      userID,
		quantity:    quantity,
		method:      method,
		status:      status,
		amountCents: amountCents,
		createdAt:   now,
	}, nil
}

// NewPending is the entry point for online payments awaiting the processor.
func NewPending(off *offering.Offering, userID uuid.UUID, quantity int32, amountCents int64, now time.Time) (*Registration, error) {
	return newRegistration(off, userID, quantity, MethodOnline, StatusPending, amountCents, now)
}

// NewConfirmed is the entry point for manual/cash/free paths, which never
// touch the webhook, and for webhook materialization of an approved payment.
func NewConfirmed(off *offering.Offering, userID uuid.UUID, quantity int32, method Method, amountCents int64, now time.Time) (*Registration, error) {
	return newRegistration(off, userID, quantity, method, StatusConfirmed, amountCents, now)
}

func Reconstruct(
	id, offeringID, houseID, userID uuid.UUID,
	kind offering.Kind,
	quantity int32,
	method Method,
	status Status,
	amountCents int64,
	createdAt time.Time,
	cancelledAt *time.Time,
) *Registration {
	return &Registration{
		id:          id,
		offeringID:  offeringID,
		kind:        kind,
		houseID:     houseID,
		userID:      userID,
		quantity:    quantity,
		method:      method,
		status:      status,
		amountCents: amountCents,
		createdAt:   createdAt,
		cancelledAt: cancelledAt,
	}
}

func (r *Registration) ID() uuid.UUID           { return r.id }
func (r *Registration) OfferingID() uuid.UUID   { return r.offeringID }
func (r *Registration) Kind() offering.Kind     { return r.kind }
func (r *Registration) HouseID() uuid.UUID      { return r.houseID }
func (r *Registration) UserID() uuid.UUID       { return r.userID }
func (r *Registration) Quantity() int32         { return r.quantity }
func (r *Registration) Method() Method          { return r.method }
func (r *Registration) Status() Status          { return r.status }
func (r *Registration) AmountCents() int64      { return r.amountCents }
func (r *Registration) CreatedAt() time.Time    { return r.createdAt }
func (r *Registration) CancelledAt() *time.Time { return r.cancelledAt }

// IsActive reports whether the registration still holds its units.
func (r *Registration) IsActive() bool {
	return r.status == StatusConfirmed
}

func (r *Registration) transition(next Status) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}

func (r *Registration) Confirm() error {
	return r.transition(StatusConfirmed)
}

func (r *Registration) Reject() error {
	return r.transition(StatusRejected)
}

func (r *Registration) Expire() error {
	return r.transition(StatusExpired)
}

// Cancel releases the units; the caller is responsible for triggering
// waitlist promotion once the cancellation is persisted.
func (r *Registration) Cancel(now time.Time) error {
	if err := r.transition(StatusCancelled); err != nil {
		return err
	}
	r.cancelledAt = &now
	return nil
}
