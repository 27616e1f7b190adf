package offering

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind     = errors.New("invalid offering kind")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidCapacity = errors.New("capacity cannot be negative")
	ErrMissingSchedule = errors.New("scheduled offering requires a start time")
	ErrStockOnProduct  = errors.New("stock applies only to products")
)

// Offering is one purchasable unit source: a ceremony, a course, or a product.
// Ceremonies and courses declare a capacity ceiling (nil = unlimited) that is
// enforced against confirmed registrations; products carry a stock counter
// that is decremented directly at confirmation time.
type Offering struct {
	id         uuid.UUID
	houseID    uuid.UUID
	kind       Kind
	title      string
	priceCents int64
	capacity   *int32
	stock      *int32
	isFree     bool
	startsAt   *time.Time
}

func NewOffering(
	id, houseID uuid.UUID,
	kind Kind,
	title string,
	priceCents int64,
	capacity, stock *int32,
	isFree bool,
	startsAt *time.Time,
) (*Offering, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if capacity != nil && *capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if stock != nil && !kind.UsesStock() {
		return nil, ErrStockOnProduct
	}
	if stock != nil && *stock < 0 {
		return nil, ErrInvalidCapacity
	}
	if kind.IsScheduled() && startsAt == nil {
		return nil, ErrMissingSchedule
	}

	return &Offering{
		id:         id,
		houseID:    houseID,
		kind:       kind,
		title:      title,
		priceCents: priceCents,
		capacity:   capacity,
		stock:      stock,
		isFree:     isFree,
		startsAt:   startsAt,
	}, nil
}

func (o *Offering) ID() uuid.UUID        { return o.id }
func (o *Offering) HouseID() uuid.UUID   { return o.houseID }
func (o *Offering) Kind() Kind           { return o.kind }
func (o *Offering) Title() string        { return o.title }
func (o *Offering) PriceCents() int64    { return o.priceCents }
func (o *Offering) Capacity() *int32     { return o.capacity }
func (o *Offering) Stock() *int32        { return o.stock }
func (o *Offering) IsFree() bool         { return o.isFree }
func (o *Offering) StartsAt() *time.Time { return o.startsAt }

// IsUnlimited reports whether the offering has no finite ceiling.
func (o *Offering) IsUnlimited() bool {
	if o.kind.UsesStock() {
		return o.stock == nil
	}
	return o.capacity == nil
}

// Remaining computes remaining units given the authoritative count of
// confirmed, non-cancelled registration units. Returns nil when unlimited.
// Products read the stock counter directly; confirmedUnits is ignored there.
func (o *Offering) Remaining(confirmedUnits int32) *int32 {
	if o.kind.UsesStock() {
		if o.stock == nil {
			return nil
		}
		s := *o.stock
		return &s
	}
	if o.capacity == nil {
		return nil
	}
	rem := *o.capacity - confirmedUnits
	if rem < 0 {
		rem = 0
	}
	return &rem
}

// IsSoldOut is never true for unlimited offerings.
func (o *Offering) IsSoldOut(confirmedUnits int32) bool {
	rem := o.Remaining(confirmedUnits)
	return rem != nil && *rem == 0
}

// CanAccommodate reports whether quantity units fit in the remaining space.
func (o *Offering) CanAccommodate(confirmedUnits, quantity int32) bool {
	rem := o.Remaining(confirmedUnits)
	return rem == nil || *rem >= quantity
}

// EffectivePrice is zero for free offerings regardless of the list price.
func (o *Offering) EffectivePrice() int64 {
	if o.isFree {
		return 0
	}
	return o.priceCents
}
