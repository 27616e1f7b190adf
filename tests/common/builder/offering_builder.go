package builder

import (
	"time"

	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

// OfferingBuilder produces offering snapshots and domain entities for tests.
// Defaults to a paid ceremony with capacity 10 starting tomorrow.
type OfferingBuilder struct {
	id         uuid.UUID
	houseID    uuid.UUID
	kind       offering.Kind
	title      string
	priceCents int64
	capacity   *int32
	stock      *int32
	isFree     bool
	startsAt   *time.Time
}

func NewOfferingBuilder() *OfferingBuilder {
	capacity := int32(10)
	startsAt := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)
	return &OfferingBuilder{
		id:         uuid.New(),
		houseID:    uuid.New(),
		kind:       offering.KindCeremony,
		title:      "Ceremonia de Luna Nueva",
		priceCents: 50000,
		capacity:   &capacity,
		startsAt:   &startsAt,
	}
}

func (b *OfferingBuilder) WithID(id uuid.UUID) *OfferingBuilder {
	b.id = id
	return b
}

func (b *OfferingBuilder) WithHouseID(id uuid.UUID) *OfferingBuilder {
	b.houseID = id
	return b
}

func (b *OfferingBuilder) WithKind(kind offering.Kind) *OfferingBuilder {
	b.kind = kind
	return b
}

func (b *OfferingBuilder) WithTitle(title string) *OfferingBuilder {
	b.title = title
	return b
}

func (b *OfferingBuilder) WithPriceCents(cents int64) *OfferingBuilder {
	b.priceCents = cents
	return b
}

func (b *OfferingBuilder) WithCapacity(capacity int32) *OfferingBuilder {
	b.capacity = &capacity
	return b
}

func (b *OfferingBuilder) WithUnlimitedCapacity() *OfferingBuilder {
	b.capacity = nil
	return b
}

// WithStock also switches the offering to the product kind, which clears the
// schedule since products are unscheduled.
func (b *OfferingBuilder) WithStock(stock int32) *OfferingBuilder {
	b.kind = offering.KindProduct
	b.stock = &stock
	b.capacity = nil
	b.startsAt = nil
	return b
}

func (b *OfferingBuilder) WithFree() *OfferingBuilder {
	b.isFree = true
	return b
}

func (b *OfferingBuilder) WithStartsAt(t time.Time) *OfferingBuilder {
	b.startsAt = &t
	return b
}

func (b *OfferingBuilder) BuildDomain() (*offering.Offering, error) {
	return offering.NewOffering(
		b.id, b.houseID, b.kind, b.title, b.priceCents, b.capacity, b.stock, b.isFree, b.startsAt,
	)
}

func (b *OfferingBuilder) BuildSnapshot() *shared.OfferingSnapshot {
	return &shared.OfferingSnapshot{
		ID:         b.id,
		HouseID:    b.houseID,
		Kind:       b.kind,
		Title:      b.title,
		PriceCents: b.priceCents,
		Capacity:   b.capacity,
		Stock:      b.stock,
		IsFree:     b.isFree,
		StartsAt:   b.startsAt,
	}
}
