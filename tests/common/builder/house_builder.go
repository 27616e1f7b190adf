package builder

import (
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

// HouseBuilder produces house snapshots with the platform default commission
// percentages and no connected processor account.
type HouseBuilder struct {
	id            uuid.UUID
	name          string
	slug          string
	mpConnected   bool
	mpCollectorID *string
	ceremonyPct   float64
	productPct    float64
	coursePct     float64
}

func NewHouseBuilder() *HouseBuilder {
	return &HouseBuilder{
		id:          uuid.New(),
		name:        "Casa del Valle",
		slug:        "casa-del-valle",
		ceremonyPct: 10,
		productPct:  15,
		coursePct:   12,
	}
}

func (b *HouseBuilder) WithID(id uuid.UUID) *HouseBuilder {
	b.id = id
	return b
}

func (b *HouseBuilder) WithMPConnected(collectorID string) *HouseBuilder {
	b.mpConnected = true
	b.mpCollectorID = &collectorID
	return b
}

func (b *HouseBuilder) WithCommission(ceremonyPct, productPct, coursePct float64) *HouseBuilder {
	b.ceremonyPct = ceremonyPct
	b.productPct = productPct
	b.coursePct = coursePct
	return b
}

func (b *HouseBuilder) BuildSnapshot() *shared.HouseSnapshot {
	return &shared.HouseSnapshot{
		ID:            b.id,
		Name:          b.name,
		Slug:          b.slug,
		MPConnected:   b.mpConnected,
		MPCollectorID: b.mpCollectorID,
		CeremonyPct:   b.ceremonyPct,
		ProductPct:    b.productPct,
		CoursePct:     b.coursePct,
	}
}
