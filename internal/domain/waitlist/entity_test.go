//go:build unit

package waitlist_test

import (
	"testing"
	"time"

	"casaraiz-backend/internal/domain/waitlist"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEntry_Before(t *testing.T) {
	offeringID := uuid.New()
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("earlier join wins", func(t *testing.T) {
		first := waitlist.NewEntry(offeringID, uuid.New(), t0)
		second := waitlist.NewEntry(offeringID, uuid.New(), t0.Add(time.Second))

		assert.True(t, first.Before(second))
		assert.False(t, second.Before(first))
	})

	t.Run("timestamp ties break on lower user id", func(t *testing.T) {
		lowID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		highID := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

		low := waitlist.NewEntry(offeringID, lowID, t0)
		high := waitlist.NewEntry(offeringID, highID, t0)

		assert.True(t, low.Before(high))
		assert.False(t, high.Before(low))
	})
}

func TestEntry_Notified(t *testing.T) {
	entry := waitlist.NewEntry(uuid.New(), uuid.New(), time.Now())
	assert.False(t, entry.Notified())

	at := time.Now()
	reloaded := waitlist.Reconstruct(entry.ID(), entry.OfferingID(), entry.UserID(), entry.JoinedAt(), &at)
	assert.True(t, reloaded.Notified())
}
