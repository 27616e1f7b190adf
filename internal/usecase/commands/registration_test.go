//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"casaraiz-backend/internal/domain/registration"
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/internal/usecase/shared"
	"casaraiz-backend/tests/common/builder"
	"casaraiz-backend/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedConfirmedRegistration(uow *fake.UoW, off *shared.OfferingSnapshot, userID uuid.UUID, quantity int32) uuid.UUID {
	id := uuid.New()
	uow.Registrations[id] = &shared.RegistrationSnapshot{
		ID:          id,
		OfferingID:  off.ID,
		HouseID:     off.HouseID,
		UserID:      userID,
		Kind:        off.Kind,
		Quantity:    quantity,
		Method:      registration.MethodCash,
		Status:      registration.StatusConfirmed,
		AmountCents: off.PriceCents * int64(quantity),
		CreatedAt:   testNow.Add(-time.Hour),
	}
	return id
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	newFixture := func(t *testing.T) (*fake.UoW, commands.RegistrationCommands) {
		t.Helper()
		uow := fake.NewUoW()
		return uow, commands.NewRegistrationUseCase(uow, clock.NewMockClock(testNow))
	}

	t.Run("owner cancels a confirmed registration", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithCapacity(5).BuildSnapshot()
		uow.AddOffering(off)

		userID := uuid.New()
		regID := seedConfirmedRegistration(uow, off, userID, 1)

		require.NoError(t, uc.Cancel(ctx, regID, userID, false))

		reg := uow.Registrations[regID]
		assert.Equal(t, registration.StatusCancelled, reg.Status)
		require.NotNil(t, reg.CancelledAt)
		assert.Equal(t, testNow, *reg.CancelledAt)
	})

	t.Run("someone else's registration stays hidden", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().BuildSnapshot()
		uow.AddOffering(off)

		regID := seedConfirmedRegistration(uow, off, uuid.New(), 1)

		err := uc.Cancel(ctx, regID, uuid.New(), false)
		assert.ErrorIs(t, err, commands.ErrNotRegistrationOwner)

		// An operator may cancel on the member's behalf.
		require.NoError(t, uc.Cancel(ctx, regID, uuid.New(), true))
	})

	t.Run("double cancel and unknown id", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().BuildSnapshot()
		uow.AddOffering(off)

		userID := uuid.New()
		regID := seedConfirmedRegistration(uow, off, userID, 1)

		require.NoError(t, uc.Cancel(ctx, regID, userID, false))
		assert.ErrorIs(t, uc.Cancel(ctx, regID, userID, false), commands.ErrNotCancellable)
		assert.ErrorIs(t, uc.Cancel(ctx, uuid.New(), userID, false), commands.ErrRegistrationNotFound)
	})

	t.Run("product cancellation restores stock", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithStock(0).BuildSnapshot()
		uow.AddOffering(off)

		userID := uuid.New()
		regID := seedConfirmedRegistration(uow, off, userID, 3)

		require.NoError(t, uc.Cancel(ctx, regID, userID, false))
		assert.Equal(t, int32(3), *uow.Offerings[off.ID].Stock)
	})

	t.Run("promotes waitlist FIFO once per freed unit", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithCapacity(2).BuildSnapshot()
		uow.AddOffering(off)

		first := uuid.New()
		second := uuid.New()
		third := uuid.New()
		uow.AddWaitlistEntry(off.ID, second, testNow.Add(-2*time.Hour))
		uow.AddWaitlistEntry(off.ID, first, testNow.Add(-3*time.Hour))
		uow.AddWaitlistEntry(off.ID, third, testNow.Add(-time.Hour))

		userID := uuid.New()
		regID := seedConfirmedRegistration(uow, off, userID, 2)

		require.NoError(t, uc.Cancel(ctx, regID, userID, false))

		// Two units freed: the two earliest joiners got notified, in order.
		jobs := uow.JobsByTopic("waitlist_spot_available")
		require.Len(t, jobs, 2)

		notified := map[uuid.UUID]bool{}
		for _, e := range uow.Waitlist {
			if e.NotifiedAt != nil {
				notified[e.UserID] = true
			}
		}
		assert.True(t, notified[first])
		assert.True(t, notified[second])
		assert.False(t, notified[third])
	})

	t.Run("promotion stops when the waitlist runs dry", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithCapacity(5).BuildSnapshot()
		uow.AddOffering(off)

		only := uuid.New()
		uow.AddWaitlistEntry(off.ID, only, testNow.Add(-time.Hour))

		userID := uuid.New()
		regID := seedConfirmedRegistration(uow, off, userID, 4)

		require.NoError(t, uc.Cancel(ctx, regID, userID, false))
		assert.Len(t, uow.JobsByTopic("waitlist_spot_available"), 1)
	})
}
