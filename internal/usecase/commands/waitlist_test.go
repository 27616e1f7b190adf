//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/tests/common/builder"
	"casaraiz-backend/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitlistJoin(t *testing.T) {
	ctx := context.Background()

	newFixture := func(t *testing.T) (*fake.UoW, commands.WaitlistCommands) {
		t.Helper()
		uow := fake.NewUoW()
		return uow, commands.NewWaitlistUseCase(uow, clock.NewMockClock(testNow))
	}

	t.Run("joins a sold-out offering", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithCapacity(1).BuildSnapshot()
		uow.AddOffering(off)
		seedConfirmedRegistration(uow, off, uuid.New(), 1)

		userID := uuid.New()
		require.NoError(t, uc.Join(ctx, off.ID, userID))

		require.Len(t, uow.Waitlist, 1)
		assert.Equal(t, userID, uow.Waitlist[0].UserID)
		assert.Equal(t, testNow, uow.Waitlist[0].JoinedAt)
		assert.Nil(t, uow.Waitlist[0].NotifiedAt)
	})

	t.Run("rejects joining while spots remain", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithCapacity(2).BuildSnapshot()
		uow.AddOffering(off)
		seedConfirmedRegistration(uow, off, uuid.New(), 1)

		err := uc.Join(ctx, off.ID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrNotSoldOut)
	})

	t.Run("sold-out products accept waitlisting", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithStock(0).BuildSnapshot()
		uow.AddOffering(off)

		require.NoError(t, uc.Join(ctx, off.ID, uuid.New()))
	})

	t.Run("active registrants cannot queue", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithCapacity(1).BuildSnapshot()
		uow.AddOffering(off)

		holder := uuid.New()
		seedConfirmedRegistration(uow, off, holder, 1)

		err := uc.Join(ctx, off.ID, holder)
		assert.ErrorIs(t, err, commands.ErrAlreadyRegistered)
	})

	t.Run("duplicate join is refused", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().WithCapacity(1).BuildSnapshot()
		uow.AddOffering(off)
		seedConfirmedRegistration(uow, off, uuid.New(), 1)

		userID := uuid.New()
		require.NoError(t, uc.Join(ctx, off.ID, userID))
		assert.ErrorIs(t, uc.Join(ctx, off.ID, userID), commands.ErrAlreadyWaitlisted)
	})

	t.Run("unknown offering", func(t *testing.T) {
		_, uc := newFixture(t)
		err := uc.Join(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrOfferingNotFound)
	})
}

func TestWaitlistLeave(t *testing.T) {
	ctx := context.Background()

	uow := fake.NewUoW()
	uc := commands.NewWaitlistUseCase(uow, clock.NewMockClock(testNow))

	off := builder.NewOfferingBuilder().WithCapacity(1).BuildSnapshot()
	uow.AddOffering(off)

	userID := uuid.New()
	uow.AddWaitlistEntry(off.ID, userID, testNow.Add(-time.Minute))

	require.NoError(t, uc.Leave(ctx, off.ID, userID))
	assert.Empty(t, uow.Waitlist)

	assert.ErrorIs(t, uc.Leave(ctx, off.ID, userID), commands.ErrNotWaitlisted)
}
