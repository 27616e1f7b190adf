//go:build unit

package registration_test

import (
	"testing"
	"time"

	"casaraiz-backend/internal/domain/registration"
	"casaraiz-backend/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistration(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("pending online registration", func(t *testing.T) {
		off, err := builder.NewOfferingBuilder().BuildDomain()
		require.NoError(t, err)

		reg, err := registration.NewPending(off, userID, 2, 100000, now)
		require.NoError(t, err)

		assert.Equal(t, registration.StatusPending, reg.Status())
		assert.Equal(t, registration.MethodOnline, reg.Method())
		assert.Equal(t, off.ID(), reg.OfferingID())
		assert.Equal(t, off.HouseID(), reg.HouseID())
		assert.False(t, reg.IsActive())
	})

	t.Run("confirmed cash registration", func(t *testing.T) {
		off, err := builder.NewOfferingBuilder().BuildDomain()
		require.NoError(t, err)

		reg, err := registration.NewConfirmed(off, userID, 1, registration.MethodCash, 50000, now)
		require.NoError(t, err)

		assert.Equal(t, registration.StatusConfirmed, reg.Status())
		assert.True(t, reg.IsActive())
	})

	t.Run("free method requires a free offering", func(t *testing.T) {
		paid, err := builder.NewOfferingBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = registration.NewConfirmed(paid, userID, 1, registration.MethodFree, 0, now)
		assert.ErrorIs(t, err, registration.ErrFreeMethodOnPaid)

		free, err := builder.NewOfferingBuilder().WithFree().BuildDomain()
		require.NoError(t, err)

		reg, err := registration.NewConfirmed(free, userID, 1, registration.MethodFree, 0, now)
		require.NoError(t, err)
		assert.Equal(t, registration.StatusConfirmed, reg.Status())
	})

	t.Run("validation failures", func(t *testing.T) {
		off, err := builder.NewOfferingBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = registration.NewPending(off, userID, 0, 1000, now)
		assert.ErrorIs(t, err, registration.ErrInvalidQuantity)

		_, err = registration.NewConfirmed(off, userID, 1, registration.Method("wire"), 1000, now)
		assert.ErrorIs(t, err, registration.ErrInvalidMethod)

		_, err = registration.NewPending(off, userID, 1, -1, now)
		assert.ErrorIs(t, err, registration.ErrNegativeAmount)
	})
}

func TestReconstruct(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	off, err := builder.NewOfferingBuilder().BuildDomain()
	require.NoError(t, err)

	original, err := registration.NewConfirmed(off, userID, 2, registration.MethodTransfer, 100000, now)
	require.NoError(t, err)

	restored := registration.Reconstruct(
		original.ID(), original.OfferingID(), original.HouseID(), original.UserID(),
		original.Kind(), original.Quantity(), original.Method(), original.Status(),
		original.AmountCents(), original.CreatedAt(), original.CancelledAt(),
	)

	if diff := cmp.Diff(original, restored, cmp.AllowUnexported(registration.Registration{})); diff != "" {
		t.Errorf("Registration mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistration_Transitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	newPending := func(t *testing.T) *registration.Registration {
		off, err := builder.NewOfferingBuilder().BuildDomain()
		require.NoError(t, err)
		reg, err := registration.NewPending(off, userID, 1, 50000, now)
		require.NoError(t, err)
		return reg
	}

	t.Run("pending confirms, rejects and expires", func(t *testing.T) {
		reg := newPending(t)
		require.NoError(t, reg.Confirm())
		assert.Equal(t, registration.StatusConfirmed, reg.Status())

		reg = newPending(t)
		require.NoError(t, reg.Reject())
		assert.Equal(t, registration.StatusRejected, reg.Status())

		reg = newPending(t)
		require.NoError(t, reg.Expire())
		assert.Equal(t, registration.StatusExpired, reg.Status())
	})

	t.Run("only confirmed cancels", func(t *testing.T) {
		reg := newPending(t)
		assert.ErrorIs(t, reg.Cancel(now), registration.ErrInvalidTransition)

		require.NoError(t, reg.Confirm())
		require.NoError(t, reg.Cancel(now))
		assert.Equal(t, registration.StatusCancelled, reg.Status())
		require.NotNil(t, reg.CancelledAt())
		assert.Equal(t, now, *reg.CancelledAt())
	})

	t.Run("terminal states admit nothing", func(t *testing.T) {
		reg := newPending(t)
		require.NoError(t, reg.Reject())

		assert.ErrorIs(t, reg.Confirm(), registration.ErrInvalidTransition)
		assert.ErrorIs(t, reg.Expire(), registration.ErrInvalidTransition)
		assert.ErrorIs(t, reg.Cancel(now), registration.ErrInvalidTransition)
	})

	t.Run("double cancel fails", func(t *testing.T) {
		reg := newPending(t)
		require.NoError(t, reg.Confirm())
		require.NoError(t, reg.Cancel(now))
		assert.ErrorIs(t, reg.Cancel(now), registration.ErrInvalidTransition)
	})
}
