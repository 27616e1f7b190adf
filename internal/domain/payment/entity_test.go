//go:build unit

package payment_test

import (
	"testing"
	"time"

	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	off, err := builder.NewOfferingBuilder().WithPriceCents(50000).BuildDomain()
	require.NoError(t, err)
	ref := payment.NewExternalReference(off.Kind(), off.ID(), userID, now)

	t.Run("fee is the spread over the base price", func(t *testing.T) {
		p, err := payment.NewPayment(off.HouseID(), userID, off, 2, 105000, 100000, "credit_card", ref, true, 10, now)
		require.NoError(t, err)

		assert.Equal(t, int64(105000), p.AmountCents())
		assert.Equal(t, int64(100000), p.OriginalPriceCents())
		assert.Equal(t, int64(5000), p.FeeCents())
		assert.Equal(t, payment.StatusPending, p.Status())
		assert.True(t, p.SplitApplied())
	})

	t.Run("final below base is rejected", func(t *testing.T) {
		_, err := payment.NewPayment(off.HouseID(), userID, off, 1, 40000, 50000, "", ref, false, 10, now)
		assert.ErrorIs(t, err, payment.ErrFeeBelowBase)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		_, err := payment.NewPayment(off.HouseID(), userID, off, 1, 0, 0, "", ref, false, 10, now)
		assert.ErrorIs(t, err, payment.ErrNonPositiveAmount)
	})
}

func TestPayment_Transitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	newPending := func(t *testing.T) *payment.Payment {
		off, err := builder.NewOfferingBuilder().BuildDomain()
		require.NoError(t, err)
		ref := payment.NewExternalReference(off.Kind(), off.ID(), userID, now)
		p, err := payment.NewPayment(off.HouseID(), userID, off, 1, 50000, 50000, "", ref, false, 10, now)
		require.NoError(t, err)
		return p
	}

	t.Run("approve binds registration and external id", func(t *testing.T) {
		p := newPending(t)
		regID := uuid.New()

		require.NoError(t, p.Approve(regID, "mp-123"))
		assert.Equal(t, payment.StatusApproved, p.Status())
		require.NotNil(t, p.RegistrationID())
		assert.Equal(t, regID, *p.RegistrationID())
		require.NotNil(t, p.ExternalPaymentID())
		assert.Equal(t, "mp-123", *p.ExternalPaymentID())
	})

	t.Run("every non-pending status is terminal", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Reject("mp-1"))
		assert.ErrorIs(t, p.Approve(uuid.New(), "mp-2"), payment.ErrInvalidTransition)
		assert.ErrorIs(t, p.Expire(), payment.ErrInvalidTransition)

		p = newPending(t)
		require.NoError(t, p.MarkUnfulfilled("mp-3"))
		assert.Equal(t, payment.StatusUnfulfilled, p.Status())
		assert.True(t, p.Status().IsTerminal())
		assert.ErrorIs(t, p.Approve(uuid.New(), "mp-4"), payment.ErrInvalidTransition)
	})
}
