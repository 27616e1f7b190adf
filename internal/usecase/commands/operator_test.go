//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/internal/usecase/shared"
	"casaraiz-backend/tests/common/builder"
	"casaraiz-backend/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUnfulfilledPayment(uow *fake.UoW, off *shared.OfferingSnapshot, quantity int32) *shared.PaymentSnapshot {
	extID := "mp-" + uuid.NewString()[:8]
	snap := &shared.PaymentSnapshot{
		ID:                uuid.New(),
		HouseID:           off.HouseID,
		UserID:            uuid.New(),
		OfferingID:        off.ID,
		Kind:              off.Kind,
		Quantity:          quantity,
		AmountCents:       off.PriceCents * int64(quantity),
		ExternalReference: "ceremony_" + uuid.NewString() + "_" + uuid.NewString() + "_1",
		ExternalPaymentID: &extID,
		Status:            payment.StatusUnfulfilled,
		CreatedAt:         testNow,
	}
	uow.Payments[snap.ID] = snap
	return snap
}

func TestResolveUnfulfilled(t *testing.T) {
	ctx := context.Background()

	newFixture := func(t *testing.T) (*fake.UoW, commands.OperatorCommands) {
		t.Helper()
		uow := fake.NewUoW()
		return uow, commands.NewOperatorUseCase(uow, clock.NewMockClock(testNow))
	}

	t.Run("refund queues the refund request", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().BuildSnapshot()
		uow.AddOffering(off)
		p := seedUnfulfilledPayment(uow, off, 1)

		require.NoError(t, uc.ResolveUnfulfilled(ctx, p.ID, off.HouseID, commands.ResolutionRefund))
		assert.Len(t, uow.JobsByTopic("payment_refund_requested"), 1)
	})

	t.Run("reoffer promotes the waitlist for the paid quantity", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().BuildSnapshot()
		uow.AddOffering(off)
		p := seedUnfulfilledPayment(uow, off, 2)

		uow.AddWaitlistEntry(off.ID, uuid.New(), testNow.Add(-2*time.Hour))
		uow.AddWaitlistEntry(off.ID, uuid.New(), testNow.Add(-time.Hour))
		uow.AddWaitlistEntry(off.ID, uuid.New(), testNow.Add(-time.Minute))

		require.NoError(t, uc.ResolveUnfulfilled(ctx, p.ID, off.HouseID, commands.ResolutionReoffer))
		assert.Len(t, uow.JobsByTopic("waitlist_spot_available"), 2)
	})

	t.Run("house scoping hides other houses' payments", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().BuildSnapshot()
		uow.AddOffering(off)
		p := seedUnfulfilledPayment(uow, off, 1)

		err := uc.ResolveUnfulfilled(ctx, p.ID, uuid.New(), commands.ResolutionRefund)
		assert.ErrorIs(t, err, commands.ErrNotHouseOperator)
	})

	t.Run("only unfulfilled payments resolve", func(t *testing.T) {
		uow, uc := newFixture(t)
		off := builder.NewOfferingBuilder().BuildSnapshot()
		uow.AddOffering(off)
		p := seedUnfulfilledPayment(uow, off, 1)
		p.Status = payment.StatusApproved

		err := uc.ResolveUnfulfilled(ctx, p.ID, off.HouseID, commands.ResolutionRefund)
		assert.ErrorIs(t, err, commands.ErrPaymentNotUnfulfilled)
	})

	t.Run("unknown payment and bad action", func(t *testing.T) {
		_, uc := newFixture(t)

		err := uc.ResolveUnfulfilled(ctx, uuid.New(), uuid.New(), commands.ResolutionRefund)
		assert.ErrorIs(t, err, commands.ErrPaymentNotFound)

		err = uc.ResolveUnfulfilled(ctx, uuid.New(), uuid.New(), commands.ResolutionAction("void"))
		assert.ErrorIs(t, err, commands.ErrInvalidResolution)
	})
}
