//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/domain/registration"
	reqdto "casaraiz-backend/internal/handler/dto/request"
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/pkg/config"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/commands"
	"casaraiz-backend/internal/usecase/shared"
	"casaraiz-backend/tests/common/builder"
	"casaraiz-backend/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newCheckoutFixture(t *testing.T) (*fake.UoW, *fake.Gateway, commands.CheckoutCommands) {
	t.Helper()
	uow := fake.NewUoW()
	gateway := fake.NewGateway()
	uc := commands.NewCheckoutUseCase(uow, gateway, clock.NewMockClock(testNow), config.MercadoPagoConfig{})
	return uow, gateway, uc
}

func onlineRequest(offeringID uuid.UUID) reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		OfferingID: offeringID,
		Quantity:   2,
		Method:     "online",
		SubMethod:  "credit_card",
		PayerEmail: "payer@example.com",
		PayerName:  "Ana Payer",
	}
}

func TestCheckout_Online(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending payment with split for connected house", func(t *testing.T) {
		uow, gateway, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().WithMPConnected("collector-9").BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).WithPriceCents(5000).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		userID := uuid.New()
		result, err := uc.Checkout(ctx, onlineRequest(off.ID), userID, uuid.New())
		require.NoError(t, err)

		require.NotNil(t, result.PaymentID)
		assert.Nil(t, result.RegistrationID)
		assert.False(t, result.IsReplayed)
		assert.Equal(t, "https://mp.example/init/pref-123", result.RedirectURL)

		p := uow.Payments[*result.PaymentID]
		require.NotNil(t, p)
		assert.Equal(t, payment.StatusPending, p.Status)
		assert.Equal(t, int64(10000), p.AmountCents)
		assert.True(t, p.SplitApplied)

		// 10% ceremony commission on 10000
		split := uow.Splits[p.ID]
		require.NotNil(t, split)
		assert.Equal(t, int64(1000), split.PlatformCents())
		assert.Equal(t, int64(9000), split.HouseCents())
		assert.Equal(t, payment.TransferPending, split.TransferStatus())

		require.Len(t, gateway.CreatedPreferences, 1)
		pref := gateway.CreatedPreferences[0]
		assert.Equal(t, int64(10000), pref.TotalCents)
		assert.Equal(t, int64(1000), pref.MarketplaceFeeCents)
		assert.Equal(t, "collector-9", pref.CollectorID)

		// No registration until the webhook confirms.
		assert.Empty(t, uow.Registrations)
	})

	t.Run("no split row for unconnected house", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		result, err := uc.Checkout(ctx, onlineRequest(off.ID), uuid.New(), uuid.New())
		require.NoError(t, err)

		p := uow.Payments[*result.PaymentID]
		assert.False(t, p.SplitApplied)
		assert.Empty(t, uow.Splits)
	})

	t.Run("sub-method final price carries the convenience fee", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).WithPriceCents(5000).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		req := onlineRequest(off.ID)
		final := int64(11000)
		req.FinalPriceCents = &final

		result, err := uc.Checkout(ctx, req, uuid.New(), uuid.New())
		require.NoError(t, err)

		p := uow.Payments[*result.PaymentID]
		assert.Equal(t, int64(11000), p.AmountCents)
		assert.Equal(t, int64(10000), p.OriginalPriceCents)
		assert.Equal(t, int64(1000), p.FeeCents)
	})

	t.Run("final below base rejected", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).WithPriceCents(5000).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		req := onlineRequest(off.ID)
		final := int64(9000)
		req.FinalPriceCents = &final

		_, err := uc.Checkout(ctx, req, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrInvalidAmount)
	})

	t.Run("eligibility failures", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).WithCapacity(1).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		_, err := uc.Checkout(ctx, onlineRequest(uuid.New()), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrOfferingNotFound)

		blockedUser := uuid.New()
		uow.BlockUser(house.ID, blockedUser, off.Kind)
		req := onlineRequest(off.ID)
		req.Quantity = 1
		_, err = uc.Checkout(ctx, req, blockedUser, uuid.New())
		assert.ErrorIs(t, err, commands.ErrUserBlocked)

		// capacity 1, quantity 2
		_, err = uc.Checkout(ctx, onlineRequest(off.ID), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrSoldOut)
	})
}

func TestCheckout_Idempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("same key replays the stored result", func(t *testing.T) {
		uow, gateway, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		userID := uuid.New()
		key := uuid.New()
		req := onlineRequest(off.ID)

		first, err := uc.Checkout(ctx, req, userID, key)
		require.NoError(t, err)

		second, err := uc.Checkout(ctx, req, userID, key)
		require.NoError(t, err)

		assert.True(t, second.IsReplayed)
		assert.Equal(t, *first.PaymentID, *second.PaymentID)
		assert.Equal(t, first.RedirectURL, second.RedirectURL)

		// The gateway saw exactly one preference and one payment row exists.
		assert.Len(t, gateway.CreatedPreferences, 1)
		assert.Len(t, uow.Payments, 1)
	})

	t.Run("key reuse with different body is rejected", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		userID := uuid.New()
		key := uuid.New()

		// A processing record from an in-flight request with another body.
		uow.Idempotency[key.String()+"/"+userID.String()] = &shared.IdempotencyRecord{
			Key:         key,
			UserID:      userID,
			Status:      "processing",
			RequestHash: "another-hash",
			ExpiresAt:   testNow.Add(24 * time.Hour),
		}

		_, err := uc.Checkout(ctx, onlineRequest(off.ID), userID, key)
		assert.ErrorIs(t, err, commands.ErrIdempotencyKeyReused)
	})

	t.Run("same key while still processing reports in progress", func(t *testing.T) {
		uow, gateway, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		userID := uuid.New()
		key := uuid.New()
		req := onlineRequest(off.ID)

		// First attempt reserved the key but died before completing.
		gateway.PreferenceErr = errs.New("processor down")
		_, err := uc.Checkout(ctx, req, userID, key)
		require.ErrorIs(t, err, commands.ErrPaymentGateway)

		gateway.PreferenceErr = nil
		_, err = uc.Checkout(ctx, req, userID, key)
		assert.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
	})
}

func TestCheckout_Immediate(t *testing.T) {
	ctx := context.Background()

	t.Run("cash confirms in one transaction", func(t *testing.T) {
		uow, gateway, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).WithPriceCents(5000).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		req := onlineRequest(off.ID)
		req.Method = "cash"
		req.Quantity = 1

		result, err := uc.Checkout(ctx, req, uuid.New(), uuid.New())
		require.NoError(t, err)

		require.NotNil(t, result.RegistrationID)
		assert.Nil(t, result.PaymentID)
		assert.Empty(t, result.RedirectURL)

		reg := uow.Registrations[*result.RegistrationID]
		require.NotNil(t, reg)
		assert.Equal(t, registration.StatusConfirmed, reg.Status)
		assert.Equal(t, registration.MethodCash, reg.Method)
		assert.Equal(t, int64(5000), reg.AmountCents)

		// No processor involvement and no payment row for manual paths.
		assert.Empty(t, gateway.CreatedPreferences)
		assert.Empty(t, uow.Payments)

		jobs := uow.JobsByTopic("registration_confirmed")
		assert.Len(t, jobs, 1)
	})

	t.Run("product stock decrements exactly once", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).WithStock(3).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		req := onlineRequest(off.ID)
		req.Method = "transfer"
		req.Quantity = 2

		_, err := uc.Checkout(ctx, req, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int32(1), *uow.Offerings[off.ID].Stock)

		// A second order for 2 no longer fits.
		_, err = uc.Checkout(ctx, req, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrInsufficientStock)
		assert.Equal(t, int32(1), *uow.Offerings[off.ID].Stock)
	})

	t.Run("free method requires zero amount", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		paid := builder.NewOfferingBuilder().WithHouseID(house.ID).WithPriceCents(5000).BuildSnapshot()
		free := builder.NewOfferingBuilder().WithHouseID(house.ID).WithPriceCents(5000).WithFree().BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(paid)
		uow.AddOffering(free)

		req := onlineRequest(paid.ID)
		req.Method = "free"
		req.Quantity = 1
		_, err := uc.Checkout(ctx, req, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrInvalidAmount)

		req.OfferingID = free.ID
		result, err := uc.Checkout(ctx, req, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(0), uow.Registrations[*result.RegistrationID].AmountCents)
	})

	t.Run("double registration is refused", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		userID := uuid.New()
		req := onlineRequest(off.ID)
		req.Method = "cash"
		req.Quantity = 1

		_, err := uc.Checkout(ctx, req, userID, uuid.New())
		require.NoError(t, err)

		_, err = uc.Checkout(ctx, req, userID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrAlreadyRegistered)
	})

	t.Run("confirming removes the user's waitlist entry", func(t *testing.T) {
		uow, _, uc := newCheckoutFixture(t)
		house := builder.NewHouseBuilder().BuildSnapshot()
		off := builder.NewOfferingBuilder().WithHouseID(house.ID).WithCapacity(5).BuildSnapshot()
		uow.AddHouse(house)
		uow.AddOffering(off)

		userID := uuid.New()
		uow.AddWaitlistEntry(off.ID, userID, testNow.Add(-time.Hour))

		req := onlineRequest(off.ID)
		req.Method = "cash"
		req.Quantity = 1

		_, err := uc.Checkout(ctx, req, userID, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, uow.Waitlist)
	})
}
