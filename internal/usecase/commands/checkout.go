package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/domain/registration"
	reqdto "casaraiz-backend/internal/handler/dto/request"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/pkg/config"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOfferingNotFound        = errs.New("offering not found")
	ErrHouseNotFound           = errs.New("house not found")
	ErrUserBlocked             = errs.New("user is blocked from this offering category")
	ErrAlreadyRegistered       = errs.New("user already holds an active registration")
	ErrSoldOut                 = errs.New("offering is sold out")
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrInvalidPaymentMethod    = errs.New("invalid payment method")
	ErrInvalidAmount           = errs.New("invalid amount")
	ErrPaymentGateway          = errs.New("payment gateway request failed")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyKeyReused    = errs.New("idempotency key reused with different request")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CheckoutResult struct {
	PaymentID      *uuid.UUID
	RegistrationID *uuid.UUID
	// RedirectURL is set for the online path only; manual, cash and free
	// paths confirm immediately.
	RedirectURL string
	IsReplayed  bool
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, req reqdto.CheckoutRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
	mpCfg   config.MercadoPagoConfig
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	clk clock.Clock,
	mpCfg config.MercadoPagoConfig,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:     uow,
		gateway: gateway,
		clock:   clk,
		mpCfg:   mpCfg,
	}
}

func (c *checkoutUseCaseImpl) Checkout(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CheckoutResult, error) {
	method := req.PaymentMethod()
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	off, house, err := c.validateEligibility(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	if method.RequiresWebhook() {
		return c.checkoutOnline(ctx, req, off, house, userID, idempotencyKey)
	}
	return c.checkoutImmediate(ctx, req, off, userID)
}

// validateEligibility runs the synchronous pre-checks: blocked user, double
// registration, and an advisory availability check. The authoritative
// capacity re-check happens at confirmation time under the offering lock.
func (c *checkoutUseCaseImpl) validateEligibility(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	userID uuid.UUID,
) (*offering.Offering, *shared.HouseSnapshot, error) {
	reads := c.uow.CommandReads()

	offSnap, err := reads.OfferingByID(ctx, req.OfferingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrOfferingNotFound
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	off, err := offSnap.ToDomain()
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDomainValidation)
	}

	house, err := reads.HouseByID(ctx, off.HouseID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrHouseNotFound
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	blocked, err := reads.IsUserBlocked(ctx, off.HouseID(), userID, off.Kind())
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if blocked {
		return nil, nil, ErrUserBlocked
	}

	active, err := reads.ActiveRegistration(ctx, off.ID(), userID)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if active != nil {
		return nil, nil, ErrAlreadyRegistered
	}

	confirmed, err := reads.ConfirmedUnits(ctx, off.ID())
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !off.CanAccommodate(confirmed, req.Quantity) {
		if off.Kind().UsesStock() {
			return nil, nil, ErrInsufficientStock
		}
		return nil, nil, ErrSoldOut
	}

	return off, house, nil
}

func (c *checkoutUseCaseImpl) checkoutOnline(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	off *offering.Offering,
	house *shared.HouseSnapshot,
	userID, idempotencyKey uuid.UUID,
) (*CheckoutResult, error) {
	baseCents := off.EffectivePrice() * int64(req.Quantity)
	finalCents := baseCents
	if req.FinalPriceCents != nil {
		finalCents = *req.FinalPriceCents
	}
	if finalCents <= 0 || finalCents < baseCents {
		return nil, ErrInvalidAmount
	}

	requestHash := calculateRequestHash(req)
	replayed, err := c.handleIdempotency(ctx, idempotencyKey, userID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return replayed, nil
	}

	now := c.clock.Now()
	ref := payment.NewExternalReference(off.Kind(), off.ID(), userID, now)

	commissionPct := house.CommissionFor(off.Kind())
	splitApplied := house.MPConnected

	p, err := payment.NewPayment(
		off.HouseID(), userID, off, req.Quantity,
		finalCents, baseCents,
		req.GetSubMethod(), ref, splitApplied, commissionPct, now,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// The external call stays outside the transaction; if it fails nothing
	// has been persisted and the caller may retry.
	prefReq := PreferenceRequest{
		Title:             off.Title(),
		Quantity:          req.Quantity,
		TotalCents:        finalCents,
		PayerEmail:        req.PayerEmail,
		PayerName:         req.PayerName,
		ExternalReference: ref.String(),
		OfferingID:        off.ID().String(),
	}
	var split *payment.Split
	if splitApplied {
		split, err = payment.ComputeSplit(p.ID(), off.HouseID(), finalCents, commissionPct, off.Kind(), now)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		prefReq.MarketplaceFeeCents = split.PlatformCents()
		if house.MPCollectorID != nil {
			prefReq.CollectorID = *house.MPCollectorID
		}
	}

	pref, err := c.gateway.CreatePreference(ctx, prefReq)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGateway)
	}
	p.AttachPreference(pref.PreferenceID)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Payments().Create(ctx, p, pref.InitPoint, pref.SandboxInitPoint); err != nil {
			return err
		}
		if split != nil {
			if err := tx.Payments().CreateSplit(ctx, split); err != nil {
				return err
			}
		}
		responseHash := calculateIDHash(p.ID())
		return tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, userID, responseHash, p.ID())
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	paymentID := p.ID()
	return &CheckoutResult{
		PaymentID:   &paymentID,
		RedirectURL: c.redirectFor(pref.InitPoint, pref.SandboxInitPoint),
	}, nil
}

// checkoutImmediate confirms manual, cash and free registrations inside one
// transaction under the offering lock; no payment row is written because no
// processor session exists.
func (c *checkoutUseCaseImpl) checkoutImmediate(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	off *offering.Offering,
	userID uuid.UUID,
) (*CheckoutResult, error) {
	method := req.PaymentMethod()
	amountCents := off.EffectivePrice() * int64(req.Quantity)
	if method == registration.MethodFree && amountCents != 0 {
		return nil, ErrInvalidAmount
	}

	now := c.clock.Now()
	var registrationID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Offerings().FindForUpdate(ctx, off.ID())
		if err != nil {
			return err
		}
		lockedOff, err := locked.ToDomain()
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if lockedOff.Kind().UsesStock() {
			ok, err := tx.Offerings().DecrementStock(ctx, lockedOff.ID(), req.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientStock
			}
		} else {
			confirmed, err := tx.Registrations().ConfirmedUnits(ctx, lockedOff.ID())
			if err != nil {
				return err
			}
			if !lockedOff.CanAccommodate(confirmed, req.Quantity) {
				return ErrSoldOut
			}
		}

		reg, err := registration.NewConfirmed(lockedOff, userID, req.Quantity, method, amountCents, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		registrationID, err = tx.Registrations().Create(ctx, reg)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrAlreadyRegistered
			}
			return err
		}

		if _, err := tx.Waitlist().Delete(ctx, lockedOff.ID(), userID); err != nil {
			return err
		}

		return createConfirmationJob(ctx, tx, registrationID, now)
	})
	if err != nil {
		if errors.Is(err, ErrSoldOut) || errors.Is(err, ErrInsufficientStock) ||
			errors.Is(err, ErrAlreadyRegistered) || errors.Is(err, ErrDomainValidation) {
			return nil, err
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CheckoutResult{RegistrationID: &registrationID}, nil
}

// handleIdempotency reserves the key or replays the stored result. The
// replayed redirect is rebuilt from the init point columns persisted with
// the original payment row.
func (c *checkoutUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
) (*CheckoutResult, error) {
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	insertErr := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().TryInsert(ctx, idempotencyKey, userID, "POST /checkout", requestHash, expiresAt)
	})
	if insertErr == nil {
		return nil, nil
	}
	if !infra.IsKind(insertErr, infra.KindDuplicateKey) {
		return nil, errs.Mark(insertErr, ErrIdempotencyCheckFailed)
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultPaymentID == nil {
			return nil, errs.New("completed request missing result payment ID")
		}
		snap, err := c.uow.CommandReads().PaymentByID(ctx, *existing.ResultPaymentID)
		if err != nil {
			return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		paymentID := snap.ID
		return &CheckoutResult{
			PaymentID:   &paymentID,
			RedirectURL: c.redirectFor(snap.InitPoint, snap.SandboxInitPoint),
			IsReplayed:  true,
		}, nil

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrIdempotencyKeyReused
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *checkoutUseCaseImpl) redirectFor(initPoint, sandboxInitPoint string) string {
	if c.mpCfg.Sandbox {
		return sandboxInitPoint
	}
	return initPoint
}

func createConfirmationJob(ctx context.Context, tx shared.Tx, registrationID uuid.UUID, runAt time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"registration_id": registrationID,
		"type":            "registration_confirmed",
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", "registration_confirmed", payload, runAt)
}

func calculateRequestHash(req reqdto.CheckoutRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
