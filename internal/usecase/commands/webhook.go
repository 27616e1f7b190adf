package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/domain/registration"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound     = errs.New("payment not found")
	ErrMalformedWebhook    = errs.New("malformed webhook notification")
	ErrGatewayStatusLookup = errs.New("gateway status lookup failed")
)

// WebhookResult reports what the notification did; Outcome values are
// "confirmed", "unfulfilled", "rejected", "expired", "pending" and
// "short_circuit".
type WebhookResult struct {
	PaymentID      uuid.UUID
	RegistrationID *uuid.UUID
	Outcome        string
}

type WebhookCommands interface {
	// ProcessNotification handles one processor notification for the given
	// external payment id. Safe to invoke any number of times for the same
	// event.
	ProcessNotification(ctx context.Context, externalPaymentID string) (*WebhookResult, error)
}

type webhookUseCaseImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
}

func NewWebhookUseCase(uow shared.UnitOfWork, gateway PaymentGateway, clk clock.Clock) WebhookCommands {
	return &webhookUseCaseImpl{uow: uow, gateway: gateway, clock: clk}
}

func (w *webhookUseCaseImpl) ProcessNotification(ctx context.Context, externalPaymentID string) (*WebhookResult, error) {
	if externalPaymentID == "" {
		return nil, ErrMalformedWebhook
	}

	// The notification payload is never trusted; the processor is re-queried
	// for the authoritative status.
	gw, err := w.gateway.PaymentByID(ctx, externalPaymentID)
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayStatusLookup)
	}

	snap, err := w.uow.CommandReads().PaymentByExternalReference(ctx, gw.ExternalReference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if snap.Status.IsTerminal() {
		slog.Info("webhook short-circuit: payment already terminal",
			"payment_id", snap.ID, "status", string(snap.Status))
		return &WebhookResult{PaymentID: snap.ID, Outcome: "short_circuit"}, nil
	}

	switch gw.Status {
	case payment.StatusApproved:
		return w.confirmApproved(ctx, snap.ID, externalPaymentID)
	case payment.StatusRejected, payment.StatusExpired:
		return w.markTerminal(ctx, snap.ID, gw.Status, externalPaymentID)
	default:
		return &WebhookResult{PaymentID: snap.ID, Outcome: "pending"}, nil
	}
}

// confirmApproved performs the atomic confirmation: under the locked payment
// and offering rows it re-checks capacity, materializes the registration and
// flips the payment out of pending. A capacity race loss marks the payment
// approved-unfulfilled instead of overselling.
func (w *webhookUseCaseImpl) confirmApproved(ctx context.Context, paymentID uuid.UUID, externalPaymentID string) (*WebhookResult, error) {
	now := w.clock.Now()
	result := &WebhookResult{PaymentID: paymentID}

	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Payments().FindForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		// Duplicate deliveries serialize on the payment row lock; the loser
		// of that race sees a terminal status here.
		if p.Status.IsTerminal() {
			result.Outcome = "short_circuit"
			return nil
		}

		offSnap, err := tx.Offerings().FindForUpdate(ctx, p.OfferingID)
		if err != nil {
			return err
		}
		off, err := offSnap.ToDomain()
		if err != nil {
			return err
		}

		fits, err := claimCapacity(ctx, tx, off, p.Quantity)
		if err != nil {
			return err
		}
		if !fits {
			return w.markUnfulfilled(ctx, tx, p, externalPaymentID, result, now)
		}

		reg, err := registration.NewConfirmed(off, p.UserID, p.Quantity, registration.MethodOnline, p.AmountCents, now)
		if err != nil {
			return err
		}
		regID, err := tx.Registrations().Create(ctx, reg)
		if err != nil {
			// A concurrent confirmation for the same (offering, user) pair
			// already holds the seat; money moved with no seat to give, so
			// flag for manual reconciliation.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				if off.Kind().UsesStock() {
					if restockErr := tx.Offerings().IncrementStock(ctx, off.ID(), p.Quantity); restockErr != nil {
						return restockErr
					}
				}
				return w.markUnfulfilled(ctx, tx, p, externalPaymentID, result, now)
			}
			return err
		}

		extID := externalPaymentID
		ok, err := tx.Payments().TransitionFromPending(ctx, p.ID, payment.StatusApproved, &extID, &regID)
		if err != nil {
			return err
		}
		if !ok {
			result.Outcome = "short_circuit"
			return nil
		}

		if p.SplitApplied {
			if _, err := tx.Payments().UpdateSplitTransfer(ctx, p.ID, payment.TransferTransferred); err != nil {
				return err
			}
		}

		// The seat is taken now, so the user's waitlist claim (if any) is
		// satisfied.
		if _, err := tx.Waitlist().Delete(ctx, off.ID(), p.UserID); err != nil {
			return err
		}

		if err := createConfirmationJob(ctx, tx, regID, now); err != nil {
			return err
		}

		result.RegistrationID = &regID
		result.Outcome = "confirmed"
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return result, nil
}

// claimCapacity reports whether the requested units fit; for products it also
// takes them, as a single conditional decrement.
func claimCapacity(ctx context.Context, tx shared.Tx, off *offering.Offering, quantity int32) (bool, error) {
	if off.Kind().UsesStock() {
		return tx.Offerings().DecrementStock(ctx, off.ID(), quantity)
	}

	confirmed, err := tx.Registrations().ConfirmedUnits(ctx, off.ID())
	if err != nil {
		return false, err
	}
	return off.CanAccommodate(confirmed, quantity), nil
}

func (w *webhookUseCaseImpl) markUnfulfilled(
	ctx context.Context,
	tx shared.Tx,
	p *shared.PaymentSnapshot,
	externalPaymentID string,
	result *WebhookResult,
	now time.Time,
) error {
	extID := externalPaymentID
	ok, err := tx.Payments().TransitionFromPending(ctx, p.ID, payment.StatusUnfulfilled, &extID, nil)
	if err != nil {
		return err
	}
	if !ok {
		result.Outcome = "short_circuit"
		return nil
	}

	if p.SplitApplied {
		if _, err := tx.Payments().UpdateSplitTransfer(ctx, p.ID, payment.TransferFailed); err != nil {
			return err
		}
	}

	// Money moved but no seat exists; the house operators must see this.
	payload, err := json.Marshal(map[string]any{
		"payment_id": p.ID,
		"house_id":   p.HouseID,
		"type":       "payment_unfulfilled",
	})
	if err != nil {
		return err
	}
	if err := tx.Notifications().CreateJob(ctx, "operator_alert", "payment_unfulfilled", payload, now); err != nil {
		return err
	}

	result.Outcome = "unfulfilled"
	return nil
}

func (w *webhookUseCaseImpl) markTerminal(ctx context.Context, paymentID uuid.UUID, next payment.Status, externalPaymentID string) (*WebhookResult, error) {
	result := &WebhookResult{PaymentID: paymentID}

	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		extID := externalPaymentID
		ok, err := tx.Payments().TransitionFromPending(ctx, paymentID, next, &extID, nil)
		if err != nil {
			return err
		}
		if !ok {
			result.Outcome = "short_circuit"
			return nil
		}
		result.Outcome = string(next)
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return result, nil
}
