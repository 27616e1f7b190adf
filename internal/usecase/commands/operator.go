package commands

import (
	"context"
	"encoding/json"
	"errors"

	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotUnfulfilled = errs.New("payment is not in unfulfilled state")
	ErrNotHouseOperator      = errs.New("payment belongs to another house")
	ErrInvalidResolution     = errs.New("invalid resolution action")
)

// ResolutionAction is the operator's answer to an approved-unfulfilled
// payment: request a refund, or re-offer the freed unit to the waitlist.
type ResolutionAction string

const (
	ResolutionRefund  ResolutionAction = "refund"
	ResolutionReoffer ResolutionAction = "reoffer"
)

func (a ResolutionAction) IsValid() bool {
	return a == ResolutionRefund || a == ResolutionReoffer
}

type OperatorCommands interface {
	// ResolveUnfulfilled records the manual reconciliation decision for a
	// payment that was approved after capacity ran out.
	ResolveUnfulfilled(ctx context.Context, paymentID, houseID uuid.UUID, action ResolutionAction) error
}

type operatorUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOperatorUseCase(uow shared.UnitOfWork, clk clock.Clock) OperatorCommands {
	return &operatorUseCaseImpl{uow: uow, clock: clk}
}

func (o *operatorUseCaseImpl) ResolveUnfulfilled(ctx context.Context, paymentID, houseID uuid.UUID, action ResolutionAction) error {
	if !action.IsValid() {
		return ErrInvalidResolution
	}

	now := o.clock.Now()
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Payments().FindForUpdate(ctx, paymentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if p.HouseID != houseID {
			return ErrNotHouseOperator
		}
		if p.Status != payment.StatusUnfulfilled {
			return ErrPaymentNotUnfulfilled
		}

		switch action {
		case ResolutionRefund:
			payload, err := json.Marshal(map[string]any{
				"payment_id": p.ID,
				"user_id":    p.UserID,
				"type":       "payment_refund_requested",
			})
			if err != nil {
				return err
			}
			return tx.Notifications().CreateJob(ctx, "operator_alert", "payment_refund_requested", payload, now)

		case ResolutionReoffer:
			return promoteWaitlist(ctx, tx, p.OfferingID, p.Quantity, now)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) ||
			errors.Is(err, ErrNotHouseOperator) ||
			errors.Is(err, ErrPaymentNotUnfulfilled) {
			return err
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
