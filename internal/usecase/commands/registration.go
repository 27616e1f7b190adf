package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRegistrationNotFound = errs.New("registration not found")
	ErrNotRegistrationOwner = errs.New("registration belongs to another user")
	ErrNotCancellable       = errs.New("registration is not cancellable")
)

type RegistrationCommands interface {
	// Cancel soft-cancels a confirmed registration and promotes waitlist
	// entries for the freed units.
	Cancel(ctx context.Context, registrationID, actorID uuid.UUID, actorIsOperator bool) error
}

type registrationUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRegistrationUseCase(uow shared.UnitOfWork, clk clock.Clock) RegistrationCommands {
	return &registrationUseCaseImpl{uow: uow, clock: clk}
}

func (r *registrationUseCaseImpl) Cancel(ctx context.Context, registrationID, actorID uuid.UUID, actorIsOperator bool) error {
	now := r.clock.Now()

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reg, err := tx.Registrations().FindByID(ctx, registrationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}
		if !actorIsOperator && reg.UserID != actorID {
			return ErrNotRegistrationOwner
		}

		// Conditional flip: only a confirmed row cancels, so a double cancel
		// or a cancel racing another one is a no-op past the first.
		ok, err := tx.Registrations().MarkCancelled(ctx, registrationID, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotCancellable
		}

		if reg.Kind.UsesStock() {
			if err := tx.Offerings().IncrementStock(ctx, reg.OfferingID, reg.Quantity); err != nil {
				return err
			}
		}

		return promoteWaitlist(ctx, tx, reg.OfferingID, reg.Quantity, now)
	})
	if err != nil {
		if errors.Is(err, ErrRegistrationNotFound) ||
			errors.Is(err, ErrNotRegistrationOwner) ||
			errors.Is(err, ErrNotCancellable) {
			return err
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// promoteWaitlist runs once per freed unit: each claim picks the earliest
// un-notified entry, stamps it and enqueues the offer notification. The
// entry itself stays queued until the user completes checkout or leaves.
func promoteWaitlist(ctx context.Context, tx shared.Tx, offeringID uuid.UUID, freedUnits int32, now time.Time) error {
	for i := int32(0); i < freedUnits; i++ {
		entry, err := tx.Waitlist().ClaimNextUnnotified(ctx, offeringID, now)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}

		payload, err := json.Marshal(map[string]any{
			"offering_id": offeringID,
			"user_id":     entry.UserID,
			"type":        "waitlist_spot_available",
		})
		if err != nil {
			return err
		}
		if err := tx.Notifications().CreateJob(ctx, "email", "waitlist_spot_available", payload, now); err != nil {
			return err
		}
	}
	return nil
}
