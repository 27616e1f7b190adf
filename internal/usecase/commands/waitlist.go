package commands

import (
	"context"
	"errors"

	"casaraiz-backend/internal/domain/waitlist"
	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/pkg/clock"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAlreadyWaitlisted = errs.New("user already waitlisted")
	ErrNotWaitlisted     = errs.New("user is not waitlisted")
	ErrNotSoldOut        = errs.New("offering is not sold out")
)

type WaitlistCommands interface {
	// Join queues the user for a sold-out offering they hold no active
	// registration for.
	Join(ctx context.Context, offeringID, userID uuid.UUID) error
	Leave(ctx context.Context, offeringID, userID uuid.UUID) error
}

type waitlistUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewWaitlistUseCase(uow shared.UnitOfWork, clk clock.Clock) WaitlistCommands {
	return &waitlistUseCaseImpl{uow: uow, clock: clk}
}

func (w *waitlistUseCaseImpl) Join(ctx context.Context, offeringID, userID uuid.UUID) error {
	reads := w.uow.CommandReads()

	offSnap, err := reads.OfferingByID(ctx, offeringID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrOfferingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	off, err := offSnap.ToDomain()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	active, err := reads.ActiveRegistration(ctx, offeringID, userID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if active != nil {
		return ErrAlreadyRegistered
	}

	queued, err := reads.IsWaitlisted(ctx, offeringID, userID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if queued {
		return ErrAlreadyWaitlisted
	}

	confirmed, err := reads.ConfirmedUnits(ctx, offeringID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !off.IsSoldOut(confirmed) {
		return ErrNotSoldOut
	}

	entry := waitlist.NewEntry(offeringID, userID, w.clock.Now())
	err = w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Waitlist().Create(ctx, entry)
	})
	if err != nil {
		// The unique (offering, user) index closes the pre-check race.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return ErrAlreadyWaitlisted
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (w *waitlistUseCaseImpl) Leave(ctx context.Context, offeringID, userID uuid.UUID) error {
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		removed, err := tx.Waitlist().Delete(ctx, offeringID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotWaitlisted
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotWaitlisted) {
			return err
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
