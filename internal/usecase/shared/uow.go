package shared

import (
	"context"
	"time"

	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/domain/registration"
	"casaraiz-backend/internal/domain/waitlist"
	"casaraiz-backend/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Offerings() OfferingRepository
	Registrations() RegistrationRepository
	Payments() PaymentRepository
	Waitlist() WaitlistRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write-side validation reads. They return snapshots,
// never read models, to keep the command layer off the query DTOs.
type CommandReads interface {
	OfferingByID(ctx context.Context, id uuid.UUID) (*OfferingSnapshot, error)
	HouseByID(ctx context.Context, id uuid.UUID) (*HouseSnapshot, error)
	IsUserBlocked(ctx context.Context, houseID, userID uuid.UUID, category offering.Kind) (bool, error)
	ActiveRegistration(ctx context.Context, offeringID, userID uuid.UUID) (*RegistrationSnapshot, error)
	ConfirmedUnits(ctx context.Context, offeringID uuid.UUID) (int32, error)
	IsWaitlisted(ctx context.Context, offeringID, userID uuid.UUID) (bool, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	PaymentByExternalReference(ctx context.Context, ref string) (*PaymentSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type OfferingRepository interface {
	// FindForUpdate locks the offering row, serializing the capacity
	// re-check against concurrent confirmations.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*OfferingSnapshot, error)
	// DecrementStock is a single conditional decrement-if-sufficient;
	// it reports false when remaining stock is below quantity.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int32) (bool, error)
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int32) error
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg *registration.Registration) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RegistrationSnapshot, error)
	// ConfirmedUnits sums quantities over confirmed, non-cancelled rows.
	ConfirmedUnits(ctx context.Context, offeringID uuid.UUID) (int32, error)
	// MarkCancelled flips a confirmed row to cancelled; reports false when
	// the row was not in confirmed state (already cancelled, or missing).
	MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment, initPoint, sandboxInitPoint string) error
	// FindForUpdate locks the payment row so duplicate webhook deliveries
	// serialize on it.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	// TransitionFromPending is the conditional terminal write; it reports
	// false when the row already left pending (idempotent short-circuit).
	TransitionFromPending(ctx context.Context, id uuid.UUID, next payment.Status, externalPaymentID *string, registrationID *uuid.UUID) (bool, error)
	CreateSplit(ctx context.Context, s *payment.Split) error
	UpdateSplitTransfer(ctx context.Context, paymentID uuid.UUID, status payment.TransferStatus) (bool, error)
}

type WaitlistRepository interface {
	Create(ctx context.Context, e *waitlist.Entry) error
	// Delete reports whether an entry existed.
	Delete(ctx context.Context, offeringID, userID uuid.UUID) (bool, error)
	// ClaimNextUnnotified pops the promotion candidate: earliest joined-at
	// (ties broken by lower user id) among entries not yet notified, locked
	// with SKIP LOCKED so concurrent frees never claim the same entry.
	ClaimNextUnnotified(ctx context.Context, offeringID uuid.UUID, at time.Time) (*WaitlistEntrySnapshot, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, responseBodyHash string, resultPaymentID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
