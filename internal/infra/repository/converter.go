package repository

import (
	"casaraiz-backend/internal/domain/offering"
	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/pkg/pgconv"
	"casaraiz-backend/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type paymentRow interface {
	Scan(dest ...any) error
}

func scanPaymentSnapshot(row paymentRow) (*shared.PaymentSnapshot, error) {
	var (
		snap           shared.PaymentSnapshot
		kind           string
		status         string
		registrationID pgtype.UUID
		externalPayID  pgtype.Text
	)
	if err := row.Scan(
		&snap.ID, &snap.HouseID, &snap.UserID, &snap.OfferingID, &kind,
		&registrationID, &snap.Quantity,
		&snap.AmountCents, &snap.OriginalPriceCents, &snap.FeeCents, &snap.SubMethod,
		&snap.ExternalReference, &snap.PreferenceID, &externalPayID, &status,
		&snap.SplitApplied, &snap.CommissionPct, &snap.InitPoint, &snap.SandboxInitPoint,
		&snap.CreatedAt,
	); err != nil {
		return nil, err
	}

	snap.Kind = offering.Kind(kind)
	snap.Status = payment.Status(status)
	snap.RegistrationID = pgconv.UUIDPtrFromPgtype(registrationID)
	snap.ExternalPaymentID = pgconv.StringPtrFromPgtype(externalPayID)
	return &snap, nil
}
