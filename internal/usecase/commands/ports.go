package commands

import (
	"context"

	"casaraiz-backend/internal/domain/payment"
)

// PreferenceRequest describes one hosted-checkout session: a single line
// item at the final (fee-inclusive) price, redirect targets scoped to the
// originating offering page and the webhook notification target.
type PreferenceRequest struct {
	Title    string
	Quantity int32
	// TotalCents is the final fee-inclusive amount for the whole line; the
	// gateway renders it as a single unit to avoid per-unit cent truncation.
	TotalCents        int64
	PayerEmail        string
	PayerName         string
	ExternalReference string
	OfferingID        string
	// MarketplaceFeeCents is the platform's cut, passed to the processor only
	// when the house has a connected collector account.
	MarketplaceFeeCents int64
	CollectorID         string
}

type PreferenceResponse struct {
	PreferenceID     string
	InitPoint        string
	SandboxInitPoint string
}

// GatewayPayment is the authoritative processor-side view of one payment,
// re-queried by id rather than trusted from a webhook payload.
type GatewayPayment struct {
	ExternalPaymentID string
	ExternalReference string
	Status            payment.Status
}

// PaymentGateway isolates the external processor so tests can fake delayed
// and duplicated webhook delivery.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*PreferenceResponse, error)
	PaymentByID(ctx context.Context, externalPaymentID string) (*GatewayPayment, error)
}
