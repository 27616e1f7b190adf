package response

import (
	"casaraiz-backend/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	PaymentID      *uuid.UUID `json:"paymentId,omitempty"`
	RegistrationID *uuid.UUID `json:"registrationId,omitempty"`
	RedirectURL    string     `json:"redirectUrl,omitempty"`
	Replayed       bool       `json:"replayed"`
}

func FromCheckoutResult(result *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		PaymentID:      result.PaymentID,
		RegistrationID: result.RegistrationID,
		RedirectURL:    result.RedirectURL,
		Replayed:       result.IsReplayed,
	}
}
