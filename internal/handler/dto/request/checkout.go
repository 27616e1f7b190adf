package request

import (
	"strings"

	"casaraiz-backend/internal/domain/registration"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	OfferingID uuid.UUID `json:"offering_id" binding:"required"`
	Quantity   int32     `json:"quantity" binding:"required,min=1"`
	Method     string    `json:"method" binding:"required,oneof=online transfer cash free"`
	// SubMethod and FinalPriceCents apply to online payment only. The chosen
	// sub-method carries a processor-side final price that may include a
	// convenience fee over the base price.
	SubMethod       string `json:"sub_method,omitempty"`
	FinalPriceCents *int64 `json:"final_price_cents,omitempty"`
	PayerEmail      string `json:"payer_email" binding:"required,email"`
	PayerName       string `json:"payer_name" binding:"required"`
}

func (r CheckoutRequest) PaymentMethod() registration.Method {
	return registration.Method(r.Method)
}

func (r CheckoutRequest) GetSubMethod() string {
	return strings.TrimSpace(r.SubMethod)
}
