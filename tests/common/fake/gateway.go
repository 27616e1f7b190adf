package fake

import (
	"context"

	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/commands"
)

// Gateway is a scripted stand-in for the payment processor client.
type Gateway struct {
	PreferenceResponse commands.PreferenceResponse
	PreferenceErr      error
	CreatedPreferences []commands.PreferenceRequest

	// PaymentStatuses maps external payment ids to scripted lookups.
	PaymentStatuses map[string]commands.GatewayPayment
	LookupErr       error
}

func NewGateway() *Gateway {
	return &Gateway{
		PreferenceResponse: commands.PreferenceResponse{
			PreferenceID:     "pref-123",
			InitPoint:        "https://mp.example/init/pref-123",
			SandboxInitPoint: "https://sandbox.mp.example/init/pref-123",
		},
		PaymentStatuses: make(map[string]commands.GatewayPayment),
	}
}

func (g *Gateway) CreatePreference(_ context.Context, req commands.PreferenceRequest) (*commands.PreferenceResponse, error) {
	if g.PreferenceErr != nil {
		return nil, g.PreferenceErr
	}
	g.CreatedPreferences = append(g.CreatedPreferences, req)
	resp := g.PreferenceResponse
	return &resp, nil
}

func (g *Gateway) PaymentByID(_ context.Context, externalPaymentID string) (*commands.GatewayPayment, error) {
	if g.LookupErr != nil {
		return nil, g.LookupErr
	}
	gw, ok := g.PaymentStatuses[externalPaymentID]
	if !ok {
		return nil, errs.New("unknown payment id")
	}
	return &gw, nil
}
