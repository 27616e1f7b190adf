package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"casaraiz-backend/internal/domain/payment"
	"casaraiz-backend/internal/pkg/config"
	"casaraiz-backend/internal/pkg/errs"
	"casaraiz-backend/internal/usecase/commands"
)

// Client talks to Mercado Pago's Checkout Pro API: preference creation for
// the hosted checkout session and payment re-query for webhook processing.
type Client struct {
	http      *http.Client
	baseURL   string
	token     string
	publicURL string
	frontURL  string
}

func NewClient(mpCfg config.MercadoPagoConfig, srvCfg config.ServerConfig) *Client {
	return &Client{
		http:      &http.Client{Timeout: mpCfg.Timeout},
		baseURL:   mpCfg.BaseURL,
		token:     mpCfg.AccessToken,
		publicURL: srvCfg.PublicBaseURL,
		frontURL:  srvCfg.FrontBaseURL,
	}
}

type preferenceItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Quantity  int32   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type preferencePayer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type preferenceBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type preferencePayload struct {
	Items             []preferenceItem   `json:"items"`
	Payer             preferencePayer    `json:"payer"`
	ExternalReference string             `json:"external_reference"`
	BackURLs          preferenceBackURLs `json:"back_urls"`
	NotificationURL   string             `json:"notification_url"`
	MarketplaceFee    float64            `json:"marketplace_fee,omitempty"`
	CollectorID       string             `json:"collector_id,omitempty"`
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

func (c *Client) CreatePreference(ctx context.Context, req commands.PreferenceRequest) (*commands.PreferenceResponse, error) {
	payload := preferencePayload{
		Items: []preferenceItem{{
			ID:       req.OfferingID,
			Title:    itemTitle(req.Title, req.Quantity),
			Quantity: 1,
			// The whole fee-inclusive amount rides on one unit so no cents
			// are lost to per-unit division.
			UnitPrice: centsToDecimal(req.TotalCents),
		}},
		Payer: preferencePayer{
			Email: req.PayerEmail,
			Name:  req.PayerName,
		},
		ExternalReference: req.ExternalReference,
		BackURLs:          c.backURLs(req.OfferingID),
		NotificationURL:   c.publicURL + "/api/webhooks/mercadopago",
	}
	if req.MarketplaceFeeCents > 0 {
		payload.MarketplaceFee = centsToDecimal(req.MarketplaceFeeCents)
		payload.CollectorID = req.CollectorID
	}

	var resp preferenceResponse
	if err := c.post(ctx, "/checkout/preferences", payload, &resp); err != nil {
		return nil, err
	}

	return &commands.PreferenceResponse{
		PreferenceID:     resp.ID,
		InitPoint:        resp.InitPoint,
		SandboxInitPoint: resp.SandboxInitPoint,
	}, nil
}

type paymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
}

func (c *Client) PaymentByID(ctx context.Context, externalPaymentID string) (*commands.GatewayPayment, error) {
	var resp paymentResponse
	if err := c.get(ctx, "/v1/payments/"+url.PathEscape(externalPaymentID), &resp); err != nil {
		return nil, err
	}

	return &commands.GatewayPayment{
		ExternalPaymentID: resp.ID.String(),
		ExternalReference: resp.ExternalReference,
		Status:            mapStatus(resp.Status),
	}, nil
}

// mapStatus folds Mercado Pago's payment statuses into the engine's four
// outcomes. Anything not clearly terminal counts as pending so a later
// webhook can settle it.
func mapStatus(s string) payment.Status {
	switch s {
	case "approved":
		return payment.StatusApproved
	case "rejected", "charged_back":
		return payment.StatusRejected
	case "cancelled", "expired":
		return payment.StatusExpired
	default:
		return payment.StatusPending
	}
}

// backURLs carry the payment=<status> marker scoped to the offering page;
// the UI surfaces a notice and clears the parameter.
func (c *Client) backURLs(offeringID string) preferenceBackURLs {
	base := fmt.Sprintf("%s/offerings/%s", c.frontURL, offeringID)
	return preferenceBackURLs{
		Success: base + "?payment=success",
		Failure: base + "?payment=failure",
		Pending: base + "?payment=pending",
	}
}

func itemTitle(title string, quantity int32) string {
	if quantity > 1 {
		return fmt.Sprintf("%s x%d", title, quantity)
	}
	return title
}

func centsToDecimal(cents int64) float64 {
	return float64(cents) / 100
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Wrap(err, "mercadopago request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return errs.New(fmt.Sprintf("mercadopago returned %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode mercadopago response")
	}
	return nil
}
