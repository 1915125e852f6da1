package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ecommerce-service/internal/config"
)

// GatewayOrder is the provider-side handle of a created payment.
type GatewayOrder struct {
	ProviderID  string
	ApprovalURL string
}

// Gateway abstracts the external payment processor so services and tests
// do not depend on the PayPal REST API directly.
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64, currency string) (*GatewayOrder, error)
	CaptureOrder(ctx context.Context, providerID string) error
}

// PaypalClient is a thin client for the PayPal checkout REST API.
type PaypalClient struct {
	cfg    config.PaypalConfig
	client *http.Client
	logger *zap.Logger
}

// NewPaypalClient builds the client.
func NewPaypalClient(cfg config.PaypalConfig, logger *zap.Logger) *PaypalClient {
	return &PaypalClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// CreateOrder creates a checkout order and returns the approval link the
// buyer must visit.
func (c *PaypalClient) CreateOrder(ctx context.Context, amount float64, currency string) (*GatewayOrder, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]string{
				"currency_code": currency,
				"value":         strconv.FormatFloat(amount, 'f', 2, 64),
			},
		}},
		"application_context": map[string]string{
			"return_url": c.cfg.ReturnURL,
			"cancel_url": c.cfg.CancelURL,
		},
	}

	var created struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := c.postJSON(ctx, "/v2/checkout/orders", token, body, &created); err != nil {
		return nil, err
	}

	order := &GatewayOrder{ProviderID: created.ID}
	for _, link := range created.Links {
		if link.Rel == "approve" {
			order.ApprovalURL = link.Href
		}
	}
	c.logger.Info("paypal order created", zap.String("provider_id", order.ProviderID))
	return order, nil
}

// CaptureOrder captures an approved checkout order.
func (c *PaypalClient) CaptureOrder(ctx context.Context, providerID string) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", url.PathEscape(providerID))
	return c.postJSON(ctx, path, token, nil, nil)
}

func (c *PaypalClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request failed: %s", resp.Status)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func (c *PaypalClient) postJSON(ctx context.Context, path, token string, body, out any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, &payload)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("paypal request %s failed: %s", path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
