package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sofraProject/foodDelivery-sub000/pkg/apperr"
	"go.uber.org/zap"
)

// PaymentProvider is the outbound charge call. It is the only external
// dependency in the order-creation path, so callers bound it with a
// context deadline.
type PaymentProvider interface {
	Charge(ctx context.Context, orderID uint, method string, amount int64) error
}

// HTTPPaymentProvider posts the charge to the configured provider.
type HTTPPaymentProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Log     *zap.Logger
}

func NewHTTPPaymentProvider(baseURL, apiKey string, log *zap.Logger) *HTTPPaymentProvider {
	return &HTTPPaymentProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{},
		Log:     log,
	}
}

type chargeRequest struct {
	OrderID uint   `json:"orderId"`
	Method  string `json:"method"`
	Amount  int64  `json:"amount"`
}

func (p *HTTPPaymentProvider) Charge(ctx context.Context, orderID uint, method string, amount int64) error {
	// No provider configured: accept the charge locally. Dev setups and
	// tests run this way.
	if p.BaseURL == "" {
		p.Log.Info("payment provider not configured, auto-approving",
			zap.Uint("orderId", orderID), zap.Int64("amount", amount))
		return nil
	}

	body, err := json.Marshal(chargeRequest{OrderID: orderID, Method: method, Amount: amount})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	res, err := p.Client.Do(req)
	if err != nil {
		// timeouts and connection failures both land here
		return fmt.Errorf("%w: %v", apperr.ErrUpstreamPayment, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: provider returned %d", apperr.ErrUpstreamPayment, res.StatusCode)
	}
	return nil
}
