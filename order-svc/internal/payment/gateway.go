package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"foodcourt-ordering/order-svc/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the thin adapter to the external payment gateway. It creates
// payment intents and verifies the completion signature; everything else
// about the gateway is out of scope.
type Client struct {
	baseURL string
	keyID   string
	secret  string
	client  HTTPClient
}

func NewClient(baseURL, keyID, secret string, client HTTPClient) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: baseURL, keyID: keyID, secret: secret, client: client}
}

type intentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type intentResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateIntent opens a gateway order for the given amount in minor currency
// units.
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (*domain.PaymentIntent, error) {
	body, _ := json.Marshal(intentRequest{Amount: amountMinor, Currency: currency, Receipt: receipt})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.secret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var decoded intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if decoded.ID == "" {
		return nil, fmt.Errorf("gateway response missing order id")
	}

	return &domain.PaymentIntent{
		GatewayOrderID: decoded.ID,
		Amount:         decoded.Amount,
		Currency:       decoded.Currency,
		Receipt:        decoded.Receipt,
	}, nil
}

// VerifySignature recomputes the HMAC the gateway signs on completion:
// SHA-256 over "<gatewayOrderID>|<paymentID>" with the shared secret.
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
