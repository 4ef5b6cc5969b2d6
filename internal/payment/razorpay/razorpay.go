package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.razorpay.com/v1"
	defaultTimeout = 15 * time.Second
)

var (
	// ErrConfigInvalid marks missing or malformed gateway credentials.
	ErrConfigInvalid = errors.New("razorpay config invalid")
	// ErrRequestFailed marks a transport-level gateway failure.
	ErrRequestFailed = errors.New("razorpay request failed")
	// ErrResponseInvalid marks an unparseable gateway response.
	ErrResponseInvalid = errors.New("razorpay response invalid")
	// ErrSignatureMismatch marks a callback signature that does not verify.
	ErrSignatureMismatch = errors.New("razorpay signature mismatch")
)

// Config holds the gateway credentials.
type Config struct {
	KeyID     string `json:"key_id"`
	KeySecret string `json:"key_secret"`
	Currency  string `json:"currency"`
}

// Validate checks the credentials are present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.KeyID) == "" || strings.TrimSpace(c.KeySecret) == "" {
		return ErrConfigInvalid
	}
	return nil
}

// GatewayOrder is the gateway-side order created before checkout.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client talks to the Razorpay REST API.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a gateway client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// CreateOrder registers an order with the gateway. Amount is in minor
// currency units (paise for INR).
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	if amountMinor <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrRequestFailed)
	}
	if strings.TrimSpace(currency) == "" {
		currency = c.cfg.Currency
	}
	if strings.TrimSpace(currency) == "" {
		currency = "INR"
	}

	payload := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var order GatewayOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: empty order id", ErrResponseInvalid)
	}
	return &order, nil
}

// VerifySignature checks the checkout callback signature. The signed message
// is "<gateway_order_id>|<gateway_payment_id>".
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	if !VerifySignature(c.cfg.KeySecret, orderID, paymentID, signature) {
		return ErrSignatureMismatch
	}
	return nil
}

// VerifySignature computes the hex HMAC-SHA256 of orderID|paymentID with the
// key secret and compares it against signature in constant time.
func VerifySignature(keySecret, orderID, paymentID, signature string) bool {
	if keySecret == "" || orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := SignPayload(keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// SignPayload produces the signature the gateway would send for the pair.
func SignPayload(keySecret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
