package quickpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChecksumHeader carries the HMAC-SHA256 signature QuickPay attaches to
// callback requests.
const ChecksumHeader = "Quickpay-Checksum-Sha256"

// APIError is a non-2xx response from the gateway. The upstream body is
// kept verbatim so handlers can attach it to their own error responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quickpay: status %d: %s", e.StatusCode, e.Body)
}

// Payment mirrors the subset of the gateway payment resource the shop uses.
type Payment struct {
	ID         int64       `json:"id"`
	OrderID    string      `json:"order_id"`
	Currency   string      `json:"currency"`
	Accepted   bool        `json:"accepted"`
	State      string      `json:"state"`
	Operations []Operation `json:"operations,omitempty"`
}

type Operation struct {
	Type         string `json:"type"`
	QPStatusCode string `json:"qp_status_code"`
	AmountOre    int64  `json:"amount"`
}

// Captured reports whether the gateway approved a capture operation.
// QuickPay uses status code 20000 for approved operations.
func (p Payment) Captured() bool {
	for _, op := range p.Operations {
		if op.Type == "capture" && op.QPStatusCode == "20000" {
			return true
		}
	}
	return false
}

type Client struct {
	baseURL    string
	apiKey     string
	privateKey string
	httpClient *http.Client
}

func New(baseURL, apiKey, privateKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		privateKey: privateKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreatePayment registers a payment for the order at the gateway.
func (c *Client) CreatePayment(ctx context.Context, orderID, currency string) (*Payment, error) {
	body := map[string]string{
		"order_id": orderID,
		"currency": currency,
	}
	var payment Payment
	if err := c.do(ctx, http.MethodPost, "/payments", body, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

type linkRequest struct {
	Amount      int64  `json:"amount"`
	ContinueURL string `json:"continue_url"`
	CancelURL   string `json:"cancel_url"`
	CallbackURL string `json:"callback_url"`
}

type linkResponse struct {
	URL string `json:"url"`
}

// CreatePaymentLink creates the hosted payment window link. Amount is in
// øre, as the gateway expects minor units.
func (c *Client) CreatePaymentLink(ctx context.Context, paymentID, amountOre int64, continueURL, cancelURL, callbackURL string) (string, error) {
	body := linkRequest{
		Amount:      amountOre,
		ContinueURL: continueURL,
		CancelURL:   cancelURL,
		CallbackURL: callbackURL,
	}
	var link linkResponse
	path := fmt.Sprintf("/payments/%d/link", paymentID)
	if err := c.do(ctx, http.MethodPut, path, body, &link); err != nil {
		return "", err
	}
	return link.URL, nil
}

// GetPayment fetches the live payment state from the gateway.
func (c *Client) GetPayment(ctx context.Context, paymentID int64) (*Payment, error) {
	var payment Payment
	path := fmt.Sprintf("/payments/%d", paymentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// VerifyChecksum checks the callback body signature against the account
// private key.
func (c *Client) VerifyChecksum(body []byte, checksum string) bool {
	mac := hmac.New(sha256.New, []byte(c.privateKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(checksum))
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept-Version", "v10")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode gateway response: %w", err)
		}
	}
	return nil
}
