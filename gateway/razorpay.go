package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Order is the subset of the Razorpay order object this server uses
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units (paise)
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client talks to the Razorpay Orders API
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *resty.Client
}

func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      resty.New(),
	}
}

// CreateOrder opens an order with Razorpay for the given minor-unit amount.
// The raw response body is returned alongside the decoded order so callers
// can persist it for auditing.
func (c *Client) CreateOrder(amount int64, currency, receipt string) (*Order, []byte, error) {
	var order Order
	resp, err := c.http.R().
		SetBasicAuth(c.keyID, c.keySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		Post(c.baseURL + "/v1/orders")
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, nil, fmt.Errorf("razorpay API error: %s", resp.String())
	}
	return &order, resp.Body(), nil
}

// Signature returns hex(HMAC-SHA256(secret, orderID + "|" + paymentID)),
// the checkout callback signature scheme Razorpay documents.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether the supplied signature matches the
// recomputed one. Comparison is constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := Signature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
