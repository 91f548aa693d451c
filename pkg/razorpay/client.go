package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	rzpsdk "github.com/razorpay/razorpay-go"
)

// Order is the subset of a Razorpay order the enrollment flow needs
type Order struct {
	ID       string
	Amount   int64 // paise
	Currency string
}

// Client wraps the Razorpay SDK for order issuance and holds the key secret
// used to verify checkout signatures.
type Client struct {
	keyID     string
	keySecret string
	api       *rzpsdk.Client
}

// NewClient creates a new Razorpay client
func NewClient(keyID, keySecret string) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		api:       rzpsdk.NewClient(keyID, keySecret),
	}
}

// KeyID returns the public key id the frontend checkout needs
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder creates a Razorpay order for the given amount in paise
func (c *Client) CreateOrder(amountPaise int64, receipt string, notes map[string]interface{}) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	if notes != nil {
		data["notes"] = notes
	}

	raw, err := c.api.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := raw["id"].(string)
	if !ok || id == "" {
		return nil, errors.New("razorpay order create: response missing order id")
	}
	order := &Order{ID: id, Amount: amountPaise, Currency: "INR"}
	if amt, ok := raw["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := raw["currency"].(string); ok {
		order.Currency = cur
	}
	return order, nil
}

// VerifySignature recomputes the checkout signature, HMAC-SHA256 over
// "orderID|paymentID" keyed with the key secret, and compares it in constant
// time against the one the client supplied.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
