package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("rzp_test_key", "rzp_test_secret")

	t.Run("accepts a valid signature", func(t *testing.T) {
		sig := sign("rzp_test_secret", "order_abc", "pay_xyz")
		assert.True(t, c.VerifySignature("order_abc", "pay_xyz", sig))
	})

	t.Run("rejects a tampered signature", func(t *testing.T) {
		sig := sign("rzp_test_secret", "order_abc", "pay_xyz")
		tampered := "0" + sig[1:]
		if tampered == sig {
			tampered = "1" + sig[1:]
		}
		assert.False(t, c.VerifySignature("order_abc", "pay_xyz", tampered))
	})

	t.Run("rejects a signature for a different order", func(t *testing.T) {
		sig := sign("rzp_test_secret", "order_other", "pay_xyz")
		assert.False(t, c.VerifySignature("order_abc", "pay_xyz", sig))
	})

	t.Run("rejects a signature keyed with the wrong secret", func(t *testing.T) {
		sig := sign("wrong_secret", "order_abc", "pay_xyz")
		assert.False(t, c.VerifySignature("order_abc", "pay_xyz", sig))
	})

	t.Run("rejects an empty signature", func(t *testing.T) {
		assert.False(t, c.VerifySignature("order_abc", "pay_xyz", ""))
	})
}
