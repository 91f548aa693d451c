package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"net/url"
	"time"
)

// GrossUpAmount computes the payable amount for a course price by grossing up
// for the gateway fee and GST on that fee, rounded up to the next rupee:
// amount / (1 - fee*(1+gst)).
func GrossUpAmount(price int64, feePercent, gstPercent float64) int64 {
	divisor := 1 - feePercent*(1+gstPercent)
	return int64(math.Ceil(float64(price) / divisor))
}

// ToPaise converts a rupee amount to paise
func ToPaise(rupees int64) int64 {
	return rupees * 100
}

// GenerateReceiptNumber returns a receipt number of the form
// SDN + YYYYMM + 4 random digits, e.g. SDN2026081234.
func GenerateReceiptNumber(now time.Time) string {
	return "SDN" + now.Format("200601") + randomDigits(4)
}

// GenerateOTPCode returns a 6-digit one-time code
func GenerateOTPCode() string {
	return randomDigits(6)
}

const passwordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTempPassword returns a random password for payment-pre-created
// student accounts. Ambiguous characters are excluded.
func GenerateTempPassword() string {
	b := make([]byte, 12)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure is not recoverable
		}
		b[i] = passwordCharset[n.Int64()]
	}
	return string(b)
}

// BuildUPILink builds a upi://pay deep link for the given payee and amount
func BuildUPILink(vpa, payeeName string, amountRupees int64, note string) string {
	params := url.Values{}
	params.Set("pa", vpa)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%d", amountRupees))
	params.Set("cu", "INR")
	if note != "" {
		params.Set("tn", note)
	}
	return "upi://pay?" + params.Encode()
}

func randomDigits(n int) string {
	b := make([]byte, n)
	ten := big.NewInt(10)
	for i := range b {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			panic(err)
		}
		b[i] = byte('0' + d.Int64())
	}
	return string(b)
}
