package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CheckoutSignature computes the gateway signature for a completed checkout:
// hex(HMAC-SHA256(orderID + "|" + paymentID, secret)).
func CheckoutSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCheckoutSignature checks a signature returned by the checkout widget.
func VerifyCheckoutSignature(orderID, paymentID, signature, secret string) bool {
	expected := CheckoutSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
