package utils

import (
	"testing"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   domain.CurrencyCode
		want   string
	}{
		{"small", "12.5", domain.CurrencyUSD, "$12.50"},
		{"thousands", "1234.5", domain.CurrencyUSD, "$1,234.50"},
		{"millions", "1234567.891", domain.CurrencyEUR, "€1,234,567.89"},
		{"exact three digits", "100", domain.CurrencyGBP, "£100.00"},
		{"rupee", "137.5", domain.CurrencyINR, "₹137.50"},
		{"negative", "-2500", domain.CurrencyUSD, "-$2,500.00"},
		{"unknown code", "10", domain.CurrencyCode("JPY"), "JPY 10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestCheckoutSignature(t *testing.T) {
	sig := CheckoutSignature("order_1", "pay_1", "secret")
	assert.Len(t, sig, 64)
	assert.True(t, VerifyCheckoutSignature("order_1", "pay_1", sig, "secret"))
	assert.False(t, VerifyCheckoutSignature("order_1", "pay_2", sig, "secret"))
	assert.False(t, VerifyCheckoutSignature("order_1", "pay_1", sig, "other"))
}

func TestRefreshTokenHash(t *testing.T) {
	raw, err := GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.Len(t, raw, 64)

	hash := HashRefreshToken(raw)
	assert.True(t, CompareRefreshTokenHash(raw, hash))
	assert.False(t, CompareRefreshTokenHash(raw+"x", hash))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("anything", ""))
}

func TestJWTRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user-1", "secret", time.Hour, "dustbill")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}
