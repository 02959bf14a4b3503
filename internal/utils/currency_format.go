package utils

import (
	"strings"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount for display in emails and responses,
// e.g. 1234.5 USD -> "$1,234.50". Unknown codes fall back to the code as prefix.
func FormatMoney(amount decimal.Decimal, code domain.CurrencyCode) string {
	symbol := string(code) + " "
	precision := int32(2)
	if c, ok := domain.LookupCurrency(code); ok {
		symbol = c.Symbol
		precision = int32(c.Precision)
	}
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + symbol + groupThousands(amount.StringFixed(precision))
}

func groupThousands(fixed string) string {
	intPart, frac, hasFrac := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return fixed
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
