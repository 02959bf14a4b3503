package domain

// CurrencyCode is an ISO 4217 code accepted on invoices.
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyINR CurrencyCode = "INR"
)

// DefaultCurrency is used when an invoice does not name one.
const DefaultCurrency = CurrencyUSD

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode CurrencyCode `json:"currencyCode"`
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	Precision    int          `json:"precision"`
}

var supportedCurrencies = map[CurrencyCode]Currency{
	CurrencyUSD: {CurrencyCode: CurrencyUSD, Symbol: "$", Name: "US Dollar", Precision: 2},
	CurrencyEUR: {CurrencyCode: CurrencyEUR, Symbol: "€", Name: "Euro", Precision: 2},
	CurrencyGBP: {CurrencyCode: CurrencyGBP, Symbol: "£", Name: "British Pound", Precision: 2},
	CurrencyINR: {CurrencyCode: CurrencyINR, Symbol: "₹", Name: "Indian Rupee", Precision: 2},
}

// LookupCurrency returns the currency metadata for code.
func LookupCurrency(code CurrencyCode) (Currency, bool) {
	c, ok := supportedCurrencies[code]
	return c, ok
}

// IsSupportedCurrency reports whether invoices may be issued in code.
func IsSupportedCurrency(code CurrencyCode) bool {
	_, ok := supportedCurrencies[code]
	return ok
}

// SupportedCurrencies lists the currency codes in display order.
func SupportedCurrencies() []Currency {
	return []Currency{
		supportedCurrencies[CurrencyUSD],
		supportedCurrencies[CurrencyEUR],
		supportedCurrencies[CurrencyGBP],
		supportedCurrencies[CurrencyINR],
	}
}
