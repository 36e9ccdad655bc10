package core

import "errors"

// CurrencyCode selects the display symbol for amounts. It never converts or
// alters stored cents.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	INR CurrencyCode = "INR"
	JPY CurrencyCode = "JPY"
	AUD CurrencyCode = "AUD"
	CAD CurrencyCode = "CAD"
)

// DefaultCurrency is used when no currency has been persisted yet.
const DefaultCurrency = USD

var ErrInvalidCurrency = errors.New("unknown currency code")

var currencySymbols = map[CurrencyCode]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	INR: "₹",
	JPY: "¥",
	AUD: "A$",
	CAD: "C$",
}

// Currencies returns the selectable currency codes in display order.
func Currencies() []CurrencyCode {
	return []CurrencyCode{USD, EUR, GBP, INR, JPY, AUD, CAD}
}

func (c CurrencyCode) Valid() bool {
	_, ok := currencySymbols[c]
	return ok
}

// Symbol returns the display symbol for the code, or the code itself for an
// unknown value so formatting stays readable.
func (c CurrencyCode) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c)
}

// ParseCurrency validates a bare code string as read from the persistence
// provider or a form value.
func ParseCurrency(s string) (CurrencyCode, error) {
	c := CurrencyCode(s)
	if !c.Valid() {
		return "", ErrInvalidCurrency
	}
	return c, nil
}
