// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"github.com/go-playground/validator/v10"
)

// Constants for all supported currencies.
const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	NGN = "NGN"
	CAD = "CAD"
	AUD = "AUD"
	JPY = "JPY"
	CNY = "CNY"
	INR = "INR"
	BRL = "BRL"
	ZAR = "ZAR"
)

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	USD,
	EUR,
	GBP,
	NGN,
	CAD,
	AUD,
	JPY,
	CNY,
	INR,
	BRL,
	ZAR,
}

// IsSupportedCurrency returns true if the currency is supported.
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}

	return false
}

// ValidCurrency validates the currency field of a binding request.
var ValidCurrency validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if currency, ok := fieldLevel.Field().Interface().(string); ok {
		return IsSupportedCurrency(currency)
	}

	return false
}
