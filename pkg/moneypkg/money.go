// Package moneypkg provides helpers for monetary amounts.
package moneypkg

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ParsePositive parses s as a decimal monetary amount. The second
// return value is false when s is not a number or not strictly positive.
func ParsePositive(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, false
	}

	return d, true
}

// Format renders an amount with two decimal places for display.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ValidAmount is a gin binding validator for positive decimal amounts.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if amount, ok := fl.Field().Interface().(string); ok {
		_, valid := ParsePositive(amount)
		return valid
	}

	return false
}
