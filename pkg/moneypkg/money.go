// Package moneypkg provides common money handling for the app. All amounts
// are Botswana Pula; formatting renders two decimal places while the
// underlying decimals keep full precision.
package moneypkg

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount indicates an unparseable money amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a request amount string into a decimal.
func Parse(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	return d, nil
}

// FormatBWP renders an amount for display, e.g. "BWP 500.00".
func FormatBWP(amount decimal.Decimal) string {
	return "BWP " + amount.StringFixed(2)
}

// FormatRate renders a fractional rate as a percentage, e.g. 0.05 -> "5%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
