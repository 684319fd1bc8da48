package moneypkg

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, err := Parse("500.00")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("500.00")))

	got, err = Parse("-0.01")
	require.NoError(t, err)
	require.True(t, got.IsNegative())

	_, err = Parse("five hundred")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Parse("")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFormatBWP(t *testing.T) {
	require.Equal(t, "BWP 500.00", FormatBWP(decimal.RequireFromString("500")))
	require.Equal(t, "BWP 1000.50", FormatBWP(decimal.RequireFromString("1000.5005")))
	require.Equal(t, "BWP 0.00", FormatBWP(decimal.Zero))
}

func TestFormatRate(t *testing.T) {
	require.Equal(t, "5%", FormatRate(decimal.RequireFromString("0.05")))
	require.Equal(t, "0.05%", FormatRate(decimal.RequireFromString("0.0005")))
}
