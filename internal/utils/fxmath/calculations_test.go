package fxmath_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	"github.com/sokoflow/fx_engine/internal/utils/fxmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDecimal(t *testing.T) {
	d, err := fxmath.ToDecimal("100.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("100.50")))

	d, err = fxmath.ToDecimal("  129.5 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("129.5")))

	_, err = fxmath.ToDecimal("not-a-number")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = fxmath.ToDecimal("")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestRoundCurrency_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"}, // exact half rounds up
		{"2.346", "2.35"},
		{"13014.7500", "13014.75"},
		{"130.1475", "130.15"},
		{"0.005", "0.01"},
		{"100", "100"},
	}
	for _, tc := range cases {
		got := fxmath.RoundCurrency(decimal.RequireFromString(tc.in), fxmath.CurrencyScale)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "round(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestApplySpreadBps(t *testing.T) {
	rate := decimal.RequireFromString("129.50")

	buy := fxmath.ApplySpreadBps(rate, 50, fxmath.SpreadBuy)
	assert.True(t, buy.Equal(decimal.RequireFromString("130.1475")), "got %s", buy)

	sell := fxmath.ApplySpreadBps(rate, 50, fxmath.SpreadSell)
	assert.True(t, sell.Equal(decimal.RequireFromString("128.8525")), "got %s", sell)

	// Zero spread is the identity.
	same := fxmath.ApplySpreadBps(rate, 0, fxmath.SpreadBuy)
	assert.True(t, same.Equal(rate))

	// Buy marks up, sell marks down.
	assert.True(t, buy.GreaterThan(rate))
	assert.True(t, sell.LessThan(rate))
}

func TestSafeDivide(t *testing.T) {
	got, err := fxmath.SafeDivide(decimal.NewFromInt(1), decimal.RequireFromString("0.92"))
	require.NoError(t, err)
	// Inverting twice should land back within rounding distance of the original.
	roundTrip := got.Mul(decimal.RequireFromString("0.92"))
	diff := roundTrip.Sub(decimal.NewFromInt(1)).Abs()
	assert.True(t, diff.LessThan(decimal.RequireFromString("0.000000001")), "round trip drifted by %s", diff)

	_, err = fxmath.SafeDivide(decimal.NewFromInt(1), decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestQuoteAmountMath(t *testing.T) {
	// 100 USD at 129.50 with a 50 bps buy spread settles to 13014.75 KES.
	effective := fxmath.ApplySpreadBps(decimal.RequireFromString("129.50"), 50, fxmath.SpreadBuy)
	toAmount := fxmath.RoundCurrency(decimal.NewFromInt(100).Mul(effective), fxmath.CurrencyScale)
	assert.True(t, toAmount.Equal(decimal.RequireFromString("13014.75")), "got %s", toAmount)
}
