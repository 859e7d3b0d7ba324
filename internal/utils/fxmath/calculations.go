package fxmath

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/apperrors"
)

// CurrencyScale is the number of decimal places presented amounts are rounded to.
const CurrencyScale = 2

// bpsDenominator converts basis points to a fraction: 100 bps = 1%.
var bpsDenominator = decimal.NewFromInt(10000)

func init() {
	// Chained rate multiplications (cross rates) must not lose precision to the
	// default division precision of 16 digits.
	if decimal.DivisionPrecision < 28 {
		decimal.DivisionPrecision = 28
	}
}

// SpreadDirection selects which side of the spread is applied to a base rate.
type SpreadDirection int

const (
	// SpreadBuy marks the rate up: the customer pays more.
	SpreadBuy SpreadDirection = iota
	// SpreadSell marks the rate down: the customer receives less.
	SpreadSell
)

// ToDecimal parses an amount string into a decimal.
// Returns apperrors.ErrInvalidAmount when the input is not a valid decimal number.
func ToDecimal(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: cannot parse %q as a decimal", apperrors.ErrInvalidAmount, value)
	}
	return d, nil
}

// RoundCurrency rounds an amount to the given number of decimal places using
// half-up rounding. Only final presented amounts are rounded; intermediate rate
// values keep full precision.
func RoundCurrency(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.Round(places)
}

// ApplySpreadBps applies a basis-point spread to a rate.
// Buy multiplies by (1 + bps/10000), sell by (1 - bps/10000).
func ApplySpreadBps(rate decimal.Decimal, spreadBps int64, direction SpreadDirection) decimal.Decimal {
	spread := decimal.NewFromInt(spreadBps).Div(bpsDenominator)
	one := decimal.NewFromInt(1)
	if direction == SpreadBuy {
		return rate.Mul(one.Add(spread))
	}
	return rate.Mul(one.Sub(spread))
}

// SafeDivide divides a by b, failing rather than panicking when b is zero.
func SafeDivide(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: division by zero", apperrors.ErrValidation)
	}
	return a.Div(b), nil
}
