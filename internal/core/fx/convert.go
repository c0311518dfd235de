// Package fx implements pure currency conversion over a supplied
// EUR-pivot rate table. It never fetches rates itself.
package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finledger/ledgerd/internal/apperrors"
	"github.com/finledger/ledgerd/internal/core/domain"
)

// minorUnits maps ISO 4217 codes with non-standard minor units.
// Everything else uses two decimal places.
var minorUnits = map[string]int32{
	"BHD": 3,
	"IQD": 3,
	"JOD": 3,
	"JPY": 0,
	"KRW": 0,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
	"VND": 0,
}

// MinorUnits returns the number of decimal places used by the currency.
func MinorUnits(currencyCode string) int32 {
	if units, ok := minorUnits[currencyCode]; ok {
		return units
	}
	return 2
}

// Convert converts amount from one currency to another through the EUR
// pivot: result = amount / rates[from] * rates[to]. Intermediate
// arithmetic is unrounded; only the final value is rounded half-even to
// the target currency's minor units, bounding cumulative drift across
// repeated conversions. A same-currency conversion returns the amount
// unchanged.
func Convert(amount decimal.Decimal, from, to string, rates domain.RateTable) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s not in rate table", apperrors.ErrUnknownCurrency, from)
	}
	toRate, ok := rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s not in rate table", apperrors.ErrUnknownCurrency, to)
	}
	if fromRate.LessThanOrEqual(decimal.Zero) || toRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: rates must be positive (%s=%s, %s=%s)",
			apperrors.ErrValidation, from, fromRate.String(), to, toRate.String())
	}

	converted := amount.Div(fromRate).Mul(toRate)
	return converted.RoundBank(MinorUnits(to)), nil
}
