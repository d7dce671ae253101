package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
)

// Bounds applied to externally supplied prices and percentages
const (
	MinInputExponent = -8
	MaxInputExponent = 6
)

var maxInputMagnitude = decimal.NewFromInt(1_000_000)

// ParseBoundedDecimal parses a price or percentage input. Values with more than
// eight fractional digits or an absolute value above 1,000,000 are rejected
// before any arithmetic runs on them.
func ParseBoundedDecimal(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	// Checked before Cmp, which rescales both operands to a common exponent
	if exp := value.Exponent(); exp < MinInputExponent || exp > MaxInputExponent {
		return decimal.Zero, fmt.Errorf("%w: exponent %d", errs.ErrDecimalOutOfRange, exp)
	}
	if value.Abs().GreaterThan(maxInputMagnitude) {
		return decimal.Zero, fmt.Errorf("%w: magnitude above %s", errs.ErrDecimalOutOfRange, maxInputMagnitude)
	}
	return value, nil
}
