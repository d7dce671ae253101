package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
)

// Calculate derives the customer price of an item.
//
//	commission    = basePrice * commission% / 100
//	processingFee = commission * fee% / 100
//	salesTax      = commission * tax% / 100
//	subtotal      = basePrice + commission + processingFee + salesTax
//	finalPrice    = subtotal rounded up or down to a multiple of the increment
//
// All arithmetic is exact. The policy is validated first and an invalid
// policy yields an error and no price.
func Calculate(basePrice, commissionPercentage decimal.Decimal, policy entity.PricingPolicy) (*entity.PriceBreakdown, error) {
	if !basePrice.IsPositive() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidBasePrice, basePrice.String())
	}
	if commissionPercentage.IsNegative() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCommission, commissionPercentage.String())
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	commission := percentOf(basePrice, commissionPercentage)
	processingFee := percentOf(commission, policy.ProcessingFeePercentage)
	salesTax := percentOf(commission, policy.SalesTaxPercentage)
	subtotal := basePrice.Add(commission).Add(processingFee).Add(salesTax)

	finalPrice := roundToIncrement(subtotal, policy.RoundingIncrement, policy.RoundingDirection)

	return &entity.PriceBreakdown{
		BasePrice:          basePrice,
		Commission:         commission,
		ProcessingFee:      processingFee,
		SalesTax:           salesTax,
		Subtotal:           subtotal,
		FinalPrice:         finalPrice,
		RoundingDifference: finalPrice.Sub(subtotal),
	}, nil
}

// ImpliedCommissionPercentage returns commissionAmount as a percentage of basePrice,
// rounded to four decimal places
func ImpliedCommissionPercentage(commissionAmount, basePrice decimal.Decimal) (decimal.Decimal, error) {
	if !basePrice.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidBasePrice, basePrice.String())
	}
	if commissionAmount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidCommission, commissionAmount.String())
	}
	return commissionAmount.Shift(2).DivRound(basePrice, 4), nil
}

// percentOf returns value * percentage / 100
func percentOf(value, percentage decimal.Decimal) decimal.Decimal {
	return value.Mul(percentage).Shift(-2)
}

// roundToIncrement snaps value to a multiple of increment.
// QuoRem with zero precision yields the exact integer number of increments
// and the remainder, so a zero remainder means value is already on a boundary.
func roundToIncrement(value, increment decimal.Decimal, direction entity.RoundingDirection) decimal.Decimal {
	steps, remainder := value.QuoRem(increment, 0)

	switch {
	case direction == entity.RoundUp && remainder.IsPositive():
		steps = steps.Add(decimal.NewFromInt(1))
	case direction == entity.RoundDown && remainder.IsNegative():
		steps = steps.Sub(decimal.NewFromInt(1))
	}

	return steps.Mul(increment)
}
