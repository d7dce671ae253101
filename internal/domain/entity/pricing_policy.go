package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
)

// RoundingDirection selects whether final prices round up or down
type RoundingDirection string

// RoundingDirection constants
const (
	RoundUp   RoundingDirection = "up"
	RoundDown RoundingDirection = "down"
)

// allowedIncrements lists the rounding increments a policy may use
var allowedIncrements = []decimal.Decimal{
	decimal.RequireFromString("0.05"),
	decimal.RequireFromString("0.10"),
	decimal.RequireFromString("0.25"),
	decimal.RequireFromString("0.50"),
}

// AllowedRoundingIncrements returns a copy of the permitted increments
func AllowedRoundingIncrements() []decimal.Decimal {
	out := make([]decimal.Decimal, len(allowedIncrements))
	copy(out, allowedIncrements)
	return out
}

// IsAllowedRoundingIncrement reports whether increment is in the permitted set
func IsAllowedRoundingIncrement(increment decimal.Decimal) bool {
	for _, allowed := range allowedIncrements {
		if increment.Equal(allowed) {
			return true
		}
	}
	return false
}

// PricingPolicy holds the operator-level inputs of price derivation
type PricingPolicy struct {
	ProcessingFeePercentage decimal.Decimal   `json:"processingFeePercentage"`
	SalesTaxPercentage      decimal.Decimal   `json:"salesTaxPercentage"`
	RoundingDirection       RoundingDirection `json:"roundingDirection"`
	RoundingIncrement       decimal.Decimal   `json:"roundingIncrement"`
}

// Validate checks the policy and returns the first offending field
func (p PricingPolicy) Validate() error {
	if p.ProcessingFeePercentage.IsNegative() {
		return errs.NewPricingPolicyError("processingFeePercentage", p.ProcessingFeePercentage.String(), errs.ErrNegativePercentage)
	}
	if p.SalesTaxPercentage.IsNegative() {
		return errs.NewPricingPolicyError("salesTaxPercentage", p.SalesTaxPercentage.String(), errs.ErrNegativePercentage)
	}
	if p.RoundingDirection != RoundUp && p.RoundingDirection != RoundDown {
		return errs.NewPricingPolicyError("roundingDirection", string(p.RoundingDirection), errs.ErrInvalidRoundingDirection)
	}
	if !IsAllowedRoundingIncrement(p.RoundingIncrement) {
		return errs.NewPricingPolicyError("roundingIncrement", p.RoundingIncrement.String(), errs.ErrInvalidRoundingIncrement)
	}
	return nil
}

// PricingSettings is the stored, possibly incomplete, policy of an operator
type PricingSettings struct {
	OperatorID              uuid.UUID
	ProcessingFeePercentage *decimal.Decimal
	SalesTaxPercentage      *decimal.Decimal
	RoundingDirection       *RoundingDirection
	RoundingIncrement       *decimal.Decimal
}

// Policy converts stored settings into a policy.
// A missing field is reported as ErrIncompletePricingPolicy; the returned
// policy is validated before it is handed out.
func (s *PricingSettings) Policy() (PricingPolicy, error) {
	switch {
	case s.ProcessingFeePercentage == nil:
		return PricingPolicy{}, errs.NewPricingPolicyError("processingFeePercentage", "", errs.ErrIncompletePricingPolicy)
	case s.SalesTaxPercentage == nil:
		return PricingPolicy{}, errs.NewPricingPolicyError("salesTaxPercentage", "", errs.ErrIncompletePricingPolicy)
	case s.RoundingDirection == nil:
		return PricingPolicy{}, errs.NewPricingPolicyError("roundingDirection", "", errs.ErrIncompletePricingPolicy)
	case s.RoundingIncrement == nil:
		return PricingPolicy{}, errs.NewPricingPolicyError("roundingIncrement", "", errs.ErrIncompletePricingPolicy)
	}

	policy := PricingPolicy{
		ProcessingFeePercentage: *s.ProcessingFeePercentage,
		SalesTaxPercentage:      *s.SalesTaxPercentage,
		RoundingDirection:       *s.RoundingDirection,
		RoundingIncrement:       *s.RoundingIncrement,
	}
	if err := policy.Validate(); err != nil {
		return PricingPolicy{}, err
	}
	return policy, nil
}

// PriceBreakdown is the itemised result of a price derivation
type PriceBreakdown struct {
	BasePrice          decimal.Decimal `json:"basePrice"`
	Commission         decimal.Decimal `json:"commission"`
	ProcessingFee      decimal.Decimal `json:"processingFee"`
	SalesTax           decimal.Decimal `json:"salesTax"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	FinalPrice         decimal.Decimal `json:"finalPrice"`
	RoundingDifference decimal.Decimal `json:"roundingDifference"`
}
