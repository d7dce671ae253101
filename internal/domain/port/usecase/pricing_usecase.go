package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// PricingUseCase derives customer prices
type PricingUseCase interface {
	// Quote derives a price from an explicit policy
	Quote(basePrice, commissionPercentage decimal.Decimal, policy entity.PricingPolicy) (*entity.PriceBreakdown, error)

	// QuoteForOperator derives a price using the operator's stored settings
	//
	// Possible errors:
	// - ErrPricingSettingsNotFound: If the operator has no settings
	// - ErrIncompletePricingPolicy: If a stored field is missing
	QuoteForOperator(ctx context.Context, operatorID uuid.UUID, basePrice, commissionPercentage decimal.Decimal) (*entity.PriceBreakdown, error)

	// ImpliedCommissionPercentage returns the commission percentage a commission amount represents
	ImpliedCommissionPercentage(commissionAmount, basePrice decimal.Decimal) (decimal.Decimal, error)
}
