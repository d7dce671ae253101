package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/persistence"
)

// Service exposes price derivation with and without stored operator settings
type Service struct {
	settingsRepo persistence.PricingSettingsRepository
	logger       coreport.Logger
}

// NewPricingService creates a new pricing service
func NewPricingService(settingsRepo persistence.PricingSettingsRepository, logger coreport.Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Quote derives a price from an explicit policy
func (s *Service) Quote(basePrice, commissionPercentage decimal.Decimal, policy entity.PricingPolicy) (*entity.PriceBreakdown, error) {
	breakdown, err := Calculate(basePrice, commissionPercentage, policy)
	if err != nil {
		s.logRejected(err, map[string]any{
			"base_price": basePrice.String(),
			"commission": commissionPercentage.String(),
		})
		return nil, err
	}
	return breakdown, nil
}

// QuoteForOperator loads the operator's pricing settings and derives a price with them
func (s *Service) QuoteForOperator(
	ctx context.Context,
	operatorID uuid.UUID,
	basePrice, commissionPercentage decimal.Decimal,
) (*entity.PriceBreakdown, error) {
	if operatorID == uuid.Nil {
		return nil, errs.ErrInvalidOperatorID
	}

	settings, err := s.settingsRepo.GetByOperator(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("loading pricing settings for operator %s: %w", operatorID, err)
	}

	policy, err := settings.Policy()
	if err != nil {
		s.logRejected(err, map[string]any{"operator_id": operatorID.String()})
		return nil, err
	}

	breakdown, err := s.Quote(basePrice, commissionPercentage, policy)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Price derived for operator", map[string]any{
		"operator_id": operatorID.String(),
		"final_price": breakdown.FinalPrice.String(),
	})
	return breakdown, nil
}

// ImpliedCommissionPercentage returns the percentage a commission amount represents
func (s *Service) ImpliedCommissionPercentage(commissionAmount, basePrice decimal.Decimal) (decimal.Decimal, error) {
	return ImpliedCommissionPercentage(commissionAmount, basePrice)
}

func (s *Service) logRejected(err error, fields map[string]any) {
	if lf, ok := err.(interface{ LogFields() map[string]any }); ok {
		for k, v := range lf.LogFields() {
			fields[k] = v
		}
	} else {
		fields["error"] = err.Error()
	}
	s.logger.Warn("Price derivation rejected", fields)
}
