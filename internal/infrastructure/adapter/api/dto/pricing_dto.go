package dto

import (
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
)

// PricingPolicyRequest carries a pricing policy with decimal fields as strings
type PricingPolicyRequest struct {
	ProcessingFeePercentage string `json:"processingFeePercentage" binding:"required"`
	SalesTaxPercentage      string `json:"salesTaxPercentage" binding:"required"`
	RoundingDirection       string `json:"roundingDirection" binding:"required"`
	RoundingIncrement       string `json:"roundingIncrement" binding:"required"`
}

// QuoteRequest represents the API request for a price quote with an explicit policy
type QuoteRequest struct {
	BasePrice            string               `json:"basePrice" binding:"required"`
	CommissionPercentage string               `json:"commissionPercentage" binding:"required"`
	Policy               PricingPolicyRequest `json:"policy" binding:"required"`
}

// OperatorQuoteRequest represents the API request for a quote using stored operator settings
type OperatorQuoteRequest struct {
	BasePrice            string `json:"basePrice" binding:"required"`
	CommissionPercentage string `json:"commissionPercentage" binding:"required"`
}

// PriceBreakdownResponse represents every component of a derived price
type PriceBreakdownResponse struct {
	BasePrice          string `json:"basePrice" yaml:"basePrice"`
	Commission         string `json:"commission" yaml:"commission"`
	ProcessingFee      string `json:"processingFee" yaml:"processingFee"`
	SalesTax           string `json:"salesTax" yaml:"salesTax"`
	Subtotal           string `json:"subtotal" yaml:"subtotal"`
	FinalPrice         string `json:"finalPrice" yaml:"finalPrice"`
	RoundingDifference string `json:"roundingDifference" yaml:"roundingDifference"`
}

// ImpliedCommissionResponse represents the commission percentage implied by an amount
type ImpliedCommissionResponse struct {
	CommissionAmount     string `json:"commissionAmount" yaml:"commissionAmount"`
	BasePrice            string `json:"basePrice" yaml:"basePrice"`
	CommissionPercentage string `json:"commissionPercentage" yaml:"commissionPercentage"`
}

// NewPriceBreakdownResponse converts a breakdown, keeping full precision on intermediates
func NewPriceBreakdownResponse(breakdown *entity.PriceBreakdown) PriceBreakdownResponse {
	return PriceBreakdownResponse{
		BasePrice:          breakdown.BasePrice.String(),
		Commission:         breakdown.Commission.String(),
		ProcessingFee:      breakdown.ProcessingFee.String(),
		SalesTax:           breakdown.SalesTax.String(),
		Subtotal:           breakdown.Subtotal.String(),
		FinalPrice:         breakdown.FinalPrice.StringFixed(2),
		RoundingDifference: breakdown.RoundingDifference.String(),
	}
}

// NewImpliedCommissionResponse builds the implied commission response
func NewImpliedCommissionResponse(amount, basePrice, percentage decimal.Decimal) ImpliedCommissionResponse {
	return ImpliedCommissionResponse{
		CommissionAmount:     amount.String(),
		BasePrice:            basePrice.String(),
		CommissionPercentage: percentage.String(),
	}
}
