package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/dto"
)

const decimalInputHint = "must be a decimal with at most 8 fractional digits and an absolute value of at most 1000000"

// QuoteObserver counts price derivations by result
type QuoteObserver interface {
	IncPriceQuote(result string)
}

// PricingHandler handles price quote HTTP requests
type PricingHandler struct {
	pricing  usecase.PricingUseCase
	observer QuoteObserver
	logger   coreport.Logger
}

// NewPricingHandler creates a new pricing handler instance; observer may be nil
func NewPricingHandler(pricing usecase.PricingUseCase, observer QuoteObserver, logger coreport.Logger) *PricingHandler {
	return &PricingHandler{
		pricing:  pricing,
		observer: observer,
		logger:   logger,
	}
}

// Quote handles POST /pricing/quote
func (h *PricingHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domainerr.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}

	basePrice, commission, ok := h.parseAmounts(c, req.BasePrice, req.CommissionPercentage)
	if !ok {
		return
	}

	policy, err := parsePolicy(req.Policy)
	if err != nil {
		h.observe("rejected")
		writeError(c, err)
		return
	}

	breakdown, err := h.pricing.Quote(basePrice, commission, policy)
	h.respond(c, breakdown, err)
}

// QuoteForOperator handles POST /operators/:operatorId/pricing/quote
func (h *PricingHandler) QuoteForOperator(c *gin.Context) {
	operatorID, err := uuid.Parse(c.Param("operatorId"))
	if err != nil {
		badRequest(c, domainerr.ErrInvalidOperatorID, "Invalid operator ID format")
		return
	}

	var req dto.OperatorQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, domainerr.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}

	basePrice, commission, ok := h.parseAmounts(c, req.BasePrice, req.CommissionPercentage)
	if !ok {
		return
	}

	breakdown, err := h.pricing.QuoteForOperator(c.Request.Context(), operatorID, basePrice, commission)
	h.respond(c, breakdown, err)
}

// ImpliedCommission handles GET /pricing/implied-commission
func (h *PricingHandler) ImpliedCommission(c *gin.Context) {
	amount, err := entity.ParseBoundedDecimal(c.Query("commissionAmount"))
	if err != nil {
		badRequest(c, domainerr.ErrInvalidCommission, "commissionAmount "+decimalInputHint)
		return
	}
	basePrice, err := entity.ParseBoundedDecimal(c.Query("basePrice"))
	if err != nil {
		badRequest(c, domainerr.ErrInvalidBasePrice, "basePrice "+decimalInputHint)
		return
	}

	percentage, err := h.pricing.ImpliedCommissionPercentage(amount, basePrice)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewImpliedCommissionResponse(amount, basePrice, percentage))
}

func (h *PricingHandler) parseAmounts(c *gin.Context, rawBase, rawCommission string) (decimal.Decimal, decimal.Decimal, bool) {
	basePrice, err := entity.ParseBoundedDecimal(rawBase)
	if err != nil {
		badRequest(c, domainerr.ErrInvalidBasePrice, "basePrice "+decimalInputHint)
		return decimal.Zero, decimal.Zero, false
	}
	commission, err := entity.ParseBoundedDecimal(rawCommission)
	if err != nil {
		badRequest(c, domainerr.ErrInvalidCommission, "commissionPercentage "+decimalInputHint)
		return decimal.Zero, decimal.Zero, false
	}
	return basePrice, commission, true
}

func (h *PricingHandler) respond(c *gin.Context, breakdown *entity.PriceBreakdown, err error) {
	if err != nil {
		h.observe("rejected")
		writeError(c, err)
		return
	}
	h.observe("ok")
	c.JSON(http.StatusOK, dto.NewPriceBreakdownResponse(breakdown))
}

func (h *PricingHandler) observe(result string) {
	if h.observer != nil {
		h.observer.IncPriceQuote(result)
	}
}

// parsePolicy converts the request policy; range checks are left to the use case
func parsePolicy(req dto.PricingPolicyRequest) (entity.PricingPolicy, error) {
	fee, err := parsePolicyField("processingFeePercentage", req.ProcessingFeePercentage)
	if err != nil {
		return entity.PricingPolicy{}, err
	}
	tax, err := parsePolicyField("salesTaxPercentage", req.SalesTaxPercentage)
	if err != nil {
		return entity.PricingPolicy{}, err
	}
	increment, err := parsePolicyField("roundingIncrement", req.RoundingIncrement)
	if err != nil {
		return entity.PricingPolicy{}, err
	}

	return entity.PricingPolicy{
		ProcessingFeePercentage: fee,
		SalesTaxPercentage:      tax,
		RoundingDirection:       entity.RoundingDirection(req.RoundingDirection),
		RoundingIncrement:       increment,
	}, nil
}

func parsePolicyField(name, raw string) (decimal.Decimal, error) {
	value, err := entity.ParseBoundedDecimal(raw)
	if err != nil {
		return decimal.Zero, domainerr.NewPricingPolicyError(name, raw, fmt.Errorf("%w: %w", domainerr.ErrInvalidPricingPolicy, err))
	}
	return value, nil
}
