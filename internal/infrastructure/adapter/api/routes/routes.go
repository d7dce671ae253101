package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups every HTTP handler the router serves
type Handlers struct {
	Sync        *handler.SyncHandler
	Pricing     *handler.PricingHandler
	Integration *handler.IntegrationHandler
	Health      *handler.HealthHandler
	Metrics     http.Handler // nil disables the endpoint
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers, metricsPath string) {
	router.GET("/health", handlers.Health.Health)
	if handlers.Metrics != nil {
		router.GET(metricsPath, gin.WrapH(handlers.Metrics))
	}

	// POST /sync/run
	router.POST("/sync/run", handlers.Sync.RunSync)

	pricingRoutes := router.Group("/pricing")
	{
		// POST /pricing/quote
		pricingRoutes.POST("/quote", handlers.Pricing.Quote)

		// GET /pricing/implied-commission?commissionAmount=&basePrice=
		pricingRoutes.GET("/implied-commission", handlers.Pricing.ImpliedCommission)
	}

	operatorRoutes := router.Group("/operators/:operatorId")
	{
		// POST /operators/:operatorId/pricing/quote
		operatorRoutes.POST("/pricing/quote", handlers.Pricing.QuoteForOperator)

		// PUT /operators/:operatorId/integration-token
		operatorRoutes.PUT("/integration-token", handlers.Integration.SaveToken)
	}
}

// SetupMiddlewares configures global middlewares for the API; observer may be nil
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, observer middleware.RequestObserver) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	if observer != nil {
		router.Use(middleware.Metrics(observer))
	}
}
