package router

import (
	"github.com/bizsuite/backend/internal/infrastructure/auth"
	"github.com/bizsuite/backend/internal/infrastructure/config"
	"github.com/bizsuite/backend/internal/interfaces/http/handler"
	"github.com/bizsuite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth          *handler.AuthHandler
	FundingSource *handler.FundingSourceHandler
	Expenditure   *handler.ExpenditureHandler
	Transaction   *handler.TransactionHandler
	Installment   *handler.InstallmentHandler
	Customer      *handler.CustomerHandler
	Supplier      *handler.SupplierHandler
	Product       *handler.ProductHandler
	Appointment   *handler.AppointmentHandler
	Batch         *handler.BatchHandler
	Sale          *handler.SaleHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Health        *handler.HealthHandler
}

// Config holds router dependencies
type Config struct {
	HTTP           *config.HTTPConfig
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
	Handlers       Handlers
}

// New builds the gin engine with the full middleware chain and all routes
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(middleware.Recovery(cfg.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(cfg.Logger))

	corsCfg := middleware.DefaultCORSConfig()
	if cfg.HTTP != nil {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORS(corsCfg))

	if cfg.HTTP != nil && cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtCfg.TokenBlacklist = cfg.TokenBlacklist
	jwtCfg.Logger = cfg.Logger
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	registerRoutes(engine, cfg.Handlers)

	return engine
}

func registerRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", h.Health.Health)

	api := engine.Group("/api/v1")
	api.GET("/health", h.Health.Health)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", h.Auth.Me)
	}

	fundingSources := api.Group("/funding-sources")
	{
		fundingSources.POST("", h.FundingSource.Create)
		fundingSources.GET("", h.FundingSource.List)
		fundingSources.GET("/:id", h.FundingSource.Get)
		fundingSources.PUT("/:id", h.FundingSource.Update)
		fundingSources.DELETE("/:id", h.FundingSource.Delete)
	}

	expenditures := api.Group("/expenditures")
	{
		expenditures.POST("", h.Expenditure.Create)
		expenditures.GET("", h.Expenditure.List)
		expenditures.GET("/:id", h.Expenditure.Get)
		expenditures.PUT("/:id", h.Expenditure.Update)
		expenditures.DELETE("/:id", h.Expenditure.Delete)
	}

	api.GET("/ledger/transactions", h.Transaction.List)

	plans := api.Group("/installment-plans")
	{
		plans.POST("", h.Installment.CreatePlan)
		plans.GET("", h.Installment.ListPlans)
		plans.GET("/:id", h.Installment.GetPlan)
		plans.PUT("/:id", h.Installment.UpdatePlan)
		plans.DELETE("/:id", h.Installment.DeletePlan)
		plans.POST("/:id/payments", h.Installment.AddPayment)
	}
	payments := api.Group("/installment-payments")
	{
		payments.PUT("/:id", h.Installment.UpdatePayment)
		payments.DELETE("/:id", h.Installment.DeletePayment)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}

	products := api.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/stock", h.Product.AdjustStock)
	}

	appointments := api.Group("/appointments")
	{
		appointments.POST("", h.Appointment.Create)
		appointments.GET("", h.Appointment.List)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.PUT("/:id", h.Appointment.Update)
		appointments.DELETE("/:id", h.Appointment.Delete)
	}

	batches := api.Group("/production-batches")
	{
		batches.POST("", h.Batch.Create)
		batches.GET("", h.Batch.List)
		batches.GET("/:id", h.Batch.Get)
		batches.POST("/:id/complete", h.Batch.Complete)
		batches.POST("/:id/cancel", h.Batch.Cancel)
	}

	sales := api.Group("/sales")
	{
		sales.POST("", h.Sale.Create)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
	}

	orders := api.Group("/purchase-orders")
	{
		orders.POST("", h.PurchaseOrder.Create)
		orders.GET("", h.PurchaseOrder.List)
		orders.GET("/:id", h.PurchaseOrder.Get)
		orders.DELETE("/:id", h.PurchaseOrder.Delete)
		orders.POST("/:id/place", h.PurchaseOrder.Place)
		orders.POST("/:id/receive", h.PurchaseOrder.Receive)
		orders.POST("/:id/cancel", h.PurchaseOrder.Cancel)
	}
}
