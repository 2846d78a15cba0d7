package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/bizsuite/backend/internal/application/catalog"
	fundingapp "github.com/bizsuite/backend/internal/application/funding"
	identityapp "github.com/bizsuite/backend/internal/application/identity"
	installmentapp "github.com/bizsuite/backend/internal/application/installment"
	ledgerapp "github.com/bizsuite/backend/internal/application/ledger"
	partnerapp "github.com/bizsuite/backend/internal/application/partner"
	productionapp "github.com/bizsuite/backend/internal/application/production"
	schedulingapp "github.com/bizsuite/backend/internal/application/scheduling"
	tradeapp "github.com/bizsuite/backend/internal/application/trade"
	"github.com/bizsuite/backend/internal/infrastructure/auth"
	"github.com/bizsuite/backend/internal/infrastructure/config"
	"github.com/bizsuite/backend/internal/infrastructure/logger"
	"github.com/bizsuite/backend/internal/infrastructure/persistence"
	"github.com/bizsuite/backend/internal/interfaces/http/handler"
	"github.com/bizsuite/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabase(&cfg.Database, &cfg.Log, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist backed by Redis; revoked JTIs live there until expiry
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)

	// Transaction scopes: each multi-record workflow commits atomically
	fundingScope := persistence.NewGormFundingTransactionScope(db.DB)
	ledgerScope := persistence.NewGormLedgerTransactionScope(db.DB)
	installmentScope := persistence.NewGormInstallmentTransactionScope(db.DB)
	productionScope := persistence.NewGormProductionTransactionScope(db.DB)
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	fundingSourceService := fundingapp.NewFundingSourceService(fundingScope, log)
	expenditureService := ledgerapp.NewExpenditureService(ledgerScope, log)
	transactionService := ledgerapp.NewTransactionService(transactionRepo)
	installmentService := installmentapp.NewInstallmentService(installmentScope, log)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	productService := catalogapp.NewProductService(productRepo, log)
	appointmentService := schedulingapp.NewAppointmentService(appointmentRepo)
	batchService := productionapp.NewBatchService(productionScope, log)
	saleService := tradeapp.NewSaleService(tradeScope, log)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(tradeScope, log)

	// HTTP handlers
	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService, log),
		FundingSource: handler.NewFundingSourceHandler(fundingSourceService, log),
		Expenditure:   handler.NewExpenditureHandler(expenditureService, log),
		Transaction:   handler.NewTransactionHandler(transactionService, log),
		Installment:   handler.NewInstallmentHandler(installmentService, log),
		Customer:      handler.NewCustomerHandler(customerService, log),
		Supplier:      handler.NewSupplierHandler(supplierService, log),
		Product:       handler.NewProductHandler(productService, log),
		Appointment:   handler.NewAppointmentHandler(appointmentService, log),
		Batch:         handler.NewBatchHandler(batchService, log),
		Sale:          handler.NewSaleHandler(saleService, log),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService, log),
		Health:        handler.NewHealthHandler(db, version, log),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		HTTP:           &cfg.HTTP,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
		Handlers:       handlers,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
