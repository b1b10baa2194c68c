package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	billingapp "github.com/potterypos/backend/internal/application/billing"
	catalogapp "github.com/potterypos/backend/internal/application/catalog"
	financeapp "github.com/potterypos/backend/internal/application/finance"
	identityapp "github.com/potterypos/backend/internal/application/identity"
	partnerapp "github.com/potterypos/backend/internal/application/partner"
	reportapp "github.com/potterypos/backend/internal/application/report"
	salesapp "github.com/potterypos/backend/internal/application/sales"
	"github.com/potterypos/backend/internal/infrastructure/auth"
	"github.com/potterypos/backend/internal/infrastructure/cache"
	"github.com/potterypos/backend/internal/infrastructure/config"
	"github.com/potterypos/backend/internal/infrastructure/event"
	"github.com/potterypos/backend/internal/infrastructure/logger"
	"github.com/potterypos/backend/internal/infrastructure/persistence"
	"github.com/potterypos/backend/internal/interfaces/http/handler"
	"github.com/potterypos/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting pottery pos backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB, cfg.Sales.OrderNumberPrefix)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Checkout idempotency store. Redis when configured, otherwise an
	// in-process store that only protects a single instance.
	var idempotencyStore salesapp.IdempotencyStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		idempotencyStore = cache.NewRedisIdempotencyStore(redisClient)
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewMemoryIdempotencyStore()
		log.Warn("redis disabled, using in-memory idempotency store")
	}

	// Event bus and side-effect handlers
	eventBus := event.NewInMemoryEventBus(log)

	stockHandler := catalogapp.NewStockAdjustmentHandler(productRepo, log)
	eventBus.Subscribe(stockHandler)

	statsHandler := partnerapp.NewCustomerStatsHandler(customerRepo, log)
	eventBus.Subscribe(statsHandler)

	invoiceMaterializer := billingapp.NewInvoiceMaterializer(invoiceRepo, customerRepo, log)
	eventBus.Subscribe(invoiceMaterializer)

	invoiceCancelled := billingapp.NewInvoiceCancelledHandler(invoiceRepo, log)
	eventBus.Subscribe(invoiceCancelled)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)

	productService := catalogapp.NewProductService(productRepo, cfg.Sales.LowStockThreshold, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)

	checkoutService := salesapp.NewCheckoutService(orderRepo, productRepo, customerRepo, idempotencyStore,
		time.Duration(cfg.Sales.IdempotencyTTLHours)*time.Hour, log)
	checkoutService.SetEventPublisher(eventBus)

	orderService := salesapp.NewOrderService(orderRepo, log)
	orderService.SetEventPublisher(eventBus)

	invoiceService := billingapp.NewInvoiceService(invoiceRepo, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	reportService := reportapp.NewReportService(
		orderRepo, productRepo, customerRepo, expenseRepo,
		cfg.Location(), cfg.Sales.LowStockThreshold, cfg.Sales.DashboardLowStock, log)

	// HTTP layer
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService, orderService),
		Order:    handler.NewOrderHandler(checkoutService, orderService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Expense:  handler.NewExpenseHandler(expenseService),
		Report:   handler.NewReportHandler(reportService),
		System:   handler.NewSystemHandler(db),
	}

	engine := router.Setup(cfg, jwtService, handlers, log)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
