package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/application/service"
	"github.com/sangkips/stockroom-api/internal/config"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/infrastructure/cache"
	"github.com/sangkips/stockroom-api/internal/infrastructure/database"
	"github.com/sangkips/stockroom-api/internal/infrastructure/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockroom-api/internal/presentation/http/handler"
	"github.com/sangkips/stockroom-api/internal/presentation/http/middleware"
	"github.com/sangkips/stockroom-api/internal/presentation/http/routes"
	"github.com/sangkips/stockroom-api/pkg/logger"
	"github.com/sangkips/stockroom-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: !cfg.App.IsProduction(),
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	logger.SetDefault(log)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	request.RegisterTagNames()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The pool is opened lazily; the server reports not ready until the
	// database answers and migrations have run
	db, err := database.Open(&cfg.Database, log, cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	var migrated atomic.Bool
	readiness := map[string]handler.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
		"migrations": func(context.Context) error {
			if !migrated.Load() {
				return errors.New("migrations pending")
			}
			return nil
		},
	}

	// Token revocation lives in Redis when configured
	var revoked domainRepo.TokenRevocationStore = cache.NewMemoryRevocationStore()
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warnw("redis not reachable; revoked tokens are kept in memory", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer func() { _ = client.Close() }()
			revoked = cache.NewRedisRevocationStore(client)
			readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	} else {
		log.Warn("REDIS_ADDR not set; revoked tokens are kept in memory")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	refRepo := repository.NewReferenceRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	priceListRepo := repository.NewPriceListRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	stockQueryRepo := repository.NewStockQueryRepository(db)
	prRepo := repository.NewPurchaseRequestRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, revoked, jwtManager)
	categoryService := service.NewCategoryService(categoryRepo, refRepo)
	supplierService := service.NewSupplierService(supplierRepo, refRepo)
	productService := service.NewProductService(productRepo, categoryRepo, supplierRepo, refRepo)
	customerService := service.NewCustomerService(customerRepo, refRepo)
	stockService := service.NewStockService(txManager, productRepo, supplierRepo, batchRepo, movementRepo, stockQueryRepo)
	reportService := service.NewReportService(stockQueryRepo)
	priceListService := service.NewPriceListService(txManager, priceListRepo, productRepo, batchRepo)
	returnService := service.NewReturnService(txManager, returnRepo, productRepo, customerRepo, stockService)
	prService := service.NewPurchaseRequestService(txManager, prRepo, supplierRepo, stockService)
	saleService := service.NewSaleService(txManager, saleRepo, productRepo, customerRepo, priceListRepo, stockService)
	dashboardService := service.NewDashboardService(analyticsRepo, reportService, cfg.Inventory.LowStockThreshold)

	// Initialize handlers
	handlers := &routes.Handlers{
		Health:          handler.NewHealthHandler(cfg.App.Name, readiness),
		Auth:            handler.NewAuthHandler(authService),
		Category:        handler.NewCategoryHandler(categoryService),
		Supplier:        handler.NewSupplierHandler(supplierService),
		Product:         handler.NewProductHandler(productService, stockService),
		Customer:        handler.NewCustomerHandler(customerService),
		PriceList:       handler.NewPriceListHandler(priceListService),
		Return:          handler.NewReturnHandler(returnService),
		Stock:           handler.NewStockHandler(stockService),
		PurchaseRequest: handler.NewPurchaseRequestHandler(prService),
		Sale:            handler.NewSaleHandler(saleService),
		Report:          handler.NewReportHandler(reportService),
		Dashboard:       handler.NewDashboardHandler(dashboardService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfigFor(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Revoked:     revoked,
		RateLimiter: rateLimiter,
		Logger:      log,
		Cfg:         cfg,
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("server starting", "name", cfg.App.Name, "env", cfg.App.Env, "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := database.WaitReady(gctx, db, &cfg.Database, log); err != nil {
			if gctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("connect database: %w", err)
		}
		if err := database.AutoMigrate(db, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := authService.EnsureAdmin(gctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.FullName); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		migrated.Store(true)
		log.Info("database ready")
		return nil
	})
	g.Go(func() error {
		rateLimiter.Run(gctx.Done())
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
