package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/codops/backend/internal/application/catalog"
	financeapp "github.com/codops/backend/internal/application/finance"
	inventoryapp "github.com/codops/backend/internal/application/inventory"
	reportapp "github.com/codops/backend/internal/application/report"
	shippingapp "github.com/codops/backend/internal/application/shipping"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/infrastructure/cache"
	"github.com/codops/backend/internal/infrastructure/config"
	"github.com/codops/backend/internal/infrastructure/event"
	"github.com/codops/backend/internal/infrastructure/export"
	"github.com/codops/backend/internal/infrastructure/logger"
	"github.com/codops/backend/internal/infrastructure/persistence"
	"github.com/codops/backend/internal/infrastructure/telemetry"
	"github.com/codops/backend/internal/interfaces/http/handler"
	"github.com/codops/backend/internal/interfaces/http/middleware"
	"github.com/codops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The OTLP logs bridge needs a logger of its own before the main one exists
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize OTLP logs", zap.Error(err))
	}
	log, err := logger.New(logCfg, logsProvider.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync(log)

	log.Info("Starting COD backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeEndpoint,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	defer func() {
		shutdownCtx := context.Background()
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down metrics", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracing", zap.Error(err))
		}
		if err := logsProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down OTLP logs", zap.Error(err))
		}
	}()
	meter := meterProvider.Meter("cod-backend")

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	dbSystem := "sqlite"
	if cfg.Database.Driver == config.DriverPostgres {
		dbSystem = "postgresql"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	if err := persistence.Seed(ctx, db.DB, cfg.App.SeedDemoData, log); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	productRepo := persistence.NewGormProductRepository(db.DB)
	countryRepo := persistence.NewGormCountryRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	remitRepo := persistence.NewGormPeriodRemitRepository(db.DB)
	spendRepo := persistence.NewGormPlatformSpendRepository(db.DB)
	deliveredRepo := persistence.NewGormDailyDeliveredRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	productService := catalogapp.NewProductService(productRepo, log)
	stockService := inventoryapp.NewStockService(countryRepo, warehouseRepo, movementRepo, productRepo, log)
	shipmentService := shippingapp.NewShipmentService(shipmentRepo, productRepo, txScope, log)
	spendService := financeapp.NewSpendService(spendRepo, productRepo, log)
	deliveredService := financeapp.NewDeliveredService(deliveredRepo, log)
	remittanceService := financeapp.NewRemittanceService(remitRepo, txScope, log)
	remittanceService.SetReportWriter(export.NewRemitXLSXWriter())
	dashboardService := reportapp.NewDashboardService(reportapp.Repositories{
		Products:   productRepo,
		Countries:  countryRepo,
		Warehouses: warehouseRepo,
		Movements:  movementRepo,
		Shipments:  shipmentRepo,
		Spend:      spendRepo,
		Remits:     remitRepo,
	}, productService, stockService, deliveredService, remittanceService)

	// Events are dispatched in process after commit
	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg, true, log)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()
	businessMetrics, err := telemetry.NewBusinessMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)
	idempotency := shared.IdempotencyConfig{Enabled: cfg.Idempotency.Enabled, TTL: cfg.Idempotency.TTL}
	eventBus.Subscribe(event.NewIdempotentHandler(event.NewMetricsHandler(businessMetrics), idempotencyStore, idempotency, log))
	eventBus.Subscribe(event.NewLogHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	productService.SetEventPublisher(eventBus)
	stockService.SetEventPublisher(eventBus)
	shipmentService.SetEventPublisher(eventBus)
	remittanceService.SetEventPublisher(eventBus)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
		SkipPaths:   []string{"/health"},
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(httpMetrics)
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   profiler.IsEnabled(),
		SkipPaths: []string{"/health"},
	}))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	handler.NewSystemHandler(cfg.App.Name, version, db).Register(engine)

	finance := handler.NewFinanceHandler(spendService, deliveredService, remittanceService)
	r := router.NewRouter(engine, router.WithAPIVersion("v1")).Register(
		handler.NewProductHandler(productService, stockService, dashboardService).Routes(),
		handler.NewShipmentHandler(shipmentService).Routes(),
		handler.NewReportHandler(dashboardService).Routes(),
		finance.SpendRoutes(),
		finance.DeliveredRoutes(),
		finance.RemitRoutes(),
	)
	for _, g := range handler.NewInventoryHandler(stockService).Routes() {
		r.Register(g)
	}
	r.Setup()
	log.Info("Routes registered", zap.Int("routes", len(engine.Routes())))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		exitCode = 1
		return
	}
	log.Info("Server exited gracefully")
}
