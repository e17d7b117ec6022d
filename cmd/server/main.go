package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	insightapp "github.com/commerce/backend/internal/application/insight"
	reportapp "github.com/commerce/backend/internal/application/report"
	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/commerce/backend/internal/infrastructure/cache"
	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/commerce/backend/internal/infrastructure/logger"
	"github.com/commerce/backend/internal/infrastructure/persistence"
	"github.com/commerce/backend/internal/infrastructure/telemetry"
	"github.com/commerce/backend/internal/interfaces/http/handler"
	"github.com/commerce/backend/internal/interfaces/http/middleware"
	"github.com/commerce/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const meterName = "github.com/commerce/backend"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// OTLP log export is teed into the application logger when enabled
	logsCfg := telemetryCfg
	logsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogExportEnabled
	loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), logsCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}

	log, err := logger.New(logCfg,
		logger.WithCore(loggerProvider.Core(logger.ParseLevel(cfg.Log.Level))),
		logger.WithFields(zap.String("service", cfg.App.Name)),
	)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting admin insights backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	profilerCfg := telemetry.DefaultProfilerConfig()
	profilerCfg.Enabled = cfg.Telemetry.ProfilingEnabled
	profilerCfg.ServerAddress = cfg.Telemetry.ProfilingServerAddress
	profilerCfg.ApplicationName = cfg.Telemetry.ServiceName
	profilerCfg.BasicAuthUser = cfg.Telemetry.ProfilingBasicAuthUser
	profilerCfg.BasicAuthPassword = cfg.Telemetry.ProfilingBasicAuthPassword
	profiler, err := telemetry.NewProfiler(profilerCfg, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)

	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize stores
	customerStore := persistence.NewGormCustomerStore(db.DB)
	orderStore := persistence.NewGormOrderStore(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)

	meter := meterProvider.Meter(meterName)
	insightMetrics, err := telemetry.NewInsightMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create insight metrics", zap.Error(err))
	}
	httpMetrics, err := telemetry.NewHTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	reportCache, err := cache.NewReportCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.Report.AllowInMemoryFallback),
	).Create()
	if err != nil {
		log.Fatal("Failed to create report cache", zap.Error(err))
	}
	defer func() {
		if err := reportCache.Close(); err != nil {
			log.Error("Error closing report cache", zap.Error(err))
		}
	}()

	// Initialize application services
	insightService := insightapp.NewService(customerStore, orderStore, log, insightapp.Config{
		CustomerLimit:  cfg.Insights.CustomerLimit,
		MaxConcurrency: cfg.Insights.MaxConcurrency,
	}, insightapp.WithMetrics(insightMetrics))
	salesReportService := reportapp.NewSalesReportService(salesReportRepo, reportCache, log, reportapp.Config{
		CacheTTL:   cfg.Report.CacheTTL,
		Resolution: cfg.Report.CacheResolution,
	})

	// Initialize handlers
	insightHandler := handler.NewInsightHandler(insightService, cfg.Insights.MaxLimit)
	reportHandler := handler.NewReportHandler(salesReportService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, db)

	engine := newEngine(cfg, log, httpMetrics)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	var routerOpts []router.Option
	if cfg.JWT.Secret != "" {
		routerOpts = append(routerOpts, router.WithMiddleware(middleware.JWTAuth(middleware.JWTConfig{
			Validator: auth.NewJWTService(cfg.JWT),
			Logger:    log,
		})))
	} else {
		log.Warn("jwt.secret is empty, admin routes are not authenticated")
	}
	r := router.NewRouter(engine, routerOpts...)

	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.GET("/insights", insightHandler.GetCustomerInsights)

	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/sales", reportHandler.GetSalesReport)

	r.Register(customerRoutes).
		Register(reportRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newEngine builds the gin engine with the global middleware chain. Auth is
// added by the router on the admin group only, so probes stay public.
func newEngine(cfg *config.Config, log *zap.Logger, rec middleware.RequestRecorder) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanAnnotator())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(rec))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(
			cfg.HTTP.RateLimitRequests,
			cfg.HTTP.RateLimitWindow,
			cfg.HTTP.RateLimitBurst,
		)))
	}
	if cfg.HTTP.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))
	}
	return engine
}
