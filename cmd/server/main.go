package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	corrapp "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/cache"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/config"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/logger"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/persistence/memory"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/telemetry"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/handler"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/middleware"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

// storage bundles the repositories of the selected driver
type storage struct {
	txScope     corrapp.TransactionScope
	counterRepo correspondence.CounterRepository
	letterRepo  correspondence.LetterRepository
	catalogRepo correspondence.CatalogRepository
	pinger      handler.DatabasePinger
	close       func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting AYS Persuratan",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("driver", cfg.Database.Driver),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Telemetry
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = lp.Bridge(log)

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := mp.Meter(telemetry.MeterName)
	metrics, err := telemetry.NewCorrespondenceMetrics(meter)
	if err != nil {
		log.Fatal("Failed to register business metrics", zap.Error(err))
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Error("Error closing storage", zap.Error(err))
		}
	}()

	// Verification cache
	verificationCache, err := cache.NewVerificationCacheFactory(cfg.Redis, cfg.Cache,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.Cache.AllowFallback),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to create verification cache", zap.Error(err))
	}
	if closer, ok := verificationCache.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Error("Error closing verification cache", zap.Error(err))
			}
		}()
	}

	location, err := cfg.Numbering.Location()
	if err != nil {
		log.Fatal("Invalid numbering time zone", zap.Error(err))
	}

	numberingService := corrapp.NewNumberingService(
		store.txScope,
		store.counterRepo,
		store.catalogRepo,
		corrapp.NumberingConfig{
			AllowLowering: cfg.Numbering.AllowLowering,
			Sender:        cfg.Numbering.Sender,
			Signer:        cfg.Numbering.Signer,
			SignerRole:    cfg.Numbering.SignerRole,
			Location:      location,
		},
		log.Named("numbering"),
		corrapp.WithMetrics(metrics),
	)
	archiveService := corrapp.NewArchiveService(store.txScope, store.letterRepo, store.catalogRepo,
		verificationCache, location, log.Named("archive"))
	verificationService := corrapp.NewVerificationService(store.letterRepo, store.catalogRepo,
		verificationCache, metrics, log.Named("verification"))
	catalogService := corrapp.NewCatalogService(store.catalogRepo)

	var verifyLimiter *middleware.RateLimiter
	if cfg.HTTP.VerifyRateLimitEnabled {
		verifyLimiter = middleware.NewRateLimiter(cfg.HTTP.VerifyRateLimitRPS, cfg.HTTP.VerifyRateLimitBurst)
		defer verifyLimiter.Stop()
	}

	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:           cfg.HTTP,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tp.IsEnabled(),
		Logger:         log,
		Meter:          meter,
		VerifyLimiter:  verifyLimiter,
	}, router.Handlers{
		Letters:  handler.NewLetterHandler(numberingService, archiveService),
		Counters: handler.NewCounterHandler(numberingService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Verify:   handler.NewVerifyHandler(verificationService),
		System:   handler.NewSystemHandler(store.pinger, cfg.Database.Driver, version),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := lp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// openStorage connects the configured driver. The postgres schema comes from
// cmd/migrate; sqlite is auto-migrated and seeded here.
func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using the non-durable in-memory store")
		mem := memory.NewStore()
		return &storage{
			txScope:     mem.TransactionScope(),
			counterRepo: mem.CounterRepo(),
			letterRepo:  mem.LetterRepo(),
			catalogRepo: mem.CatalogRepo(),
			close:       func() error { return nil },
		}, nil
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}
	log.Info("Database connected successfully")

	tracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        telemetry.DBSystemForDriver(cfg.Database.Driver),
	}, log)
	if err := tracing.RegisterOtelGorm(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &storage{
		txScope:     persistence.NewGormTransactionScope(db.DB),
		counterRepo: persistence.NewGormCounterRepository(db.DB),
		letterRepo:  persistence.NewGormLetterRepository(db.DB),
		catalogRepo: persistence.NewGormCatalogRepository(db.DB),
		pinger:      db,
		close:       db.Close,
	}, nil
}

