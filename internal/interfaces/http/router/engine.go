package router

import (
	"github.com/gin-gonic/gin"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/config"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/logger"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/handler"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	Letters  *handler.LetterHandler
	Counters *handler.CounterHandler
	Catalog  *handler.CatalogHandler
	Verify   *handler.VerifyHandler
	System   *handler.SystemHandler
}

// EngineConfig holds what NewEngine needs besides the handlers
type EngineConfig struct {
	HTTP           config.HTTPConfig
	ServiceName    string
	TracingEnabled bool
	Logger         *zap.Logger
	// Meter records HTTP request metrics. Nil disables them.
	Meter metric.Meter
	// VerifyLimiter throttles the public verification routes. Nil disables it.
	VerifyLimiter *middleware.RateLimiter
}

// NewEngine builds the gin engine with the global middleware chain and every route.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	} else if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsCfg))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(cfg.Meter))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	engine.GET("/health", h.System.Health)

	var verifyGuard gin.HandlerFunc
	if cfg.VerifyLimiter != nil {
		verifyGuard = middleware.RateLimit(cfg.VerifyLimiter)
	}
	mountAPI(engine, apiGroups(h, verifyGuard))

	return engine, nil
}
