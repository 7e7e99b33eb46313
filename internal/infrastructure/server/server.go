package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	httpapi "github.com/GriffinCanCode/polysolve/internal/api/http"
	"github.com/GriffinCanCode/polysolve/internal/api/middleware"
	"github.com/GriffinCanCode/polysolve/internal/api/ws"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/config"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/logging"
	"github.com/GriffinCanCode/polysolve/internal/infrastructure/monitoring"
	mathProvider "github.com/GriffinCanCode/polysolve/internal/providers/math"
	"github.com/GriffinCanCode/polysolve/internal/service"
)

// Version is reported by / and the version command.
var Version = "dev"

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	handler  http.Handler
	registry *service.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	style, err := cfg.Solver.Style()
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing polysolve server",
		zap.String("port", cfg.Server.Port),
		zap.String("format", style.String()),
		zap.Bool("cache", cfg.Solver.CacheEnabled),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)

	serviceRegistry := service.NewRegistry()
	provider := mathProvider.NewProvider(mathProvider.Options{
		Style:         style,
		Logger:        logger,
		Metrics:       metrics,
		CacheEnabled:  cfg.Solver.CacheEnabled,
		CacheTTL:      cfg.Solver.CacheTTL,
		CacheCleanup:  cfg.Solver.CacheCleanup,
		ConditionWarn: cfg.Solver.ConditionWarn,
	})
	if err := serviceRegistry.Register(provider); err != nil {
		return nil, fmt.Errorf("failed to register math provider: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger.Named("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.Bool("global", cfg.RateLimit.Global),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		if cfg.RateLimit.Global {
			router.Use(middleware.GlobalRateLimit(rl))
		} else {
			router.Use(middleware.RateLimit(rl))
		}
	}

	httpapi.NewHandlers(httpapi.Config{
		Registry: serviceRegistry,
		Metrics:  metrics,
		Gatherer: reg,
		Logger:   logger.Named("api"),
		Version:  Version,
	}).Routes(router)
	router.GET("/stream", ws.NewHandler(serviceRegistry, logger.Named("ws"), nil).HandleConnection)

	var handler http.Handler = router
	if cfg.Server.Gzip {
		handler = gzipExcept(router, "/stream")
	}
	if cfg.Server.H2C {
		logger.Info("HTTP/2 cleartext enabled")
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	logger.Info("Server initialized successfully")

	return &Server{
		handler:  handler,
		registry: serviceRegistry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler returns the router wrapped in the configured transport layers
func (s *Server) Handler() http.Handler {
	return s.handler
}

// gzipExcept compresses every response except on the upgrade path, whose
// connection must stay hijackable.
func gzipExcept(next http.Handler, upgradePath string) http.Handler {
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == upgradePath {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Close flushes the logger
func (s *Server) Close() error {
	// Sync reports EINVAL for stdout on Linux
	_ = s.logger.Sync()
	return nil
}
