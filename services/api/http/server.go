package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aetherhq/aether/services/api/cleaning"
	"github.com/aetherhq/aether/services/api/config"
	"github.com/aetherhq/aether/services/api/domain"
	"github.com/aetherhq/aether/services/api/ingest"
	"github.com/aetherhq/aether/services/api/metrics"
	"github.com/aetherhq/aether/services/api/registry"
)

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg        config.Config
	svc        *ingest.Service
	registry   *registry.Registry
	historical domain.Dataset
	stats      cleaning.Stats
	pm25       cleaning.Thresholds
	engine     *gin.Engine
}

// New constructs a server with routes and middleware. The historical
// dataset must already be cleaned; it is served read-only.
func New(cfg config.Config, svc *ingest.Service, reg *registry.Registry, historical domain.Dataset, stats cleaning.Stats) (*Server, error) {
	pm25, err := cleaning.ThresholdsFor(cfg.Thresholds, "pm25")
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogMiddleware())
	engine.Use(corsMiddleware())

	if cfg.Server.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.Server.BearerToken))
	}

	server := &Server{
		cfg:        cfg,
		svc:        svc,
		registry:   reg,
		historical: historical,
		stats:      stats,
		pm25:       pm25,
		engine:     engine,
	}
	server.registerRoutes()
	server.registerV1Routes()
	return server, nil
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Aether AQMS",
		"endpoints": []string{
			"POST /api/v1/ingest",
			"GET /api/v1/status",
			"GET /api/v1/sensors",
			"GET /api/v1/sensors/:id",
			"GET /api/v1/realtime/now",
			"GET /api/v1/history/:sensor_id",
			"GET /api/v1/distribution/:year/:month",
			"GET /api/v1/stats/cleaning",
			"GET /api/v1/config/display",
		},
	})
}

// respondError translates the domain error taxonomy into HTTP statuses.
// The core raises these at the point of detection; this is the only layer
// that maps them to caller-visible signals.
func respondError(c *gin.Context, err error) {
	var unauthorized *domain.UnauthorizedSensorError
	var invalid *domain.InvalidReadingError

	switch {
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": unauthorized.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"errors": invalid.Errors})
	case errors.Is(err, domain.ErrSensorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
	case errors.Is(err, domain.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": "no data for the specified period"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		zap.L().Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
