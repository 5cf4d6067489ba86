package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
)

const (
	// EndpointPath is where the streamable HTTP transport is mounted.
	EndpointPath = "/mcp"
	// HealthPath answers liveness checks.
	HealthPath = "/health"

	shutdownTimeout = 10 * time.Second
)

// NewRouter mounts the MCP handler and the health endpoint on a gin engine.
func (s *Server) NewRouter(debug bool) (*gin.Engine, error) {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLoggerMwColored(),
			gmw.WithLevel(s.logger.Level().String()),
			gmw.WithLogger(s.logger.Named("gin")),
		),
	)

	if err := gmw.EnableMetric(router); err != nil {
		return nil, errors.Wrap(err, "enable metric server")
	}

	router.Any(HealthPath, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ok")
	})
	router.Any(EndpointPath, gin.WrapH(s.handler))

	return router, nil
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is done.
func (s *Server) RunHTTP(ctx context.Context, addr string, debug bool) error {
	router, err := s.NewRouter(debug)
	if err != nil {
		return errors.WithStack(err)
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving mcp over http",
			zap.String("addr", addr), zap.String("endpoint", EndpointPath))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}

	s.logger.Info("http server stopped")
	return nil
}
