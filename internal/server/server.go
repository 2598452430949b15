// Package server assembles the gin engine and runs it with graceful
// shutdown, following the teacher's server-setup/main-loop split.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/reelcast/internal/api"
)

// NewEngine builds the gin engine: permissive CORS (this service is an
// internal collaborator behind the upstream API, same as the teacher's
// dev CORS policy), a request-id middleware, and every route in deps.
func NewEngine(logger hclog.Logger, deps *api.Deps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware(logger))
	engine.Use(corsMiddleware())

	api.RegisterRoutes(engine, deps)
	return engine
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-CLIENT-ID, X-API-KEY")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestIDMiddleware stamps a uuid onto every request's logging context,
// the way the teacher correlates handler logs to one client call.
func requestIDMiddleware(logger hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		logger.Debug("handled request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Run starts engine on host:port and blocks until ctx is cancelled, then
// drains in-flight requests with a 5s deadline (spec §1: the service runs
// as a long-lived process on a fixed port).
func Run(ctx context.Context, logger hclog.Logger, engine *gin.Engine, host string, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
