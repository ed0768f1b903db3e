// Package ops serves the operational HTTP endpoints that sit beside the
// TCP protocol listener: database health and live connection counters.
package ops

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/platform/db"
	"github.com/clinicd/clinicd/internal/platform/middleware"
)

// Counters exposes live gauges from the protocol side.
type Counters interface {
	SessionCount() int
	ChatCount() int
}

type Server struct {
	echo *echo.Echo
	addr string
	log  zerolog.Logger
}

func NewServer(addr string, pool *pgxpool.Pool, counters Counters, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	opsLog := log.With().Str("component", "ops").Logger()
	e.Use(middleware.RequestID())
	e.Use(middleware.Recovery(opsLog))
	e.Use(middleware.Logger(opsLog))

	e.GET("/health", healthHandler(pool))
	e.GET("/stats", statsHandler(pool, counters))

	return &Server{echo: e, addr: addr, log: opsLog}
}

// Start blocks serving HTTP until the context is canceled, then shuts the
// listener down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func healthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		err := pool.Ping(ctx)
		stats := db.GetPoolStats(pool)

		if err != nil {
			stats.Healthy = false
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
				"pool":   stats,
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"pool":   stats,
		})
	}
}

func statsHandler(pool *pgxpool.Pool, counters Counters) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"sessions":     counters.SessionCount(),
			"chat_members": counters.ChatCount(),
			"pool":         db.GetPoolStats(pool),
		})
	}
}
