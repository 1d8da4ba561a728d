package server

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/context"

	"github.com/gawa-wiki/gawa/internal/apperr"
	mw "github.com/gawa-wiki/gawa/pkg/middleware"
	pkgserver "github.com/gawa-wiki/gawa/pkg/server"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

type Server struct {
	Echo *echo.Echo

	cfg *Config
}

func NewServer(cfg *Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.DisableHTTP2 = !cfg.UseHttp2
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	s := &Server{
		Echo: e,
		cfg:  cfg,
	}

	s.setupMiddlewares()

	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(mw.Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet},
	}))
}

func (s *Server) SetupHealthChecks(hc pkgserver.HealthChecker) {
	s.Echo.GET("/healthz", func(c echo.Context) error {
		if !hc.Healthy(c.Request().Context()) {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
}

func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Echo.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.Echo.Logger.Fatal(err)
		return err
	}
	return nil
}
