package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"todoapp/config"
	"todoapp/internal/delivery"
	httpmiddleware "todoapp/internal/delivery/http/middleware"
	"todoapp/internal/delivery/http/router"
	"todoapp/internal/delivery/http/validator"
	"todoapp/internal/delivery/middleware"
	"todoapp/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc              fx.Lifecycle
	Cfg             *config.Config
	Logger          *slog.Logger
	AuthMiddleware  *httpmiddleware.AuthMiddleware
	ErrorMiddleware *httpmiddleware.ErrorMiddleware
	RouterParams    router.RouterParams
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &httpServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: newEcho(params),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// newEcho builds the echo instance with the full middleware chain and routes.
func newEcho(params ServerParams) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = params.Cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = params.Cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = params.Cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = params.Cfg.HTTP.Timeouts.IdleTimeout

	// Set up middleware in correct order
	// 1. Recover middleware first (to catch panics early)
	echoServer.Use(echomiddleware.Recover())

	// 2. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(params.Logger)
	echoServer.Use(requestIDMiddleware.Process)

	// 3. Logger middleware
	loggerMiddleware := middleware.NewLoggerMiddleware(params.Logger, params.Cfg)
	echoServer.Use(loggerMiddleware.Handle)

	// 4. CORS middleware
	echoServer.Use(echomiddleware.CORS())

	// 5. Request body size limit
	echoServer.Use(echomiddleware.BodyLimit(params.Cfg.HTTP.MaxRequestBodySize))

	// 6. Session binding: every request gets an Anonymous or Authenticated session
	echoServer.Use(params.AuthMiddleware.Session)

	// Set up centralized error handler
	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError

	// Set up validator
	echoServer.Validator = validator.New()

	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	return echoServer
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
