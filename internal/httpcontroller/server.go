// internal/httpcontroller/server.go
package httpcontroller

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yboleas/incendio-go/frontend"
	api "github.com/yboleas/incendio-go/internal/api/v2"
	"github.com/yboleas/incendio-go/internal/conf"
	"github.com/yboleas/incendio-go/internal/datastore"
	"github.com/yboleas/incendio-go/internal/errors"
	"github.com/yboleas/incendio-go/internal/geo"
	"github.com/yboleas/incendio-go/internal/logging"
	"github.com/yboleas/incendio-go/internal/observability"
)

// Server encapsulates the Echo server and related configurations.
type Server struct {
	Echo     *echo.Echo
	DS       datastore.Interface
	Settings *conf.Settings
	Geo      *geo.Dataset
	Metrics  *observability.Metrics
	APIV2    *api.Controller

	webLogger      *slog.Logger
	webLoggerClose func() error
}

// New initializes a new HTTP server for the given datastore and boundaries.
func New(settings *conf.Settings, dataStore datastore.Interface, geoData *geo.Dataset,
	metrics *observability.Metrics) (*Server, error) {

	s := &Server{
		Echo:     echo.New(),
		DS:       dataStore,
		Settings: settings,
		Geo:      geoData,
		Metrics:  metrics,
	}
	s.Echo.HideBanner = true
	s.Echo.IPExtractor = echo.ExtractIPFromXFFHeader()

	s.initLogger()
	s.initMiddleware()

	apiController, err := api.New(s.Echo, dataStore, settings, geoData, log.Default(), metrics)
	if err != nil {
		return nil, errors.New(err).
			Component("httpcontroller").
			Category(errors.CategoryHTTP).
			Context("operation", "api_init").
			Build()
	}
	s.APIV2 = apiController

	if metrics != nil {
		s.Echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	s.Echo.StaticFS("/", frontend.StaticFS())

	return s, nil
}

// initLogger sets up the server's structured logger with file output.
func (s *Server) initLogger() {
	if !s.Settings.WebServer.Log.Enabled {
		s.webLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
		s.webLoggerClose = func() error { return nil }
		return
	}

	logPath := s.Settings.WebServer.Log.Path
	if logPath == "" {
		logPath = "logs/http.log"
	}

	webLogger, closeFunc, err := logging.NewFileLogger(logPath, "http", slog.LevelInfo)
	if err != nil {
		log.Printf("Warning: failed to initialize web logger: %v", err)
		s.webLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
		s.webLoggerClose = func() error { return nil }
		return
	}
	s.webLogger = webLogger
	s.webLoggerClose = closeFunc
}

// Start begins listening and serving HTTP requests. It blocks until the
// server stops.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.Settings.WebServer.Host, s.Settings.WebServer.Port)
	s.webLogger.Info("Starting HTTP server", "address", addr)

	err := s.Echo.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return errors.New(err).
			Component("httpcontroller").
			Category(errors.CategoryHTTP).
			Context("address", addr).
			Build()
	}
	return nil
}

// Shutdown gracefully stops the server, draining in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.webLogger.Info("Shutting down HTTP server")

	if s.APIV2 != nil {
		s.APIV2.Shutdown()
	}

	err := s.Echo.Shutdown(ctx)

	if s.webLoggerClose != nil {
		if closeErr := s.webLoggerClose(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}
