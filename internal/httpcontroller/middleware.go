// internal/httpcontroller/middleware.go
package httpcontroller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// initMiddleware registers the server-wide middleware stack.
func (s *Server) initMiddleware() {
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(s.GzipMiddleware())
	s.Echo.Use(s.CORSMiddleware())
	s.Echo.Use(middleware.BodyLimit("1M"))
}

// GzipMiddleware compresses responses. The GeoJSON boundary payload shrinks
// several-fold under gzip.
func (s *Server) GzipMiddleware() echo.MiddlewareFunc {
	return middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	})
}

// CORSMiddleware allows read-only cross-origin access to the API.
func (s *Server) CORSMiddleware() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	})
}
