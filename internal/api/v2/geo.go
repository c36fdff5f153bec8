// internal/api/v2/geo.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// initGeoRoutes registers the boundary and centroid endpoints.
func (c *Controller) initGeoRoutes() {
	g := c.Group.Group("/geo")
	g.GET("/provinces", c.GetProvinceBoundaries)
	g.GET("/communities", c.GetCommunityGeometry)
}

// GetProvinceBoundaries serves the province boundary GeoJSON unchanged for
// client-side choropleth rendering.
func (c *Controller) GetProvinceBoundaries(ctx echo.Context) error {
	if c.Geo == nil {
		return c.HandleError(ctx, nil, "Province boundaries not loaded", http.StatusServiceUnavailable)
	}
	return ctx.Blob(http.StatusOK, "application/geo+json", c.Geo.Raw())
}

// GetCommunityGeometry returns the derived community centroids and bounding
// boxes used for map zooming and label placement.
func (c *Controller) GetCommunityGeometry(ctx echo.Context) error {
	if c.Geo == nil {
		return c.HandleError(ctx, nil, "Province boundaries not loaded", http.StatusServiceUnavailable)
	}
	return ctx.JSON(http.StatusOK, c.Geo.Communities())
}
