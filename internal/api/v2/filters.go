// internal/api/v2/filters.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yboleas/incendio-go/internal/fire"
)

// initFilterRoutes registers the endpoints feeding the dashboard controls.
func (c *Controller) initFilterRoutes() {
	c.Group.GET("/filters/options", c.GetFilterOptions)
}

// CauseOption is one selectable cause.
type CauseOption struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// FilterOptions describes the selectable filter values: the year span of
// the dataset, the communities present in it and the known causes.
type FilterOptions struct {
	MinYear     int           `json:"min_year"`
	MaxYear     int           `json:"max_year"`
	Communities []string      `json:"communities"`
	Causes      []CauseOption `json:"causes"`
}

// GetFilterOptions returns the values the dashboard filter controls offer.
func (c *Controller) GetFilterOptions(ctx echo.Context) error {
	minYear, maxYear, err := c.DS.YearRange()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to read year range", http.StatusInternalServerError)
	}
	communities, err := c.DS.Communities()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to read communities", http.StatusInternalServerError)
	}
	if communities == nil {
		communities = []string{}
	}

	rows, err := c.DS.Causes()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to read causes", http.StatusInternalServerError)
	}
	causes := make([]CauseOption, 0, len(rows))
	for _, row := range rows {
		causes = append(causes, CauseOption{Code: row.Code, Name: row.Name})
	}
	// An empty dataset still gets the canonical cause list.
	if len(causes) == 0 {
		for _, code := range fire.CauseCodes() {
			causes = append(causes, CauseOption{Code: code, Name: fire.CauseName(code)})
		}
	}

	return ctx.JSON(http.StatusOK, &FilterOptions{
		MinYear:     minYear,
		MaxYear:     maxYear,
		Communities: communities,
		Causes:      causes,
	})
}
