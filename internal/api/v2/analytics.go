// internal/api/v2/analytics.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/yboleas/incendio-go/internal/datastore"
	"github.com/yboleas/incendio-go/internal/fire"
)

// initAnalyticsRoutes registers the aggregation endpoints backing the
// dashboard panels.
func (c *Controller) initAnalyticsRoutes() {
	g := c.Group.Group("/analytics")
	g.GET("/kpi", c.GetKPISummary)
	g.GET("/map", c.GetMapData)
	g.GET("/causes", c.GetCauseEvolution)
	g.GET("/ranking", c.GetRegionalRanking)
	g.GET("/seasonal", c.GetSeasonalDistribution)
}

// KPISummary aggregates the headline figures for the current filter.
type KPISummary struct {
	TotalFires      int64   `json:"total_fires"`
	TotalBurnedArea float64 `json:"total_burned_area"`
	BurnedAreaLabel string  `json:"burned_area_label"`
	PeakYear        int     `json:"peak_year"`
	Trend           string  `json:"trend"`
}

// MapResponse carries per-province totals plus markers for large fires when
// a community is in focus.
type MapResponse struct {
	Provinces []datastore.ProvinceAreaRow `json:"provinces"`
	Markers   []datastore.MajorFireRow    `json:"markers,omitempty"`
	Focus     *MapFocus                   `json:"focus,omitempty"`
}

// MapFocus tells the client where to zoom for a pinned community.
type MapFocus struct {
	Community string     `json:"community"`
	Centroid  [2]float64 `json:"centroid"` // lon, lat
	BBox      [4]float64 `json:"bbox"`     // minLon, minLat, maxLon, maxLat
}

// CauseSeries is the per-cause evolution of the yearly fire share.
type CauseSeries struct {
	CauseCode int              `json:"cause_code"`
	Cause     string           `json:"cause"`
	Points    []CauseYearPoint `json:"points"`
}

// CauseYearPoint is one year of a cause series.
type CauseYearPoint struct {
	Year  int     `json:"year"`
	Count int64   `json:"count"`
	Share float64 `json:"share"`
}

// CauseEvolutionResponse groups cause shares into chartable series.
type CauseEvolutionResponse struct {
	Years  []int         `json:"years"`
	Series []CauseSeries `json:"series"`
}

// RankingResponse lists regions ordered by annual mean burned area.
type RankingResponse struct {
	Scope   string                `json:"scope"` // communities or provinces
	Regions []datastore.RankingRow `json:"regions"`
}

// SeasonalResponse carries the weekly distribution of relevant fires.
type SeasonalResponse struct {
	MinArea float64                   `json:"min_area"`
	Weeks   []datastore.WeeklyAreaRow `json:"weeks"`
}

// parseFilter extracts and validates the shared query parameters. All
// analytics endpoints accept start_year, end_year, community and causes.
func parseFilter(ctx echo.Context) (*datastore.Filter, error) {
	f := &datastore.Filter{}

	if v := ctx.QueryParam("start_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 0 {
			return nil, fmt.Errorf("invalid start_year %q", v)
		}
		f.YearStart = year
	}
	if v := ctx.QueryParam("end_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 0 {
			return nil, fmt.Errorf("invalid end_year %q", v)
		}
		f.YearEnd = year
	}
	if f.YearStart > 0 && f.YearEnd > 0 && f.YearStart > f.YearEnd {
		return nil, fmt.Errorf("start_year %d is after end_year %d", f.YearStart, f.YearEnd)
	}

	f.Community = strings.TrimSpace(ctx.QueryParam("community"))

	if v := ctx.QueryParam("causes"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			code, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid cause code %q", part)
			}
			f.Causes = append(f.Causes, code)
		}
	}

	return f, nil
}

// cacheKey builds a stable cache key from the endpoint and filter.
func cacheKey(endpoint string, f *datastore.Filter) string {
	var sb strings.Builder
	sb.WriteString(endpoint)
	fmt.Fprintf(&sb, ":%d-%d:%s:", f.YearStart, f.YearEnd, f.Community)
	for _, code := range f.Causes {
		fmt.Fprintf(&sb, "%d,", code)
	}
	return sb.String()
}

// cachedResponse returns the cached payload for key, or computes and caches
// it via build. Aggregations over forty years of records are identical for
// identical filters, so short-lived caching absorbs dashboard refreshes.
func (c *Controller) cachedResponse(endpoint, key string, build func() (any, error)) (any, error) {
	if cached, found := c.queryCache.Get(key); found {
		if c.metrics != nil && c.metrics.HTTP != nil {
			c.metrics.HTTP.RecordCacheOperation(endpoint, "hit")
		}
		return cached, nil
	}
	if c.metrics != nil && c.metrics.HTTP != nil {
		c.metrics.HTTP.RecordCacheOperation(endpoint, "miss")
	}

	payload, err := build()
	if err != nil {
		return nil, err
	}
	c.queryCache.SetDefault(key, payload)
	return payload, nil
}

// GetKPISummary returns the headline figures for the dashboard.
func (c *Controller) GetKPISummary(ctx echo.Context) error {
	f, err := parseFilter(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid filter parameters", http.StatusBadRequest)
	}

	payload, err := c.cachedResponse("kpi", cacheKey("kpi", f), func() (any, error) {
		count, err := c.DS.CountFires(f)
		if err != nil {
			return nil, err
		}
		area, err := c.DS.TotalBurnedArea(f)
		if err != nil {
			return nil, err
		}
		peak, err := c.DS.PeakYear(f)
		if err != nil {
			return nil, err
		}
		monthly, err := c.DS.MonthlyCounts(f)
		if err != nil {
			return nil, err
		}
		return &KPISummary{
			TotalFires:      count,
			TotalBurnedArea: area,
			BurnedAreaLabel: fire.FormatArea(area),
			PeakYear:        peak,
			Trend:           fire.Trend(monthly),
		}, nil
	})
	if err != nil {
		return c.HandleError(ctx, err, "Failed to compute KPI summary", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, payload)
}

// GetMapData returns burned area per province, plus major fire markers and
// a zoom target when a community is pinned.
func (c *Controller) GetMapData(ctx echo.Context) error {
	f, err := parseFilter(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid filter parameters", http.StatusBadRequest)
	}

	payload, err := c.cachedResponse("map", cacheKey("map", f), func() (any, error) {
		provinces, err := c.DS.ProvinceBurnedArea(f)
		if err != nil {
			return nil, err
		}
		resp := &MapResponse{Provinces: provinces}

		if f.Community != "" {
			markers, err := c.DS.MajorFires(f, c.Settings.Dashboard.MajorFireThreshold)
			if err != nil {
				return nil, err
			}
			resp.Markers = markers

			if c.Geo != nil {
				if community, ok := c.Geo.Community(f.Community); ok {
					resp.Focus = &MapFocus{
						Community: community.Name,
						Centroid:  [2]float64{community.Centroid.Lon, community.Centroid.Lat},
						BBox:      community.BBox,
					}
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return c.HandleError(ctx, err, "Failed to compute map data", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, payload)
}

// GetCauseEvolution returns the yearly share of fires per cause.
func (c *Controller) GetCauseEvolution(ctx echo.Context) error {
	f, err := parseFilter(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid filter parameters", http.StatusBadRequest)
	}

	payload, err := c.cachedResponse("causes", cacheKey("causes", f), func() (any, error) {
		rows, err := c.DS.CauseShareByYear(f)
		if err != nil {
			return nil, err
		}
		return buildCauseEvolution(rows), nil
	})
	if err != nil {
		return c.HandleError(ctx, err, "Failed to compute cause evolution", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, payload)
}

// buildCauseEvolution pivots flat share rows into per-cause series over a
// common year axis.
func buildCauseEvolution(rows []datastore.CauseShareRow) *CauseEvolutionResponse {
	resp := &CauseEvolutionResponse{}

	yearSeen := make(map[int]bool)
	seriesByCause := make(map[int]*CauseSeries)
	var causeOrder []int
	for _, row := range rows {
		if !yearSeen[row.Year] {
			yearSeen[row.Year] = true
			resp.Years = append(resp.Years, row.Year)
		}
		s, ok := seriesByCause[row.CauseCode]
		if !ok {
			s = &CauseSeries{CauseCode: row.CauseCode, Cause: row.Cause}
			seriesByCause[row.CauseCode] = s
			causeOrder = append(causeOrder, row.CauseCode)
		}
		s.Points = append(s.Points, CauseYearPoint{Year: row.Year, Count: row.Count, Share: row.Share})
	}

	for _, code := range causeOrder {
		resp.Series = append(resp.Series, *seriesByCause[code])
	}
	return resp
}

// GetRegionalRanking returns regions ordered by annual mean burned area.
// An optional limit parameter overrides the configured ranking size.
func (c *Controller) GetRegionalRanking(ctx echo.Context) error {
	f, err := parseFilter(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid filter parameters", http.StatusBadRequest)
	}

	limit := c.Settings.Dashboard.RankingLimit
	if v := ctx.QueryParam("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			return c.HandleError(ctx, fmt.Errorf("invalid limit %q", v),
				"Invalid filter parameters", http.StatusBadRequest)
		}
	}

	key := fmt.Sprintf("%s:limit=%d", cacheKey("ranking", f), limit)
	payload, err := c.cachedResponse("ranking", key, func() (any, error) {
		regions, err := c.DS.RegionalRanking(f, limit)
		if err != nil {
			return nil, err
		}
		scope := "communities"
		if f.Community != "" {
			scope = "provinces"
		}
		if regions == nil {
			regions = []datastore.RankingRow{}
		}
		return &RankingResponse{Scope: scope, Regions: regions}, nil
	})
	if err != nil {
		return c.HandleError(ctx, err, "Failed to compute regional ranking", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, payload)
}

// GetSeasonalDistribution returns the weekly distribution of fires above
// the seasonal area cutoff.
func (c *Controller) GetSeasonalDistribution(ctx echo.Context) error {
	f, err := parseFilter(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid filter parameters", http.StatusBadRequest)
	}

	payload, err := c.cachedResponse("seasonal", cacheKey("seasonal", f), func() (any, error) {
		minArea := c.Settings.Dashboard.SeasonalMinArea
		weeks, err := c.DS.WeeklyAreaDistribution(f, minArea)
		if err != nil {
			return nil, err
		}
		if weeks == nil {
			weeks = []datastore.WeeklyAreaRow{}
		}
		return &SeasonalResponse{MinArea: minArea, Weeks: weeks}, nil
	})
	if err != nil {
		return c.HandleError(ctx, err, "Failed to compute seasonal distribution", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, payload)
}
