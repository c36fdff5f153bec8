// api_test.go: shared test setup for API v2 handlers.
package api

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yboleas/incendio-go/internal/conf"
	"github.com/yboleas/incendio-go/internal/datastore"
	"github.com/yboleas/incendio-go/internal/geo"
)

// setupTestController builds a controller wired to a mock datastore without
// touching the filesystem.
func setupTestController(t *testing.T) (*echo.Echo, *MockDataStore, *Controller) {
	t.Helper()

	e := echo.New()
	mockDS := &MockDataStore{}
	settings := &conf.Settings{
		Version: "test",
		Dashboard: conf.DashboardConfig{
			CacheTTLMinutes:    5,
			RankingLimit:       10,
			MajorFireThreshold: 500.0,
			SeasonalMinArea:    20.0,
		},
	}

	c := &Controller{
		Echo:       e,
		DS:         mockDS,
		Settings:   settings,
		logger:     log.New(io.Discard, "", 0),
		apiLogger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		queryCache: cache.New(5*time.Minute, 10*time.Minute),
		startTime:  time.Now(),
	}
	c.Group = e.Group("/api/v2")
	c.initRoutes()
	return e, mockDS, c
}

func newTestContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestParseFilter(t *testing.T) {
	t.Parallel()
	e := echo.New()

	t.Run("full filter", func(t *testing.T) {
		t.Parallel()
		ctx, _ := newTestContext(e, "/?start_year=1990&end_year=2000&community=Galicia&causes=1,4")
		f, err := parseFilter(ctx)
		require.NoError(t, err)
		assert.Equal(t, &datastore.Filter{
			YearStart: 1990,
			YearEnd:   2000,
			Community: "Galicia",
			Causes:    []int{1, 4},
		}, f)
	})

	t.Run("empty filter", func(t *testing.T) {
		t.Parallel()
		ctx, _ := newTestContext(e, "/")
		f, err := parseFilter(ctx)
		require.NoError(t, err)
		assert.True(t, f.IsZero())
	})

	t.Run("invalid year", func(t *testing.T) {
		t.Parallel()
		ctx, _ := newTestContext(e, "/?start_year=abc")
		_, err := parseFilter(ctx)
		require.Error(t, err)
	})

	t.Run("reversed range", func(t *testing.T) {
		t.Parallel()
		ctx, _ := newTestContext(e, "/?start_year=2010&end_year=1990")
		_, err := parseFilter(ctx)
		require.Error(t, err)
	})

	t.Run("invalid cause code", func(t *testing.T) {
		t.Parallel()
		ctx, _ := newTestContext(e, "/?causes=1,x")
		_, err := parseFilter(ctx)
		require.Error(t, err)
	})
}

func TestCacheKeyDistinguishesFilters(t *testing.T) {
	t.Parallel()

	a := cacheKey("kpi", &datastore.Filter{YearStart: 1990, YearEnd: 2000})
	b := cacheKey("kpi", &datastore.Filter{YearStart: 1990, YearEnd: 2001})
	c := cacheKey("map", &datastore.Filter{YearStart: 1990, YearEnd: 2000})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()
	e, mockDS, controller := setupTestController(t)

	mockDS.On("CountFires", (*datastore.Filter)(nil)).Return(int64(12345), nil)

	ctx, rec := newTestContext(e, "/api/v2/health")
	require.NoError(t, controller.HealthCheck(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"fire_records":12345`)
}

func TestGetProvinceBoundariesWithoutData(t *testing.T) {
	t.Parallel()
	e, _, controller := setupTestController(t)

	ctx, rec := newTestContext(e, "/api/v2/geo/provinces")
	require.NoError(t, controller.GetProvinceBoundaries(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetCommunityGeometry(t *testing.T) {
	t.Parallel()
	e, _, controller := setupTestController(t)

	ds, err := geo.Parse([]byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"Texto_Alt": "Ourense", "CCAA": "Galicia"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[-8, 42], [-7, 42], [-7, 43], [-8, 43], [-8, 42]]]
			}
		}]
	}`))
	require.NoError(t, err)
	controller.Geo = ds

	ctx, rec := newTestContext(e, "/api/v2/geo/communities")
	require.NoError(t, controller.GetCommunityGeometry(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Galicia"`)
}
