package datastore

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yboleas/incendio-go/internal/observability/metrics"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens a private in-memory database and loads the given records.
func newTestStore(t *testing.T, fires []Fire) *DataStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Fire{}))

	ds := &DataStore{DB: db}
	if len(fires) > 0 {
		require.NoError(t, ds.InsertFires(fires))
	}
	return ds
}

func testFires() []Fire {
	return []Fire{
		{SourceID: "a1", Date: "2021-07-10", Year: 2021, Month: 7, Week: 27,
			CommunityID: 11, Community: "Galicia", ProvinceID: 32, Province: "Ourense",
			CauseCode: 4, Cause: "Intencionado", BurnedArea: 600, SizeClass: "Gran incendio (>500 ha)",
			Latitude: 42.3, Longitude: -7.8},
		{SourceID: "a2", Date: "2021-08-02", Year: 2021, Month: 8, Week: 31,
			CommunityID: 11, Community: "Galicia", ProvinceID: 32, Province: "Ourense",
			CauseCode: 2, Cause: "Negligencia", BurnedArea: 50, SizeClass: "Incendio (1–500 ha)",
			Latitude: 42.1, Longitude: -7.6},
		{SourceID: "a3", Date: "2022-06-20", Year: 2022, Month: 6, Week: 25,
			CommunityID: 11, Community: "Galicia", ProvinceID: 15, Province: "A Coruña",
			CauseCode: 4, Cause: "Intencionado", BurnedArea: 30, SizeClass: "Incendio (1–500 ha)",
			Latitude: 43.0, Longitude: -8.4},
		{SourceID: "b1", Date: "2022-08-15", Year: 2022, Month: 8, Week: 33,
			CommunityID: 7, Community: "Castilla y León", ProvinceID: 49, Province: "Zamora",
			CauseCode: 1, Cause: "Por rayo", BurnedArea: 900, SizeClass: "Gran incendio (>500 ha)",
			Latitude: 41.9, Longitude: -6.3},
		{SourceID: "b2", Date: "2022-08-16", Year: 2022, Month: 8, Week: 33,
			CommunityID: 7, Community: "Castilla y León", ProvinceID: 49, Province: "Zamora",
			CauseCode: 1, Cause: "Por rayo", BurnedArea: 0.5, SizeClass: "Conato (<1 ha)",
			Latitude: 41.8, Longitude: -6.2},
	}
}

func TestCountFires(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	total, err := ds.CountFires(&Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	galicia, err := ds.CountFires(&Filter{Community: "Galicia"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), galicia)

	lightning2022, err := ds.CountFires(&Filter{YearStart: 2022, YearEnd: 2022, Causes: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), lightning2022)
}

func TestTotalBurnedArea(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	total, err := ds.TotalBurnedArea(&Filter{})
	require.NoError(t, err)
	assert.InDelta(t, 1580.5, total, 0.001)

	empty, err := ds.TotalBurnedArea(&Filter{YearStart: 1990, YearEnd: 1995})
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestPeakYear(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	// 2022 sums 930.5 ha against 650 ha in 2021.
	year, err := ds.PeakYear(&Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2022, year)

	year, err = ds.PeakYear(&Filter{Community: "Galicia"})
	require.NoError(t, err)
	assert.Equal(t, 2021, year)

	year, err = ds.PeakYear(&Filter{YearStart: 1990, YearEnd: 1995})
	require.NoError(t, err)
	assert.Zero(t, year)
}

func TestMonthlyCounts(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.MonthlyCounts(&Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Chronological order, first row is July 2021.
	assert.Equal(t, 2021, rows[0].Year)
	assert.Equal(t, 7, rows[0].Month)
	assert.Equal(t, 1, rows[0].Count)

	var sum int
	for _, r := range rows {
		sum += r.Count
	}
	assert.Equal(t, 5, sum)
}

func TestProvinceBurnedArea(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.ProvinceBurnedArea(&Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ordered by burned area descending.
	assert.Equal(t, "Zamora", rows[0].Province)
	assert.InDelta(t, 900.5, rows[0].TotalArea, 0.001)
	assert.Equal(t, int64(2), rows[0].FireCount)
	assert.Equal(t, "Ourense", rows[1].Province)

	var total float64
	for _, r := range rows {
		total += r.TotalArea
	}
	assert.InDelta(t, 1580.5, total, 0.001)
}

func TestCauseShareByYear(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.CauseShareByYear(&Filter{})
	require.NoError(t, err)

	shareByYear := make(map[int]float64)
	for _, r := range rows {
		shareByYear[r.Year] += r.Share
	}
	assert.InDelta(t, 100.0, shareByYear[2021], 0.001)
	assert.InDelta(t, 100.0, shareByYear[2022], 0.001)
}

func TestCauseShareByYearWithCauseFilter(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	// Restricting to lightning returns only lightning rows, but the share
	// stays relative to all fires of the year: 2 of 3 in 2022.
	rows, err := ds.CauseShareByYear(&Filter{Causes: []int{1}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2022, rows[0].Year)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.InDelta(t, 66.667, rows[0].Share, 0.01)
}

func TestRegionalRankingByCommunity(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.RegionalRanking(&Filter{}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Two distinct years in the dataset: Castilla y León averages
	// 900.5 / 2 ha per year, Galicia 680 / 2.
	assert.Equal(t, "Castilla y León", rows[0].Region)
	assert.InDelta(t, 450.25, rows[0].AnnualMeanArea, 0.001)
	assert.InDelta(t, 1.0, rows[0].AnnualMeanCount, 0.001)
	assert.Equal(t, "Galicia", rows[1].Region)
	assert.InDelta(t, 340.0, rows[1].AnnualMeanArea, 0.001)
	assert.InDelta(t, 1.5, rows[1].AnnualMeanCount, 0.001)

	// Shares cover the filtered total.
	assert.InDelta(t, 100.0, rows[0].ShareOfTotal+rows[1].ShareOfTotal, 0.001)
	assert.Greater(t, rows[0].ShareOfTotal, rows[1].ShareOfTotal)
}

func TestRegionalRankingPinnedCommunityListsProvinces(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.RegionalRanking(&Filter{Community: "Galicia"}, 1)
	require.NoError(t, err)

	// Limit is ignored for a pinned community, both provinces appear.
	require.Len(t, rows, 2)
	assert.Equal(t, "Ourense", rows[0].Region)
	assert.Equal(t, "A Coruña", rows[1].Region)
}

func TestRegionalRankingEmptyFilter(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.RegionalRanking(&Filter{YearStart: 1990, YearEnd: 1995}, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRegionalRankingLimit(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.RegionalRanking(&Filter{}, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Castilla y León", rows[0].Region)
}

func TestWeeklyAreaDistribution(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.WeeklyAreaDistribution(&Filter{}, 20.0)
	require.NoError(t, err)

	// The 0.5 ha record in week 33 falls below the cutoff.
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.TotalArea, 20.0)
	}
	assert.Equal(t, 25, rows[0].Week)
	assert.Equal(t, 33, rows[3].Week)
	assert.Equal(t, int64(1), rows[3].FireCount)
	assert.InDelta(t, 900.0, rows[3].TotalArea, 0.001)
	assert.InDelta(t, 900.0, rows[3].MeanArea, 0.001)
	assert.InDelta(t, 900.0, rows[3].MaxArea, 0.001)
}

func TestMajorFires(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	rows, err := ds.MajorFires(&Filter{}, 500.0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Largest first.
	assert.Equal(t, "Zamora", rows[0].Province)
	assert.InDelta(t, 900.0, rows[0].BurnedArea, 0.001)
	assert.Equal(t, "Ourense", rows[1].Province)
}

func TestYearRange(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	minYear, maxYear, err := ds.YearRange()
	require.NoError(t, err)
	assert.Equal(t, 2021, minYear)
	assert.Equal(t, 2022, maxYear)
}

func TestYearRangeEmptyDatabase(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, nil)

	minYear, maxYear, err := ds.YearRange()
	require.NoError(t, err)
	assert.Zero(t, minYear)
	assert.Zero(t, maxYear)
}

func TestCommunities(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	names, err := ds.Communities()
	require.NoError(t, err)
	assert.Equal(t, []string{"Castilla y León", "Galicia"}, names)
}

func TestCauses(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	causes, err := ds.Causes()
	require.NoError(t, err)
	require.Len(t, causes, 3)
	assert.Equal(t, CauseRow{Code: 1, Name: "Por rayo"}, causes[0])
	assert.Equal(t, CauseRow{Code: 2, Name: "Negligencia"}, causes[1])
	assert.Equal(t, CauseRow{Code: 4, Name: "Intencionado"}, causes[2])
}

func TestInsertFiresEmptySlice(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, nil)

	require.NoError(t, ds.InsertFires(nil))
	count, err := ds.CountFires(&Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAnalyticsOperationMetrics(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t, testFires())

	registry := prometheus.NewRegistry()
	dm, err := metrics.NewDatastoreMetrics(registry)
	require.NoError(t, err)
	ds.SetMetrics(dm)

	_, err = ds.CountFires(&Filter{})
	require.NoError(t, err)
	_, err = ds.TotalBurnedArea(&Filter{})
	require.NoError(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)

	counts := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != "datastore_analytics_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var operation, status string
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "operation":
					operation = l.GetValue()
				case "status":
					status = l.GetValue()
				}
			}
			counts[operation+"/"+status] = m.GetCounter().GetValue()
		}
	}
	assert.InDelta(t, 1.0, counts["count_fires/success"], 0.001)
	assert.InDelta(t, 1.0, counts["total_burned_area/success"], 0.001)
}

func TestFilterIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Filter{}).IsZero())
	assert.False(t, (&Filter{YearStart: 2000}).IsZero())
	assert.False(t, (&Filter{Causes: []int{1}}).IsZero())
}
