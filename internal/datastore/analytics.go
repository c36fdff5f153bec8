// internal/datastore/analytics.go
package datastore

import (
	"time"

	"github.com/yboleas/incendio-go/internal/errors"
	"github.com/yboleas/incendio-go/internal/fire"
)

// ProvinceAreaRow aggregates burned area per province
type ProvinceAreaRow struct {
	ProvinceID int     `json:"province_id"`
	Province   string  `json:"province"`
	TotalArea  float64 `json:"total_area"`
	FireCount  int64   `json:"fire_count"`
}

// CauseShareRow holds per-year fire counts for one cause. Share is the
// percentage of that year's total, computed over all causes regardless of
// any cause restriction in the filter.
type CauseShareRow struct {
	Year      int
	CauseCode int
	Cause     string
	Count     int64
	Share     float64
}

// RankingRow holds one entry of the regional ranking. Annual means divide by
// the number of distinct years in the filtered dataset, so regions with
// fire-free years are not flattered.
type RankingRow struct {
	Region          string  `json:"region"`
	FireCount       int64   `json:"fire_count"`
	TotalArea       float64 `json:"total_area"`
	AnnualMeanArea  float64 `json:"annual_mean_area"`
	AnnualMeanCount float64 `json:"annual_mean_count"`
	ShareOfTotal    float64 `json:"share_of_total"` // percentage of the filtered burned-area total
}

// WeeklyAreaRow aggregates fires by ISO week across the filtered years
type WeeklyAreaRow struct {
	Week      int     `json:"week"`
	FireCount int64   `json:"fire_count"`
	TotalArea float64 `json:"total_area"`
	MeanArea  float64 `json:"mean_area"`
	MaxArea   float64 `json:"max_area"`
}

// MajorFireRow describes a single large fire for map markers
type MajorFireRow struct {
	Date         string  `json:"date"`
	Municipality string  `json:"municipality"`
	Province     string  `json:"province"`
	Community    string  `json:"community"`
	Cause        string  `json:"cause"`
	BurnedArea   float64 `json:"burned_area"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (ds *DataStore) analyticsError(err error, operation string) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation).
		Build()
}

// timed starts the clock for one analytics query and returns the func that
// records its outcome.
func (ds *DataStore) timed(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		if ds.metrics == nil {
			return
		}
		status := "success"
		if err != nil {
			status = "error"
		}
		ds.metrics.RecordAnalyticsOperation(operation, status, time.Since(start).Seconds())
	}
}

// CountFires returns the number of fire records matching the filter.
func (ds *DataStore) CountFires(f *Filter) (count int64, err error) {
	done := ds.timed("count_fires")
	defer func() { done(err) }()
	err = applyFilter(ds.DB.Model(&Fire{}), f).Count(&count).Error
	if err != nil {
		return 0, ds.analyticsError(err, "count_fires")
	}
	return count, nil
}

// TotalBurnedArea returns the summed burned area in hectares.
func (ds *DataStore) TotalBurnedArea(f *Filter) (total float64, err error) {
	done := ds.timed("total_burned_area")
	defer func() { done(err) }()
	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Select("COALESCE(SUM(burned_area), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, ds.analyticsError(err, "total_burned_area")
	}
	return total, nil
}

// PeakYear returns the year with the largest total burned area, or 0 when
// no records match.
func (ds *DataStore) PeakYear(f *Filter) (year int, err error) {
	done := ds.timed("peak_year")
	defer func() { done(err) }()
	var row struct {
		Year int
	}
	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Select("year, SUM(burned_area) AS total").
		Group("year").
		Order("total DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, ds.analyticsError(err, "peak_year")
	}
	return row.Year, nil
}

// MonthlyCounts returns fire counts grouped by year and month, ordered
// chronologically.
func (ds *DataStore) MonthlyCounts(f *Filter) (rows []fire.MonthlyCount, err error) {
	done := ds.timed("monthly_counts")
	defer func() { done(err) }()
	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Select("year, month, COUNT(*) AS count").
		Group("year, month").
		Order("year, month").
		Scan(&rows).Error
	if err != nil {
		return nil, ds.analyticsError(err, "monthly_counts")
	}
	return rows, nil
}

// ProvinceBurnedArea returns total burned area and fire count per province.
// Provinces without matching records are absent from the result.
func (ds *DataStore) ProvinceBurnedArea(f *Filter) (rows []ProvinceAreaRow, err error) {
	done := ds.timed("province_burned_area")
	defer func() { done(err) }()
	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Select("province_id, province, COALESCE(SUM(burned_area), 0) AS total_area, COUNT(*) AS fire_count").
		Group("province_id, province").
		Order("total_area DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, ds.analyticsError(err, "province_burned_area")
	}
	return rows, nil
}

// CauseShareByYear returns per-year fire counts for every cause, with each
// row's share of its year's total. The year and community clauses of the
// filter apply; cause restrictions narrow the returned causes but shares
// remain relative to all causes, so a single selected cause still shows its
// weight within the full yearly count.
func (ds *DataStore) CauseShareByYear(f *Filter) (rows []CauseShareRow, err error) {
	done := ds.timed("cause_share_by_year")
	defer func() { done(err) }()

	// Yearly totals over all causes, keeping year and community clauses only.
	totalsFilter := &Filter{}
	if f != nil {
		totalsFilter.YearStart = f.YearStart
		totalsFilter.YearEnd = f.YearEnd
		totalsFilter.Community = f.Community
	}

	var totals []struct {
		Year  int
		Count int64
	}
	err = applyFilter(ds.DB.Model(&Fire{}), totalsFilter).
		Select("year, COUNT(*) AS count").
		Group("year").
		Scan(&totals).Error
	if err != nil {
		return nil, ds.analyticsError(err, "cause_share_totals")
	}
	totalByYear := make(map[int]int64, len(totals))
	for _, t := range totals {
		totalByYear[t.Year] = t.Count
	}

	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Select("year, cause_code, cause, COUNT(*) AS count").
		Group("year, cause_code, cause").
		Order("year, cause_code").
		Scan(&rows).Error
	if err != nil {
		return nil, ds.analyticsError(err, "cause_share_by_year")
	}

	for i := range rows {
		if total := totalByYear[rows[i].Year]; total > 0 {
			rows[i].Share = float64(rows[i].Count) / float64(total) * 100
		}
	}
	return rows, nil
}

// RegionalRanking ranks regions by annual mean burned area, descending.
// With no community in the filter the regions are autonomous communities,
// limited to the top entries; with a community pinned the regions are that
// community's provinces and limit is ignored. Shares are computed against
// the full filtered total before the limit applies.
func (ds *DataStore) RegionalRanking(f *Filter, limit int) (rows []RankingRow, err error) {
	done := ds.timed("regional_ranking")
	defer func() { done(err) }()

	regionColumn := "community"
	if f != nil && f.Community != "" {
		regionColumn = "province"
		limit = 0
	}

	var years int64
	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Select("COUNT(DISTINCT year)").
		Scan(&years).Error
	if err != nil {
		return nil, ds.analyticsError(err, "regional_ranking_years")
	}
	if years == 0 {
		return nil, nil
	}

	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Select(regionColumn + " AS region, COUNT(*) AS fire_count, COALESCE(SUM(burned_area), 0) AS total_area").
		Group(regionColumn).
		Order("total_area DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, ds.analyticsError(err, "regional_ranking")
	}

	var grandTotal float64
	for i := range rows {
		grandTotal += rows[i].TotalArea
	}
	for i := range rows {
		rows[i].AnnualMeanArea = rows[i].TotalArea / float64(years)
		rows[i].AnnualMeanCount = float64(rows[i].FireCount) / float64(years)
		if grandTotal > 0 {
			rows[i].ShareOfTotal = rows[i].TotalArea / grandTotal * 100
		}
	}

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// WeeklyAreaDistribution returns per-ISO-week counts and burned area for
// fires at or above minArea hectares.
func (ds *DataStore) WeeklyAreaDistribution(f *Filter, minArea float64) (rows []WeeklyAreaRow, err error) {
	done := ds.timed("weekly_area_distribution")
	defer func() { done(err) }()
	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Where("burned_area >= ?", minArea).
		Select("week, COUNT(*) AS fire_count, COALESCE(SUM(burned_area), 0) AS total_area, " +
			"COALESCE(AVG(burned_area), 0) AS mean_area, COALESCE(MAX(burned_area), 0) AS max_area").
		Group("week").
		Order("week").
		Scan(&rows).Error
	if err != nil {
		return nil, ds.analyticsError(err, "weekly_area_distribution")
	}
	return rows, nil
}

// MajorFires returns individual fires at or above the threshold, largest
// first, for rendering as map markers.
func (ds *DataStore) MajorFires(f *Filter, threshold float64) (rows []MajorFireRow, err error) {
	done := ds.timed("major_fires")
	defer func() { done(err) }()
	err = applyFilter(ds.DB.Model(&Fire{}), f).
		Where("burned_area >= ?", threshold).
		Select("date, municipality, province, community, cause, burned_area, latitude, longitude").
		Order("burned_area DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, ds.analyticsError(err, "major_fires")
	}
	return rows, nil
}

// YearRange returns the first and last year present in the dataset.
func (ds *DataStore) YearRange() (minYear, maxYear int, err error) {
	done := ds.timed("year_range")
	defer func() { done(err) }()
	var row struct {
		MinYear int
		MaxYear int
	}
	err = ds.DB.Model(&Fire{}).
		Select("COALESCE(MIN(year), 0) AS min_year, COALESCE(MAX(year), 0) AS max_year").
		Scan(&row).Error
	if err != nil {
		return 0, 0, ds.analyticsError(err, "year_range")
	}
	return row.MinYear, row.MaxYear, nil
}

// Communities returns the distinct community names present in the dataset,
// alphabetically ordered.
func (ds *DataStore) Communities() (names []string, err error) {
	done := ds.timed("communities")
	defer func() { done(err) }()
	err = ds.DB.Model(&Fire{}).
		Distinct("community").
		Order("community").
		Pluck("community", &names).Error
	if err != nil {
		return nil, ds.analyticsError(err, "communities")
	}
	return names, nil
}

// CauseRow pairs a cause code with its name.
type CauseRow struct {
	Code int
	Name string
}

// Causes returns the distinct causes present in the dataset, ordered by code.
func (ds *DataStore) Causes() (rows []CauseRow, err error) {
	done := ds.timed("causes")
	defer func() { done(err) }()
	err = ds.DB.Model(&Fire{}).
		Select("cause_code AS code, cause AS name").
		Group("cause_code, cause").
		Order("cause_code").
		Scan(&rows).Error
	if err != nil {
		return nil, ds.analyticsError(err, "causes")
	}
	return rows, nil
}
