// interfaces.go defines the interface for the database operations
package datastore

import (
	"fmt"
	"time"

	"github.com/yboleas/incendio-go/internal/conf"
	"github.com/yboleas/incendio-go/internal/fire"
	"github.com/yboleas/incendio-go/internal/observability/metrics"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Filter narrows aggregation queries. Zero values mean "no restriction".
type Filter struct {
	YearStart int    // inclusive lower bound on year
	YearEnd   int    // inclusive upper bound on year
	Community string // autonomous community name
	Causes    []int  // cause codes, OR-combined
}

// IsZero reports whether the filter places no restriction at all.
func (f *Filter) IsZero() bool {
	return f.YearStart == 0 && f.YearEnd == 0 && f.Community == "" && len(f.Causes) == 0
}

// Interface abstracts the underlying database implementation.
type Interface interface {
	Open() error
	Close() error
	InsertFires(fires []Fire) error
	SetMetrics(m *metrics.DatastoreMetrics)

	CountFires(f *Filter) (int64, error)
	TotalBurnedArea(f *Filter) (float64, error)
	PeakYear(f *Filter) (int, error)
	MonthlyCounts(f *Filter) ([]fire.MonthlyCount, error)
	ProvinceBurnedArea(f *Filter) ([]ProvinceAreaRow, error)
	CauseShareByYear(f *Filter) ([]CauseShareRow, error)
	RegionalRanking(f *Filter, limit int) ([]RankingRow, error)
	WeeklyAreaDistribution(f *Filter, minArea float64) ([]WeeklyAreaRow, error)
	MajorFires(f *Filter, threshold float64) ([]MajorFireRow, error)

	YearRange() (minYear, maxYear int, err error)
	Communities() ([]string, error)
	Causes() ([]CauseRow, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB      *gorm.DB // GORM database instance
	metrics *metrics.DatastoreMetrics
}

// SetMetrics attaches the analytics query collectors. A nil receiver value
// disables recording.
func (ds *DataStore) SetMetrics(m *metrics.DatastoreMetrics) {
	ds.metrics = m
}

// New creates a datastore backed by the configured database engine.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{Settings: settings}
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}
	default:
		return nil
	}
}

// DefaultSlowQueryThreshold defines the duration after which a query is
// considered slow. Bulk inserts during startup can take several hundred ms.
const DefaultSlowQueryThreshold = 1 * time.Second

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() gormlogger.Interface {
	return gormlogger.New(
		gormLogWriter{},
		gormlogger.Config{
			SlowThreshold:             DefaultSlowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// gormLogWriter routes GORM log lines into the package logger.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...any) {
	getLogger().Warn(fmt.Sprintf(format, args...))
}

// applyFilter adds the filter clauses to a query. Clauses are AND-combined;
// cause codes within the filter are OR-combined via IN.
func applyFilter(query *gorm.DB, f *Filter) *gorm.DB {
	if f == nil {
		return query
	}
	if f.YearStart > 0 {
		query = query.Where("year >= ?", f.YearStart)
	}
	if f.YearEnd > 0 {
		query = query.Where("year <= ?", f.YearEnd)
	}
	if f.Community != "" {
		query = query.Where("community = ?", f.Community)
	}
	if len(f.Causes) > 0 {
		query = query.Where("cause_code IN ?", f.Causes)
	}
	return query
}
