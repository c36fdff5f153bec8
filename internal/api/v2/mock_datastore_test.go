package api

import (
	"github.com/stretchr/testify/mock"
	"github.com/yboleas/incendio-go/internal/datastore"
	"github.com/yboleas/incendio-go/internal/fire"
	"github.com/yboleas/incendio-go/internal/observability/metrics"
)

// MockDataStore implements datastore.Interface for handler tests.
type MockDataStore struct {
	mock.Mock
}

func (m *MockDataStore) Open() error  { return m.Called().Error(0) }
func (m *MockDataStore) Close() error { return m.Called().Error(0) }

func (m *MockDataStore) SetMetrics(dm *metrics.DatastoreMetrics) { m.Called(dm) }

func (m *MockDataStore) InsertFires(fires []datastore.Fire) error {
	return m.Called(fires).Error(0)
}

func (m *MockDataStore) CountFires(f *datastore.Filter) (int64, error) {
	args := m.Called(f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataStore) TotalBurnedArea(f *datastore.Filter) (float64, error) {
	args := m.Called(f)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockDataStore) PeakYear(f *datastore.Filter) (int, error) {
	args := m.Called(f)
	return args.Int(0), args.Error(1)
}

func (m *MockDataStore) MonthlyCounts(f *datastore.Filter) ([]fire.MonthlyCount, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fire.MonthlyCount), args.Error(1)
}

func (m *MockDataStore) ProvinceBurnedArea(f *datastore.Filter) ([]datastore.ProvinceAreaRow, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.ProvinceAreaRow), args.Error(1)
}

func (m *MockDataStore) CauseShareByYear(f *datastore.Filter) ([]datastore.CauseShareRow, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.CauseShareRow), args.Error(1)
}

func (m *MockDataStore) RegionalRanking(f *datastore.Filter, limit int) ([]datastore.RankingRow, error) {
	args := m.Called(f, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.RankingRow), args.Error(1)
}

func (m *MockDataStore) WeeklyAreaDistribution(f *datastore.Filter, minArea float64) ([]datastore.WeeklyAreaRow, error) {
	args := m.Called(f, minArea)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.WeeklyAreaRow), args.Error(1)
}

func (m *MockDataStore) MajorFires(f *datastore.Filter, threshold float64) ([]datastore.MajorFireRow, error) {
	args := m.Called(f, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.MajorFireRow), args.Error(1)
}

func (m *MockDataStore) YearRange() (int, int, error) {
	args := m.Called()
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockDataStore) Communities() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDataStore) Causes() ([]datastore.CauseRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datastore.CauseRow), args.Error(1)
}
