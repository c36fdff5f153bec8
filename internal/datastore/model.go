// model.go defines the persisted data model for fire incident records
package datastore

// Fire represents a single fire incident record. Records are loaded once at
// startup and never mutated; the table only serves read-only aggregation.
type Fire struct {
	ID                uint   `gorm:"primaryKey"`
	SourceID          string // record identifier from the source dataset
	Date              string `gorm:"index:idx_fires_date"` // YYYY-MM-DD
	Year              int    `gorm:"index:idx_fires_year;index:idx_fires_year_community"`
	Month             int    `gorm:"index:idx_fires_month"`
	Week              int    // ISO week of the year
	Latitude          float64
	Longitude         float64
	CommunityID       int
	Community         string `gorm:"index:idx_fires_community;index:idx_fires_year_community"`
	ProvinceID        int
	Province          string `gorm:"index:idx_fires_province"`
	Municipality      string
	CauseCode         int `gorm:"index:idx_fires_cause"`
	Cause             string
	SizeClass         string
	BurnedArea        float64 // hectares
	Deaths            int
	Injured           int
	ControlMinutes    int // time until the fire was controlled
	ExtinctionMinutes int // time until the fire was extinguished
	Personnel         int
	Resources         int
	Costs             float64
	Losses            float64
}

// TableName keeps the table name aligned with the domain vocabulary.
func (Fire) TableName() string {
	return "fires"
}
