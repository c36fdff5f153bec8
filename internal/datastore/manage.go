package datastore

import (
	"time"

	"github.com/yboleas/incendio-go/internal/errors"
	"gorm.io/gorm"
)

// insertBatchSize bounds the number of rows per bulk INSERT. SQLite caps the
// number of bound variables per statement, and the Fire model carries over
// twenty columns.
const insertBatchSize = 250

// performAutoMigration migrates the fires table and logs the outcome.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Fire{}); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("db_type", dbType).
			Context("operation", "auto_migration").
			Build()
	}

	if debug {
		getLogger().Debug("Database initialized",
			"db_type", dbType,
			"connection", connectionInfo)
	}

	return nil
}

// InsertFires bulk-loads fire records in batches inside a single transaction.
func (ds *DataStore) InsertFires(fires []Fire) error {
	if ds.DB == nil {
		return errors.Newf("database connection is not initialized").
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	if len(fires) == 0 {
		return nil
	}

	start := time.Now()
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(fires, insertBatchSize).Error
	})
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "insert_fires").
			Context("record_count", len(fires)).
			Build()
	}

	getLogger().Info("Fire records loaded",
		"count", len(fires),
		"elapsed_ms", time.Since(start).Milliseconds())
	return nil
}
