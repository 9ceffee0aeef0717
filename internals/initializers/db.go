package initializers

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bu6wer8/student-services-V2/internals/models"
)

// ConnectToDb opens the SQLite database backing the order store.
func ConnectToDb(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SyncDatabase migrates the back-office tables.
func SyncDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Order{},
		&models.Payment{},
	)
}
