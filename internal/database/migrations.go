package database

import (
	"cleanconnect/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

var ModelsToMigrate = []any{
	&models.EntityRecord{},
}

// MigrateModels runs GORM AutoMigrate for the entity table.
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")

	if db.SQL == nil {
		log.Info("No SQL database configured, skipping migration")
		return nil
	}

	log.Info("Starting database migration")
	for _, model := range ModelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}
