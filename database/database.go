package database

import (
	"fmt"
	"log"

	"github.com/agriassist/agriassist-llm-server/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects with the named driver ("sqlite" or "postgres") and migrates
// the schema.
func Open(driver string, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// Migrate the schema
	if err := db.AutoMigrate(&models.Flag{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	log.Printf("Database ready (driver: %s)\n", driver)
	return db, nil
}
