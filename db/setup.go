package db

import (
	"log"
	"time"

	"github.com/staffline-dev/staffline/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

const (
	connectMaxRetries = 10
	connectRetryDelay = 2 * time.Second
)

// ConnectDatabase waits for the store to become available with a bounded
// retry loop, then keeps the handle in the package-level DB.
func ConnectDatabase(dsn string) error {
	var err error

	for attempt := 1; attempt <= connectMaxRetries; attempt++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

		if err == nil {
			return nil
		}

		log.Printf("Database not ready, retrying... (%d/%d): %v", attempt, connectMaxRetries, err)
		time.Sleep(connectRetryDelay)
	}

	return err
}

func MigrateDatabase() error {
	entities := []interface{}{
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.TeamMember{},
		&models.ProjectModule{},
	}

	migrator := DB.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := DB.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
