package postgres

import (
	"fmt"

	"gorm.io/gorm"

	appointmentsrepo "medq/internal/appointments/repository"
	queuerepo "medq/internal/queue/repository"
	"medq/pkg/logger"
)

// RunMigration creates or updates the appointments and queue_counters tables.
func RunMigration(db *gorm.DB, log *logger.Logger) error {
	log.Info("Running Postgres migrations")

	if err := appointmentsrepo.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", appointmentsrepo.TableName, err)
	}
	if err := queuerepo.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", queuerepo.CollectionName, err)
	}

	log.Info("All Postgres migrations applied successfully")
	return nil
}
