package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"candidature-api/internal/domain"
)

// Models lists every persisted model in migration order.
func Models() []interface{} {
	return []interface{}{
		&domain.CandidatureTemplate{},
		&domain.TemplateField{},
		&domain.Candidature{},
		&domain.Submission{},
		&domain.Attachment{},
	}
}

// AutoMigrate creates or updates the tables of every model, logging whether
// each table existed before.
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, model := range Models() {
		existed := migrator.HasTable(model)
		if err := db.AutoMigrate(model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("model", fmt.Sprintf("%T", model)),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
		logger.Info("Migrated table",
			zap.String("model", fmt.Sprintf("%T", model)),
			zap.Bool("was_existing", existed),
		)
	}
	return nil
}

// AutoMigrateWithRetry retries AutoMigrate with a linear backoff.
func AutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = AutoMigrate(db, logger); err == nil {
			return nil
		}
		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
