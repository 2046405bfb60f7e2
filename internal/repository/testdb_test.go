package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory sqlite database with the service schema.
// The tables are created by hand because sqlite has no gen_random_uuid().
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE candidatures (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			title_fr TEXT, title_ar TEXT,
			description_fr TEXT, description_ar TEXT,
			event_location_fr TEXT, event_location_ar TEXT,
			region_fr TEXT, region_ar TEXT,
			start_date DATETIME,
			end_date DATETIME,
			event_dates TEXT,
			prizes TEXT,
			fields TEXT,
			image_url TEXT,
			image_attachment_id TEXT,
			validated BOOLEAN NOT NULL DEFAULT 0,
			published BOOLEAN NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL
		)`,
		`CREATE TABLE candidature_templates (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			title_fr TEXT, title_ar TEXT,
			description_fr TEXT, description_ar TEXT
		)`,
		`CREATE TABLE template_fields (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			template_id TEXT,
			display_order INTEGER NOT NULL DEFAULT 0,
			type TEXT NOT NULL,
			label_fr TEXT, label_ar TEXT,
			name TEXT NOT NULL,
			required BOOLEAN NOT NULL DEFAULT 0,
			placeholder_fr TEXT, placeholder_ar TEXT,
			options TEXT,
			layout TEXT
		)`,
		`CREATE TABLE submissions (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			candidature_id TEXT NOT NULL,
			submitted_by TEXT,
			lang TEXT NOT NULL DEFAULT 'fr',
			answers TEXT
		)`,
		`CREATE TABLE attachments (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			entity_type TEXT NOT NULL,
			entity_id TEXT,
			status TEXT NOT NULL DEFAULT 'TEMP',
			file_name TEXT NOT NULL,
			file_key TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			content_type TEXT NOT NULL,
			uploaded_by TEXT,
			expires_at DATETIME
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}
