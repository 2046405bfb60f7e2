package database

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type queryRecord struct {
	operation string
	table     string
	err       error
}

type mockMetricsRecorder struct {
	mu      sync.Mutex
	queries []queryRecord
	stats   []sql.DBStats
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, _ time.Duration, err error) {
	m.queries = append(m.queries, queryRecord{operation: operation, table: table, err: err})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats sql.DBStats, _ int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = append(m.stats, stats)
}

func (m *mockMetricsRecorder) statsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stats)
}

type noteModel struct {
	ID   string `gorm:"type:text;primaryKey"`
	Body string
}

func (noteModel) TableName() string {
	return "notes"
}

func setupTestDB(t *testing.T) (*gorm.DB, *mockMetricsRecorder) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&noteModel{}))

	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))
	return db, recorder
}

func TestRegisterMetricsCallbacks(t *testing.T) {
	tests := []struct {
		name      string
		run       func(db *gorm.DB, seeded *noteModel) error
		operation string
		wantErr   bool
	}{
		{"select", func(db *gorm.DB, _ *noteModel) error {
			var n noteModel
			return db.First(&n).Error
		}, "select", false},
		{"insert", func(db *gorm.DB, _ *noteModel) error {
			return db.Create(&noteModel{ID: uuid.NewString(), Body: "x"}).Error
		}, "insert", false},
		{"update", func(db *gorm.DB, seeded *noteModel) error {
			return db.Model(seeded).Update("Body", "updated").Error
		}, "update", false},
		{"delete", func(db *gorm.DB, seeded *noteModel) error {
			return db.Delete(seeded).Error
		}, "delete", false},
		{"select not found", func(db *gorm.DB, _ *noteModel) error {
			var n noteModel
			_ = db.First(&n, "id = ?", "missing").Error
			return nil
		}, "select", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, recorder := setupTestDB(t)
			seeded := &noteModel{ID: uuid.NewString(), Body: "seed"}
			require.NoError(t, db.Create(seeded).Error)
			recorder.queries = nil

			require.NoError(t, tt.run(db, seeded))

			require.Len(t, recorder.queries, 1)
			q := recorder.queries[0]
			assert.Equal(t, tt.operation, q.operation)
			assert.Equal(t, "notes", q.table)
			if tt.wantErr {
				assert.Error(t, q.err)
			} else {
				assert.NoError(t, q.err)
			}
		})
	}
}

func TestStartDBStatsCollector(t *testing.T) {
	db, recorder := setupTestDB(t)

	done := StartDBStatsCollector(db, recorder, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return recorder.statsCalls() > 0 }, time.Second, 5*time.Millisecond)
	close(done)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(Config{Driver: "mysql"})
	assert.Error(t, err)
}

func TestNew_SQLite(t *testing.T) {
	db, err := New(Config{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	defer Close(db)

	SetDB(db)
	assert.True(t, IsConnected())
	SetDB(nil)
	assert.False(t, IsConnected())
}
