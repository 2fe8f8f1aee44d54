package db

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated sqlite database inside the test's temp dir
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := New(Options{
		Driver:      "sqlite",
		DSN:         filepath.Join(t.TempDir(), "test.db"),
		Logger:      logger.Discard,
		AllowCreate: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}
