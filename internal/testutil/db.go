// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"consultorio-server/internal/models"
)

var dbCounter atomic.Int64

// NewDB opens a fresh, migrated in-memory SQLite database for one test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))

	db, err := models.InitDB(models.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 { return &v }

// UintPtr returns a pointer to v, for optional references.
func UintPtr(v uint) *uint { return &v }
