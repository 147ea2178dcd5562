// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/Skotchmaster/campus_bites/internal/models"
	pkgdb "github.com/Skotchmaster/campus_bites/pkg/db"
)

// NewDB returns a migrated in-memory sqlite database closed at test end.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	t.Cleanup(func() { _ = pkgdb.Close(db) })
	return db
}
