package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"license-manager/internal/config"
	"license-manager/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway sqlite database that is removed when the
// test finishes.
func newTestDB(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: fmt.Sprintf("%s/licmgr_test_%d.db", os.TempDir(), time.Now().UnixNano()),
			},
		},
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-testing-only",
			ExpiresIn: "24h",
			Issuer:    "license-manager-test",
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
	}

	db, err := models.InitDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		os.Remove(cfg.Database.SQLite.Path)
	})

	return db, cfg
}

// fixedToday pins a license service's clock to the given calendar date.
func fixedToday(svc *LicenseService, year int, month time.Month, day int) {
	svc.now = func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}
