package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
)

func setupSettingsTestService(t *testing.T) (*gorm.DB, *SettingsService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewSettingsService(repository.NewSettingRepository(db))
}

func TestSettingsService_LoadAndGet(t *testing.T) {
	db, service := setupSettingsTestService(t)

	require.NoError(t, db.Create(&models.Setting{Key: "org_name", Value: "Outreach Network"}).Error)
	require.NoError(t, service.Load())

	value, ok := service.Get("org_name")
	require.True(t, ok)
	require.Equal(t, "Outreach Network", value)

	_, ok = service.Get("missing")
	require.False(t, ok)
}

func TestSettingsService_SetPersistsAndRefreshes(t *testing.T) {
	db, service := setupSettingsTestService(t)
	require.NoError(t, service.Load())

	require.NoError(t, service.Set("org_name", "Outreach Network"))

	value, ok := service.Get("org_name")
	require.True(t, ok)
	require.Equal(t, "Outreach Network", value)

	var stored models.Setting
	require.NoError(t, db.First(&stored, "key = ?", "org_name").Error)
	require.Equal(t, "Outreach Network", stored.Value)

	// Last write wins.
	require.NoError(t, service.Set("org_name", "Renamed"))
	require.NoError(t, db.First(&stored, "key = ?", "org_name").Error)
	require.Equal(t, "Renamed", stored.Value)

	all := service.All()
	require.Equal(t, map[string]string{"org_name": "Renamed"}, all)
}

func TestSettingsService_SetRequiresKey(t *testing.T) {
	_, service := setupSettingsTestService(t)
	require.ErrorIs(t, service.Set("   ", "value"), ErrSettingKeyRequired)
}
