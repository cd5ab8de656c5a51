package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
)

func setupHalqaTestService(t *testing.T) (*gorm.DB, *HalqaService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Thana{},
		&models.Union{},
		&models.Halqa{},
		&models.Mosque{},
		&models.User{},
		&models.Takaja{},
	)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Thana{ID: 1, Name: "Sadar", BnName: "সদর"}).Error)
	require.NoError(t, db.Create(&models.Union{ID: 1, ThanaID: 1, Name: "Alampur", BnName: "আলমপুর"}).Error)
	require.NoError(t, db.Create(&models.Union{ID: 2, ThanaID: 1, Name: "Amla", BnName: "আমলা"}).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewHalqaService(repository.NewHalqaRepository(db), repository.NewDirectoryRepository(db))
}

func TestHalqaService_Create(t *testing.T) {
	_, service := setupHalqaTestService(t)

	halqa, err := service.Create(CreateHalqaInput{Name: "  Halqa A  ", ThanaID: 1, UnionID: 1})
	require.NoError(t, err)
	require.Equal(t, "Halqa A", halqa.Name)
	require.Equal(t, 0, halqa.MembersCount)

	_, err = service.Create(CreateHalqaInput{Name: " ", ThanaID: 1, UnionID: 1})
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = service.Create(CreateHalqaInput{Name: "Halqa B", ThanaID: 1, UnionID: 9999})
	require.ErrorIs(t, err, ErrUnionNotFound)
}

func TestHalqaService_Update_LocationChangeKeepsDependents(t *testing.T) {
	db, service := setupHalqaTestService(t)

	halqa, err := service.Create(CreateHalqaInput{Name: "Halqa A", ThanaID: 1, UnionID: 1})
	require.NoError(t, err)

	thanaID, unionID := uint64(1), uint64(1)
	member := models.User{
		Name:         "Rahim",
		Phone:        "01712345710",
		PasswordHash: "hashed",
		Role:         models.RoleMember,
		ThanaID:      &thanaID,
		UnionID:      &unionID,
		HalqaID:      &halqa.ID,
	}
	require.NoError(t, db.Create(&member).Error)

	newUnion := uint64(2)
	updated, err := service.Update(halqa.ID, UpdateHalqaInput{UnionID: &newUnion})
	require.NoError(t, err)
	require.EqualValues(t, 2, updated.UnionID)

	// The member's link survives unchanged; only future candidate lists
	// see the new location.
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, member.ID).Error)
	require.NotNil(t, reloaded.HalqaID)
	require.Equal(t, halqa.ID, *reloaded.HalqaID)
}

func TestHalqaService_Delete_OrphansMembersAndRemovesTakajas(t *testing.T) {
	db, service := setupHalqaTestService(t)

	halqa, err := service.Create(CreateHalqaInput{Name: "Halqa A", ThanaID: 1, UnionID: 1})
	require.NoError(t, err)

	thanaID, unionID := uint64(1), uint64(1)
	member := models.User{
		Name:         "Rahim",
		Phone:        "01712345711",
		PasswordHash: "hashed",
		Role:         models.RoleMember,
		ThanaID:      &thanaID,
		UnionID:      &unionID,
		HalqaID:      &halqa.ID,
	}
	require.NoError(t, db.Create(&member).Error)
	require.NoError(t, db.Create(&models.Takaja{Title: "Weekly gasht", HalqaID: halqa.ID}).Error)

	require.NoError(t, service.Delete(halqa.ID))

	_, err = service.Get(halqa.ID)
	require.ErrorIs(t, err, ErrHalqaNotFound)

	// The member keeps a dangling halqa link; the halqa's takajas are gone.
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, member.ID).Error)
	require.NotNil(t, reloaded.HalqaID)

	var takajaCount int64
	require.NoError(t, db.Model(&models.Takaja{}).Where("halqa_id = ?", halqa.ID).Count(&takajaCount).Error)
	require.EqualValues(t, 0, takajaCount)
}

func TestHalqaService_Delete_NotFound(t *testing.T) {
	_, service := setupHalqaTestService(t)
	require.ErrorIs(t, service.Delete(9999), ErrHalqaNotFound)
}
