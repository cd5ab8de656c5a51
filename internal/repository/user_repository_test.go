package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dawahnet/outreach-api/internal/models"
)

// setupEnforcingDB opens an in-memory database with foreign key enforcement
// switched on, migrated with the same config as the production connection.
// Hard deletes leave dangling halqa/mosque links, which only works because
// migrations create no foreign key constraints.
func setupEnforcingDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createLinkedMember(t *testing.T, db *gorm.DB, phone string, halqaID uint64) *models.User {
	t.Helper()

	thanaID, unionID := uint64(1), uint64(1)
	member := &models.User{
		Name:         "Rahim",
		Phone:        phone,
		PasswordHash: "hashed",
		Role:         models.RoleMember,
		ThanaID:      &thanaID,
		UnionID:      &unionID,
		HalqaID:      &halqaID,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func TestUserRepository_Delete_UnassignsTakajasAndAdjustsCount(t *testing.T) {
	db := setupEnforcingDB(t)
	repo := NewUserRepository(db)

	halqa := models.Halqa{Name: "Halqa A", ThanaID: 1, UnionID: 1, MembersCount: 1}
	require.NoError(t, db.Create(&halqa).Error)
	member := createLinkedMember(t, db, "01712345801", halqa.ID)

	takaja := models.Takaja{
		Title:      "Weekly gasht",
		HalqaID:    halqa.ID,
		AssignedTo: &member.ID,
		Status:     models.TakajaStatusInProgress,
	}
	require.NoError(t, db.Create(&takaja).Error)

	require.NoError(t, repo.Delete(member.ID))

	var reloaded models.Takaja
	require.NoError(t, db.First(&reloaded, takaja.ID).Error)
	require.Nil(t, reloaded.AssignedTo)
	require.Equal(t, models.TakajaStatusInProgress, reloaded.Status)

	var halqaAfter models.Halqa
	require.NoError(t, db.First(&halqaAfter, halqa.ID).Error)
	require.Equal(t, 0, halqaAfter.MembersCount)
}

func TestHalqaRepository_Delete_LeavesDanglingMemberLink(t *testing.T) {
	db := setupEnforcingDB(t)
	repo := NewHalqaRepository(db)

	halqa := models.Halqa{Name: "Halqa A", ThanaID: 1, UnionID: 1, MembersCount: 1}
	require.NoError(t, db.Create(&halqa).Error)
	member := createLinkedMember(t, db, "01712345802", halqa.ID)
	require.NoError(t, db.Create(&models.Takaja{Title: "Weekly taleem", HalqaID: halqa.ID}).Error)

	require.NoError(t, repo.Delete(halqa.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, member.ID).Error)
	require.NotNil(t, reloaded.HalqaID)
	require.Equal(t, halqa.ID, *reloaded.HalqaID)

	var takajaCount int64
	require.NoError(t, db.Model(&models.Takaja{}).Where("halqa_id = ?", halqa.ID).Count(&takajaCount).Error)
	require.EqualValues(t, 0, takajaCount)
}

func TestMosqueRepository_Delete_LeavesDanglingMemberLink(t *testing.T) {
	db := setupEnforcingDB(t)
	repo := NewMosqueRepository(db)

	mosque := models.Mosque{Name: "Baitul Falah", ThanaID: 1, UnionID: 1}
	require.NoError(t, db.Create(&mosque).Error)

	thanaID, unionID := uint64(1), uint64(1)
	member := models.User{
		Name:         "Karim",
		Phone:        "01712345803",
		PasswordHash: "hashed",
		Role:         models.RoleMember,
		ThanaID:      &thanaID,
		UnionID:      &unionID,
		MosqueID:     &mosque.ID,
	}
	require.NoError(t, db.Create(&member).Error)

	require.NoError(t, repo.Delete(mosque.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, member.ID).Error)
	require.NotNil(t, reloaded.MosqueID)
	require.Equal(t, mosque.ID, *reloaded.MosqueID)
}
