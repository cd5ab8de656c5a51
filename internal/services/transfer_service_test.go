package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
)

func setupTransferTestDB(t *testing.T) (*gorm.DB, *TransferService) {
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
		&models.Setting{},
	)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Thana{ID: 1, Name: "Sadar", BnName: "সদর"}).Error)
	require.NoError(t, db.Create(&models.Union{ID: 1, ThanaID: 1, Name: "Alampur", BnName: "আলমপুর"}).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewTransferService(db, repository.NewDirectoryRepository(db))
}

func TestTransferService_ImportMembers(t *testing.T) {
	db, service := setupTransferTestDB(t)

	thanaID, unionID := uint64(1), uint64(1)
	summary := service.ImportMembers([]MemberImportRow{
		{Name: "Rahim", Phone: "01712345630", ThanaID: &thanaID, UnionID: &unionID},
		{Name: "Karim", Phone: "01712345631"},
	})

	require.Equal(t, 2, summary.Success)
	require.Equal(t, 0, summary.Failed)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestTransferService_ImportMembers_RowErrors(t *testing.T) {
	db, service := setupTransferTestDB(t)

	require.NoError(t, db.Create(&models.User{
		Name:         "Existing",
		Phone:        "01712345632",
		PasswordHash: "hashed",
		Role:         models.RoleMember,
	}).Error)

	summary := service.ImportMembers([]MemberImportRow{
		{Name: "Good", Phone: "01712345633"},
		{Name: "Taken", Phone: "01712345632"},  // already registered
		{Name: "", Phone: "01712345634"},       // missing name
		{Name: "Bad Phone", Phone: "12345"},    // invalid phone
		{Name: "Repeat", Phone: "01712345633"}, // duplicate within payload
	})

	require.Equal(t, 1, summary.Success)
	require.Equal(t, 4, summary.Failed)
	require.Len(t, summary.Errors, 4)

	// Row numbers are spreadsheet rows: index + 2 for the header row.
	require.Equal(t, 3, summary.Errors[0].Row)
	require.Equal(t, 4, summary.Errors[1].Row)
	require.Equal(t, 5, summary.Errors[2].Row)
	require.Equal(t, 6, summary.Errors[3].Row)
}

func TestTransferService_ImportMembers_DefaultPasswordIsPhone(t *testing.T) {
	db, service := setupTransferTestDB(t)

	summary := service.ImportMembers([]MemberImportRow{
		{Name: "Rahim", Phone: "01712345635"},
	})
	require.Equal(t, 1, summary.Success)

	var user models.User
	require.NoError(t, db.Where("phone = ?", "01712345635").First(&user).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("01712345635")))
}

func TestTransferService_ImportMosques_LocationRequired(t *testing.T) {
	_, service := setupTransferTestDB(t)

	thanaID, unionID := uint64(1), uint64(1)
	summary := service.ImportMosques([]MosqueImportRow{
		{Name: "Central Mosque", ThanaID: &thanaID, UnionID: &unionID},
		{Name: "No Location"},
	})

	require.Equal(t, 1, summary.Success)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 3, summary.Errors[0].Row)
}

func TestTransferService_ImportHalqas(t *testing.T) {
	_, service := setupTransferTestDB(t)

	thanaID, unionID := uint64(1), uint64(1)
	badUnion := uint64(9999)
	summary := service.ImportHalqas([]HalqaImportRow{
		{Name: "Halqa A", ThanaID: &thanaID, UnionID: &unionID},
		{Name: "Halqa B", ThanaID: &thanaID, UnionID: &badUnion},
	})

	require.Equal(t, 1, summary.Success)
	require.Equal(t, 1, summary.Failed)
}

func TestTransferService_ExportRestoreRoundTrip(t *testing.T) {
	db, service := setupTransferTestDB(t)

	halqa := models.Halqa{Name: "Halqa A", ThanaID: 1, UnionID: 1, MembersCount: 1}
	require.NoError(t, db.Create(&halqa).Error)

	thanaID, unionID := uint64(1), uint64(1)
	user := models.User{
		Name:         "Rahim",
		Phone:        "01712345636",
		PasswordHash: "bcrypt-hash",
		Role:         models.RoleMember,
		ThanaID:      &thanaID,
		UnionID:      &unionID,
		HalqaID:      &halqa.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Takaja{Title: "Weekly gasht", HalqaID: halqa.ID}).Error)
	require.NoError(t, db.Create(&models.Setting{Key: "org_name", Value: "Outreach Network"}).Error)

	doc, err := service.Export()
	require.NoError(t, err)
	require.Len(t, doc.Thanas, 1)
	require.Len(t, doc.Members, 1)
	require.Equal(t, "bcrypt-hash", doc.Members[0].PasswordHash)

	// Mutate the live data, then restore the snapshot over it.
	require.NoError(t, db.Create(&models.User{Name: "Intruder", Phone: "01712345637", PasswordHash: "x", Role: models.RoleMember}).Error)
	require.NoError(t, db.Model(&models.Setting{}).Where("key = ?", "org_name").Update("value", "Changed").Error)

	require.NoError(t, service.Restore(doc))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	require.Equal(t, user.ID, users[0].ID)
	require.Equal(t, "bcrypt-hash", users[0].PasswordHash)

	var setting models.Setting
	require.NoError(t, db.First(&setting, "key = ?", "org_name").Error)
	require.Equal(t, "Outreach Network", setting.Value)
}

func TestTransferService_Restore_NilDocument(t *testing.T) {
	_, service := setupTransferTestDB(t)
	require.ErrorIs(t, service.Restore(nil), ErrEmptyBackup)
}
