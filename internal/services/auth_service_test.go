package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
)

func setupAuthTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Thana{},
		&models.Union{},
		&models.Halqa{},
		&models.Mosque{},
		&models.User{},
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

	return NewAuthService(repository.NewUserRepository(db), repository.NewDirectoryRepository(db))
}

func TestAuthService_Register(t *testing.T) {
	service := setupAuthTestService(t)

	user, err := service.Register(RegisterInput{
		Name:     "Rahim Uddin",
		Phone:    "01712345640",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.Equal(t, models.RoleMember, user.Role)
	require.Equal(t, "01712345640", user.Phone)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestAuthService_Register_NormalizesPhone(t *testing.T) {
	service := setupAuthTestService(t)

	user, err := service.Register(RegisterInput{
		Name:     "Rahim Uddin",
		Phone:    "+8801712345641",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, "01712345641", user.Phone)

	// The same number in local format now collides.
	_, err = service.Register(RegisterInput{
		Name:     "Karim Uddin",
		Phone:    "017-1234-5641",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrPhoneTaken)
}

func TestAuthService_Register_Validation(t *testing.T) {
	service := setupAuthTestService(t)

	_, err := service.Register(RegisterInput{Name: " ", Phone: "01712345642", Password: "supersecret"})
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = service.Register(RegisterInput{Name: "Rahim", Phone: "12345", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidPhone)

	_, err = service.Register(RegisterInput{Name: "Rahim", Phone: "01712345642", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Register_LocationPairRequired(t *testing.T) {
	service := setupAuthTestService(t)

	thanaID := uint64(1)
	_, err := service.Register(RegisterInput{
		Name:     "Rahim",
		Phone:    "01712345643",
		Password: "supersecret",
		ThanaID:  &thanaID,
	})
	require.ErrorIs(t, err, ErrLocationRequired)

	unionID := uint64(9999)
	_, err = service.Register(RegisterInput{
		Name:     "Rahim",
		Phone:    "01712345643",
		Password: "supersecret",
		ThanaID:  &thanaID,
		UnionID:  &unionID,
	})
	require.ErrorIs(t, err, ErrUnionNotFound)
}

func TestAuthService_Login(t *testing.T) {
	service := setupAuthTestService(t)

	_, err := service.Register(RegisterInput{
		Name:     "Rahim Uddin",
		Phone:    "01712345644",
		Password: "supersecret",
	})
	require.NoError(t, err)

	user, err := service.Login(LoginInput{Phone: "+8801712345644", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, "Rahim Uddin", user.Name)

	_, err = service.Login(LoginInput{Phone: "01712345644", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginInput{Phone: "01799999999", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
