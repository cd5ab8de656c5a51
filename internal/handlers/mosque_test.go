package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/dawahnet/outreach-api/internal/services"
)

func setupMosqueHandler(t *testing.T) (*gorm.DB, *MosqueHandler) {
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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	mosqueRepo := repository.NewMosqueRepository(db)
	halqaRepo := repository.NewHalqaRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)

	mosqueService := services.NewMosqueService(mosqueRepo, halqaRepo, directoryRepo)
	membershipService := services.NewMembershipService(userRepo, mosqueRepo, halqaRepo, membershipRepo)

	gin.SetMode(gin.TestMode)
	return db, NewMosqueHandler(mosqueService, membershipService)
}

// List never preloads relations; the response must omit them rather than
// emit zero-valued thana/union objects.
func TestMosqueHandler_List_OmitsUnloadedRelations(t *testing.T) {
	db, handler := setupMosqueHandler(t)
	require.NoError(t, db.Create(&models.Mosque{Name: "Baitul Falah", ThanaID: 1, UnionID: 1}).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/mosques", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.NotContains(t, body[0], "thana")
	require.NotContains(t, body[0], "union")
	require.NotContains(t, body[0], "halqa")
}

func TestMosqueHandler_Get_IncludesPreloadedLocation(t *testing.T) {
	db, handler := setupMosqueHandler(t)

	mosque := models.Mosque{Name: "Baitul Falah", ThanaID: 1, UnionID: 1}
	require.NoError(t, db.Create(&mosque).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/mosques/"+strconv.FormatUint(mosque.ID, 10), nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(mosque.ID, 10)}}

	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	thana, ok := body["thana"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Sadar", thana["name"])
	// No halqa linked, so the pointer stays nil and the key is absent.
	require.NotContains(t, body, "halqa")
}
