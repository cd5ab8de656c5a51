package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dawahnet/outreach-api/internal/constants"
	"github.com/dawahnet/outreach-api/internal/database"
	"github.com/dawahnet/outreach-api/internal/models"
)

func setupMiddlewareTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionName, store))
	return r
}

func TestRequireAuth_NoSession(t *testing.T) {
	setupMiddlewareTestDB(t)

	r := newSessionRouter()
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidSession(t *testing.T) {
	db := setupMiddlewareTestDB(t)

	user := &models.User{Name: "Rahim", Phone: "01712345680", PasswordHash: "hashed", Role: models.RoleManager}
	require.NoError(t, db.Create(user).Error)

	r := newSessionRouter()
	r.GET("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.SessionKeyUserID, user.ID)
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		actor, ok := GetActor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})

	loginReq := httptest.NewRequest(http.MethodGet, "/login", nil)
	loginW := httptest.NewRecorder()
	r.ServeHTTP(loginW, loginReq)
	require.Equal(t, http.StatusOK, loginW.Code)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range loginW.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_DeletedMember(t *testing.T) {
	db := setupMiddlewareTestDB(t)

	user := &models.User{Name: "Gone", Phone: "01712345681", PasswordHash: "hashed", Role: models.RoleMember}
	require.NoError(t, db.Create(user).Error)

	r := newSessionRouter()
	r.GET("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.SessionKeyUserID, user.ID)
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	loginReq := httptest.NewRequest(http.MethodGet, "/login", nil)
	loginW := httptest.NewRecorder()
	r.ServeHTTP(loginW, loginReq)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range loginW.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(role models.UserRole, allowed ...models.UserRole) int {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(constants.ContextKeyActor, Actor{ID: 1, Role: role})

		RequireRole(allowed...)(c)
		if c.IsAborted() {
			return w.Code
		}
		return http.StatusOK
	}

	require.Equal(t, http.StatusOK, run(models.RoleSuperAdmin, models.RoleSuperAdmin))
	require.Equal(t, http.StatusOK, run(models.RoleManager, models.RoleManager, models.RoleSuperAdmin))
	require.Equal(t, http.StatusForbidden, run(models.RoleManager, models.RoleSuperAdmin))
	require.Equal(t, http.StatusForbidden, run(models.RoleMember, models.RoleManager, models.RoleSuperAdmin))
}

func TestRequireRole_NoActor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequireRole(models.RoleSuperAdmin)(c)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
