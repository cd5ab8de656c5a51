package middleware

import (
	"github.com/dawahnet/outreach-api/internal/constants"
	"github.com/dawahnet/outreach-api/internal/database"
	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Actor is the authenticated caller: a typed id/role pair resolved against
// the member store, so handlers never work from raw session values.
type Actor struct {
	ID   uint64
	Role models.UserRole
}

// RequireAuth resolves the session against the member store on every
// request. A session pointing at a deleted member is cleared and rejected.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.SessionKeyUserID)
		if raw == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, ok := toUint64(raw)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			// Stale session: the member is gone, force logout.
			session.Clear()
			_ = session.Save()
			apierrors.Unauthorized(c, "Session expired")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyActor, Actor{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
		c.Abort()
	}
}

// GetActor retrieves the authenticated actor from the context.
func GetActor(c *gin.Context) (Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return Actor{}, false
	}
	actor, ok := value.(Actor)
	return actor, ok
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
