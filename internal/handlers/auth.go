package handlers

import (
	"errors"
	"net/http"

	"github.com/dawahnet/outreach-api/internal/constants"
	"github.com/dawahnet/outreach-api/internal/dto"
	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/middleware"
	"github.com/dawahnet/outreach-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new rank-and-file member account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string  `json:"name" binding:"required"`
		Phone    string  `json:"phone" binding:"required"`
		Password string  `json:"password" binding:"required"`
		Email    string  `json:"email"`
		ThanaID  *uint64 `json:"thanaId"`
		UnionID  *uint64 `json:"unionId"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		Email:    req.Email,
		ThanaID:  req.ThanaID,
		UnionID:  req.UnionID,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberDTO(*user))
}

// Login authenticates by phone and password and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated member.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(actor.ID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPhoneTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrThanaNotFound),
		errors.Is(err, services.ErrUnionNotFound),
		errors.Is(err, services.ErrUnionOutsideThana),
		errors.Is(err, services.ErrLocationRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
