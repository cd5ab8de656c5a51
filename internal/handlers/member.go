package handlers

import (
	"errors"
	"net/http"

	"github.com/dawahnet/outreach-api/internal/dto"
	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/middleware"
	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/dawahnet/outreach-api/internal/services"
	"github.com/gin-gonic/gin"
)

// MemberHandler coordinates member HTTP handlers.
type MemberHandler struct {
	memberService     *services.MemberService
	membershipService *services.MembershipService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService *services.MemberService, membershipService *services.MembershipService) *MemberHandler {
	return &MemberHandler{
		memberService:     memberService,
		membershipService: membershipService,
	}
}

// List returns members filtered by ?search=&thanaId=&unionId=&role=.
// The role filter defaults to member; only super admins may list managers.
func (h *MemberHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	filter := repository.MemberFilter{
		Search: c.Query("search"),
		Role:   models.UserRole(c.Query("role")),
	}

	var err error
	if filter.ThanaID, err = queryUint64(c, "thanaId"); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if filter.UnionID, err = queryUint64(c, "unionId"); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	users, err := h.memberService.List(filter, actor.Role)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberListDTO(users))
}

// Get returns one member.
func (h *MemberHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := h.memberService.Get(id)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberDTO(*user))
}

// Create adds a member (or, for a super admin, a manager).
func (h *MemberHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateMemberRequest struct {
		Name       string          `json:"name" binding:"required"`
		Phone      string          `json:"phone" binding:"required"`
		Password   string          `json:"password" binding:"required"`
		Email      string          `json:"email"`
		Role       models.UserRole `json:"role"`
		ThanaID    *uint64         `json:"thanaId"`
		UnionID    *uint64         `json:"unionId"`
		Activities []string        `json:"activities"`
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.memberService.Create(services.CreateMemberInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Password:   req.Password,
		Email:      req.Email,
		Role:       req.Role,
		ThanaID:    req.ThanaID,
		UnionID:    req.UnionID,
		Activities: req.Activities,
	}, actor.Role)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemberDTO(*user))
}

// Update applies a partial update under the role rules.
func (h *MemberHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type UpdateMemberRequest struct {
		Name       *string          `json:"name"`
		Email      *string          `json:"email"`
		Activities *[]string        `json:"activities"`
		Password   *string          `json:"password"`
		Phone      *string          `json:"phone"`
		ThanaID    *uint64          `json:"thanaId"`
		UnionID    *uint64          `json:"unionId"`
		Role       *models.UserRole `json:"role"`
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.memberService.Update(id, services.UpdateMemberInput{
		Name:       req.Name,
		Email:      req.Email,
		Activities: req.Activities,
		Password:   req.Password,
		Phone:      req.Phone,
		ThanaID:    req.ThanaID,
		UnionID:    req.UnionID,
		Role:       req.Role,
	}, actor.ID, actor.Role)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberDTO(*user))
}

// Delete hard-deletes a member.
func (h *MemberHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.memberService.Delete(id); err != nil {
		respondMemberError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

// AssignHalqa links (or unlinks, with null) the member to a halqa.
func (h *MemberHandler) AssignHalqa(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type AssignHalqaRequest struct {
		HalqaID *uint64 `json:"halqaId"`
	}

	var req AssignHalqaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.membershipService.AssignMemberToHalqa(id, req.HalqaID)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberDTO(*user))
}

// AssignMosque links (or unlinks, with null) the member to a mosque. The
// member's halqa follows the mosque's halqa.
func (h *MemberHandler) AssignMosque(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type AssignMosqueRequest struct {
		MosqueID *uint64 `json:"mosqueId"`
	}

	var req AssignMosqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.membershipService.ReassignMemberMosque(id, req.MosqueID)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberDTO(*user))
}

func respondMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrManagerListRestricted),
		errors.Is(err, services.ErrManagerManageRestricted),
		errors.Is(err, services.ErrSelfEditOnly),
		errors.Is(err, services.ErrProfileFieldsOnly),
		errors.Is(err, services.ErrRoleChangeRestricted):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrPhoneTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrNotPlainMember),
		errors.Is(err, services.ErrForeignRegion),
		errors.Is(err, services.ErrMemberLocationUnset),
		errors.Is(err, services.ErrHalqaNotFound),
		errors.Is(err, services.ErrMosqueNotFound),
		errors.Is(err, services.ErrThanaNotFound),
		errors.Is(err, services.ErrUnionNotFound),
		errors.Is(err, services.ErrUnionOutsideThana),
		errors.Is(err, services.ErrLocationRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
