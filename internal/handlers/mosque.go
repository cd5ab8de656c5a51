package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/dawahnet/outreach-api/internal/services"
	"github.com/gin-gonic/gin"
)

// MosqueHandler coordinates mosque HTTP handlers.
type MosqueHandler struct {
	mosqueService     *services.MosqueService
	membershipService *services.MembershipService
}

// NewMosqueHandler creates a new MosqueHandler.
func NewMosqueHandler(mosqueService *services.MosqueService, membershipService *services.MembershipService) *MosqueHandler {
	return &MosqueHandler{
		mosqueService:     mosqueService,
		membershipService: membershipService,
	}
}

// List returns mosques filtered by ?search=&thanaId=&unionId=&halqaId=.
func (h *MosqueHandler) List(c *gin.Context) {
	filter := repository.MosqueFilter{Search: c.Query("search")}

	var err error
	if filter.ThanaID, err = queryUint64(c, "thanaId"); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if filter.UnionID, err = queryUint64(c, "unionId"); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if filter.HalqaID, err = queryUint64(c, "halqaId"); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	mosques, err := h.mosqueService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch mosques")
		return
	}
	c.JSON(http.StatusOK, mosques)
}

// Get returns one mosque with its location and halqa.
func (h *MosqueHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	mosque, err := h.mosqueService.Get(id)
	if err != nil {
		respondMosqueError(c, err)
		return
	}
	c.JSON(http.StatusOK, mosque)
}

// Create creates a mosque.
func (h *MosqueHandler) Create(c *gin.Context) {
	type CreateMosqueRequest struct {
		Name     string               `json:"name" binding:"required"`
		Address  string               `json:"address"`
		Phone    string               `json:"phone"`
		AltPhone string               `json:"altPhone"`
		ThanaID  uint64               `json:"thanaId" binding:"required"`
		UnionID  uint64               `json:"unionId" binding:"required"`
		HalqaID  *uint64              `json:"halqaId"`
		Schedule *models.AmalSchedule `json:"schedule"`
	}

	var req CreateMosqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	mosque, err := h.mosqueService.Create(services.CreateMosqueInput{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		AltPhone: req.AltPhone,
		ThanaID:  req.ThanaID,
		UnionID:  req.UnionID,
		HalqaID:  req.HalqaID,
		Schedule: req.Schedule,
	})
	if err != nil {
		respondMosqueError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mosque)
}

// Update applies a partial update to a mosque.
func (h *MosqueHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type UpdateMosqueRequest struct {
		Name     *string              `json:"name"`
		Address  *string              `json:"address"`
		Phone    *string              `json:"phone"`
		AltPhone *string              `json:"altPhone"`
		ThanaID  *uint64              `json:"thanaId"`
		UnionID  *uint64              `json:"unionId"`
		Schedule *models.AmalSchedule `json:"schedule"`
	}

	var req UpdateMosqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	mosque, err := h.mosqueService.Update(id, services.UpdateMosqueInput{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		AltPhone: req.AltPhone,
		ThanaID:  req.ThanaID,
		UnionID:  req.UnionID,
		Schedule: req.Schedule,
	})
	if err != nil {
		respondMosqueError(c, err)
		return
	}
	c.JSON(http.StatusOK, mosque)
}

// Delete hard-deletes a mosque.
func (h *MosqueHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.mosqueService.Delete(id); err != nil {
		respondMosqueError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mosque deleted"})
}

// AssignHalqa links (or unlinks, with null) the mosque to a halqa.
func (h *MosqueHandler) AssignHalqa(c *gin.Context) {
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

	mosque, err := h.membershipService.AssignMosqueToHalqa(id, req.HalqaID)
	if err != nil {
		respondMosqueError(c, err)
		return
	}
	c.JSON(http.StatusOK, mosque)
}

func respondMosqueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMosqueNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrHalqaNotFound),
		errors.Is(err, services.ErrForeignRegion),
		errors.Is(err, services.ErrThanaNotFound),
		errors.Is(err, services.ErrUnionNotFound),
		errors.Is(err, services.ErrUnionOutsideThana),
		errors.Is(err, services.ErrLocationRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
