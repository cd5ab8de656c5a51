package handlers

import (
	"errors"
	"net/http"

	"github.com/dawahnet/outreach-api/internal/dto"
	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/dawahnet/outreach-api/internal/services"
	"github.com/gin-gonic/gin"
)

// HalqaHandler coordinates halqa HTTP handlers.
type HalqaHandler struct {
	halqaService      *services.HalqaService
	membershipService *services.MembershipService
}

// NewHalqaHandler creates a new HalqaHandler.
func NewHalqaHandler(halqaService *services.HalqaService, membershipService *services.MembershipService) *HalqaHandler {
	return &HalqaHandler{
		halqaService:      halqaService,
		membershipService: membershipService,
	}
}

// List returns halqas filtered by ?search=&thanaId=&unionId=.
func (h *HalqaHandler) List(c *gin.Context) {
	filter := repository.HalqaFilter{Search: c.Query("search")}

	var err error
	if filter.ThanaID, err = queryUint64(c, "thanaId"); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if filter.UnionID, err = queryUint64(c, "unionId"); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	halqas, err := h.halqaService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch halqas")
		return
	}
	c.JSON(http.StatusOK, halqas)
}

// Get returns one halqa.
func (h *HalqaHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	halqa, err := h.halqaService.Get(id)
	if err != nil {
		respondHalqaError(c, err)
		return
	}
	c.JSON(http.StatusOK, halqa)
}

// Create creates a halqa.
func (h *HalqaHandler) Create(c *gin.Context) {
	type CreateHalqaRequest struct {
		Name    string `json:"name" binding:"required"`
		ThanaID uint64 `json:"thanaId" binding:"required"`
		UnionID uint64 `json:"unionId" binding:"required"`
	}

	var req CreateHalqaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	halqa, err := h.halqaService.Create(services.CreateHalqaInput{
		Name:    req.Name,
		ThanaID: req.ThanaID,
		UnionID: req.UnionID,
	})
	if err != nil {
		respondHalqaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, halqa)
}

// Update applies a partial update to a halqa.
func (h *HalqaHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type UpdateHalqaRequest struct {
		Name    *string `json:"name"`
		ThanaID *uint64 `json:"thanaId"`
		UnionID *uint64 `json:"unionId"`
	}

	var req UpdateHalqaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	halqa, err := h.halqaService.Update(id, services.UpdateHalqaInput{
		Name:    req.Name,
		ThanaID: req.ThanaID,
		UnionID: req.UnionID,
	})
	if err != nil {
		respondHalqaError(c, err)
		return
	}
	c.JSON(http.StatusOK, halqa)
}

// Delete hard-deletes a halqa and its takajas.
func (h *HalqaHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.halqaService.Delete(id); err != nil {
		respondHalqaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Halqa deleted"})
}

// CandidateMembers lists members eligible for placement in the halqa.
func (h *HalqaHandler) CandidateMembers(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	members, err := h.membershipService.CandidateMembers(id)
	if err != nil {
		respondHalqaError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberListDTO(members))
}

// CandidateMosques lists unlinked mosques in the halqa's location.
func (h *HalqaHandler) CandidateMosques(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	mosques, err := h.membershipService.CandidateMosques(id)
	if err != nil {
		respondHalqaError(c, err)
		return
	}
	c.JSON(http.StatusOK, mosques)
}

func respondHalqaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHalqaNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrThanaNotFound),
		errors.Is(err, services.ErrUnionNotFound),
		errors.Is(err, services.ErrUnionOutsideThana),
		errors.Is(err, services.ErrLocationRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
