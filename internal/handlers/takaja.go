package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dawahnet/outreach-api/internal/dto"
	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/services"
	"github.com/gin-gonic/gin"
)

// TakajaHandler coordinates takaja HTTP handlers.
type TakajaHandler struct {
	takajaService *services.TakajaService
}

// NewTakajaHandler creates a new TakajaHandler.
func NewTakajaHandler(takajaService *services.TakajaService) *TakajaHandler {
	return &TakajaHandler{
		takajaService: takajaService,
	}
}

// List returns the takajas of the halqa given by ?halqaId=, newest first.
func (h *TakajaHandler) List(c *gin.Context) {
	halqaID, err := queryUint64(c, "halqaId")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if halqaID == nil {
		apierrors.BadRequest(c, "halqaId query parameter is required")
		return
	}

	takajas, err := h.takajaService.ListByHalqa(*halqaID)
	if err != nil {
		respondTakajaError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTakajaListDTO(takajas))
}

// Get returns one takaja with its assignee.
func (h *TakajaHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	takaja, err := h.takajaService.Get(id)
	if err != nil {
		respondTakajaError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTakajaDTO(*takaja))
}

// Create creates a takaja. A takaja created with an assignee starts
// in_progress instead of pending.
func (h *TakajaHandler) Create(c *gin.Context) {
	type CreateTakajaRequest struct {
		Title       string                `json:"title" binding:"required"`
		Description string                `json:"description"`
		HalqaID     uint64                `json:"halqaId" binding:"required"`
		AssignedTo  *uint64               `json:"assignedTo"`
		Priority    models.TakajaPriority `json:"priority"`
		DueDate     *time.Time            `json:"dueDate"`
	}

	var req CreateTakajaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	takaja, err := h.takajaService.Create(services.CreateTakajaInput{
		Title:       req.Title,
		Description: req.Description,
		HalqaID:     req.HalqaID,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTakajaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTakajaDTO(*takaja))
}

// Assign sets (or clears, with null) the assignee without touching the
// status.
func (h *TakajaHandler) Assign(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	type AssignTakajaRequest struct {
		UserID *uint64 `json:"userId"`
	}

	var req AssignTakajaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	takaja, err := h.takajaService.Assign(id, req.UserID)
	if err != nil {
		respondTakajaError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTakajaDTO(*takaja))
}

// Complete marks the takaja completed.
func (h *TakajaHandler) Complete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	takaja, err := h.takajaService.Complete(id)
	if err != nil {
		respondTakajaError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTakajaDTO(*takaja))
}

// Delete hard-deletes a takaja.
func (h *TakajaHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.takajaService.Delete(id); err != nil {
		respondTakajaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Takaja deleted"})
}

func respondTakajaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTakajaNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrHalqaNotFound),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrMemberNotInHalqa),
		errors.Is(err, services.ErrTakajaCompleted):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
