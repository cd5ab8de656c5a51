package handlers

import (
	"net/http"

	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves aggregate counts for the admin overview.
type DashboardHandler struct {
	userRepo   repository.UserRepository
	mosqueRepo repository.MosqueRepository
	halqaRepo  repository.HalqaRepository
	takajaRepo repository.TakajaRepository
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	userRepo repository.UserRepository,
	mosqueRepo repository.MosqueRepository,
	halqaRepo repository.HalqaRepository,
	takajaRepo repository.TakajaRepository,
) *DashboardHandler {
	return &DashboardHandler{
		userRepo:   userRepo,
		mosqueRepo: mosqueRepo,
		halqaRepo:  halqaRepo,
		takajaRepo: takajaRepo,
	}
}

// Stats returns the entity totals.
func (h *DashboardHandler) Stats(c *gin.Context) {
	members, err := h.userRepo.Count()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch stats")
		return
	}
	mosques, err := h.mosqueRepo.Count()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch stats")
		return
	}
	halqas, err := h.halqaRepo.Count()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch stats")
		return
	}
	takajas, err := h.takajaRepo.Count()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"mosques": mosques,
		"halqas":  halqas,
		"takajas": takajas,
	})
}
