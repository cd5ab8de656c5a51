package handlers

import (
	"net/http"

	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the seeded thana/union reference data.
type DirectoryHandler struct {
	directoryRepo repository.DirectoryRepository
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directoryRepo repository.DirectoryRepository) *DirectoryHandler {
	return &DirectoryHandler{directoryRepo: directoryRepo}
}

// ListThanas returns every thana.
func (h *DirectoryHandler) ListThanas(c *gin.Context) {
	thanas, err := h.directoryRepo.ListThanas()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch thanas")
		return
	}
	c.JSON(http.StatusOK, thanas)
}

// ListUnions returns unions, optionally filtered by ?thanaId=.
func (h *DirectoryHandler) ListUnions(c *gin.Context) {
	thanaID, err := queryUint64(c, "thanaId")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	var scope uint64
	if thanaID != nil {
		scope = *thanaID
	}

	unions, err := h.directoryRepo.ListUnions(scope)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch unions")
		return
	}
	c.JSON(http.StatusOK, unions)
}
