package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/services"
	"github.com/gin-gonic/gin"
)

// SettingHandler coordinates settings HTTP handlers.
type SettingHandler struct {
	settingsService *services.SettingsService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settingsService *services.SettingsService) *SettingHandler {
	return &SettingHandler{
		settingsService: settingsService,
	}
}

// List returns the whole settings snapshot as one object.
func (h *SettingHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.All())
}

// Upsert writes one setting; last write wins.
func (h *SettingHandler) Upsert(c *gin.Context) {
	type UpsertSettingRequest struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value"`
	}

	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.settingsService.Set(req.Key, req.Value); err != nil {
		if errors.Is(err, services.ErrSettingKeyRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to save setting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": req.Key, "value": req.Value})
}
