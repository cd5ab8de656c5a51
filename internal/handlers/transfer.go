package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/dawahnet/outreach-api/internal/errors"
	"github.com/dawahnet/outreach-api/internal/services"
	"github.com/gin-gonic/gin"
)

// TransferHandler coordinates bulk import, export and restore handlers.
type TransferHandler struct {
	transferService *services.TransferService
	settingsService *services.SettingsService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferService *services.TransferService, settingsService *services.SettingsService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		settingsService: settingsService,
	}
}

// ImportMembers bulk-inserts members. Bad rows are reported individually;
// the batch never aborts.
func (h *TransferHandler) ImportMembers(c *gin.Context) {
	var rows []services.MemberImportRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	c.JSON(http.StatusOK, h.transferService.ImportMembers(rows))
}

// ImportMosques bulk-inserts mosques.
func (h *TransferHandler) ImportMosques(c *gin.Context) {
	var rows []services.MosqueImportRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	c.JSON(http.StatusOK, h.transferService.ImportMosques(rows))
}

// ImportHalqas bulk-inserts halqas.
func (h *TransferHandler) ImportHalqas(c *gin.Context) {
	var rows []services.HalqaImportRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	c.JSON(http.StatusOK, h.transferService.ImportHalqas(rows))
}

// Export returns the whole database as one backup document.
func (h *TransferHandler) Export(c *gin.Context) {
	doc, err := h.transferService.Export()
	if err != nil {
		apierrors.InternalError(c, "Failed to export data")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Restore replaces the database contents with a backup document in one
// transaction, then refreshes the settings snapshot.
func (h *TransferHandler) Restore(c *gin.Context) {
	var doc services.BackupDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.transferService.Restore(&doc); err != nil {
		if errors.Is(err, services.ErrEmptyBackup) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to restore data")
		return
	}

	if err := h.settingsService.Load(); err != nil {
		apierrors.InternalError(c, "Failed to reload settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restore completed"})
}
