package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jueviolegrace13/account-management/internal/dto"
	apierrors "github.com/jueviolegrace13/account-management/internal/errors"
	"github.com/jueviolegrace13/account-management/internal/middleware"
	"github.com/jueviolegrace13/account-management/internal/services"
)

// VaultHandler coordinates vault HTTP handlers.
type VaultHandler struct {
	vaultService *services.VaultService
}

// NewVaultHandler creates a new VaultHandler.
func NewVaultHandler(vaultService *services.VaultService) *VaultHandler {
	return &VaultHandler{
		vaultService: vaultService,
	}
}

// ListEntries lists the account's vault entries.
func (h *VaultHandler) ListEntries(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.InternalError(c, "Account not found in context")
		return
	}

	entries, err := h.vaultService.ListEntries(account.ID)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	entryDTOs := make([]dto.VaultEntryDTO, len(entries))
	for i, entry := range entries {
		entryDTOs[i] = dto.ToVaultEntryDTO(entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entryDTOs,
	})
}

// AddEntry stores a secret on the account.
func (h *VaultHandler) AddEntry(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.InternalError(c, "Account not found in context")
		return
	}

	type AddEntryRequest struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}

	var req AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.vaultService.AddEntry(account.ID, req.Key, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVaultKeyRequired),
			errors.Is(err, services.ErrVaultValueRequired):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToVaultEntryDTO(*entry))
}
