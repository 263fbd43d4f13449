package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jueviolegrace13/account-management/internal/dto"
	apierrors "github.com/jueviolegrace13/account-management/internal/errors"
	"github.com/jueviolegrace13/account-management/internal/middleware"
	"github.com/jueviolegrace13/account-management/internal/services"
	"github.com/jueviolegrace13/account-management/internal/utils"
)

// InvitationHandler coordinates invitation lifecycle HTTP handlers.
type InvitationHandler struct {
	wsService   *services.WorkspaceService
	authService *services.AuthService
	appOrigin   string
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(wsService *services.WorkspaceService, authService *services.AuthService, appOrigin string) *InvitationHandler {
	return &InvitationHandler{
		wsService:   wsService,
		authService: authService,
		appOrigin:   appOrigin,
	}
}

// CreateInvitation invites an email address to the workspace. Owner only;
// the route is gated by RequireWorkspaceOwner.
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	ws, ok := middleware.GetWorkspace(c)
	if !ok {
		apierrors.InternalError(c, "Workspace not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateInvitationRequest struct {
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role" binding:"required"`
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	inv, err := h.wsService.CreateInvitation(services.CreateInvitationInput{
		WorkspaceID: ws.ID,
		ActorID:     userID,
		Email:       req.Email,
		Role:        roleFromString(req.Role),
	})
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	invDTO := dto.ToInvitationDTO(*inv)
	invDTO.AcceptLink = utils.InvitationLink(h.appOrigin, inv.ID)
	c.JSON(http.StatusCreated, invDTO)
}

// ListPendingInvitations returns live invitations addressed to the
// caller's authenticated email.
func (h *InvitationHandler) ListPendingInvitations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load user")
		return
	}

	invitations, err := h.wsService.ListPendingInvitations(user.Email)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	invitationDTOs := make([]dto.InvitationDTO, len(invitations))
	for i, inv := range invitations {
		invitationDTOs[i] = dto.ToInvitationDTO(inv)
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": invitationDTOs,
	})
}

// AcceptInvitation redeems an invitation for the calling user.
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	invitationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invitation ID")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load user")
		return
	}

	inv, err := h.wsService.AcceptInvitation(invitationID, user)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Invitation accepted",
		"invitation": dto.ToInvitationDTO(*inv),
	})
}

func respondInvitationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrWorkspaceNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvitationExpired):
		apierrors.Gone(c, err.Error())
	case errors.Is(err, services.ErrInvitationAlreadyResolved):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvitationEmailMismatch):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
