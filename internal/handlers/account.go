package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jueviolegrace13/account-management/internal/dto"
	apierrors "github.com/jueviolegrace13/account-management/internal/errors"
	"github.com/jueviolegrace13/account-management/internal/middleware"
	"github.com/jueviolegrace13/account-management/internal/services"
	"github.com/jueviolegrace13/account-management/internal/utils"
)

// AccountHandler coordinates account HTTP handlers.
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateAccount creates a credential record in the workspace.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	ws, ok := middleware.GetWorkspace(c)
	if !ok {
		apierrors.InternalError(c, "Workspace not found in context")
		return
	}

	type CreateAccountRequest struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Website  string `json:"website"`
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(services.CreateAccountInput{
		WorkspaceID: ws.ID,
		Name:        req.Name,
		Username:    req.Username,
		Website:     req.Website,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*account))
}

// ListWorkspaceAccounts lists accounts in the workspace visible to the caller.
func (h *AccountHandler) ListWorkspaceAccounts(c *gin.Context) {
	ws, ok := middleware.GetWorkspace(c)
	if !ok {
		apierrors.InternalError(c, "Workspace not found in context")
		return
	}
	member, ok := middleware.GetMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	accounts, err := h.accountService.ListWorkspaceAccounts(ws.ID, &member)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	accountDTOs := make([]dto.AccountDTO, len(accounts))
	for i, account := range accounts {
		accountDTOs[i] = dto.ToAccountDTO(account)
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts": accountDTOs,
	})
}

// ListAssignedAccounts lists accounts assigned to the caller across workspaces.
func (h *AccountHandler) ListAssignedAccounts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	accounts, total, err := h.accountService.ListAssignedAccounts(userID, params)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	accountDTOs := make([]dto.AccountDTO, len(accounts))
	for i, account := range accounts {
		accountDTOs[i] = dto.ToAccountDTO(account)
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts": accountDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetAccount returns account details with notes, reminders, and assignments.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.InternalError(c, "Account not found in context")
		return
	}

	detailed, err := h.accountService.GetAccount(account.ID)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*detailed))
}

// UpdateAccount updates an account. Owners may edit any account;
// assistants only accounts assigned to them.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.InternalError(c, "Account not found in context")
		return
	}
	member, ok := middleware.GetMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	allowed, err := h.accountService.CanEditAccount(&account, &member)
	if err != nil {
		respondAccountError(c, err)
		return
	}
	if !allowed {
		apierrors.Forbidden(c, "You are not assigned to this account")
		return
	}

	type UpdateAccountRequest struct {
		Name     *string `json:"name"`
		Username *string `json:"username"`
		Website  *string `json:"website"`
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.accountService.UpdateAccount(account.ID, services.UpdateAccountInput{
		Name:     req.Name,
		Username: req.Username,
		Website:  req.Website,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*updated))
}

// DeleteAccount removes an account. Owner only.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.InternalError(c, "Account not found in context")
		return
	}
	member, ok := middleware.GetMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	if !member.Role.CanEditAccounts() {
		apierrors.Forbidden(c, "Only workspace owners can delete accounts")
		return
	}

	if err := h.accountService.DeleteAccount(account.ID); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted successfully",
	})
}

// AssignUsers assigns workspace members to the account. Owner only.
func (h *AccountHandler) AssignUsers(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.InternalError(c, "Account not found in context")
		return
	}
	member, ok := middleware.GetMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	if !member.Role.CanManageMembers() {
		apierrors.Forbidden(c, "Only workspace owners can manage assignments")
		return
	}

	type AssignRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.accountService.AssignUsers(services.AssignUsersInput{
		AccountID:   account.ID,
		WorkspaceID: account.WorkspaceID,
		UserIDs:     req.UserIDs,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users assigned successfully",
	})
}

// UnassignUsers removes account assignments. Owner only.
func (h *AccountHandler) UnassignUsers(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.InternalError(c, "Account not found in context")
		return
	}
	member, ok := middleware.GetMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	if !member.Role.CanManageMembers() {
		apierrors.Forbidden(c, "Only workspace owners can manage assignments")
		return
	}

	type UnassignRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.accountService.UnassignUsers(account.ID, req.UserIDs); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users unassigned successfully",
	})
}

func respondAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAccountNameRequired),
		errors.Is(err, services.ErrAccountUsernameRequired),
		errors.Is(err, services.ErrNoUserIDsProvided),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAccountAccessDenied):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
