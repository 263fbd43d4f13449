package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jueviolegrace13/account-management/internal/database"
	"github.com/jueviolegrace13/account-management/internal/dto"
	apierrors "github.com/jueviolegrace13/account-management/internal/errors"
	"github.com/jueviolegrace13/account-management/internal/middleware"
	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/services"
)

// ReminderHandler coordinates reminder HTTP handlers.
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// CreateReminder schedules a reminder against the account.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.InternalError(c, "Account not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateReminderRequest struct {
		Title   string    `json:"title" binding:"required"`
		Content string    `json:"content"`
		Date    time.Time `json:"date" binding:"required"`
	}

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reminder, err := h.reminderService.CreateReminder(services.CreateReminderInput{
		AccountID:   account.ID,
		WorkspaceID: account.WorkspaceID,
		AuthorID:    userID,
		Title:       req.Title,
		Content:     req.Content,
		Date:        req.Date,
	})
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReminderDTO(*reminder))
}

// UpcomingReminders returns the caller's next pending reminders.
func (h *ReminderHandler) UpcomingReminders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reminders, err := h.reminderService.UpcomingReminders(userID)
	if err != nil {
		respondReminderError(c, err)
		return
	}

	reminderDTOs := make([]dto.ReminderDTO, len(reminders))
	for i, reminder := range reminders {
		reminderDTOs[i] = dto.ToReminderDTO(reminder)
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders": reminderDTOs,
	})
}

// UpdateReminder edits a reminder.
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	reminder, ok := h.loadAccessibleReminder(c)
	if !ok {
		return
	}

	type UpdateReminderRequest struct {
		Title   *string    `json:"title"`
		Content *string    `json:"content"`
		Date    *time.Time `json:"date"`
	}

	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.reminderService.UpdateReminder(reminder.ID, services.UpdateReminderInput{
		Title:   req.Title,
		Content: req.Content,
		Date:    req.Date,
	})
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderDTO(*updated))
}

// SetCompleted toggles a reminder's completion flag.
func (h *ReminderHandler) SetCompleted(c *gin.Context) {
	reminder, ok := h.loadAccessibleReminder(c)
	if !ok {
		return
	}

	type CompleteRequest struct {
		Completed *bool `json:"completed" binding:"required"`
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.reminderService.SetCompleted(reminder.ID, *req.Completed)
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderDTO(*updated))
}

// DeleteReminder removes a reminder.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	reminder, ok := h.loadAccessibleReminder(c)
	if !ok {
		return
	}

	if err := h.reminderService.DeleteReminder(reminder.ID); err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reminder deleted successfully",
	})
}

// loadAccessibleReminder resolves the :id reminder and checks the caller
// belongs to its workspace.
func (h *ReminderHandler) loadAccessibleReminder(c *gin.Context) (*models.Reminder, bool) {
	reminderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid reminder ID")
		return nil, false
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	reminder, err := h.reminderService.GetReminder(reminderID)
	if err != nil {
		respondReminderError(c, err)
		return nil, false
	}

	var member models.WorkspaceMember
	err = database.GetDB().
		Where("workspace_id = ? AND user_id = ?", reminder.WorkspaceID, userID).
		First(&member).Error
	if err != nil {
		// Reminder existence is not leaked to non-members
		apierrors.NotFound(c, "Reminder not found")
		return nil, false
	}

	return reminder, true
}

func respondReminderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReminderNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrReminderTitleRequired),
		errors.Is(err, services.ErrReminderDateRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
