package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jueviolegrace13/account-management/internal/database"
	"github.com/jueviolegrace13/account-management/internal/dto"
	apierrors "github.com/jueviolegrace13/account-management/internal/errors"
	"github.com/jueviolegrace13/account-management/internal/middleware"
	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/services"
)

// NoteHandler coordinates note HTTP handlers.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// CreateNote attaches a note or report to the account.
func (h *NoteHandler) CreateNote(c *gin.Context) {
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

	type CreateNoteRequest struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content"`
		Type    string `json:"type"`
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.CreateNote(services.CreateNoteInput{
		AccountID: account.ID,
		AuthorID:  userID,
		Title:     req.Title,
		Content:   req.Content,
		Type:      models.NoteType(req.Type),
	})
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note))
}

// UpdateNote edits a note in place.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	note, ok := h.loadAccessibleNote(c)
	if !ok {
		return
	}

	type UpdateNoteRequest struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.noteService.UpdateNote(note.ID, services.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*updated))
}

// DeleteNote removes a note.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	note, ok := h.loadAccessibleNote(c)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(note.ID); err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully",
	})
}

// loadAccessibleNote resolves the :id note and checks the caller belongs
// to the workspace owning the note's account.
func (h *NoteHandler) loadAccessibleNote(c *gin.Context) (*models.Note, bool) {
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid note ID")
		return nil, false
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	note, err := h.noteService.GetNote(noteID)
	if err != nil {
		respondNoteError(c, err)
		return nil, false
	}

	var account models.Account
	if err := database.GetDB().First(&account, note.AccountID).Error; err != nil {
		apierrors.NotFound(c, "Note not found")
		return nil, false
	}

	var member models.WorkspaceMember
	err = database.GetDB().
		Where("workspace_id = ? AND user_id = ?", account.WorkspaceID, userID).
		First(&member).Error
	if err != nil {
		// Note existence is not leaked to non-members
		apierrors.NotFound(c, "Note not found")
		return nil, false
	}

	return note, true
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoteTitleRequired),
		errors.Is(err, services.ErrInvalidNoteType):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
