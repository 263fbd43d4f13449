package dto

import (
	"time"

	"github.com/jueviolegrace13/account-management/internal/models"
)

// AccountAssignmentDTO represents an account assignment in API responses
type AccountAssignmentDTO struct {
	User UserDTO `json:"user"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID        uint64          `json:"id"`
	AccountID uint64          `json:"account_id"`
	AuthorID  uint64          `json:"author_id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Type      models.NoteType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Author    *UserDTO        `json:"author,omitempty"`
}

// ReminderDTO represents a reminder in API responses
type ReminderDTO struct {
	ID             uint64     `json:"id"`
	AccountID      uint64     `json:"account_id"`
	WorkspaceID    uint64     `json:"workspace_id"`
	AuthorID       uint64     `json:"author_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Date           time.Time  `json:"date"`
	Completed      bool       `json:"completed"`
	LastNotifiedAt *time.Time `json:"last_notified_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// VaultEntryDTO represents a vault entry in API responses
type VaultEntryDTO struct {
	ID        uint64    `json:"id"`
	AccountID uint64    `json:"account_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountDTO represents an account in API responses
type AccountDTO struct {
	ID          uint64                 `json:"id"`
	WorkspaceID uint64                 `json:"workspace_id"`
	Name        string                 `json:"name"`
	Username    string                 `json:"username"`
	Website     string                 `json:"website"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Workspace   *WorkspaceDTO          `json:"workspace,omitempty"`
	Assignments []AccountAssignmentDTO `json:"assignments,omitempty"`
	Notes       []NoteDTO              `json:"notes,omitempty"`
	Reminders   []ReminderDTO          `json:"reminders,omitempty"`
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	dto := NoteDTO{
		ID:        note.ID,
		AccountID: note.AccountID,
		AuthorID:  note.AuthorID,
		Title:     note.Title,
		Content:   note.Content,
		Type:      note.Type,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	// Include author if preloaded
	if note.Author.ID != 0 {
		author := ToUserDTO(note.Author)
		dto.Author = &author
	}

	return dto
}

// ToReminderDTO converts a Reminder model to ReminderDTO
func ToReminderDTO(reminder models.Reminder) ReminderDTO {
	return ReminderDTO{
		ID:             reminder.ID,
		AccountID:      reminder.AccountID,
		WorkspaceID:    reminder.WorkspaceID,
		AuthorID:       reminder.AuthorID,
		Title:          reminder.Title,
		Content:        reminder.Content,
		Date:           reminder.Date,
		Completed:      reminder.Completed,
		LastNotifiedAt: reminder.LastNotifiedAt,
		CreatedAt:      reminder.CreatedAt,
	}
}

// ToVaultEntryDTO converts a VaultEntry model to VaultEntryDTO
func ToVaultEntryDTO(entry models.VaultEntry) VaultEntryDTO {
	return VaultEntryDTO{
		ID:        entry.ID,
		AccountID: entry.AccountID,
		Key:       entry.Key,
		Value:     entry.Value,
		CreatedAt: entry.CreatedAt,
	}
}

// ToAccountDTO converts an Account model to AccountDTO
func ToAccountDTO(account models.Account) AccountDTO {
	dto := AccountDTO{
		ID:          account.ID,
		WorkspaceID: account.WorkspaceID,
		Name:        account.Name,
		Username:    account.Username,
		Website:     account.Website,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}

	// Include workspace if preloaded
	if account.Workspace.ID != 0 {
		ws := ToWorkspaceDTO(account.Workspace)
		dto.Workspace = &ws
	}

	// Include assignments if preloaded
	if len(account.Assignments) > 0 {
		dto.Assignments = make([]AccountAssignmentDTO, len(account.Assignments))
		for i, assignment := range account.Assignments {
			dto.Assignments[i] = AccountAssignmentDTO{
				User: ToUserDTO(assignment.User),
			}
		}
	}

	// Include notes if preloaded
	if len(account.Notes) > 0 {
		dto.Notes = make([]NoteDTO, len(account.Notes))
		for i, note := range account.Notes {
			dto.Notes[i] = ToNoteDTO(note)
		}
	}

	// Include reminders if preloaded
	if len(account.Reminders) > 0 {
		dto.Reminders = make([]ReminderDTO, len(account.Reminders))
		for i, reminder := range account.Reminders {
			dto.Reminders[i] = ToReminderDTO(reminder)
		}
	}

	return dto
}
