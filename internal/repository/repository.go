package repository

import (
	"time"

	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// WorkspaceRepository defines the interface for workspace and membership data access
type WorkspaceRepository interface {
	// CreateWithOwner creates a workspace and the owner membership atomically
	CreateWithOwner(ws *models.Workspace, member *models.WorkspaceMember) error

	// FindByID finds a workspace by ID
	FindByID(id uint64) (*models.Workspace, error)

	// Update updates a workspace
	Update(ws *models.Workspace) error

	// Delete deletes a workspace and all related data
	Delete(id uint64) error

	// RemoveMember removes a member from a workspace
	RemoveMember(workspaceID, userID uint64) error

	// FindMember finds a specific workspace member
	FindMember(workspaceID, userID uint64) (*models.WorkspaceMember, error)

	// ListMembers lists all members of a workspace
	ListMembers(workspaceID uint64) ([]models.WorkspaceMember, error)

	// ListMembersByUserID lists all workspaces a user is a member of
	ListMembersByUserID(userID uint64) ([]models.WorkspaceMember, error)

	// CountOwners counts members holding the owner role in a workspace
	CountOwners(workspaceID uint64) (int64, error)
}

// InvitationRepository defines the interface for workspace invitation data access
type InvitationRepository interface {
	// UpsertPending creates a pending invitation, replacing any live pending
	// invitation for the same (workspace, email) pair
	UpsertPending(inv *models.WorkspaceInvitation) error

	// FindByID finds an invitation by ID
	FindByID(id uint64) (*models.WorkspaceInvitation, error)

	// ListPendingByEmail lists pending, unexpired invitations for an email
	ListPendingByEmail(email string, now time.Time) ([]models.WorkspaceInvitation, error)

	// Accept atomically flips a pending invitation to accepted and creates
	// the membership. Returns ErrInvitationNotPending when the conditional
	// status update matched no row.
	Accept(inv *models.WorkspaceInvitation, userID uint64) error
}

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// Create creates a new account
	Create(account *models.Account) error

	// FindByID finds an account by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Account, error)

	// ListByWorkspace lists accounts in a workspace, newest first
	ListByWorkspace(workspaceID uint64) ([]models.Account, error)

	// ListAssignedToUser lists one page of accounts assigned to a user
	// across workspaces, with the unpaginated total
	ListAssignedToUser(userID uint64, params utils.PaginationParams) ([]models.Account, int64, error)

	// Update updates an account
	Update(account *models.Account) error

	// Delete deletes an account and all related data
	Delete(id uint64) error

	// AssignUsers assigns users to an account
	AssignUsers(accountID uint64, userIDs []uint64) error

	// UnassignUsers removes user assignments from an account
	UnassignUsers(accountID uint64, userIDs []uint64) error

	// FindAssignment finds a specific account assignment
	FindAssignment(accountID, userID uint64) (*models.AccountAssignment, error)

	// CountMembersByIDs counts how many of the given user IDs are members of the workspace
	CountMembersByIDs(userIDs []uint64, workspaceID uint64) (int64, error)
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	Create(note *models.Note) error
	FindByID(id uint64) (*models.Note, error)
	Update(note *models.Note) error
	Delete(id uint64) error
}

// ReminderRepository defines the interface for reminder data access
type ReminderRepository interface {
	Create(reminder *models.Reminder) error
	FindByID(id uint64) (*models.Reminder, error)
	Update(reminder *models.Reminder) error
	Delete(id uint64) error

	// ListUpcomingByAuthor lists the author's next reminders, soonest first
	ListUpcomingByAuthor(authorID uint64, now time.Time, limit int) ([]models.Reminder, error)

	// ListDue lists unnotified, uncompleted reminders due inside
	// [now-window, now]
	ListDue(now time.Time, window time.Duration) ([]models.Reminder, error)

	// MarkNotified records the notification firing. Returns
	// ErrAlreadyNotified when another scan got there first.
	MarkNotified(id uint64, at time.Time) error
}

// VaultRepository defines the interface for vault entry data access
type VaultRepository interface {
	ListByAccount(accountID uint64) ([]models.VaultEntry, error)
	Create(entry *models.VaultEntry) error
}
