package models

import "time"

type WorkspaceRole string

const (
	RoleOwner     WorkspaceRole = "owner"
	RoleAssistant WorkspaceRole = "assistant"
)

// Valid reports whether the role is one of the closed set.
func (r WorkspaceRole) Valid() bool {
	return r == RoleOwner || r == RoleAssistant
}

// CanManageMembers reports whether the role may invite and remove members.
func (r WorkspaceRole) CanManageMembers() bool {
	return r == RoleOwner
}

// CanEditAccounts reports whether the role may edit any account in the
// workspace. Assistants can still edit accounts assigned to them; that
// check lives at the account layer.
func (r WorkspaceRole) CanEditAccounts() bool {
	return r == RoleOwner
}

type WorkspaceMember struct {
	WorkspaceID uint64        `gorm:"primarykey" json:"workspace_id"`
	UserID      uint64        `gorm:"primarykey" json:"user_id"`
	Role        WorkspaceRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt    time.Time     `json:"joined_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
