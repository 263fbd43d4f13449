package models

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

type WorkspaceInvitation struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	WorkspaceID uint64           `gorm:"not null;index:idx_invitations_workspace_email" json:"workspace_id"`
	Email       string           `gorm:"type:varchar(255);not null;index:idx_invitations_workspace_email" json:"email"`
	Role        WorkspaceRole    `gorm:"type:varchar(20);not null" json:"role"`
	Status      InvitationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	InvitedBy   uint64           `gorm:"not null" json:"invited_by"`
	ExpiresAt   time.Time        `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Inviter   User      `gorm:"foreignKey:InvitedBy" json:"inviter,omitempty"`
}

// ExpiredAt reports whether the invitation is logically expired at the
// given instant, regardless of the stored status field.
func (i *WorkspaceInvitation) ExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
