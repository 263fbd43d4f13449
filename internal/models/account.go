package models

import (
	"time"

	"gorm.io/gorm"
)

// Account is a third-party credential record tracked inside a workspace,
// distinct from the User identity that signs in to this service.
type Account struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	WorkspaceID uint64         `gorm:"not null;index" json:"workspace_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Username    string         `gorm:"type:varchar(255);not null" json:"username"`
	Website     string         `gorm:"type:varchar(512)" json:"website"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Workspace    Workspace           `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Assignments  []AccountAssignment `gorm:"foreignKey:AccountID" json:"assignments,omitempty"`
	Notes        []Note              `gorm:"foreignKey:AccountID" json:"notes,omitempty"`
	Reminders    []Reminder          `gorm:"foreignKey:AccountID" json:"reminders,omitempty"`
	VaultEntries []VaultEntry        `gorm:"foreignKey:AccountID" json:"vault_entries,omitempty"`
}
