package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultTimezone is used when a workspace has no explicit timezone.
const DefaultTimezone = "UTC"

type Workspace struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Timezone  string         `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	OwnerID   uint64         `gorm:"not null" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members  []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Accounts []Account         `gorm:"foreignKey:WorkspaceID" json:"accounts,omitempty"`
}
