package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountAssignment links a workspace member to an account they work on.
type AccountAssignment struct {
	AccountID uint64         `gorm:"primarykey" json:"account_id"`
	UserID    uint64         `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
