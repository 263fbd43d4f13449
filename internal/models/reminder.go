package models

import "time"

type Reminder struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	AccountID   uint64    `gorm:"not null;index" json:"account_id"`
	WorkspaceID uint64    `gorm:"not null;index" json:"workspace_id"`
	AuthorID    uint64    `gorm:"not null" json:"author_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	// LastNotifiedAt records the single notification firing so a reminder
	// is never announced twice, even across detector restarts.
	LastNotifiedAt *time.Time `json:"last_notified_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Account   Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
