package models

import "time"

type NoteType string

const (
	NoteTypeRegular NoteType = "regular"
	NoteTypeReport  NoteType = "report"
)

func (t NoteType) Valid() bool {
	return t == NoteTypeRegular || t == NoteTypeReport
}

type Note struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	AccountID uint64    `gorm:"not null;index" json:"account_id"`
	AuthorID  uint64    `gorm:"not null" json:"author_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Type      NoteType  `gorm:"type:varchar(20);not null;default:'regular'" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Author  User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
