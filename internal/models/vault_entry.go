package models

import "time"

// VaultEntry is an opaque secret attached to an account. Values are stored
// as-is; encrypting them is out of scope for this service.
type VaultEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	AccountID uint64    `gorm:"not null;index" json:"account_id"`
	Key       string    `gorm:"type:varchar(255);not null" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
