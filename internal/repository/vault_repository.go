package repository

import (
	"github.com/jueviolegrace13/account-management/internal/models"
	"gorm.io/gorm"
)

// GormVaultRepository is a GORM implementation of VaultRepository
type GormVaultRepository struct {
	db *gorm.DB
}

// NewVaultRepository creates a new VaultRepository
func NewVaultRepository(db *gorm.DB) VaultRepository {
	return &GormVaultRepository{db: db}
}

// ListByAccount lists vault entries for an account, newest first
func (r *GormVaultRepository) ListByAccount(accountID uint64) ([]models.VaultEntry, error) {
	var entries []models.VaultEntry
	if err := r.db.
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create creates a new vault entry
func (r *GormVaultRepository) Create(entry *models.VaultEntry) error {
	return r.db.Create(entry).Error
}
