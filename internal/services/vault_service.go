package services

import (
	"errors"
	"fmt"

	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/repository"
)

var (
	ErrVaultKeyRequired   = errors.New("vault entry key is required")
	ErrVaultValueRequired = errors.New("vault entry value is required")
)

// VaultService handles vault entries attached to accounts. Values are
// stored opaque; this service does not encrypt them.
type VaultService struct {
	vaultRepo repository.VaultRepository
}

// NewVaultService creates a new VaultService
func NewVaultService(vaultRepo repository.VaultRepository) *VaultService {
	return &VaultService{vaultRepo: vaultRepo}
}

// ListEntries lists vault entries for an account.
func (s *VaultService) ListEntries(accountID uint64) ([]models.VaultEntry, error) {
	entries, err := s.vaultRepo.ListByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vault entries: %w", err)
	}
	return entries, nil
}

// AddEntry stores a key/value secret on an account.
func (s *VaultService) AddEntry(accountID uint64, key, value string) (*models.VaultEntry, error) {
	if key == "" {
		return nil, ErrVaultKeyRequired
	}
	if value == "" {
		return nil, ErrVaultValueRequired
	}

	entry := &models.VaultEntry{
		AccountID: accountID,
		Key:       key,
		Value:     value,
	}

	if err := s.vaultRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create vault entry: %w", err)
	}

	return entry, nil
}
