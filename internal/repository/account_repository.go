package repository

import (
	"github.com/jueviolegrace13/account-management/internal/database"
	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository is a GORM implementation of AccountRepository
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &GormAccountRepository{db: db}
}

// Create creates a new account
func (r *GormAccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// FindByID finds an account by ID with optional preloading
func (r *GormAccountRepository) FindByID(id uint64, preload ...string) (*models.Account, error) {
	var account models.Account
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&account, id).Error; err != nil {
		return nil, err
	}

	return &account, nil
}

// ListByWorkspace lists accounts in a workspace, newest first
func (r *GormAccountRepository) ListByWorkspace(workspaceID uint64) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Preload("Assignments").
		Preload("Assignments.User").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListAssignedToUser lists accounts assigned to a user across workspaces
func (r *GormAccountRepository) ListAssignedToUser(userID uint64, params utils.PaginationParams) ([]models.Account, int64, error) {
	var accounts []models.Account

	assignmentSubQuery := r.db.Model(&models.AccountAssignment{}).
		Select("1").
		Where("account_assignments.account_id = accounts.id").
		Where("account_assignments.user_id = ?", userID).
		Where("account_assignments.deleted_at IS NULL")

	query := r.db.Model(&models.Account{}).Where("EXISTS (?)", assignmentSubQuery)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Preload("Workspace").
		Preload("Notes").
		Preload("Reminders").
		Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// Update updates an account
func (r *GormAccountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

// Delete deletes an account and all related data in a transaction
func (r *GormAccountRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&models.AccountAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.VaultEntry{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Account{}, id).Error
	})
}

// AssignUsers assigns users to an account
func (r *GormAccountRepository) AssignUsers(accountID uint64, userIDs []uint64) error {
	assignments := make([]models.AccountAssignment, len(userIDs))

	for i, userID := range userIDs {
		assignments[i] = models.AccountAssignment{
			AccountID: accountID,
			UserID:    userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(&assignments).Error
}

// UnassignUsers removes user assignments from an account
func (r *GormAccountRepository) UnassignUsers(accountID uint64, userIDs []uint64) error {
	return r.db.Where("account_id = ? AND user_id IN ?", accountID, userIDs).
		Delete(&models.AccountAssignment{}).Error
}

// FindAssignment finds a specific account assignment
func (r *GormAccountRepository) FindAssignment(accountID, userID uint64) (*models.AccountAssignment, error) {
	var assignment models.AccountAssignment
	if err := r.db.Where("account_id = ? AND user_id = ?", accountID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CountMembersByIDs counts how many of the given user IDs are members of the workspace
func (r *GormAccountRepository) CountMembersByIDs(userIDs []uint64, workspaceID uint64) (int64, error) {
	var count int64

	err := r.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id IN ?", workspaceID, userIDs).
		Count(&count).Error

	return count, err
}
