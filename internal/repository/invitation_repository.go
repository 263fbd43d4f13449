package repository

import (
	"errors"
	"time"

	"github.com/jueviolegrace13/account-management/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvitationNotPending is returned when the conditional acceptance
	// update matched no pending row: the invitation was already resolved
	// by a concurrent accept.
	ErrInvitationNotPending = errors.New("invitation repository: invitation is not pending")
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// UpsertPending creates a pending invitation, replacing any live pending
// invitation for the same (workspace, email) pair so at most one exists.
func (r *GormInvitationRepository) UpsertPending(inv *models.WorkspaceInvitation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.WorkspaceInvitation
		err := tx.Where("workspace_id = ? AND email = ? AND status = ?",
			inv.WorkspaceID, inv.Email, models.InvitationPending).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(inv).Error
			}
			return err
		}

		existing.Role = inv.Role
		existing.InvitedBy = inv.InvitedBy
		existing.ExpiresAt = inv.ExpiresAt
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		*inv = existing
		return nil
	})
}

// FindByID finds an invitation by ID
func (r *GormInvitationRepository) FindByID(id uint64) (*models.WorkspaceInvitation, error) {
	var inv models.WorkspaceInvitation
	if err := r.db.Preload("Workspace").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListPendingByEmail lists pending, unexpired invitations for an email
func (r *GormInvitationRepository) ListPendingByEmail(email string, now time.Time) ([]models.WorkspaceInvitation, error) {
	var invitations []models.WorkspaceInvitation
	if err := r.db.Preload("Workspace").
		Where("email = ? AND status = ? AND expires_at > ?", email, models.InvitationPending, now).
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// Accept atomically transitions a pending invitation to accepted and
// creates the membership. The status flip is a conditional update checked
// by affected-row count, so two concurrent accepts cannot both succeed.
func (r *GormInvitationRepository) Accept(inv *models.WorkspaceInvitation, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.WorkspaceInvitation{}).
			Where("id = ? AND status = ?", inv.ID, models.InvitationPending).
			Update("status", models.InvitationAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvitationNotPending
		}

		member := &models.WorkspaceMember{
			WorkspaceID: inv.WorkspaceID,
			UserID:      userID,
			Role:        inv.Role,
			JoinedAt:    time.Now(),
		}

		// Existing membership is a no-op merge, not a duplicate.
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(member).Error
	})
}
