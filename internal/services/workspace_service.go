package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/jueviolegrace13/account-management/internal/constants"
	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/repository"
	"github.com/jueviolegrace13/account-management/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNotFound         = errors.New("workspace not found")
	ErrInvalidWorkspaceName      = errors.New("workspace name cannot be empty")
	ErrInvalidTimezone           = errors.New("timezone is not a valid IANA zone name")
	ErrInvalidRole               = errors.New("role must be owner or assistant")
	ErrWorkspaceMemberNotFound   = errors.New("workspace member not found")
	ErrCannotRemoveLastOwner     = errors.New("cannot remove the last owner of a workspace")
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrInvitationExpired         = errors.New("invitation has expired")
	ErrInvitationAlreadyResolved = errors.New("invitation is no longer pending")
	ErrInvitationEmailMismatch   = errors.New("invitation was issued to a different email address")
)

// InvitationMailer delivers invitation emails. Delivery is best effort:
// failures are logged, never surfaced to the inviting user.
type InvitationMailer interface {
	SendInvitation(to, workspaceName, link string) error
}

// WorkspaceService governs workspaces, memberships, and the invitation
// lifecycle.
type WorkspaceService struct {
	wsRepo    repository.WorkspaceRepository
	invRepo   repository.InvitationRepository
	mailer    InvitationMailer
	appOrigin string
	logger    *zap.Logger
}

// NewWorkspaceService creates a new WorkspaceService. mailer may be nil
// when no SMTP endpoint is configured.
func NewWorkspaceService(wsRepo repository.WorkspaceRepository, invRepo repository.InvitationRepository, mailer InvitationMailer, appOrigin string, logger *zap.Logger) *WorkspaceService {
	return &WorkspaceService{
		wsRepo:    wsRepo,
		invRepo:   invRepo,
		mailer:    mailer,
		appOrigin: appOrigin,
		logger:    logger,
	}
}

// CreateWorkspaceInput represents parameters to create a new workspace.
type CreateWorkspaceInput struct {
	Name     string
	Timezone string
	OwnerID  uint64
}

// CreateWorkspace creates a workspace and makes the creator its owner.
func (s *WorkspaceService) CreateWorkspace(input CreateWorkspaceInput) (*models.Workspace, error) {
	if input.Name == "" {
		return nil, ErrInvalidWorkspaceName
	}

	tz := input.Timezone
	if tz == "" {
		tz = models.DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, ErrInvalidTimezone
	}

	ws := &models.Workspace{
		Name:     input.Name,
		Timezone: tz,
		OwnerID:  input.OwnerID,
	}

	member := &models.WorkspaceMember{
		UserID:   input.OwnerID,
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	if err := s.wsRepo.CreateWithOwner(ws, member); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return ws, nil
}

// ListWorkspacesForUser returns workspaces the user belongs to.
func (s *WorkspaceService) ListWorkspacesForUser(userID uint64) ([]models.WorkspaceMember, error) {
	memberships, err := s.wsRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return memberships, nil
}

// GetWorkspaceWithMembers returns a workspace and all of its members.
func (s *WorkspaceService) GetWorkspaceWithMembers(workspaceID uint64) (*models.Workspace, []models.WorkspaceMember, error) {
	ws, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrWorkspaceNotFound
		}
		return nil, nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	members, err := s.wsRepo.ListMembers(workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workspace members: %w", err)
	}

	return ws, members, nil
}

// UpdateWorkspaceInput represents owner-editable workspace fields.
type UpdateWorkspaceInput struct {
	Name     *string
	Timezone *string
}

// UpdateWorkspace renames a workspace or changes its timezone.
func (s *WorkspaceService) UpdateWorkspace(workspaceID uint64, input UpdateWorkspaceInput) (*models.Workspace, error) {
	ws, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrInvalidWorkspaceName
		}
		ws.Name = *input.Name
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		ws.Timezone = *input.Timezone
	}

	if err := s.wsRepo.Update(ws); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return ws, nil
}

// DeleteWorkspace removes a workspace and everything it contains.
func (s *WorkspaceService) DeleteWorkspace(workspaceID uint64) error {
	if _, err := s.wsRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("failed to find workspace: %w", err)
	}

	if err := s.wsRepo.Delete(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}

// CreateInvitationInput represents parameters to invite someone to a workspace.
type CreateInvitationInput struct {
	WorkspaceID uint64
	ActorID     uint64
	Email       string
	Role        models.WorkspaceRole
}

// CreateInvitation issues a time-boxed invitation for an email address to
// join the workspace. Re-inviting the same address replaces the live
// pending invitation instead of stacking a second one.
func (s *WorkspaceService) CreateInvitation(input CreateInvitationInput) (*models.WorkspaceInvitation, error) {
	email := utils.NormalizeEmail(input.Email)
	if !utils.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	ws, err := s.wsRepo.FindByID(input.WorkspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	inv := &models.WorkspaceInvitation{
		WorkspaceID: input.WorkspaceID,
		Email:       email,
		Role:        input.Role,
		Status:      models.InvitationPending,
		InvitedBy:   input.ActorID,
		ExpiresAt:   time.Now().Add(constants.InvitationTTL),
	}

	if err := s.invRepo.UpsertPending(inv); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.sendInvitationEmail(inv, ws)

	return inv, nil
}

func (s *WorkspaceService) sendInvitationEmail(inv *models.WorkspaceInvitation, ws *models.Workspace) {
	if s.mailer == nil {
		return
	}

	link := utils.InvitationLink(s.appOrigin, inv.ID)
	if err := s.mailer.SendInvitation(inv.Email, ws.Name, link); err != nil {
		s.logger.Warn("failed to send invitation email",
			zap.Uint64("invitation_id", inv.ID),
			zap.String("email", inv.Email),
			zap.Error(err),
		)
	}
}

// ListPendingInvitations returns live invitations addressed to the email.
func (s *WorkspaceService) ListPendingInvitations(email string) ([]models.WorkspaceInvitation, error) {
	invitations, err := s.invRepo.ListPendingByEmail(utils.NormalizeEmail(email), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// AcceptInvitation redeems a pending invitation for the calling user. The
// invitation must be addressed to the caller's authenticated email and
// still inside its expiry window. Acceptance is atomic: concurrent
// accepts resolve to exactly one success.
func (s *WorkspaceService) AcceptInvitation(invitationID uint64, caller *models.User) (*models.WorkspaceInvitation, error) {
	inv, err := s.invRepo.FindByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if inv.Email != utils.NormalizeEmail(caller.Email) {
		return nil, ErrInvitationEmailMismatch
	}
	// Expiry is derived from the clock, not the stored status field.
	if inv.ExpiredAt(time.Now()) {
		return nil, ErrInvitationExpired
	}
	if inv.Status != models.InvitationPending {
		return nil, ErrInvitationAlreadyResolved
	}

	if err := s.invRepo.Accept(inv, caller.ID); err != nil {
		if errors.Is(err, repository.ErrInvitationNotPending) {
			return nil, ErrInvitationAlreadyResolved
		}
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	inv.Status = models.InvitationAccepted
	return inv, nil
}

// RemoveMember removes a member from the workspace. The last remaining
// owner can never be removed: that would orphan the workspace.
func (s *WorkspaceService) RemoveMember(workspaceID, targetID uint64) error {
	member, err := s.wsRepo.FindMember(workspaceID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceMemberNotFound
		}
		return fmt.Errorf("failed to find workspace member: %w", err)
	}

	if member.Role == models.RoleOwner {
		owners, err := s.wsRepo.CountOwners(workspaceID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return ErrCannotRemoveLastOwner
		}
	}

	if err := s.wsRepo.RemoveMember(workspaceID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
