package services

import (
	"errors"
	"fmt"

	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/repository"
	"github.com/jueviolegrace13/account-management/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrAccountNameRequired     = errors.New("account name is required")
	ErrAccountUsernameRequired = errors.New("account username is required")
	ErrNoUserIDsProvided       = errors.New("at least one user ID is required")
	ErrInvalidAssignee         = errors.New("one or more users are not members of the workspace")
	ErrAccountAccessDenied     = errors.New("user does not have access to this account")
)

// AccountService handles account business logic
type AccountService struct {
	accountRepo repository.AccountRepository
	wsRepo      repository.WorkspaceRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo repository.AccountRepository, wsRepo repository.WorkspaceRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		wsRepo:      wsRepo,
	}
}

// CreateAccountInput represents input for creating an account
type CreateAccountInput struct {
	WorkspaceID uint64
	Name        string
	Username    string
	Website     string
}

// CreateAccount creates a new credential record in a workspace.
func (s *AccountService) CreateAccount(input CreateAccountInput) (*models.Account, error) {
	if input.Name == "" {
		return nil, ErrAccountNameRequired
	}
	if input.Username == "" {
		return nil, ErrAccountUsernameRequired
	}

	account := &models.Account{
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Username:    input.Username,
		Website:     input.Website,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// ListWorkspaceAccounts lists accounts visible to the member. Owners see
// every account; assistants only see accounts assigned to them.
func (s *AccountService) ListWorkspaceAccounts(workspaceID uint64, member *models.WorkspaceMember) ([]models.Account, error) {
	accounts, err := s.accountRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if member.Role.CanEditAccounts() {
		return accounts, nil
	}

	visible := make([]models.Account, 0, len(accounts))
	for _, account := range accounts {
		for _, assignment := range account.Assignments {
			if assignment.UserID == member.UserID {
				visible = append(visible, account)
				break
			}
		}
	}
	return visible, nil
}

// ListAssignedAccounts lists one page of accounts assigned to a user
// across all workspaces.
func (s *AccountService) ListAssignedAccounts(userID uint64, params utils.PaginationParams) ([]models.Account, int64, error) {
	accounts, total, err := s.accountRepo.ListAssignedToUser(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assigned accounts: %w", err)
	}
	return accounts, total, nil
}

// GetAccount returns an account with its related data.
func (s *AccountService) GetAccount(accountID uint64) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(accountID,
		"Workspace", "Assignments", "Assignments.User", "Notes", "Notes.Author", "Reminders")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return account, nil
}

// CanEditAccount reports whether the member may mutate the account:
// owners always, assistants only when assigned.
func (s *AccountService) CanEditAccount(account *models.Account, member *models.WorkspaceMember) (bool, error) {
	if member.Role.CanEditAccounts() {
		return true, nil
	}

	_, err := s.accountRepo.FindAssignment(account.ID, member.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find assignment: %w", err)
	}
	return true, nil
}

// UpdateAccountInput represents input for updating an account
type UpdateAccountInput struct {
	Name     *string
	Username *string
	Website  *string
}

// UpdateAccount updates an existing account.
func (s *AccountService) UpdateAccount(accountID uint64, input UpdateAccountInput) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrAccountNameRequired
		}
		account.Name = *input.Name
	}
	if input.Username != nil {
		if *input.Username == "" {
			return nil, ErrAccountUsernameRequired
		}
		account.Username = *input.Username
	}
	if input.Website != nil {
		account.Website = *input.Website
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// DeleteAccount removes an account and its notes, reminders, and vault entries.
func (s *AccountService) DeleteAccount(accountID uint64) error {
	if _, err := s.accountRepo.FindByID(accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to find account: %w", err)
	}

	if err := s.accountRepo.Delete(accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

// AssignUsersInput represents input for assigning users to an account
type AssignUsersInput struct {
	AccountID   uint64
	WorkspaceID uint64
	UserIDs     []uint64
}

// AssignUsers assigns workspace members to an account.
func (s *AccountService) AssignUsers(input AssignUsersInput) error {
	if len(input.UserIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	count, err := s.accountRepo.CountMembersByIDs(input.UserIDs, input.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to verify assignees: %w", err)
	}
	if count != int64(len(input.UserIDs)) {
		return ErrInvalidAssignee
	}

	if err := s.accountRepo.AssignUsers(input.AccountID, input.UserIDs); err != nil {
		return fmt.Errorf("failed to assign users: %w", err)
	}

	return nil
}

// UnassignUsers removes account assignments.
func (s *AccountService) UnassignUsers(accountID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	if err := s.accountRepo.UnassignUsers(accountID, userIDs); err != nil {
		return fmt.Errorf("failed to unassign users: %w", err)
	}

	return nil
}
