package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/jueviolegrace13/account-management/internal/constants"
	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrReminderNotFound      = errors.New("reminder not found")
	ErrReminderTitleRequired = errors.New("reminder title is required")
	ErrReminderDateRequired  = errors.New("reminder date is required")
)

// ReminderService handles reminder business logic
type ReminderService struct {
	reminderRepo repository.ReminderRepository
}

// NewReminderService creates a new ReminderService
func NewReminderService(reminderRepo repository.ReminderRepository) *ReminderService {
	return &ReminderService{reminderRepo: reminderRepo}
}

// CreateReminderInput represents input for creating a reminder
type CreateReminderInput struct {
	AccountID   uint64
	WorkspaceID uint64
	AuthorID    uint64
	Title       string
	Content     string
	Date        time.Time
}

// CreateReminder schedules a reminder against an account.
func (s *ReminderService) CreateReminder(input CreateReminderInput) (*models.Reminder, error) {
	if input.Title == "" {
		return nil, ErrReminderTitleRequired
	}
	if input.Date.IsZero() {
		return nil, ErrReminderDateRequired
	}

	reminder := &models.Reminder{
		AccountID:   input.AccountID,
		WorkspaceID: input.WorkspaceID,
		AuthorID:    input.AuthorID,
		Title:       input.Title,
		Content:     input.Content,
		Date:        input.Date.UTC(),
	}

	if err := s.reminderRepo.Create(reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return reminder, nil
}

// GetReminder retrieves a reminder by ID.
func (s *ReminderService) GetReminder(reminderID uint64) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to find reminder: %w", err)
	}
	return reminder, nil
}

// UpdateReminderInput represents input for updating a reminder
type UpdateReminderInput struct {
	Title   *string
	Content *string
	Date    *time.Time
}

// UpdateReminder edits a reminder. Moving the date re-arms notification.
func (s *ReminderService) UpdateReminder(reminderID uint64, input UpdateReminderInput) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to find reminder: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrReminderTitleRequired
		}
		reminder.Title = *input.Title
	}
	if input.Content != nil {
		reminder.Content = *input.Content
	}
	if input.Date != nil {
		reminder.Date = input.Date.UTC()
		reminder.LastNotifiedAt = nil
	}

	if err := s.reminderRepo.Update(reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	return reminder, nil
}

// SetCompleted toggles the completion flag.
func (s *ReminderService) SetCompleted(reminderID uint64, completed bool) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to find reminder: %w", err)
	}

	reminder.Completed = completed
	if err := s.reminderRepo.Update(reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	return reminder, nil
}

// DeleteReminder removes a reminder. Reminders are never deleted
// automatically, only through this explicit call.
func (s *ReminderService) DeleteReminder(reminderID uint64) error {
	if _, err := s.reminderRepo.FindByID(reminderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReminderNotFound
		}
		return fmt.Errorf("failed to find reminder: %w", err)
	}

	if err := s.reminderRepo.Delete(reminderID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	return nil
}

// UpcomingReminders returns the author's next pending reminders.
func (s *ReminderService) UpcomingReminders(authorID uint64) ([]models.Reminder, error) {
	reminders, err := s.reminderRepo.ListUpcomingByAuthor(authorID, time.Now(), constants.UpcomingRemindersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}
	return reminders, nil
}
