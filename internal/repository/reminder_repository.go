package repository

import (
	"errors"
	"time"

	"github.com/jueviolegrace13/account-management/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyNotified is returned when the conditional notification
	// marker update matched no row: another scan already fired.
	ErrAlreadyNotified = errors.New("reminder repository: reminder already notified")
)

// GormReminderRepository is a GORM implementation of ReminderRepository
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &GormReminderRepository{db: db}
}

func (r *GormReminderRepository) Create(reminder *models.Reminder) error {
	return r.db.Create(reminder).Error
}

func (r *GormReminderRepository) FindByID(id uint64) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.First(&reminder, id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *GormReminderRepository) Update(reminder *models.Reminder) error {
	return r.db.Save(reminder).Error
}

func (r *GormReminderRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Reminder{}, id).Error
}

// ListUpcomingByAuthor lists the author's next reminders, soonest first
func (r *GormReminderRepository) ListUpcomingByAuthor(authorID uint64, now time.Time, limit int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.
		Where("author_id = ? AND completed = ? AND date >= ?", authorID, false, now).
		Order("date ASC").
		Limit(limit).
		Preload("Account").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListDue lists unnotified, uncompleted reminders due inside [now-window, now]
func (r *GormReminderRepository) ListDue(now time.Time, window time.Duration) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.
		Where("completed = ? AND last_notified_at IS NULL", false).
		Where("date <= ? AND date > ?", now, now.Add(-window)).
		Preload("Workspace").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// MarkNotified records the notification firing with a conditional update
// so two detector instances cannot both claim the same reminder.
func (r *GormReminderRepository) MarkNotified(id uint64, at time.Time) error {
	res := r.db.Model(&models.Reminder{}).
		Where("id = ? AND last_notified_at IS NULL", id).
		Update("last_notified_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyNotified
	}
	return nil
}
