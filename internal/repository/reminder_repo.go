package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"doulabook/internal/domain"
)

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) CreateBatch(ctx context.Context, reminders []domain.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&reminders).Error
}

// GetPendingForUser returns the user's reminders whose trigger time is
// still in the future, soonest first.
func (r *ReminderRepository) GetPendingForUser(ctx context.Context, userID int64, now time.Time) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND trigger_at > ?", userID, now).
		Order("trigger_at").
		Find(&reminders)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return reminders, nil
}
