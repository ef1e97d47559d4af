package repository

import (
	"context"

	"gorm.io/gorm"

	"doulabook/internal/domain"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ReplaceWeekly swaps in the doula's whole weekly schedule in one
// transaction: the previous rows are dropped and the submitted ones
// inserted, so a day missing from the submission is gone, not kept.
func (r *AvailabilityRepository) ReplaceWeekly(ctx context.Context, doulaID int64, windows []domain.AvailabilityWindow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doula_id = ?", doulaID).Delete(&domain.AvailabilityWindow{}).Error; err != nil {
			return err
		}

		for i := range windows {
			w := windows[i]
			w.ID = 0
			w.DoulaID = doulaID
			if err := tx.Create(&w).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AvailabilityRepository) GetWeekly(ctx context.Context, doulaID int64) ([]domain.AvailabilityWindow, error) {
	var windows []domain.AvailabilityWindow
	tx := r.db.WithContext(ctx).
		Where("doula_id = ?", doulaID).
		Order("day_of_week").
		Find(&windows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return windows, nil
}

// GetWindow returns the window for one day of week, or nil when the doula
// has no row for that day.
func (r *AvailabilityRepository) GetWindow(ctx context.Context, doulaID int64, dayOfWeek int) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	res := r.db.WithContext(ctx).
		Where("doula_id = ? AND day_of_week = ?", doulaID, dayOfWeek).
		Limit(1).
		Find(&w)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &w, nil
}
