package repository

import (
	"context"

	"gorm.io/gorm"

	"doulabook/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByDoula(ctx context.Context, doulaID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var reviews []domain.Review
	tx := r.db.WithContext(ctx).
		Where("doula_id = ?", doulaID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return reviews, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
