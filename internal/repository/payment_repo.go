package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"doulabook/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	var p domain.Payment
	res := r.db.WithContext(ctx).Where("reference = ?", reference).Limit(1).Find(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

// MarkSucceeded flips a pending payment to succeeded; reports false when
// the payment was already processed (webhook retries are idempotent).
func (r *PaymentRepository) MarkSucceeded(ctx context.Context, reference string) (bool, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("reference = ? AND status = ?", reference, string(domain.PaymentPending)).
		Updates(map[string]any{
			"status":  string(domain.PaymentSucceeded),
			"paid_at": &now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
