package repository

import (
	"context"

	"gorm.io/gorm"

	"doulabook/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Thread returns the full conversation between a mother and a doula,
// oldest first.
func (r *MessageRepository) Thread(ctx context.Context, motherID, doulaID int64) ([]domain.Message, error) {
	var msgs []domain.Message
	tx := r.db.WithContext(ctx).
		Where("mother_id = ? AND doula_id = ?", motherID, doulaID).
		Order("created_at").
		Find(&msgs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return msgs, nil
}

// ForUser returns all messages involving the user on their side of the
// conversation, newest first. Used to build the inbox.
func (r *MessageRepository) ForUser(ctx context.Context, userID int64, role domain.UserRole) ([]domain.Message, error) {
	col := "mother_id"
	if role == domain.RoleDoula {
		col = "doula_id"
	}

	var msgs []domain.Message
	tx := r.db.WithContext(ctx).
		Where(col+" = ?", userID).
		Order("created_at DESC").
		Find(&msgs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return msgs, nil
}

// UnreadCount counts messages the user has not read yet that were sent by
// the other party.
func (r *MessageRepository) UnreadCount(ctx context.Context, userID int64, role domain.UserRole) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Message{})
	if role == domain.RoleDoula {
		q = q.Where("doula_id = ? AND read_by_doula = ? AND sender_role = ?",
			userID, false, string(domain.RoleMother))
	} else {
		q = q.Where("mother_id = ? AND read_by_mother = ? AND sender_role = ?",
			userID, false, string(domain.RoleDoula))
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// MarkRead marks the whole conversation as read for the viewer's side.
func (r *MessageRepository) MarkRead(ctx context.Context, motherID, doulaID int64, viewer domain.UserRole) error {
	col := "read_by_mother"
	if viewer == domain.RoleDoula {
		col = "read_by_doula"
	}

	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("mother_id = ? AND doula_id = ?", motherID, doulaID).
		Update(col, true).Error
}
