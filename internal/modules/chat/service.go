package chat

import (
	"context"
	"errors"
	"strings"

	"doulabook/internal/domain"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	Thread(ctx context.Context, motherID, doulaID int64) ([]domain.Message, error)
	ForUser(ctx context.Context, userID int64, role domain.UserRole) ([]domain.Message, error)
	UnreadCount(ctx context.Context, userID int64, role domain.UserRole) (int64, error)
	MarkRead(ctx context.Context, motherID, doulaID int64, viewer domain.UserRole) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	messages MessageRepository
	users    UserReader
}

func NewService(messages MessageRepository, users UserReader) *Service {
	return &Service{messages: messages, users: users}
}

// Send persists a private message. The sender's side is marked read
// immediately; the receiver's side stays unread for notification
// polling.
func (s *Service) Send(ctx context.Context, senderID int64, senderRole domain.UserRole, receiverID int64, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrValidation
	}

	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, ErrNotFound
	}

	var m domain.Message
	switch senderRole {
	case domain.RoleMother:
		if receiver.Role != domain.RoleDoula {
			return nil, ErrValidation
		}
		m = domain.Message{
			MotherID:     senderID,
			DoulaID:      receiverID,
			SenderRole:   domain.RoleMother,
			ReadByMother: true,
		}
	case domain.RoleDoula:
		if receiver.Role != domain.RoleMother {
			return nil, ErrValidation
		}
		m = domain.Message{
			MotherID:    receiverID,
			DoulaID:     senderID,
			SenderRole:  domain.RoleDoula,
			ReadByDoula: true,
		}
	default:
		return nil, ErrValidation
	}

	m.Text = text
	if err := s.messages.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Thread(ctx context.Context, motherID, doulaID int64) ([]domain.Message, error) {
	return s.messages.Thread(ctx, motherID, doulaID)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64, role domain.UserRole) (int64, error) {
	return s.messages.UnreadCount(ctx, userID, role)
}

func (s *Service) MarkRead(ctx context.Context, motherID, doulaID int64, viewer domain.UserRole) error {
	return s.messages.MarkRead(ctx, motherID, doulaID, viewer)
}

type ThreadSummary struct {
	MotherID    int64  `json:"mother_id"`
	DoulaID     int64  `json:"doula_id"`
	OtherID     int64  `json:"other_id"`
	OtherName   string `json:"other_name"`
	LastText    string `json:"last_text"`
	LastAt      string `json:"last_at"`
	UnreadCount int    `json:"unread_count"`
}

// Inbox groups the user's messages into one row per conversation with
// the last message and the unread count for that pair.
func (s *Service) Inbox(ctx context.Context, userID int64, role domain.UserRole) ([]ThreadSummary, error) {
	msgs, err := s.messages.ForUser(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	order := make([]int64, 0)
	threads := make(map[int64]*ThreadSummary)

	for _, m := range msgs {
		otherID := m.DoulaID
		if role == domain.RoleDoula {
			otherID = m.MotherID
		}

		t, ok := threads[otherID]
		if !ok {
			name := "Unknown"
			if other, err := s.users.GetByID(ctx, otherID); err == nil {
				name = other.Name
			}
			// messages arrive newest first, so the first one seen per
			// pair is the latest
			t = &ThreadSummary{
				MotherID:  m.MotherID,
				DoulaID:   m.DoulaID,
				OtherID:   otherID,
				OtherName: name,
				LastText:  m.Text,
				LastAt:    m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
			threads[otherID] = t
			order = append(order, otherID)
		}

		unreadForViewer := (role == domain.RoleMother && !m.ReadByMother && m.SenderRole == domain.RoleDoula) ||
			(role == domain.RoleDoula && !m.ReadByDoula && m.SenderRole == domain.RoleMother)
		if unreadForViewer {
			t.UnreadCount++
		}
	}

	out := make([]ThreadSummary, 0, len(order))
	for _, id := range order {
		out = append(out, *threads[id])
	}
	return out, nil
}
