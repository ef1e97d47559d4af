package reminder

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"doulabook/internal/domain"
)

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) CreateBatch(ctx context.Context, reminders []domain.Reminder) error {
	args := m.Called(ctx, reminders)
	return args.Error(0)
}

func (m *MockReminderRepository) GetPendingForUser(ctx context.Context, userID int64, now time.Time) ([]domain.Reminder, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func fixedService(repo *MockReminderRepository, users *MockUserReader, now time.Time) *Service {
	svc := NewService(repo, users)
	svc.now = func() time.Time { return now }
	return svc
}

func namedUsers(users *MockUserReader) {
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Name: "Anna", Role: domain.RoleMother}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Name: "Maria", Role: domain.RoleDoula}, nil)
}

func plannedRows(repo *MockReminderRepository) []domain.Reminder {
	call := repo.Calls[0]
	return call.Arguments.Get(1).([]domain.Reminder)
}

func TestPlanForBooking_AllTriggersFuture(t *testing.T) {
	repo := new(MockReminderRepository)
	users := new(MockUserReader)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := fixedService(repo, users, now)

	namedUsers(users)
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.Reminder")).Return(nil)

	start := now.Add(48 * time.Hour)
	b := &domain.Booking{ID: 7, MotherID: 1, DoulaID: 2, StartsAt: start, EndsAt: start.Add(2 * time.Hour)}

	assert.NoError(t, svc.PlanForBooking(context.Background(), b))

	rows := plannedRows(repo)
	// 3 offsets x 2 parties
	assert.Len(t, rows, 6)
	assert.Equal(t, start.Add(-24*time.Hour), rows[0].TriggerAt)
	assert.Equal(t, start.Add(-time.Hour), rows[2].TriggerAt)
	assert.Equal(t, start.Add(-15*time.Minute), rows[4].TriggerAt)

	var p payload
	assert.NoError(t, json.Unmarshal(rows[0].Payload, &p))
	assert.Contains(t, p.Body, "Maria")
	assert.Contains(t, p.Body, "tomorrow")
}

func TestPlanForBooking_PastTriggersSkipped(t *testing.T) {
	// Confirmation lands 30 minutes before start: only the 15-minute
	// reminder is still ahead.
	repo := new(MockReminderRepository)
	users := new(MockUserReader)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := fixedService(repo, users, now)

	namedUsers(users)
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.Reminder")).Return(nil)

	start := now.Add(30 * time.Minute)
	b := &domain.Booking{ID: 7, MotherID: 1, DoulaID: 2, StartsAt: start}

	assert.NoError(t, svc.PlanForBooking(context.Background(), b))

	rows := plannedRows(repo)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, start.Add(-15*time.Minute), r.TriggerAt)
	}
	assert.Equal(t, int64(1), rows[0].UserID)
	assert.Equal(t, int64(2), rows[1].UserID)
}

func TestPlanForBooking_AllTriggersPast(t *testing.T) {
	repo := new(MockReminderRepository)
	users := new(MockUserReader)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := fixedService(repo, users, now)

	namedUsers(users)
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.Reminder")).Return(nil)

	start := now.Add(5 * time.Minute)
	b := &domain.Booking{ID: 7, MotherID: 1, DoulaID: 2, StartsAt: start}

	assert.NoError(t, svc.PlanForBooking(context.Background(), b))
	assert.Empty(t, plannedRows(repo))
}

func TestPlanForBooking_TriggerExactlyNowSkipped(t *testing.T) {
	repo := new(MockReminderRepository)
	users := new(MockUserReader)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := fixedService(repo, users, now)

	namedUsers(users)
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.Reminder")).Return(nil)

	// start in exactly 1 hour: the 1h trigger falls on now and is skipped
	start := now.Add(time.Hour)
	b := &domain.Booking{ID: 7, MotherID: 1, DoulaID: 2, StartsAt: start}

	assert.NoError(t, svc.PlanForBooking(context.Background(), b))

	rows := plannedRows(repo)
	assert.Len(t, rows, 2)
	assert.Equal(t, start.Add(-15*time.Minute), rows[0].TriggerAt)
}

func TestPlanForBooking_NameFallbacks(t *testing.T) {
	repo := new(MockReminderRepository)
	users := new(MockUserReader)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := fixedService(repo, users, now)

	users.On("GetByID", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]domain.Reminder")).Return(nil)

	start := now.Add(48 * time.Hour)
	b := &domain.Booking{ID: 7, MotherID: 1, DoulaID: 2, StartsAt: start}

	assert.NoError(t, svc.PlanForBooking(context.Background(), b))

	rows := plannedRows(repo)
	var motherSide, doulaSide payload
	assert.NoError(t, json.Unmarshal(rows[0].Payload, &motherSide))
	assert.NoError(t, json.Unmarshal(rows[1].Payload, &doulaSide))
	assert.Contains(t, motherSide.Body, "your doula")
	assert.Contains(t, doulaSide.Body, "your client")
}
