package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"doulabook/internal/domain"
)

// ErrSlotTaken is returned when an insert loses the race for a time slot,
// either to the in-transaction re-check or to the database constraint.
var ErrSlotTaken = errors.New("slot already taken")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	MotherID           int64      `gorm:"column:mother_id"`
	DoulaID            int64      `gorm:"column:doula_id"`
	StartsAt           time.Time  `gorm:"column:starts_at"`
	EndsAt             time.Time  `gorm:"column:ends_at"`
	Mode               string     `gorm:"column:mode"`
	Status             string     `gorm:"column:status"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var reason string
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		MotherID:           m.MotherID,
		DoulaID:            m.DoulaID,
		StartsAt:           m.StartsAt,
		EndsAt:             m.EndsAt,
		Mode:               domain.BookingMode(m.Mode),
		Status:             domain.BookingStatus(m.Status),
		CancellationReason: reason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var reason *string
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:                 b.ID,
		MotherID:           b.MotherID,
		DoulaID:            b.DoulaID,
		StartsAt:           b.StartsAt,
		EndsAt:             b.EndsAt,
		Mode:               string(b.Mode),
		Status:             string(b.Status),
		CancellationReason: reason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		CancelledAt:        b.CancelledAt,
	}
}

var blockingStatuses = []string{
	string(domain.BookingRequested),
	string(domain.BookingConfirmed),
	string(domain.BookingPaid),
}

// FindConflict returns the first booking for the doula whose [starts_at,
// ends_at) interval overlaps the proposed one and whose status still
// blocks the slot. Declined and cancelled bookings are ignored.
func (r *BookingRepository) FindConflict(ctx context.Context, doulaID int64, start, end time.Time) (*domain.Booking, error) {
	return findConflictTx(r.db.WithContext(ctx), doulaID, start, end)
}

func findConflictTx(tx *gorm.DB, doulaID int64, start, end time.Time) (*domain.Booking, error) {
	var m bookingModel
	res := tx.
		Where("doula_id = ? AND status IN ? AND starts_at < ? AND ends_at > ?",
			doulaID, blockingStatuses, end, start).
		Order("starts_at").
		Limit(1).
		Find(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return toDomainBooking(m), nil
}

// CreateIfSlotFree re-checks for conflicts and inserts in one transaction,
// so two concurrent requests for an overlapping slot cannot both commit.
// On Postgres the bookings_no_overlap exclusion constraint installed by
// database.Migrate backs the same guarantee at the database level; its
// violation is mapped to ErrSlotTaken as well.
func (r *BookingRepository) CreateIfSlotFree(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	var conflict *domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findConflictTx(tx, b.DoulaID, b.StartsAt, b.EndsAt)
		if err != nil {
			return err
		}
		if found != nil {
			conflict = found
			return ErrSlotTaken
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return conflict, ErrSlotTaken
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01") {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return nil, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByMotherID(ctx context.Context, motherID int64) ([]domain.Booking, error) {
	return r.list(ctx, "mother_id = ?", motherID)
}

func (r *BookingRepository) GetByDoulaID(ctx context.Context, doulaID int64) ([]domain.Booking, error) {
	return r.list(ctx, "doula_id = ?", doulaID)
}

func (r *BookingRepository) list(ctx context.Context, query string, arg int64) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).Where(query, arg).Order("starts_at").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdateStatusIf performs a compare-and-set on the booking status. It
// reports false when the booking is missing or its status no longer
// matches the expected one, which covers confirm/cancel races.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, bookingID int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", bookingID, string(from)).
		Update("status", string(to))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// CancelIf is UpdateStatusIf for cancellation, also recording the reason
// and the cancellation timestamp.
func (r *BookingRepository) CancelIf(ctx context.Context, bookingID int64, from domain.BookingStatus, reason string) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":       string(domain.BookingCancelled),
		"cancelled_at": &now,
	}
	if reason != "" {
		updates["cancellation_reason"] = reason
	}

	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", bookingID, string(from)).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// FirstPaidUnreviewed returns the oldest paid booking between the pair
// that has no review yet, or nil.
func (r *BookingRepository) FirstPaidUnreviewed(ctx context.Context, motherID, doulaID int64) (*domain.Booking, error) {
	var m bookingModel
	q := `
SELECT b.*
FROM bookings b
LEFT JOIN reviews rv ON rv.booking_id = b.id
WHERE b.mother_id = ?
  AND b.doula_id = ?
  AND b.status = 'paid'
  AND rv.id IS NULL
ORDER BY b.starts_at
LIMIT 1
`
	res := r.db.WithContext(ctx).Raw(q, motherID, doulaID).Scan(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return toDomainBooking(m), nil
}
