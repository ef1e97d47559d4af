package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"doulabook/internal/database"
	"doulabook/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func slotBooking(doulaID int64, start time.Time, dur time.Duration, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		MotherID: 1,
		DoulaID:  doulaID,
		StartsAt: start,
		EndsAt:   start.Add(dur),
		Mode:     domain.ModeOnline,
		Status:   status,
	}
}

func TestBookingRepository_CreateIfSlotFree(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	t.Run("FreeSlotInserts", func(t *testing.T) {
		repo := NewBookingRepository(newTestDB(t))

		b := slotBooking(7, base, 2*time.Hour, domain.BookingRequested)
		conflict, err := repo.CreateIfSlotFree(ctx, b)
		require.NoError(t, err)
		assert.Nil(t, conflict)
		assert.NotZero(t, b.ID)
	})

	t.Run("OverlapLosesToExistingBooking", func(t *testing.T) {
		repo := NewBookingRepository(newTestDB(t))

		winner := slotBooking(7, base, 2*time.Hour, domain.BookingConfirmed)
		_, err := repo.CreateIfSlotFree(ctx, winner)
		require.NoError(t, err)

		loser := slotBooking(7, base.Add(time.Hour), 2*time.Hour, domain.BookingRequested)
		conflict, err := repo.CreateIfSlotFree(ctx, loser)
		assert.ErrorIs(t, err, ErrSlotTaken)
		require.NotNil(t, conflict)
		assert.Equal(t, winner.ID, conflict.ID)
		assert.True(t, conflict.StartsAt.Equal(base))
	})

	t.Run("TouchingIntervalsBothFit", func(t *testing.T) {
		repo := NewBookingRepository(newTestDB(t))

		first := slotBooking(7, base, 2*time.Hour, domain.BookingConfirmed)
		_, err := repo.CreateIfSlotFree(ctx, first)
		require.NoError(t, err)

		next := slotBooking(7, base.Add(2*time.Hour), time.Hour, domain.BookingRequested)
		conflict, err := repo.CreateIfSlotFree(ctx, next)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("DeclinedBookingDoesNotBlock", func(t *testing.T) {
		repo := NewBookingRepository(newTestDB(t))

		declined := slotBooking(7, base, 2*time.Hour, domain.BookingDeclined)
		_, err := repo.CreateIfSlotFree(ctx, declined)
		require.NoError(t, err)

		b := slotBooking(7, base.Add(time.Hour), 2*time.Hour, domain.BookingRequested)
		conflict, err := repo.CreateIfSlotFree(ctx, b)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("OtherDoulaUnaffected", func(t *testing.T) {
		repo := NewBookingRepository(newTestDB(t))

		_, err := repo.CreateIfSlotFree(ctx, slotBooking(7, base, 2*time.Hour, domain.BookingConfirmed))
		require.NoError(t, err)

		other := slotBooking(8, base, 2*time.Hour, domain.BookingRequested)
		conflict, err := repo.CreateIfSlotFree(ctx, other)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})
}

func TestBookingRepository_UpdateStatusIf(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(newTestDB(t))
	base := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	b := slotBooking(7, base, time.Hour, domain.BookingRequested)
	_, err := repo.CreateIfSlotFree(ctx, b)
	require.NoError(t, err)

	ok, err := repo.UpdateStatusIf(ctx, b.ID, domain.BookingRequested, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.True(t, ok)

	// The expected status no longer matches, so the second transition loses.
	ok, err = repo.UpdateStatusIf(ctx, b.ID, domain.BookingRequested, domain.BookingDeclined)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
}
