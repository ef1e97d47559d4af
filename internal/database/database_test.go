package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	tables := []string{
		"users",
		"availability_windows",
		"bookings",
		"reviews",
		"payments",
		"reminders",
		"favourites",
		"messages",
	}
	for _, table := range tables {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestMigrate_Rerunnable(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}
