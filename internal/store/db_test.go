package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zonekit/zonekit/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Snapshot{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestDBStore_NilDatabase(t *testing.T) {
	s := NewDBStore(nil)

	_, err := s.Load("example.com.")
	assert.ErrorIs(t, err, ErrDBNil)

	err = s.Save("example.com.", 1, "content")
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestDBStore_EmptyZone(t *testing.T) {
	s := NewDBStore(setupTestDB(t))

	err := s.Save("", 1, "content")
	assert.ErrorIs(t, err, ErrZoneEmpty)
}

func TestDBStore_LoadMissing(t *testing.T) {
	s := NewDBStore(setupTestDB(t))

	_, err := s.Load("example.com.")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDBStore_SaveAndLoad(t *testing.T) {
	s := NewDBStore(setupTestDB(t))

	content := "$ORIGIN example.com.\n$TTL 3600\n"

	require.NoError(t, s.Save("example.com.", 7, content))

	got, err := s.Load("example.com.")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestDBStore_SaveIsUpsert(t *testing.T) {
	db := setupTestDB(t)
	s := NewDBStore(db)

	require.NoError(t, s.Save("example.com.", 1, "first\n"))
	require.NoError(t, s.Save("example.com.", 2, "second\n"))

	got, err := s.Load("example.com.")
	require.NoError(t, err)
	assert.Equal(t, "second\n", got)

	var count int64

	require.NoError(t, db.Model(&models.Snapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert must not create a second row")

	var snapshot models.Snapshot

	require.NoError(t, db.First(&snapshot).Error)
	assert.Equal(t, uint32(2), snapshot.Serial)
}

func TestDBStore_ZoneNameNormalized(t *testing.T) {
	s := NewDBStore(setupTestDB(t))

	require.NoError(t, s.Save("example.com", 1, "content\n"))

	// Loading with or without the trailing dot hits the same row.
	got, err := s.Load("example.com.")
	require.NoError(t, err)
	assert.Equal(t, "content\n", got)
}
