package matches

import (
	"errors"
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"couplegate/internal/profiles"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&profiles.Profile{}, &Match{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createProfile(t *testing.T, db *gorm.DB, name string) *profiles.Profile {
	t.Helper()
	p := &profiles.Profile{Name: name, Age: 50, Gender: profiles.GenderMale, Country: "Japan"}
	require.NoError(t, profiles.Create(db, testLogger(), p))
	return p
}

func TestCreateMatch(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	from := createProfile(t, db, "From")
	to := createProfile(t, db, "To")

	t.Run("creates a pending match between existing profiles", func(t *testing.T) {
		match, err := Create(db, log, from.ID, to.ID)
		require.NoError(t, err)
		assert.NotZero(t, match.ID)
		assert.Equal(t, from.ID, match.FromID)
		assert.Equal(t, to.ID, match.ToID)
		assert.Equal(t, StatusPending, match.Status)
		assert.False(t, match.CreatedAt.IsZero())
	})

	t.Run("missing from profile creates nothing", func(t *testing.T) {
		before, err := Count(db)
		require.NoError(t, err)

		_, err = Create(db, log, 9999, to.ID)
		var notFoundErr *ProfileNotFoundError
		require.True(t, errors.As(err, &notFoundErr))
		assert.Equal(t, uint(9999), notFoundErr.ProfileID)

		after, err := Count(db)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("missing to profile creates nothing", func(t *testing.T) {
		before, err := Count(db)
		require.NoError(t, err)

		_, err = Create(db, log, from.ID, 9999)
		var notFoundErr *ProfileNotFoundError
		require.True(t, errors.As(err, &notFoundErr))

		after, err := Count(db)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestListWithNames(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	from := createProfile(t, db, "Alice")
	to := createProfile(t, db, "Bob")

	match, err := Create(db, log, from.ID, to.ID)
	require.NoError(t, err)

	t.Run("resolves both names", func(t *testing.T) {
		result, err := ListWithNames(db)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, match.ID, result[0].ID)
		assert.Equal(t, "Alice", result[0].FromName)
		assert.Equal(t, "Bob", result[0].ToName)
	})

	t.Run("deleted profile falls back to placeholder and keeps the match", func(t *testing.T) {
		require.NoError(t, profiles.Delete(db, log, to.ID))

		result, err := ListWithNames(db)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Alice", result[0].FromName)
		assert.Equal(t, UnknownProfileName, result[0].ToName)
		assert.Equal(t, to.ID, result[0].ToID)
	})
}

func TestListInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	a := createProfile(t, db, "A")
	b := createProfile(t, db, "B")

	first, err := Create(db, log, a.ID, b.ID)
	require.NoError(t, err)
	second, err := Create(db, log, b.ID, a.ID)
	require.NoError(t, err)

	result, err := List(db)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, first.ID, result[0].ID)
	assert.Equal(t, second.ID, result[1].ID)
}
