package admins

import (
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&Admin{}, &AuthToken{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSetupDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SetupDefaultAdmin(db, "admin", "admin1234"))

	admin, err := FindByUsername(db, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.NotEqual(t, "admin1234", admin.EncryptedPassword)

	// Re-running keeps the existing account and password untouched.
	require.NoError(t, SetupDefaultAdmin(db, "admin", "different-password"))

	again, err := FindByUsername(db, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Equal(t, admin.EncryptedPassword, again.EncryptedPassword)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SetupDefaultAdmin(db, "admin", "s3cret-pass"))

	t.Run("valid credentials", func(t *testing.T) {
		admin, err := Authenticate(db, "admin", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "admin", admin.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := Authenticate(db, "admin", "wrong")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := Authenticate(db, "nobody", "s3cret-pass")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	require.NoError(t, SetupDefaultAdmin(db, "admin", "s3cret-pass"))
	admin, err := FindByUsername(db, "admin")
	require.NoError(t, err)

	token, err := IssueToken(db, log, admin.ID, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.True(t, token.ExpiresAt.After(time.Now().UTC()))

	t.Run("valid token resolves the admin", func(t *testing.T) {
		resolved, err := ValidateToken(db, token.Token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, resolved.ID)
	})

	t.Run("each login gets a distinct token", func(t *testing.T) {
		second, err := IssueToken(db, log, admin.ID, time.Hour)
		require.NoError(t, err)
		assert.NotEqual(t, token.Token, second.Token)
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		_, err := ValidateToken(db, "not-a-real-token")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("empty token rejected", func(t *testing.T) {
		_, err := ValidateToken(db, "")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired, err := IssueToken(db, log, admin.ID, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(db, expired.Token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestPruneExpiredTokens(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	require.NoError(t, SetupDefaultAdmin(db, "admin", "s3cret-pass"))
	admin, err := FindByUsername(db, "admin")
	require.NoError(t, err)

	live, err := IssueToken(db, log, admin.ID, time.Hour)
	require.NoError(t, err)
	_, err = IssueToken(db, log, admin.ID, -time.Minute)
	require.NoError(t, err)
	_, err = IssueToken(db, log, admin.ID, -time.Hour)
	require.NoError(t, err)

	pruned, err := PruneExpiredTokens(db, log)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	// The live token survives.
	_, err = ValidateToken(db, live.Token)
	assert.NoError(t, err)

	// Nothing left to prune.
	pruned, err = PruneExpiredTokens(db, log)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SetupDefaultAdmin(db, "admin", "old-pass"))

	require.NoError(t, ChangePassword(db, "admin", "new-pass"))

	_, err := Authenticate(db, "admin", "old-pass")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	admin, err := Authenticate(db, "admin", "new-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)

	t.Run("empty password rejected", func(t *testing.T) {
		assert.Error(t, ChangePassword(db, "admin", ""))
	})

	t.Run("unknown username", func(t *testing.T) {
		assert.Error(t, ChangePassword(db, "nobody", "whatever"))
	})
}
