// Package admins implements the access guard for the admin console:
// a bcrypt-backed admin account plus server-side opaque login tokens.
// The external contract is unchanged from the original platform (login
// returns a token, admin calls present it in the Authorization header,
// failures are 401), but the fixed shared-secret comparison is replaced
// with per-login tokens that expire and can be pruned.
package admins

import (
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/karloscodes/cartridge/crypto"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when a login attempt fails.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrInvalidToken is returned when a presented token is unknown or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// bcrypt hash of "dummy"; verified on unknown usernames so login takes
// constant time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Admin is a moderator account for the admin console.
type Admin struct {
	ID                uint   `gorm:"primaryKey"`
	Username          string `gorm:"uniqueIndex;not null"`
	EncryptedPassword string
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// AuthToken is an opaque credential issued at login. Every successful
// login gets its own token; tokens expire and are pruned by a
// background job.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey"`
	AdminID   uint      `gorm:"not null;index"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// FindByUsername retrieves an admin by username.
func FindByUsername(db *gorm.DB, username string) (*Admin, error) {
	var admin Admin
	if err := db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// SetupDefaultAdmin creates the configured admin account if it does not
// exist yet. Called at startup.
func SetupDefaultAdmin(db *gorm.DB, username, password string) error {
	hashedPassword, err := crypto.GeneratePasswordHash(password)
	if err != nil {
		return err
	}

	logger := slog.Default()
	return sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Exec(`
            INSERT INTO admins (username, encrypted_password, created_at, updated_at)
            VALUES (?, ?, ?, ?)
            ON CONFLICT(username) DO NOTHING
        `, username, string(hashedPassword), time.Now().UTC(), time.Now().UTC()).Error
	})
}

// Authenticate verifies a username/password pair. It always performs a
// bcrypt comparison so response time does not reveal whether the
// username exists.
func Authenticate(db *gorm.DB, username, password string) (*Admin, error) {
	admin, err := FindByUsername(db, username)
	if err != nil {
		crypto.VerifyPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}

	if !crypto.VerifyPassword(admin.EncryptedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// IssueToken creates a fresh opaque token for the given admin.
func IssueToken(db *gorm.DB, logger *slog.Logger, adminID uint, ttl time.Duration) (*AuthToken, error) {
	token := &AuthToken{
		AdminID:   adminID,
		Token:     newTokenValue(),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	err := sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Create(token).Error
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// newTokenValue generates the opaque token material. Two v4 UUIDs give
// 256 bits of randomness.
func newTokenValue() string {
	raw := uuid.NewString() + uuid.NewString()
	return strings.ReplaceAll(raw, "-", "")
}

// ValidateToken resolves a presented token to its admin. Unknown and
// expired tokens both return ErrInvalidToken.
func ValidateToken(db *gorm.DB, token string) (*Admin, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var stored AuthToken
	if err := db.Where("token = ?", token).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !secureCompare(token, stored.Token) {
		return nil, ErrInvalidToken
	}
	if time.Now().UTC().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	var admin Admin
	if err := db.Where("id = ?", stored.AdminID).First(&admin).Error; err != nil {
		return nil, ErrInvalidToken
	}
	return &admin, nil
}

// PruneExpiredTokens deletes tokens past their expiry and returns the
// number removed.
func PruneExpiredTokens(db *gorm.DB, logger *slog.Logger) (int64, error) {
	var deleted int64
	err := sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		result := tx.Where("expires_at < ?", time.Now().UTC()).Delete(&AuthToken{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ChangePassword updates an admin's password given their username.
func ChangePassword(db *gorm.DB, username, password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	admin, err := FindByUsername(db, username)
	if err != nil {
		return err
	}

	hashedPassword, err := crypto.GeneratePasswordHash(password)
	if err != nil {
		return err
	}

	logger := slog.Default()
	return sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Model(admin).Update("encrypted_password", string(hashedPassword)).Error
	})
}

// secureCompare performs constant-time string comparison
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}
	return result == 0
}
