package matches

import (
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"couplegate/internal/profiles"
)

// MatchStatus represents the lifecycle state of a match request.
type MatchStatus string

const (
	StatusPending  MatchStatus = "pending"
	StatusAccepted MatchStatus = "accepted"
	StatusRejected MatchStatus = "rejected"
)

// UnknownProfileName is shown in the admin match listing when a
// referenced profile has since been deleted. Matches are kept as
// historical records instead of cascading the delete.
const UnknownProfileName = "Unknown"

// ProfileNotFoundError is returned when a match references a profile id
// that does not exist at creation time.
type ProfileNotFoundError struct {
	ProfileID uint
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %d", e.ProfileID)
}

// NewProfileNotFoundError creates a new ProfileNotFoundError
func NewProfileNotFoundError(id uint) *ProfileNotFoundError {
	return &ProfileNotFoundError{ProfileID: id}
}

// Match is a one-directional match request between two profiles.
// There is deliberately no foreign-key constraint on from_id/to_id:
// deleting a profile must not delete or update the matches that
// reference it.
type Match struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	FromID    uint        `gorm:"not null;index" json:"fromId"`
	ToID      uint        `gorm:"not null;index" json:"toId"`
	Status    MatchStatus `gorm:"not null;size:20;default:'pending'" json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Match) TableName() string {
	return "matches"
}

// AdminMatch is the admin read view of a match, joined with the current
// profile names. Deleted profiles resolve to UnknownProfileName.
type AdminMatch struct {
	ID        uint        `json:"id"`
	FromID    uint        `json:"fromId"`
	ToID      uint        `json:"toId"`
	Status    MatchStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	FromName  string      `json:"fromName"`
	ToName    string      `json:"toName"`
}

// Create records a match request from one profile to another. Both
// profiles must exist at call time; the reference is not re-validated
// afterwards. New matches always start out pending.
func Create(db *gorm.DB, logger *slog.Logger, fromID, toID uint) (*Match, error) {
	if _, err := profiles.GetByID(db, fromID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewProfileNotFoundError(fromID)
		}
		return nil, err
	}
	if _, err := profiles.GetByID(db, toID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewProfileNotFoundError(toID)
		}
		return nil, err
	}

	match := &Match{
		FromID:    fromID,
		ToID:      toID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	err := sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Create(match).Error
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// List returns all matches in insertion order.
func List(db *gorm.DB) ([]Match, error) {
	var result []Match
	if err := db.Order("id ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// ListWithNames returns all matches joined with the current profile
// names for the admin console. Sides whose profile no longer exists get
// the fallback name.
func ListWithNames(db *gorm.DB) ([]AdminMatch, error) {
	var result []AdminMatch
	err := db.Table("matches").
		Select("matches.id, matches.from_id, matches.to_id, matches.status, matches.created_at, "+
			"COALESCE(f.name, ?) AS from_name, COALESCE(t.name, ?) AS to_name",
			UnknownProfileName, UnknownProfileName).
		Joins("LEFT JOIN profiles f ON f.id = matches.from_id").
		Joins("LEFT JOIN profiles t ON t.id = matches.to_id").
		Order("matches.id ASC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of stored matches.
func Count(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&Match{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
