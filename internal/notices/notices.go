package notices

import (
	"fmt"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"
)

// Notice is an admin-authored announcement shown to all visitors.
type Notice struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Content   string    `gorm:"not null;size:5000" json:"content"`
	Important bool      `gorm:"not null;default:false" json:"important"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Notice) TableName() string {
	return "notices"
}

// Create stores a new notice.
func Create(db *gorm.DB, logger *slog.Logger, notice *Notice) error {
	if notice.Title == "" {
		return fmt.Errorf("notice title is required")
	}
	if notice.Content == "" {
		return fmt.Errorf("notice content is required")
	}

	notice.CreatedAt = time.Now().UTC()

	return sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Create(notice).Error
	})
}

// GetByID retrieves a notice by id.
func GetByID(db *gorm.DB, id uint) (*Notice, error) {
	var notice Notice
	if err := db.Where("id = ?", id).First(&notice).Error; err != nil {
		return nil, err
	}
	return &notice, nil
}

// List returns all notices, most recent first.
func List(db *gorm.DB) ([]Notice, error) {
	var result []Notice
	if err := db.Order("id DESC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// NoticeUpdate holds a partial set of notice fields. Nil pointers mean
// "leave unchanged"; id and createdAt are never touched.
type NoticeUpdate struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Important *bool   `json:"important"`
}

// Update merges the provided fields over an existing notice and returns
// the updated record.
func Update(db *gorm.DB, logger *slog.Logger, id uint, update NoticeUpdate) (*Notice, error) {
	notice, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if *update.Title == "" {
			return nil, fmt.Errorf("notice title cannot be empty")
		}
		notice.Title = *update.Title
	}
	if update.Content != nil {
		if *update.Content == "" {
			return nil, fmt.Errorf("notice content cannot be empty")
		}
		notice.Content = *update.Content
	}
	if update.Important != nil {
		notice.Important = *update.Important
	}

	err = sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Model(notice).
			Select("title", "content", "important").
			Updates(map[string]any{
				"title":     notice.Title,
				"content":   notice.Content,
				"important": notice.Important,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return notice, nil
}

// Delete removes a notice by id. Returns gorm.ErrRecordNotFound when the
// id is absent.
func Delete(db *gorm.DB, logger *slog.Logger, id uint) error {
	return sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&Notice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
