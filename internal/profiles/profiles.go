package profiles

import (
	"fmt"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge/sqlite"
	"github.com/pariz/gountries"
	"gorm.io/gorm"
)

// Gender is the fixed label set for dating profiles.
// A single canonical enumeration replaces the free-text labels the
// platform accumulated over time.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ValidationError reports a rejected profile field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid profile: %s %s", e.Field, e.Reason)
}

// ErrProfileNotFound is returned when a profile lookup fails.
var ErrProfileNotFound = gorm.ErrRecordNotFound

// Profile represents a registered member of the dating platform.
// JSON field names match the public API wire format.
type Profile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Age       int       `gorm:"not null" json:"age"`
	Gender    Gender    `gorm:"not null;size:20;index" json:"gender"`
	Country   string    `gorm:"not null;size:100;index" json:"country"`
	About     string    `gorm:"size:2000;default:''" json:"about"`
	Interests string    `gorm:"size:1000;default:''" json:"interests"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// IsValidGender checks if the given label belongs to the canonical set.
func IsValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale
}

var countryQuery = gountries.New()

// NormalizeCountry maps a country name to its canonical English name when
// gountries recognizes it. Unrecognized values are kept verbatim so the
// field stays usable as a free-text label.
func NormalizeCountry(name string) string {
	if name == "" {
		return name
	}
	country, err := countryQuery.FindCountryByName(name)
	if err != nil {
		return name
	}
	return country.Name.Common
}

// Create validates and stores a new profile. The id and createdAt stamp
// are assigned by the store.
func Create(db *gorm.DB, logger *slog.Logger, profile *Profile) error {
	if profile.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if profile.Age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be a positive number"}
	}
	if profile.Gender == "" {
		return &ValidationError{Field: "gender", Reason: "is required"}
	}
	if !IsValidGender(profile.Gender) {
		return &ValidationError{Field: "gender", Reason: fmt.Sprintf("must be %q or %q", GenderMale, GenderFemale)}
	}
	if profile.Country == "" {
		return &ValidationError{Field: "country", Reason: "is required"}
	}

	profile.Country = NormalizeCountry(profile.Country)
	profile.CreatedAt = time.Now().UTC()

	return sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Create(profile).Error
	})
}

// GetByID retrieves a profile by id.
func GetByID(db *gorm.DB, id uint) (*Profile, error) {
	var profile Profile
	if err := db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns all profiles in insertion order.
func List(db *gorm.DB) ([]Profile, error) {
	var result []Profile
	if err := db.Order("id ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Filter returns profiles matching the given gender and country filters.
// Both filters are exact-equality matches; an empty filter places no
// constraint. Results keep insertion order.
func Filter(db *gorm.DB, gender, country string) ([]Profile, error) {
	query := db.Order("id ASC")
	if gender != "" {
		query = query.Where("gender = ?", gender)
	}
	if country != "" {
		query = query.Where("country = ?", country)
	}

	var result []Profile
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// ProfileUpdate holds a partial set of profile fields for an admin update.
// Nil pointers mean "leave unchanged". The id and createdAt stamp can
// never be changed through an update.
type ProfileUpdate struct {
	Name      *string `json:"name"`
	Age       *int    `json:"age"`
	Gender    *Gender `json:"gender"`
	Country   *string `json:"country"`
	About     *string `json:"about"`
	Interests *string `json:"interests"`
}

// Update merges the provided fields over an existing profile and returns
// the updated record. Returns gorm.ErrRecordNotFound for unknown ids.
func Update(db *gorm.DB, logger *slog.Logger, id uint, update ProfileUpdate) (*Profile, error) {
	profile, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, &ValidationError{Field: "name", Reason: "cannot be empty"}
		}
		profile.Name = *update.Name
	}
	if update.Age != nil {
		if *update.Age <= 0 {
			return nil, &ValidationError{Field: "age", Reason: "must be a positive number"}
		}
		profile.Age = *update.Age
	}
	if update.Gender != nil {
		if !IsValidGender(*update.Gender) {
			return nil, &ValidationError{Field: "gender", Reason: fmt.Sprintf("must be %q or %q", GenderMale, GenderFemale)}
		}
		profile.Gender = *update.Gender
	}
	if update.Country != nil {
		if *update.Country == "" {
			return nil, &ValidationError{Field: "country", Reason: "cannot be empty"}
		}
		profile.Country = NormalizeCountry(*update.Country)
	}
	if update.About != nil {
		profile.About = *update.About
	}
	if update.Interests != nil {
		profile.Interests = *update.Interests
	}

	// Only update mutable columns so id and created_at stay intact.
	err = sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Model(profile).
			Select("name", "age", "gender", "country", "about", "interests").
			Updates(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a profile by id. Returns gorm.ErrRecordNotFound when the
// id is absent. Matches referencing the profile are left untouched; the
// admin match listing resolves the missing side with a fallback name.
func Delete(db *gorm.DB, logger *slog.Logger, id uint) error {
	return sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&Profile{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Count returns the number of stored profiles.
func Count(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
