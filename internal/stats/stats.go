// Package stats derives aggregate read views over the profile and match
// collections. All queries are read-only.
package stats

import (
	"gorm.io/gorm"

	"couplegate/internal/matches"
	"couplegate/internal/profiles"
)

// Age bucket bounds. A profile outside [40,70) is still counted in
// TotalProfiles but in none of the age buckets.
const (
	fortiesMin = 40
	fiftiesMin = 50
	sixtiesMin = 60
	sixtiesMax = 70
)

// GenderBreakdown counts profiles per canonical gender label.
type GenderBreakdown struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

// AgeBreakdown counts profiles per decade band.
type AgeBreakdown struct {
	Forties int64 `json:"40s"`
	Fifties int64 `json:"50s"`
	Sixties int64 `json:"60s"`
}

// Stats is the public aggregate view of the platform.
type Stats struct {
	TotalProfiles int64           `json:"totalProfiles"`
	TotalMatches  int64           `json:"totalMatches"`
	ByGender      GenderBreakdown `json:"byGender"`
	ByAge         AgeBreakdown    `json:"byAge"`
}

// Compute builds the aggregate statistics for all stored profiles and
// matches.
func Compute(db *gorm.DB) (*Stats, error) {
	result := &Stats{}

	var err error
	if result.TotalProfiles, err = profiles.Count(db); err != nil {
		return nil, err
	}
	if result.TotalMatches, err = matches.Count(db); err != nil {
		return nil, err
	}

	if err := db.Model(&profiles.Profile{}).
		Where("gender = ?", profiles.GenderMale).
		Count(&result.ByGender.Male).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&profiles.Profile{}).
		Where("gender = ?", profiles.GenderFemale).
		Count(&result.ByGender.Female).Error; err != nil {
		return nil, err
	}

	if err := countAgeBand(db, fortiesMin, fiftiesMin, &result.ByAge.Forties); err != nil {
		return nil, err
	}
	if err := countAgeBand(db, fiftiesMin, sixtiesMin, &result.ByAge.Fifties); err != nil {
		return nil, err
	}
	if err := countAgeBand(db, sixtiesMin, sixtiesMax, &result.ByAge.Sixties); err != nil {
		return nil, err
	}

	return result, nil
}

// countAgeBand counts profiles with min <= age < max.
func countAgeBand(db *gorm.DB, min, max int, out *int64) error {
	return db.Model(&profiles.Profile{}).
		Where("age >= ? AND age < ?", min, max).
		Count(out).Error
}
