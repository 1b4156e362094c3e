// Package seeder populates a development database with sample data so the
// browse page, admin console, and stats have something to show.
package seeder

import (
	"fmt"
	"math/rand/v2"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge"

	"couplegate/internal/matches"
	"couplegate/internal/notices"
	"couplegate/internal/profiles"
)

// Seeder handles the sample data seeding process.
type Seeder struct {
	DBManager cartridge.DBManager
	Logger    *slog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(dbManager cartridge.DBManager, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		DBManager: dbManager,
		Logger:    logger,
	}
}

var sampleProfiles = []profiles.Profile{
	{Name: "Kim Minjun", Age: 45, Gender: profiles.GenderMale, Country: "South Korea", About: "Retired teacher who loves morning walks.", Interests: "hiking, photography"},
	{Name: "Lee Seoyeon", Age: 52, Gender: profiles.GenderFemale, Country: "South Korea", About: "Runs a small flower shop.", Interests: "gardening, cooking"},
	{Name: "Haruto Sato", Age: 61, Gender: profiles.GenderMale, Country: "Japan", About: "Enjoys fishing and quiet evenings.", Interests: "fishing, calligraphy"},
	{Name: "Yuki Tanaka", Age: 48, Gender: profiles.GenderFemale, Country: "Japan", About: "Former nurse, now a full-time traveler.", Interests: "travel, tea ceremony"},
	{Name: "Wang Fang", Age: 55, Gender: profiles.GenderFemale, Country: "China", About: "Looking for a walking companion.", Interests: "tai chi, mahjong"},
	{Name: "Chen Wei", Age: 63, Gender: profiles.GenderMale, Country: "China", About: "Chess enthusiast and amateur cook.", Interests: "chess, cooking"},
	{Name: "Robert Miller", Age: 58, Gender: profiles.GenderMale, Country: "United States", About: "Widower with two grown kids and a golden retriever.", Interests: "golf, barbecue"},
	{Name: "Susan Clark", Age: 49, Gender: profiles.GenderFemale, Country: "United States", About: "Librarian who never stops reading.", Interests: "books, jazz"},
}

var sampleNotices = []notices.Notice{
	{Title: "Welcome to Couple Gate", Content: "Register a profile and start browsing members near you.", Important: true},
	{Title: "Profile photo guidelines", Content: "Photos are reviewed by staff. Please use a recent picture of yourself.", Important: false},
	{Title: "Scheduled maintenance", Content: "The service may be briefly unavailable on Sunday morning.", Important: false},
}

// Seed inserts sample profiles, match requests, and notices.
// Safe to call repeatedly: it does nothing when profiles already exist.
func (s *Seeder) Seed() error {
	start := time.Now()
	db := s.DBManager.GetConnection()

	count, err := profiles.Count(db)
	if err != nil {
		return fmt.Errorf("failed to count profiles: %w", err)
	}
	if count > 0 {
		s.Logger.Debug("Database already has profiles, skipping seed", slog.Int64("count", count))
		return nil
	}

	s.Logger.Info("Seeding sample data...")

	created := make([]*profiles.Profile, 0, len(sampleProfiles))
	for _, sample := range sampleProfiles {
		p := sample
		if err := profiles.Create(db, s.Logger, &p); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", sample.Name, err)
		}
		created = append(created, &p)
	}

	// A few random match requests between seeded profiles.
	for i := 0; i < 4; i++ {
		from := created[rand.IntN(len(created))]
		to := created[rand.IntN(len(created))]
		if from.ID == to.ID {
			continue
		}
		if _, err := matches.Create(db, s.Logger, from.ID, to.ID); err != nil {
			return fmt.Errorf("failed to seed match: %w", err)
		}
	}

	for _, sample := range sampleNotices {
		n := sample
		if err := notices.Create(db, s.Logger, &n); err != nil {
			return fmt.Errorf("failed to seed notice %s: %w", sample.Title, err)
		}
	}

	s.Logger.Info("Sample data seeded",
		slog.Int("profiles", len(created)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
