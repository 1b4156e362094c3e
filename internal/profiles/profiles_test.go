package profiles

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
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&Profile{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateProfile(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	tests := []struct {
		name      string
		profile   *Profile
		wantErr   bool
		wantField string
	}{
		{
			name: "valid profile",
			profile: &Profile{
				Name:      "Kim Minjun",
				Age:       45,
				Gender:    GenderMale,
				Country:   "South Korea",
				About:     "Retired teacher",
				Interests: "hiking",
			},
			wantErr: false,
		},
		{
			name: "age below the display buckets is still accepted",
			profile: &Profile{
				Name:    "Young Member",
				Age:     39,
				Gender:  GenderFemale,
				Country: "Japan",
			},
			wantErr: false,
		},
		{
			name:      "missing name",
			profile:   &Profile{Age: 50, Gender: GenderMale, Country: "Japan"},
			wantErr:   true,
			wantField: "name",
		},
		{
			name:      "zero age",
			profile:   &Profile{Name: "X", Age: 0, Gender: GenderMale, Country: "Japan"},
			wantErr:   true,
			wantField: "age",
		},
		{
			name:      "negative age",
			profile:   &Profile{Name: "X", Age: -3, Gender: GenderMale, Country: "Japan"},
			wantErr:   true,
			wantField: "age",
		},
		{
			name:      "missing gender",
			profile:   &Profile{Name: "X", Age: 50, Country: "Japan"},
			wantErr:   true,
			wantField: "gender",
		},
		{
			name:      "unknown gender label",
			profile:   &Profile{Name: "X", Age: 50, Gender: Gender("other"), Country: "Japan"},
			wantErr:   true,
			wantField: "gender",
		},
		{
			name:      "missing country",
			profile:   &Profile{Name: "X", Age: 50, Gender: GenderFemale},
			wantErr:   true,
			wantField: "country",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Create(db, log, tt.profile)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotZero(t, tt.profile.ID)
				assert.False(t, tt.profile.CreatedAt.IsZero())
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestCreateProfileAssignsIncreasingIDs(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	var lastID uint
	for _, name := range []string{"First", "Second", "Third"} {
		p := &Profile{Name: name, Age: 50, Gender: GenderMale, Country: "Japan"}
		require.NoError(t, Create(db, log, p))
		assert.Greater(t, p.ID, lastID)
		lastID = p.ID
	}
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "South Korea", NormalizeCountry("south korea"))
	assert.Equal(t, "Japan", NormalizeCountry("japan"))
	assert.Equal(t, "United States", NormalizeCountry("United States"))

	// Unrecognized names pass through verbatim.
	assert.Equal(t, "Atlantis", NormalizeCountry("Atlantis"))
	assert.Equal(t, "", NormalizeCountry(""))
}

func TestFilterProfiles(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	seed := []Profile{
		{Name: "A", Age: 45, Gender: GenderMale, Country: "Japan"},
		{Name: "B", Age: 52, Gender: GenderFemale, Country: "Japan"},
		{Name: "C", Age: 61, Gender: GenderMale, Country: "South Korea"},
		{Name: "D", Age: 48, Gender: GenderFemale, Country: "South Korea"},
	}
	for i := range seed {
		require.NoError(t, Create(db, log, &seed[i]))
	}

	t.Run("no filters returns everything in insertion order", func(t *testing.T) {
		result, err := Filter(db, "", "")
		require.NoError(t, err)
		require.Len(t, result, 4)
		assert.Equal(t, "A", result[0].Name)
		assert.Equal(t, "D", result[3].Name)
	})

	t.Run("gender filter returns exactly the matching subset", func(t *testing.T) {
		result, err := Filter(db, string(GenderMale), "")
		require.NoError(t, err)
		require.Len(t, result, 2)
		for _, p := range result {
			assert.Equal(t, GenderMale, p.Gender)
		}
	})

	t.Run("country filter is exact equality", func(t *testing.T) {
		result, err := Filter(db, "", "Japan")
		require.NoError(t, err)
		require.Len(t, result, 2)

		result, err = Filter(db, "", "Jap")
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("filters combine", func(t *testing.T) {
		result, err := Filter(db, string(GenderFemale), "South Korea")
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "D", result[0].Name)
	})
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	original := &Profile{Name: "Original", Age: 45, Gender: GenderMale, Country: "Japan", About: "old about"}
	require.NoError(t, Create(db, log, original))

	t.Run("merges only provided fields", func(t *testing.T) {
		newAge := 46
		updated, err := Update(db, log, original.ID, ProfileUpdate{Age: &newAge})
		require.NoError(t, err)
		assert.Equal(t, 46, updated.Age)
		assert.Equal(t, "Original", updated.Name)
		assert.Equal(t, "old about", updated.About)
	})

	t.Run("id and createdAt survive updates", func(t *testing.T) {
		before, err := GetByID(db, original.ID)
		require.NoError(t, err)

		name := "Renamed"
		updated, err := Update(db, log, original.ID, ProfileUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, before.ID, updated.ID)
		assert.Equal(t, before.CreatedAt.Unix(), updated.CreatedAt.Unix())

		stored, err := GetByID(db, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", stored.Name)
		assert.Equal(t, before.CreatedAt.Unix(), stored.CreatedAt.Unix())
	})

	t.Run("rejects invalid merged values", func(t *testing.T) {
		badAge := -1
		_, err := Update(db, log, original.ID, ProfileUpdate{Age: &badAge})
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "age", validationErr.Field)

		badGender := Gender("unknown")
		_, err = Update(db, log, original.ID, ProfileUpdate{Gender: &badGender})
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "gender", validationErr.Field)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "Ghost"
		_, err := Update(db, log, 9999, ProfileUpdate{Name: &name})
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestDeleteProfile(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	p := &Profile{Name: "To Delete", Age: 50, Gender: GenderFemale, Country: "Japan"}
	require.NoError(t, Create(db, log, p))

	require.NoError(t, Delete(db, log, p.ID))

	_, err := GetByID(db, p.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// Deleting again reports not found, not success.
	err = Delete(db, log, p.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
