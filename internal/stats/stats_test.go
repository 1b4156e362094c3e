package stats

import (
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"couplegate/internal/matches"
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

	if err := db.AutoMigrate(&profiles.Profile{}, &matches.Match{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestComputeEmpty(t *testing.T) {
	db := setupTestDB(t)

	result, err := Compute(db)
	require.NoError(t, err)
	assert.Zero(t, result.TotalProfiles)
	assert.Zero(t, result.TotalMatches)
	assert.Zero(t, result.ByGender.Male)
	assert.Zero(t, result.ByGender.Female)
	assert.Zero(t, result.ByAge.Forties)
}

func TestComputeAgeBuckets(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	// One profile per decade band plus one below every band. The age-39
	// profile counts toward the total but no bucket.
	seed := []profiles.Profile{
		{Name: "A", Age: 45, Gender: profiles.GenderMale, Country: "Japan"},
		{Name: "B", Age: 52, Gender: profiles.GenderFemale, Country: "Japan"},
		{Name: "C", Age: 61, Gender: profiles.GenderMale, Country: "Japan"},
		{Name: "D", Age: 39, Gender: profiles.GenderFemale, Country: "Japan"},
	}
	for i := range seed {
		require.NoError(t, profiles.Create(db, log, &seed[i]))
	}

	result, err := Compute(db)
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.TotalProfiles)
	assert.Equal(t, int64(1), result.ByAge.Forties)
	assert.Equal(t, int64(1), result.ByAge.Fifties)
	assert.Equal(t, int64(1), result.ByAge.Sixties)
}

func TestComputeBucketBoundaries(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	// Band edges: 40 and 69 are inside, 70 is outside all bands.
	seed := []profiles.Profile{
		{Name: "Forty", Age: 40, Gender: profiles.GenderMale, Country: "Japan"},
		{Name: "FortyNine", Age: 49, Gender: profiles.GenderMale, Country: "Japan"},
		{Name: "Fifty", Age: 50, Gender: profiles.GenderMale, Country: "Japan"},
		{Name: "SixtyNine", Age: 69, Gender: profiles.GenderMale, Country: "Japan"},
		{Name: "Seventy", Age: 70, Gender: profiles.GenderMale, Country: "Japan"},
	}
	for i := range seed {
		require.NoError(t, profiles.Create(db, log, &seed[i]))
	}

	result, err := Compute(db)
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.TotalProfiles)
	assert.Equal(t, int64(2), result.ByAge.Forties)
	assert.Equal(t, int64(1), result.ByAge.Fifties)
	assert.Equal(t, int64(1), result.ByAge.Sixties)
}

func TestComputeGenderAndMatchCounts(t *testing.T) {
	db := setupTestDB(t)
	log := testLogger()

	m := &profiles.Profile{Name: "M", Age: 45, Gender: profiles.GenderMale, Country: "Japan"}
	f1 := &profiles.Profile{Name: "F1", Age: 52, Gender: profiles.GenderFemale, Country: "Japan"}
	f2 := &profiles.Profile{Name: "F2", Age: 55, Gender: profiles.GenderFemale, Country: "Japan"}
	for _, p := range []*profiles.Profile{m, f1, f2} {
		require.NoError(t, profiles.Create(db, log, p))
	}

	_, err := matches.Create(db, log, m.ID, f1.ID)
	require.NoError(t, err)
	_, err = matches.Create(db, log, f2.ID, m.ID)
	require.NoError(t, err)

	result, err := Compute(db)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.TotalProfiles)
	assert.Equal(t, int64(2), result.TotalMatches)
	assert.Equal(t, int64(1), result.ByGender.Male)
	assert.Equal(t, int64(2), result.ByGender.Female)
}
