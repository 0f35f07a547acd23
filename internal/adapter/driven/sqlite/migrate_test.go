package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, RunMigrations(db.Writer))
}

func TestRunMigrations_AdoptsLegacyTableWithDuplicates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Writer.ExecContext(ctx, `
		CREATE TABLE data (
			Sno INTEGER, Rollno TEXT, Name TEXT, Domain TEXT, Title TEXT,
			Mentor TEXT, Duration TEXT, Completion DATE, hashValue TEXT
		)`)
	require.NoError(t, err)

	for _, name := range []string{"Alice", "Alice again", "Bob"} {
		hash := "h-alice"
		if name == "Bob" {
			hash = "h-bob"
		}
		_, err := db.Writer.ExecContext(ctx,
			`INSERT INTO data (Sno, Rollno, Name, Domain, Title, Mentor, Duration, Completion, hashValue)
			 VALUES (1, 'R1', ?, 'AI', 'X', 'M', '3', 'Jan 5', ?)`, name, hash)
		require.NoError(t, err)
	}

	require.NoError(t, RunMigrations(db.Writer))

	repo := NewRecordRepo(db)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// The earliest legacy row wins.
	got, err := repo.GetByFingerprint(ctx, "h-alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)
	assert.True(t, got.CreatedAt.IsZero())

	inserted, err := repo.InsertIfAbsent(ctx, makeRecord("h-bob", "Bob"))
	require.NoError(t, err)
	assert.False(t, inserted)
}
