package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/certlink/internal/domain/model"
)

func makeRecord(hash, name string) model.Record {
	return model.Record{
		Sno:        "1",
		Rollno:     "R1",
		Name:       name,
		Domain:     "AI",
		Title:      "X",
		Mentor:     "M",
		Duration:   "3",
		Completion: "Jan 5",
		HashValue:  hash,
	}
}

func TestRecordRepo_InsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)
	fixed := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	inserted, err := repo.InsertIfAbsent(ctx, makeRecord("h1", "Alice"))
	require.NoError(t, err)
	assert.True(t, inserted)

	got, err := repo.GetByFingerprint(ctx, "h1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotZero(t, got.ID)
	assert.Equal(t, "1", got.Sno)
	assert.Equal(t, "R1", got.Rollno)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "AI", got.Domain)
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, "M", got.Mentor)
	assert.Equal(t, "3", got.Duration)
	assert.Equal(t, "Jan 5", got.Completion)
	assert.Equal(t, "h1", got.HashValue)
	assert.True(t, fixed.Equal(got.CreatedAt))
}

func TestRecordRepo_GetByFingerprint_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)

	got, err := repo.GetByFingerprint(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecordRepo_InsertIfAbsent_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)
	ctx := context.Background()

	_, err := repo.InsertIfAbsent(ctx, makeRecord("h1", "Alice"))
	require.NoError(t, err)

	// A second insert with the same hash is ignored, not updated.
	inserted, err := repo.InsertIfAbsent(ctx, makeRecord("h1", "Changed"))
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := repo.GetByFingerprint(ctx, "h1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordRepo_InsertIfAbsent_Concurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)
	ctx := context.Background()

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.InsertIfAbsent(ctx, makeRecord("same", "Alice"))
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordRepo_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "h1")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.InsertIfAbsent(ctx, makeRecord("h1", "Alice"))
	require.NoError(t, err)

	exists, err = repo.Exists(ctx, "h1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRecordRepo_NumericSnoRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)
	ctx := context.Background()

	rec := makeRecord("h1", "Alice")
	rec.Sno = "42"
	_, err := repo.InsertIfAbsent(ctx, rec)
	require.NoError(t, err)

	got, err := repo.GetByFingerprint(ctx, "h1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "42", got.Sno)
}
