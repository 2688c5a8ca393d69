package storage_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tg-groupguard/internal/models"
	"tg-groupguard/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// sqlite allows a single writer; serialize connections so concurrent
	// transactions queue instead of failing with a busy error
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := storage.NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func TestWarnCountAbsentIsZero(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Warns.GetCount(100, 200)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestIncrementCreatesAndIncrements(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Warns.Increment(100, 200)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = store.Warns.Increment(100, 200)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// Other pairs are unaffected
	count, err = store.Warns.GetCount(100, 201)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestIncrementConcurrentNoLostUpdates(t *testing.T) {
	store := newTestStore(t)

	const triggers = 16
	var wg sync.WaitGroup
	counts := make(chan int, triggers)
	errs := make(chan error, triggers)
	for i := 0; i < triggers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := store.Warns.Increment(100, 200)
			if err != nil {
				errs <- err
				return
			}
			counts <- count
		}()
	}
	wg.Wait()
	close(counts)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Every trigger observed a distinct next count
	seen := make(map[int]bool)
	for count := range counts {
		require.False(t, seen[count], "count %d returned twice", count)
		seen[count] = true
	}

	final, err := store.Warns.GetCount(100, 200)
	require.NoError(t, err)
	require.Equal(t, triggers, final)
}

func TestClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	// Clearing an absent pair is a no-op, not an error
	require.NoError(t, store.Warns.Clear(100, 200))

	_, err := store.Warns.Increment(100, 200)
	require.NoError(t, err)
	require.NoError(t, store.Warns.Clear(100, 200))

	count, err := store.Warns.GetCount(100, 200)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestDenylistUpsertPreservesCreatedAt(t *testing.T) {
	store := newTestStore(t)

	first := &models.DenylistEntry{
		GroupID:   100,
		UserID:    200,
		Reason:    "first",
		AddedBy:   "system",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, store.Denylist.Upsert(first))

	second := &models.DenylistEntry{
		GroupID:   100,
		UserID:    200,
		Reason:    "second",
		AddedBy:   "42",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Denylist.Upsert(second))

	entry, err := store.Denylist.Get(100, 200)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "second", entry.Reason)
	require.Equal(t, "42", entry.AddedBy)
	require.WithinDuration(t, first.CreatedAt, entry.CreatedAt, time.Second)

	// Still a single entry for the pair
	entries, err := store.Denylist.ListByGroup(100)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDenylistRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Denylist.Remove(100, 200))

	require.NoError(t, store.Denylist.Upsert(&models.DenylistEntry{GroupID: 100, UserID: 200, CreatedAt: time.Now()}))
	require.NoError(t, store.Denylist.Remove(100, 200))

	denylisted, err := store.Denylist.IsDenylisted(100, 200)
	require.NoError(t, err)
	require.False(t, denylisted)
}

func TestListByGroupMostRecentFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, userID := range []int64{201, 202, 203} {
		require.NoError(t, store.Denylist.Upsert(&models.DenylistEntry{
			GroupID:   100,
			UserID:    userID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	// Entries of other groups stay invisible
	require.NoError(t, store.Denylist.Upsert(&models.DenylistEntry{GroupID: 999, UserID: 201, CreatedAt: time.Now()}))

	entries, err := store.Denylist.ListByGroup(100)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, int64(203), entries[0].UserID)
	require.Equal(t, int64(201), entries[2].UserID)
}

func TestExcludeClearsWarnCount(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Warns.Increment(100, 200)
	require.NoError(t, err)

	require.NoError(t, store.Exclude(100, 200, "test reason", "42"))

	denylisted, err := store.Denylist.IsDenylisted(100, 200)
	require.NoError(t, err)
	require.True(t, denylisted)

	count, err := store.Warns.GetCount(100, 200)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
