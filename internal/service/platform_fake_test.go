package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tg-groupguard/internal/storage"
)

type roleCall struct {
	GroupID int64
	UserID  int64
}

type resolveCall struct {
	GroupID int64
	UserID  int64
	Approve bool
	Reason  string
}

// fakePlatform is a scriptable collaborator for service tests
type fakePlatform struct {
	mu sync.Mutex

	role    string
	roleErr error

	member    bool
	memberErr error

	removeErr error

	roleCalls    []roleCall
	memberCalls  []roleCall
	removeCalls  []roleCall
	resolveCalls []resolveCall
}

func (f *fakePlatform) GetRole(ctx context.Context, groupID, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roleCalls = append(f.roleCalls, roleCall{groupID, userID})
	return f.role, f.roleErr
}

func (f *fakePlatform) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memberCalls = append(f.memberCalls, roleCall{groupID, userID})
	return f.member, f.memberErr
}

func (f *fakePlatform) RemoveMember(ctx context.Context, groupID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls = append(f.removeCalls, roleCall{groupID, userID})
	return f.removeErr
}

func (f *fakePlatform) ResolveJoinRequest(ctx context.Context, groupID, userID int64, approve bool, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolveCalls = append(f.resolveCalls, resolveCall{groupID, userID, approve, reason})
	return nil
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	store := storage.NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}
