package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tg-groupguard/internal/models"
	"tg-groupguard/internal/platform"
	"tg-groupguard/internal/service"
)

func newAuthorizer(fake *fakePlatform) *service.Authorizer {
	return service.NewAuthorizer(fake, models.NewAdminCache(10))
}

func TestIsAuthorizedLocalHint(t *testing.T) {
	fake := &fakePlatform{role: platform.RoleMember}
	auth := newAuthorizer(fake)

	require.True(t, auth.IsAuthorized(context.Background(), 100, 1, true))
	// The hint short-circuits the role lookup
	require.Empty(t, fake.roleCalls)
}

func TestIsAuthorizedAdminAndOwner(t *testing.T) {
	for _, role := range []string{platform.RoleAdmin, platform.RoleOwner} {
		fake := &fakePlatform{role: role}
		auth := newAuthorizer(fake)

		require.True(t, auth.IsAuthorized(context.Background(), 100, 1, false), "role %s", role)
	}
}

func TestIsAuthorizedDeniesMember(t *testing.T) {
	fake := &fakePlatform{role: platform.RoleMember}
	auth := newAuthorizer(fake)

	require.False(t, auth.IsAuthorized(context.Background(), 100, 1, false))
}

func TestIsAuthorizedDeniesOnLookupError(t *testing.T) {
	fake := &fakePlatform{roleErr: errors.New("timeout")}
	auth := newAuthorizer(fake)

	require.False(t, auth.IsAuthorized(context.Background(), 100, 1, false))
}

func TestIsAuthorizedCachesConfirmedAdmin(t *testing.T) {
	fake := &fakePlatform{role: platform.RoleAdmin}
	auth := newAuthorizer(fake)

	require.True(t, auth.IsAuthorized(context.Background(), 100, 1, false))
	require.True(t, auth.IsAuthorized(context.Background(), 100, 1, false))
	require.Len(t, fake.roleCalls, 1)
}

func TestIsAuthorizedDoesNotCacheDenial(t *testing.T) {
	fake := &fakePlatform{role: platform.RoleMember}
	auth := newAuthorizer(fake)

	require.False(t, auth.IsAuthorized(context.Background(), 100, 1, false))
	require.False(t, auth.IsAuthorized(context.Background(), 100, 1, false))
	// A non-admin is re-checked every time in case of promotion
	require.Len(t, fake.roleCalls, 2)
}
