package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tg-groupguard/internal/models"
	"tg-groupguard/internal/moderation"
	"tg-groupguard/internal/service"
)

func TestDecideApprovesUnknownUser(t *testing.T) {
	store := newTestStore(t)
	gate := service.NewAdmissionGate(store)

	decision, err := gate.Decide(100, 200)
	require.NoError(t, err)
	require.True(t, decision.Approve)
	require.Empty(t, decision.Reason)
}

func TestDecideRejectsDenylistedUser(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Exclude(100, 200, "spam", "1"))
	gate := service.NewAdmissionGate(store)

	decision, err := gate.Decide(100, 200)
	require.NoError(t, err)
	require.False(t, decision.Approve)
	require.Equal(t, moderation.RejectReasonDenylisted, decision.Reason)

	// The gate only reads; a removal flips the verdict back
	require.NoError(t, store.Denylist.Remove(100, 200))
	decision, err = gate.Decide(100, 200)
	require.NoError(t, err)
	require.True(t, decision.Approve)
}

func TestDecideIsGroupScoped(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Exclude(100, 200, "spam", "1"))
	gate := service.NewAdmissionGate(store)

	decision, err := gate.Decide(999, 200)
	require.NoError(t, err)
	require.True(t, decision.Approve)
}

func TestHandleJoinRequestDeclinesDenylisted(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Exclude(100, 200, "spam", "1"))

	fake := &fakePlatform{}
	svcs := &service.Services{
		Moderator:  service.NewModerator(store, fake, moderation.NewMachine(2)),
		Gate:       service.NewAdmissionGate(store),
		Authorizer: service.NewAuthorizer(fake, models.NewAdminCache(10)),
		Platform:   fake,
	}

	decision, err := svcs.HandleJoinRequest(context.Background(), 100, 200)
	require.NoError(t, err)
	require.False(t, decision.Approve)

	require.Len(t, fake.resolveCalls, 1)
	call := fake.resolveCalls[0]
	require.Equal(t, int64(100), call.GroupID)
	require.Equal(t, int64(200), call.UserID)
	require.False(t, call.Approve)
	require.Equal(t, moderation.RejectReasonDenylisted, call.Reason)
}

func TestHandleJoinRequestApprovalIsAdvisory(t *testing.T) {
	store := newTestStore(t)
	fake := &fakePlatform{}
	svcs := &service.Services{
		Moderator:  service.NewModerator(store, fake, moderation.NewMachine(2)),
		Gate:       service.NewAdmissionGate(store),
		Authorizer: service.NewAuthorizer(fake, models.NewAdminCache(10)),
		Platform:   fake,
	}

	decision, err := svcs.HandleJoinRequest(context.Background(), 100, 200)
	require.NoError(t, err)
	require.True(t, decision.Approve)

	// Approvals are left to the group's normal admission flow
	require.Empty(t, fake.resolveCalls)
}
