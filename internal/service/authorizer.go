package service

import (
	"context"

	"tg-groupguard/internal/logger"
	"tg-groupguard/internal/models"
	"tg-groupguard/internal/platform"
)

// Authorizer decides whether an acting identity may issue moderation
// commands in a group. A fast local signal is trusted first; otherwise
// the platform is queried for the actor's role. Any failure resolves to
// a denial, never an error.
type Authorizer struct {
	platform platform.Client
	cache    *models.AdminCache
}

// NewAuthorizer creates an Authorizer with the given role cache
func NewAuthorizer(client platform.Client, cache *models.AdminCache) *Authorizer {
	return &Authorizer{platform: client, cache: cache}
}

// IsAuthorized reports whether the actor may moderate the group.
// localHint is true when the inbound event already marks the actor as an
// administrator (e.g. an anonymous group admin posting as the group).
func (a *Authorizer) IsAuthorized(ctx context.Context, groupID, actorID int64, localHint bool) bool {
	if localHint {
		a.cache.Add(groupID, actorID)
		return true
	}

	if a.cache.Contains(groupID, actorID) {
		return true
	}

	role, err := a.platform.GetRole(ctx, groupID, actorID)
	if err != nil {
		// Deny by default
		logger.Warningf("Error resolving role of user %d in group %d: %v", actorID, groupID, err)
		return false
	}

	if role == platform.RoleAdmin || role == platform.RoleOwner {
		a.cache.Add(groupID, actorID)
		return true
	}
	return false
}
