// Package platform wraps the messaging-platform calls the moderation
// core depends on. The core only sees the Client interface; tests use a
// fake, production uses the telego implementation.
package platform

import "context"

// Roles returned by GetRole
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Client is the collaborator surface consumed by the core
type Client interface {
	// GetRole returns the user's role in the group
	GetRole(ctx context.Context, groupID, userID int64) (string, error)

	// IsMember reports whether the user is currently in the group
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)

	// RemoveMember kicks the user out of the group without a platform ban
	RemoveMember(ctx context.Context, groupID, userID int64) error

	// ResolveJoinRequest approves or declines a pending join request
	ResolveJoinRequest(ctx context.Context, groupID, userID int64, approve bool, reason string) error
}
