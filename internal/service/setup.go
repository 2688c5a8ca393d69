package service

import (
	"context"
	"fmt"

	"tg-groupguard/internal/config"
	"tg-groupguard/internal/logger"
	"tg-groupguard/internal/models"
	"tg-groupguard/internal/moderation"
	"tg-groupguard/internal/platform"
	"tg-groupguard/internal/storage"

	"gorm.io/gorm"
)

// Services bundles the moderation core for the handler layer
type Services struct {
	Moderator  *Moderator
	Gate       *AdmissionGate
	Authorizer *Authorizer
	Platform   platform.Client
}

// NewServices migrates the store tables and wires the core services
func NewServices(db *gorm.DB, client platform.Client, cfg *config.Config) (*Services, error) {
	store := storage.NewStore(db)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate store tables: %w", err)
	}

	machine := moderation.NewMachine(cfg.Moderation.WarnThreshold)
	cache := models.NewAdminCache(cfg.Moderation.AdminCacheMinutes)

	return &Services{
		Moderator:  NewModerator(store, client, machine),
		Gate:       NewAdmissionGate(store),
		Authorizer: NewAuthorizer(client, cache),
		Platform:   client,
	}, nil
}

// HandleJoinRequest gates an admission request and executes a rejection
// through the platform. The gate's approval is advisory: non-denylisted
// requests are left to the group's normal admission flow. A failed
// resolution never rolls back the decision; the denylist entry keeps
// gating future requests.
func (s *Services) HandleJoinRequest(ctx context.Context, groupID, userID int64) (Decision, error) {
	decision, err := s.Gate.Decide(groupID, userID)
	if err != nil {
		return Decision{}, err
	}

	if !decision.Approve {
		if err := s.Platform.ResolveJoinRequest(ctx, groupID, userID, false, decision.Reason); err != nil {
			logger.Errorf("Error declining join request for user %d in group %d: %v", userID, groupID, err)
		}
	}

	return decision, nil
}
