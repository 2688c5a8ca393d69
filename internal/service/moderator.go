package service

import (
	"context"
	"strconv"

	"tg-groupguard/internal/logger"
	"tg-groupguard/internal/models"
	"tg-groupguard/internal/moderation"
	"tg-groupguard/internal/platform"
	"tg-groupguard/internal/storage"
)

// ResultKind classifies the per-target outcome of a moderation action
type ResultKind int

const (
	// ResultWarned means the warning count increased below the threshold
	ResultWarned ResultKind = iota
	// ResultExcluded means the user was denylisted and removed
	ResultExcluded
	// ResultExcludedKickFailed means the user was denylisted but the
	// removal action failed; stored state is final either way
	ResultExcludedKickFailed
	// ResultExcludedNotMember means the user was denylisted and removal
	// was skipped because they are not in the group
	ResultExcludedNotMember
	// ResultAddedNoKick means a denylist-only addition (removal suppressed)
	ResultAddedNoKick
	// ResultRemoved means the user was taken off the denylist
	ResultRemoved
	// ResultFailed means a store failure prevented the action
	ResultFailed
)

// Result is the outcome of one moderation action for one target
type Result struct {
	UserID int64
	Kind   ResultKind
	// Count is the warning count after a warn action
	Count int
	Err   error
}

// Moderator coordinates the moderation state machine with the store and
// the platform collaborator. Store mutations always happen before the
// removal attempt and are never rolled back when the removal fails.
type Moderator struct {
	store    *storage.Store
	platform platform.Client
	machine  *moderation.Machine
}

// NewModerator creates a Moderator
func NewModerator(store *storage.Store, client platform.Client, machine *moderation.Machine) *Moderator {
	return &Moderator{store: store, platform: client, machine: machine}
}

// Threshold returns the escalation threshold in effect
func (m *Moderator) Threshold() int {
	return m.machine.Threshold()
}

// Warn increments the warning count for each target and escalates to
// exclusion when the threshold is reached
func (m *Moderator) Warn(ctx context.Context, groupID, actorID int64, targets []int64) ([]Result, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	actor := strconv.FormatInt(actorID, 10)
	results := make([]Result, 0, len(targets))
	for _, userID := range targets {
		count, err := m.store.Warns.Increment(groupID, userID)
		if err != nil {
			logger.Errorf("Error incrementing warning for user %d in group %d: %v", userID, groupID, err)
			results = append(results, Result{UserID: userID, Kind: ResultFailed, Err: &StoreError{Op: "increment warn", Err: err}})
			continue
		}

		outcome := m.machine.OnWarn(count)
		if !outcome.Escalate {
			results = append(results, Result{UserID: userID, Kind: ResultWarned, Count: count})
			continue
		}

		if err := m.store.Exclude(groupID, userID, outcome.Reason, actor); err != nil {
			logger.Errorf("Error excluding user %d in group %d: %v", userID, groupID, err)
			results = append(results, Result{UserID: userID, Kind: ResultFailed, Count: count, Err: &StoreError{Op: "exclude", Err: err}})
			continue
		}

		result := m.attemptRemoval(ctx, groupID, userID)
		result.Count = count
		results = append(results, result)
	}
	return results, nil
}

// Ban excludes each target immediately, bypassing the warning threshold
func (m *Moderator) Ban(ctx context.Context, groupID, actorID int64, targets []int64) ([]Result, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	actor := strconv.FormatInt(actorID, 10)
	results := make([]Result, 0, len(targets))
	for _, userID := range targets {
		if err := m.store.Exclude(groupID, userID, moderation.ReasonAdminBan, actor); err != nil {
			logger.Errorf("Error excluding user %d in group %d: %v", userID, groupID, err)
			results = append(results, Result{UserID: userID, Kind: ResultFailed, Err: &StoreError{Op: "exclude", Err: err}})
			continue
		}

		results = append(results, m.attemptRemoval(ctx, groupID, userID))
	}
	return results, nil
}

// ManualAdd puts each target on the denylist. With suppressRemoval the
// kick is skipped entirely.
func (m *Moderator) ManualAdd(ctx context.Context, groupID, actorID int64, targets []int64, reason string, suppressRemoval bool) ([]Result, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	if reason == "" {
		reason = moderation.ReasonManualAdd
	}
	actor := strconv.FormatInt(actorID, 10)
	results := make([]Result, 0, len(targets))
	for _, userID := range targets {
		if err := m.store.Exclude(groupID, userID, reason, actor); err != nil {
			logger.Errorf("Error excluding user %d in group %d: %v", userID, groupID, err)
			results = append(results, Result{UserID: userID, Kind: ResultFailed, Err: &StoreError{Op: "exclude", Err: err}})
			continue
		}

		if suppressRemoval {
			results = append(results, Result{UserID: userID, Kind: ResultAddedNoKick})
			continue
		}

		results = append(results, m.attemptRemoval(ctx, groupID, userID))
	}
	return results, nil
}

// ManualRemove takes each target off the denylist. Prior warning counts
// are not resurrected; they were cleared on exclusion.
func (m *Moderator) ManualRemove(ctx context.Context, groupID, actorID int64, targets []int64) ([]Result, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	results := make([]Result, 0, len(targets))
	for _, userID := range targets {
		if err := m.store.Denylist.Remove(groupID, userID); err != nil {
			logger.Errorf("Error removing user %d from denylist in group %d: %v", userID, groupID, err)
			results = append(results, Result{UserID: userID, Kind: ResultFailed, Err: &StoreError{Op: "remove denylist", Err: err}})
			continue
		}

		results = append(results, Result{UserID: userID, Kind: ResultRemoved})
	}
	return results, nil
}

// RecordDeparture denylists a user who left the group voluntarily. The
// transition is idempotent: an already-excluded pair keeps its original
// entry untouched and added is false.
func (m *Moderator) RecordDeparture(groupID, userID int64) (added bool, err error) {
	denylisted, err := m.store.Denylist.IsDenylisted(groupID, userID)
	if err != nil {
		return false, &StoreError{Op: "check denylist", Err: err}
	}
	if denylisted {
		return false, nil
	}

	if err := m.store.Exclude(groupID, userID, moderation.ReasonVoluntaryLeave, models.SystemIdentity); err != nil {
		return false, &StoreError{Op: "exclude", Err: err}
	}
	return true, nil
}

// ListDenylist returns the group's denylist, most recent first
func (m *Moderator) ListDenylist(groupID int64) ([]models.DenylistEntry, error) {
	entries, err := m.store.Denylist.ListByGroup(groupID)
	if err != nil {
		return nil, &StoreError{Op: "list denylist", Err: err}
	}
	return entries, nil
}

// attemptRemoval kicks an already-excluded user. Membership is checked
// first so a user who already left is reported as not applicable rather
// than as a successful removal.
func (m *Moderator) attemptRemoval(ctx context.Context, groupID, userID int64) Result {
	isMember, err := m.platform.IsMember(ctx, groupID, userID)
	if err != nil {
		// Unknown membership counts as not a member: skip the kick, the
		// denylist entry already guards future admission
		logger.Warningf("Error checking membership of user %d in group %d: %v", userID, groupID, err)
		return Result{UserID: userID, Kind: ResultExcludedNotMember, Err: &CollaboratorError{Op: "is member", Err: err}}
	}
	if !isMember {
		return Result{UserID: userID, Kind: ResultExcludedNotMember}
	}

	if err := m.platform.RemoveMember(ctx, groupID, userID); err != nil {
		logger.Warningf("Error removing user %d from group %d: %v", userID, groupID, err)
		return Result{UserID: userID, Kind: ResultExcludedKickFailed, Err: &CollaboratorError{Op: "remove member", Err: err}}
	}

	return Result{UserID: userID, Kind: ResultExcluded}
}
