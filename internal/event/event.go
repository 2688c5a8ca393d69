// Package event defines the closed set of inbound events the moderation
// core consumes. The handler layer classifies raw platform updates into
// these variants; anything it cannot classify is dropped at the boundary.
package event

// Event is implemented by all inbound event variants
type Event interface {
	isEvent()
}

// Warn is an operator command warning one or more users
type Warn struct {
	GroupID int64
	ActorID int64
	Targets []int64
}

// Ban is an operator command kicking and denylisting users immediately
type Ban struct {
	GroupID int64
	ActorID int64
	Targets []int64
}

// ManualAdd is an operator command adding users to the denylist directly
type ManualAdd struct {
	GroupID int64
	ActorID int64
	Targets []int64
	Reason  string
	// SuppressRemoval adds the denylist entry without attempting a kick
	SuppressRemoval bool
}

// ManualRemove is an operator command removing users from the denylist
type ManualRemove struct {
	GroupID int64
	ActorID int64
	Targets []int64
}

// ListDenylist asks for the group's denylist
type ListDenylist struct {
	GroupID int64
}

// JoinRequest is an inbound request by a user to join a group
type JoinRequest struct {
	GroupID int64
	UserID  int64
}

// MemberLeft signals a user left a group voluntarily
type MemberLeft struct {
	GroupID int64
	UserID  int64
}

func (Warn) isEvent()         {}
func (Ban) isEvent()          {}
func (ManualAdd) isEvent()    {}
func (ManualRemove) isEvent() {}
func (ListDenylist) isEvent() {}
func (JoinRequest) isEvent()  {}
func (MemberLeft) isEvent()   {}
