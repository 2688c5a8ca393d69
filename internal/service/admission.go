package service

import (
	"tg-groupguard/internal/moderation"
	"tg-groupguard/internal/storage"
)

// Decision is the admission gate's verdict for a join request
type Decision struct {
	Approve bool
	// Reason is set when the request is rejected
	Reason string
}

// AdmissionGate evaluates join requests against the denylist. It only
// reads; the platform adapter performs the actual accept/reject action.
type AdmissionGate struct {
	store *storage.Store
}

// NewAdmissionGate creates an AdmissionGate
func NewAdmissionGate(store *storage.Store) *AdmissionGate {
	return &AdmissionGate{store: store}
}

// Decide returns Reject iff the (group, user) pair is denylisted at call
// time, Approve otherwise. No state is mutated in either branch.
func (g *AdmissionGate) Decide(groupID, userID int64) (Decision, error) {
	denylisted, err := g.store.Denylist.IsDenylisted(groupID, userID)
	if err != nil {
		return Decision{}, &StoreError{Op: "check denylist", Err: err}
	}

	if denylisted {
		return Decision{Approve: false, Reason: moderation.RejectReasonDenylisted}, nil
	}
	return Decision{Approve: true}, nil
}
