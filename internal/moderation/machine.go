// Package moderation holds the pure decision logic for warning
// escalation and denylist transitions. It performs no I/O; the service
// layer drives the store and the platform from its decisions.
package moderation

// DefaultWarnThreshold is the cumulative warning count that escalates
// to exclusion when no threshold is configured
const DefaultWarnThreshold = 2

// Reasons recorded on denylist entries
const (
	ReasonWarnEscalation = "two cumulative local warnings"
	ReasonAdminBan       = "admin immediate ban"
	ReasonVoluntaryLeave = "voluntary departure"
	ReasonManualAdd      = "manual add"
)

// RejectReasonDenylisted is reported to the platform when a join
// request is declined
const RejectReasonDenylisted = "denylisted user"

// WarnOutcome is the decision for a single warn trigger
type WarnOutcome struct {
	// Count is the warning count after the trigger
	Count int
	// Escalate is true when the count reached the threshold: the pair
	// transitions to Excluded and the warn record is cleared
	Escalate bool
	// Reason is set when Escalate is true
	Reason string
}

// Machine evaluates moderation state transitions
type Machine struct {
	threshold int
}

// NewMachine creates a machine with the given escalation threshold.
// Non-positive thresholds fall back to the default.
func NewMachine(threshold int) *Machine {
	if threshold <= 0 {
		threshold = DefaultWarnThreshold
	}
	return &Machine{threshold: threshold}
}

// Threshold returns the configured escalation threshold
func (m *Machine) Threshold() int {
	return m.threshold
}

// OnWarn decides the transition for a warn trigger given the count
// after the atomic increment
func (m *Machine) OnWarn(newCount int) WarnOutcome {
	if newCount >= m.threshold {
		return WarnOutcome{Count: newCount, Escalate: true, Reason: ReasonWarnEscalation}
	}
	return WarnOutcome{Count: newCount}
}
