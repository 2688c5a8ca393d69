package moderation

import "testing"

func TestOnWarnBelowThreshold(t *testing.T) {
	m := NewMachine(2)

	outcome := m.OnWarn(1)
	if outcome.Escalate {
		t.Errorf("OnWarn(1) escalated below threshold")
	}
	if outcome.Count != 1 {
		t.Errorf("OnWarn(1) count = %d, want 1", outcome.Count)
	}
}

func TestOnWarnEscalatesAtThreshold(t *testing.T) {
	m := NewMachine(2)

	outcome := m.OnWarn(2)
	if !outcome.Escalate {
		t.Fatal("OnWarn(2) did not escalate at threshold")
	}
	if outcome.Reason != ReasonWarnEscalation {
		t.Errorf("OnWarn(2) reason = %q, want %q", outcome.Reason, ReasonWarnEscalation)
	}
}

func TestOnWarnEscalatesAboveThreshold(t *testing.T) {
	m := NewMachine(2)

	if !m.OnWarn(5).Escalate {
		t.Error("OnWarn(5) did not escalate above threshold")
	}
}

func TestNewMachineDefaultThreshold(t *testing.T) {
	testCases := []int{0, -1, -100}

	for _, threshold := range testCases {
		m := NewMachine(threshold)
		if m.Threshold() != DefaultWarnThreshold {
			t.Errorf("NewMachine(%d).Threshold() = %d, want %d", threshold, m.Threshold(), DefaultWarnThreshold)
		}
	}
}

func TestNewMachineCustomThreshold(t *testing.T) {
	m := NewMachine(3)

	if m.OnWarn(2).Escalate {
		t.Error("OnWarn(2) escalated with threshold 3")
	}
	if !m.OnWarn(3).Escalate {
		t.Error("OnWarn(3) did not escalate with threshold 3")
	}
}
