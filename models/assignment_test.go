package models

import "testing"

func TestAssignmentStatusTransitions(t *testing.T) {
	all := []AssignmentStatus{AssignmentPending, AssignmentAccepted, AssignmentCompleted, AssignmentRejected}

	allowed := map[AssignmentStatus]map[AssignmentStatus]bool{
		AssignmentPending:  {AssignmentAccepted: true, AssignmentRejected: true},
		AssignmentAccepted: {AssignmentCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := allowed[from][to]
			if got != want {
				t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestAssignmentStatusNoSelfLoops(t *testing.T) {
	for _, s := range []AssignmentStatus{AssignmentPending, AssignmentAccepted, AssignmentCompleted, AssignmentRejected} {
		if s.CanTransitionTo(s) {
			t.Errorf("%s should not transition to itself", s)
		}
	}
}

func TestAssignmentTerminalStates(t *testing.T) {
	targets := []AssignmentStatus{AssignmentPending, AssignmentAccepted, AssignmentCompleted, AssignmentRejected}

	for _, terminal := range []AssignmentStatus{AssignmentCompleted, AssignmentRejected} {
		for _, to := range targets {
			if terminal.CanTransitionTo(to) {
				t.Errorf("%s is terminal but transitions to %s", terminal, to)
			}
		}
	}
}

func TestAssignmentStatusValid(t *testing.T) {
	for _, s := range []AssignmentStatus{AssignmentPending, AssignmentAccepted, AssignmentCompleted, AssignmentRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []AssignmentStatus{"", "done", "Pending"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
