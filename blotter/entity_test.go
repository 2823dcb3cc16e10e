package blotter

import "testing"

func TestStatusValid(t *testing.T) {
	valid := []Status{
		StatusPending,
		StatusUnderInvestigation,
		StatusResolved,
		StatusDismissed,
		StatusEscalated,
		StatusCFAIssued,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be a valid status", s)
		}
	}

	if Status("Closed").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []Status{StatusResolved, StatusDismissed, StatusEscalated}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("expected %q to be terminal", s)
		}
	}

	// CFA Issued is never assigned to a case, so it must not read as a
	// closed state either.
	open := []Status{StatusPending, StatusUnderInvestigation, StatusCFAIssued}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("expected %q to be non-terminal", s)
		}
	}
}
