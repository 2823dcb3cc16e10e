package blotter

import (
	"testing"
	"time"
)

func TestCanScheduleNextMeeting(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		current  int
		expected bool
	}{
		{"fresh investigation", StatusUnderInvestigation, 0, true},
		{"two meetings held", StatusUnderInvestigation, 2, true},
		{"all meetings spent", StatusUnderInvestigation, 3, false},
		{"still pending", StatusPending, 0, false},
		{"already resolved", StatusResolved, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Case{Status: tc.status, CurrentMeeting: tc.current}
			if got := CanScheduleNextMeeting(c); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestIsReadyForCFA(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		current   int
		cfaIssued bool
		expected  bool
	}{
		{"eligible", StatusUnderInvestigation, 3, false, true},
		{"meetings remaining", StatusUnderInvestigation, 2, false, false},
		{"already issued", StatusUnderInvestigation, 3, true, false},
		{"wrong status", StatusPending, 3, false, false},
		{"escalated", StatusEscalated, 3, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Case{Status: tc.status, CurrentMeeting: tc.current, CFAIssued: tc.cfaIssued}
			if got := IsReadyForCFA(c); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestAgeInDays(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		reported time.Time
		expected int
	}{
		{"same instant", now, 0},
		{"one hour rounds up", now.Add(-time.Hour), 1},
		{"exactly one day", now.Add(-24 * time.Hour), 1},
		{"just over a day", now.Add(-25 * time.Hour), 2},
		{"a week", now.Add(-7 * 24 * time.Hour), 7},
		{"future date uses absolute distance", now.Add(30 * time.Hour), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeInDays(now, tc.reported); got != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   Status
		reported time.Time
		expected bool
	}{
		{"pending past a week", StatusPending, now.Add(-8 * 24 * time.Hour), true},
		{"investigating past a week", StatusUnderInvestigation, now.Add(-8 * 24 * time.Hour), true},
		{"pending at exactly seven days", StatusPending, now.Add(-7 * 24 * time.Hour), false},
		{"pending just past seven days", StatusPending, now.Add(-7*24*time.Hour - time.Hour), true},
		{"resolved cases never overdue", StatusResolved, now.Add(-30 * 24 * time.Hour), false},
		{"escalated cases never overdue", StatusEscalated, now.Add(-30 * 24 * time.Hour), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Case{Status: tc.status, DateReported: tc.reported}
			if got := IsOverdue(c, now); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestConsecutiveFailedContacts(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		history  ContactHistory
		expected int
	}{
		{"no attempts", ContactHistory{}, 0},
		{
			"all failed",
			ContactHistory{
				{Date: now, Method: "phone", Successful: false},
				{Date: now, Method: "visit", Successful: false},
				{Date: now, Method: "phone", Successful: false},
			},
			3,
		},
		{
			"success resets the streak",
			ContactHistory{
				{Date: now, Method: "phone", Successful: false},
				{Date: now, Method: "visit", Successful: true},
				{Date: now, Method: "phone", Successful: false},
			},
			1,
		},
		{
			"latest attempt succeeded",
			ContactHistory{
				{Date: now, Method: "phone", Successful: false},
				{Date: now, Method: "visit", Successful: true},
			},
			0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Case{ContactHistory: tc.history}
			if got := ConsecutiveFailedContacts(c); got != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}
