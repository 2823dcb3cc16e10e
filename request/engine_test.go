package request

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputePriorityScore(t *testing.T) {
	now := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		types    []string
		purpose  string
		updated  time.Time
		expected int
	}{
		{
			name:     "business permit with urgency keyword and two days waiting",
			types:    []string{"Business Permit"},
			purpose:  "Medical mission permit",
			updated:  now.AddDate(0, 0, -2),
			expected: 4 + 5 + 2,
		},
		{
			name:     "clearance just submitted",
			types:    []string{"Barangay Clearance"},
			purpose:  "employment",
			updated:  now,
			expected: 1,
		},
		{
			name:     "unknown type gets default weight",
			types:    []string{"Oath of Undertaking"},
			purpose:  "school",
			updated:  now,
			expected: 2,
		},
		{
			name:     "multiple types sum their weights",
			types:    []string{"Barangay Clearance", "Certificate of Indigency"},
			purpose:  "scholarship",
			updated:  now,
			expected: 1 + 3,
		},
		{
			name:     "urgency bonus applies once even with two keywords",
			types:    []string{"Certificate of Residency"},
			purpose:  "Urgent Medical needs",
			updated:  now,
			expected: 2 + 5,
		},
		{
			name:     "keyword match is case sensitive",
			types:    []string{"Certificate of Residency"},
			purpose:  "urgent medical needs",
			updated:  now,
			expected: 2,
		},
		{
			name:     "age bonus capped at ten days",
			types:    []string{"Barangay Clearance"},
			purpose:  "employment",
			updated:  now.AddDate(0, 0, -45),
			expected: 1 + 10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := &DocumentRequest{
				DocumentTypes: tc.types,
				Purpose:       tc.purpose,
				CreatedAt:     tc.updated,
				UpdatedAt:     tc.updated,
			}
			if got := ComputePriorityScore(req, now); got != tc.expected {
				t.Errorf("expected score %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestEstimateCompletion(t *testing.T) {
	tests := []struct {
		name     string
		types    []string
		created  time.Time
		expected time.Time
	}{
		{
			name:     "clearance on monday is due tuesday",
			types:    []string{"Barangay Clearance"},
			created:  date(2026, time.March, 9),
			expected: date(2026, time.March, 10),
		},
		{
			name:     "indigency filed friday rolls over the weekend to monday",
			types:    []string{"Certificate of Indigency"},
			created:  date(2026, time.March, 13),
			expected: date(2026, time.March, 16),
		},
		{
			name:     "slowest type in the set wins",
			types:    []string{"Barangay Clearance", "Business Permit"},
			created:  date(2026, time.March, 9),
			expected: date(2026, time.March, 12),
		},
		{
			name:     "unknown type defaults to two days",
			types:    []string{"Oath of Undertaking"},
			created:  date(2026, time.March, 9),
			expected: date(2026, time.March, 11),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := &DocumentRequest{DocumentTypes: tc.types, CreatedAt: tc.created}
			got := EstimateCompletion(req, tc.created)
			if !got.Equal(tc.expected) {
				t.Errorf("expected %s, got %s", tc.expected.Format("2006-01-02"), got.Format("2006-01-02"))
			}
			if got.Weekday() == time.Saturday || got.Weekday() == time.Sunday {
				t.Errorf("estimate landed on a weekend: %s", got.Weekday())
			}
		})
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	// Monday through the following Sunday: five working days.
	start := date(2026, time.March, 9)
	end := date(2026, time.March, 15)

	slots := GenerateTimeSlots(start, end)

	if len(slots) != 40 {
		t.Fatalf("expected 40 slots for five working days, got %d", len(slots))
	}

	seen := map[string]bool{}
	for _, slot := range slots {
		if wd := slot.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("slot generated on %s", wd)
		}
		if slot.Time == "12:00" {
			t.Error("slot generated during the noon break")
		}
		if !slot.IsAvailable {
			t.Errorf("slot %s %s should start available", slot.Date.Format("2006-01-02"), slot.Time)
		}
		key := slot.Date.Format("2006-01-02") + " " + slot.Time
		if seen[key] {
			t.Errorf("duplicate slot %s", key)
		}
		seen[key] = true
	}
}

func TestGenerateTimeSlotsWeekendOnly(t *testing.T) {
	slots := GenerateTimeSlots(date(2026, time.March, 14), date(2026, time.March, 15))
	if len(slots) != 0 {
		t.Errorf("expected no slots over a weekend, got %d", len(slots))
	}
}

func TestShouldBeExpiredScheduledPickup(t *testing.T) {
	claimDate := date(2026, time.March, 10)
	slot := "14:00"

	req := &DocumentRequest{
		Status:             StatusScheduledForPickup,
		ScheduledClaimDate: &claimDate,
		ScheduledClaimTime: &slot,
	}

	before := time.Date(2026, time.March, 10, 13, 59, 0, 0, time.UTC)
	after := time.Date(2026, time.March, 10, 14, 1, 0, 0, time.UTC)

	if ShouldBeExpired(req, before) {
		t.Error("request expired before its slot time")
	}
	if !ShouldBeExpired(req, after) {
		t.Error("request not expired after its slot time")
	}
}

func TestShouldBeExpiredScheduledPickupWithoutTime(t *testing.T) {
	claimDate := date(2026, time.March, 10)
	req := &DocumentRequest{
		Status:             StatusScheduledForPickup,
		ScheduledClaimDate: &claimDate,
	}

	// No slot time means the deadline is midnight at the start of the day.
	if ShouldBeExpired(req, time.Date(2026, time.March, 9, 23, 0, 0, 0, time.UTC)) {
		t.Error("expired before midnight of the claim date")
	}
	if !ShouldBeExpired(req, time.Date(2026, time.March, 10, 0, 1, 0, 0, time.UTC)) {
		t.Error("not expired after midnight of the claim date")
	}
}

func TestShouldBeExpiredReadyToClaim(t *testing.T) {
	start := date(2026, time.March, 9)
	end := date(2026, time.March, 13)

	req := &DocumentRequest{
		Status:       StatusReadyToClaim,
		PickupPeriod: &PickupPeriod{StartDate: &start, EndDate: &end},
	}

	lastEvening := time.Date(2026, time.March, 13, 23, 0, 0, 0, time.UTC)
	dayAfter := time.Date(2026, time.March, 14, 0, 0, 1, 0, time.UTC)

	if ShouldBeExpired(req, lastEvening) {
		t.Error("request expired while the pickup window was still open")
	}
	if !ShouldBeExpired(req, dayAfter) {
		t.Error("request not expired after the window ended")
	}
}

func TestShouldBeExpiredMissingData(t *testing.T) {
	if ShouldBeExpired(&DocumentRequest{Status: StatusScheduledForPickup}, time.Now()) {
		t.Error("scheduled request without a claim date should not expire")
	}
	if ShouldBeExpired(&DocumentRequest{Status: StatusReadyToClaim}, time.Now()) {
		t.Error("ready request without a pickup period should not expire")
	}
	if ShouldBeExpired(&DocumentRequest{Status: StatusPending}, time.Now()) {
		t.Error("pending requests never expire")
	}
}

func TestShouldBeArchived(t *testing.T) {
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    Status
		isExpired bool
		expiredAt time.Time
		expected  bool
	}{
		{"seven full days after expiration", StatusExpired, true, now.Add(-7 * 24 * time.Hour), true},
		{"just short of seven days", StatusExpired, true, now.Add(-7*24*time.Hour + time.Minute), false},
		{"well past the grace period", StatusExpired, true, now.AddDate(0, 0, -30), true},
		{"not flagged expired", StatusExpired, false, now.AddDate(0, 0, -30), false},
		{"wrong status", StatusClaimed, true, now.AddDate(0, 0, -30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expiredAt := tc.expiredAt
			req := &DocumentRequest{
				Status:         tc.status,
				IsExpired:      tc.isExpired,
				ExpirationDate: &expiredAt,
				UpdatedAt:      expiredAt,
			}
			if got := ShouldBeArchived(req, now); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestAutoArchiveDate(t *testing.T) {
	now := date(2026, time.March, 9)
	got := AutoArchiveDate(now)
	if !got.Equal(date(2026, time.April, 8)) {
		t.Errorf("expected 2026-04-08, got %s", got.Format("2006-01-02"))
	}
}
