package blotter

import (
	"math"
	"time"
)

const (
	maxMeetings      = 3
	overdueAfterDays = 7
)

// CanScheduleNextMeeting is true while mediation is active and the case
// has not exhausted its three meetings.
func CanScheduleNextMeeting(c *Case) bool {
	return c.CurrentMeeting < maxMeetings && c.Status == StatusUnderInvestigation
}

// IsReadyForCFA is true once all three meetings are spent, the case is
// still under investigation, and no CFA has been issued yet.
func IsReadyForCFA(c *Case) bool {
	return c.CurrentMeeting >= maxMeetings && c.Status == StatusUnderInvestigation && !c.CFAIssued
}

// AgeInDays rounds the distance between now and the report date up to
// whole days.
func AgeInDays(now, dateReported time.Time) int {
	diff := now.Sub(dateReported)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// IsOverdue flags unresolved cases older than a week.
func IsOverdue(c *Case, now time.Time) bool {
	if c.Status != StatusPending && c.Status != StatusUnderInvestigation {
		return false
	}
	return AgeInDays(now, c.DateReported) > overdueAfterDays
}

// ConsecutiveFailedContacts counts the failed attempts at the tail of the
// contact history. A successful attempt resets the streak.
func ConsecutiveFailedContacts(c *Case) int {
	count := 0
	for i := len(c.ContactHistory) - 1; i >= 0; i-- {
		if c.ContactHistory[i].Successful {
			break
		}
		count++
	}
	return count
}
