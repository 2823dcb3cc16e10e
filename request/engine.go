package request

import (
	"strconv"
	"strings"
	"time"
)

// Per-type urgency weights; lower numbers mean higher urgency in the
// office's scheme. Unrecognized document types weigh 2.
var priorityWeights = map[string]int{
	"Barangay Clearance":       1,
	"Certificate of Residency": 2,
	"Certificate of Indigency": 3,
	"Business Permit":          4,
}

// Working days the office needs per document type. Unrecognized types
// get 2 days.
var processingDays = map[string]int{
	"Barangay Clearance":       1,
	"Certificate of Residency": 1,
	"Certificate of Indigency": 2,
	"Business Permit":          3,
}

// Matched case-sensitively against the stated purpose.
var urgencyKeywords = []string{"Emergency", "Medical", "Urgent"}

// Office hours: hourly slots 08:00-16:00, skipping the noon break.
var pickupTimes = []string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}

const (
	defaultTypeWeight     = 2
	defaultProcessingDays = 2
	urgencyBonus          = 5
	maxAgeBonus           = 10
	autoArchiveAfterDays  = 30
	archiveGraceDays      = 7
)

// DaysInStatus counts whole days since the request last changed status.
func DaysInStatus(req *DocumentRequest, now time.Time) int {
	since := req.UpdatedAt
	if since.IsZero() {
		since = req.CreatedAt
	}
	days := int(now.Sub(since).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ComputePriorityScore is evaluated once, at creation; the stored score is
// never recomputed afterward.
func ComputePriorityScore(req *DocumentRequest, now time.Time) int {
	score := 0
	for _, docType := range req.DocumentTypes {
		weight, ok := priorityWeights[docType]
		if !ok {
			weight = defaultTypeWeight
		}
		score += weight
	}

	for _, keyword := range urgencyKeywords {
		if strings.Contains(req.Purpose, keyword) {
			score += urgencyBonus
			break
		}
	}

	age := DaysInStatus(req, now)
	if age > maxAgeBonus {
		age = maxAgeBonus
	}
	score += age

	return score
}

// EstimateCompletion takes the slowest document type in the set, adds that
// many calendar days to the creation date, then rolls forward off weekends.
func EstimateCompletion(req *DocumentRequest, now time.Time) time.Time {
	days := 0
	for _, docType := range req.DocumentTypes {
		d, ok := processingDays[docType]
		if !ok {
			d = defaultProcessingDays
		}
		if d > days {
			days = d
		}
	}
	if days < 1 {
		days = 1
	}

	start := req.CreatedAt
	if start.IsZero() {
		start = now
	}

	due := start.AddDate(0, 0, days)
	for due.Weekday() == time.Saturday || due.Weekday() == time.Sunday {
		due = due.AddDate(0, 0, 1)
	}
	return due
}

// AutoArchiveDate is now + 30 days at the moment the field is set, matching
// the office's long-standing bookkeeping.
func AutoArchiveDate(now time.Time) time.Time {
	return now.AddDate(0, 0, autoArchiveAfterDays)
}

// GenerateTimeSlots emits one slot per office-hour time for every weekday
// between start and end inclusive, all initially available.
func GenerateTimeSlots(start, end time.Time) []TimeSlot {
	slots := []TimeSlot{}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	for !day.After(last) {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			for _, t := range pickupTimes {
				slots = append(slots, TimeSlot{Date: day, Time: t, IsAvailable: true})
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return slots
}

// ShouldBeExpired decides whether the sweep must expire a request.
// Scheduled pickups expire once the chosen slot has passed; ready-to-claim
// requests expire after the last day of the admin pickup window.
func ShouldBeExpired(req *DocumentRequest, now time.Time) bool {
	switch req.Status {
	case StatusScheduledForPickup:
		if req.ScheduledClaimDate == nil {
			return false
		}
		deadline := claimDeadline(*req.ScheduledClaimDate, req.ScheduledClaimTime)
		return now.After(deadline)
	case StatusReadyToClaim:
		if req.PickupPeriod == nil || req.PickupPeriod.EndDate == nil {
			return false
		}
		end := *req.PickupPeriod.EndDate
		endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, end.Location())
		return now.After(endOfDay)
	default:
		return false
	}
}

// claimDeadline combines the chosen date with an "HH:MM" slot time,
// defaulting to midnight when the time is absent or malformed.
func claimDeadline(date time.Time, slotTime *string) time.Time {
	hour, minute := 0, 0
	if slotTime != nil {
		parts := strings.SplitN(*slotTime, ":", 2)
		if len(parts) == 2 {
			if h, err := strconv.Atoi(parts[0]); err == nil {
				hour = h
			}
			if m, err := strconv.Atoi(parts[1]); err == nil {
				minute = m
			}
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// ShouldBeArchived applies the seven-day grace period after expiration.
func ShouldBeArchived(req *DocumentRequest, now time.Time) bool {
	if !req.IsExpired || req.Status != StatusExpired {
		return false
	}
	ref := req.UpdatedAt
	if req.ExpirationDate != nil {
		ref = *req.ExpirationDate
	}
	return now.Sub(ref) >= archiveGraceDays*24*time.Hour
}
