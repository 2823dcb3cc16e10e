package request

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusPending            Status = "Pending"
	StatusApproved           Status = "Approved"
	StatusProcessing         Status = "Processing"
	StatusReadyToClaim       Status = "Ready to Claim"
	StatusScheduledForPickup Status = "Scheduled for Pickup"
	StatusClaimed            Status = "Claimed"
	StatusArchived           Status = "Archived"
	StatusExpired            Status = "Expired"
	StatusRejected           Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusProcessing, StatusReadyToClaim,
		StatusScheduledForPickup, StatusClaimed, StatusArchived, StatusExpired, StatusRejected:
		return true
	}
	return false
}

// Terminal statuses never change again through interactive operations.
// Expired is not listed: the sweep still moves Expired to Archived.
func (s Status) Terminal() bool {
	switch s {
	case StatusClaimed, StatusArchived, StatusRejected:
		return true
	}
	return false
}

type ProcessingStage string

const (
	StageSubmitted  ProcessingStage = "Submitted"
	StageProcessing ProcessingStage = "Processing"
	StageReady      ProcessingStage = "Ready"
)

type TimeSlot struct {
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	IsAvailable bool      `json:"is_available"`
}

// PickupPeriod is the staff-defined claim window. Slots are regenerated
// from scratch whenever the start or end date changes.
type PickupPeriod struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Slots     []TimeSlot `json:"slots"`
	Notes     string     `json:"notes,omitempty"`
}

func (p PickupPeriod) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PickupPeriod) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(b, p)
}

type DocumentRequest struct {
	ID                      int64           `db:"id" json:"id"`
	ResidentID              int64           `db:"resident_id" json:"resident_id"`
	DocumentTypes           pq.StringArray  `db:"document_types" json:"document_types"`
	Purpose                 string          `db:"purpose" json:"purpose"`
	Status                  Status          `db:"status" json:"status"`
	RejectionReason         *string         `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ProcessingStage         ProcessingStage `db:"processing_stage" json:"processing_stage"`
	PickupPeriod            *PickupPeriod   `db:"pickup_period" json:"pickup_period,omitempty"`
	ScheduledClaimDate      *time.Time      `db:"scheduled_claim_date" json:"scheduled_claim_date,omitempty"`
	ScheduledClaimTime      *string         `db:"scheduled_claim_time" json:"scheduled_claim_time,omitempty"`
	PriorityScore           int             `db:"priority_score" json:"priority_score"`
	EstimatedCompletionDate *time.Time      `db:"estimated_completion_date" json:"estimated_completion_date,omitempty"`
	AutoArchiveDate         *time.Time      `db:"auto_archive_date" json:"auto_archive_date,omitempty"`
	IsExpired               bool            `db:"is_expired" json:"is_expired"`
	ExpirationDate          *time.Time      `db:"expiration_date" json:"expiration_date,omitempty"`
	AutomationNotes         pq.StringArray  `db:"automation_notes" json:"automation_notes"`
	CreatedAt               time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time       `db:"updated_at" json:"updated_at"`
}

type Filter struct {
	Status        string
	ResidentID    int64
	Search        string
	Limit         int
	Offset        int
	SortBy        string
	SortDirection string
}

type Summary struct {
	Pending            int `db:"pending" json:"pending"`
	Approved           int `db:"approved" json:"approved"`
	Processing         int `db:"processing" json:"processing"`
	ReadyToClaim       int `db:"ready_to_claim" json:"ready_to_claim"`
	ScheduledForPickup int `db:"scheduled_for_pickup" json:"scheduled_for_pickup"`
	Claimed            int `db:"claimed" json:"claimed"`
	Expired            int `db:"expired" json:"expired"`
	Archived           int `db:"archived" json:"archived"`
	Rejected           int `db:"rejected" json:"rejected"`
}

// SweepResult reports how many requests each sweep pass transitioned.
type SweepResult struct {
	ExpiredCount  int `json:"expired_count"`
	ArchivedCount int `json:"archived_count"`
}
