package blotter

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type Status string

const (
	StatusPending            Status = "Pending"
	StatusUnderInvestigation Status = "Under Investigation"
	StatusResolved           Status = "Resolved"
	StatusDismissed          Status = "Dismissed"
	StatusEscalated          Status = "Escalated to PNP"
	// StatusCFAIssued is part of the status domain but nothing assigns it;
	// CFA issuance is tracked by the cfa_issued flag instead.
	StatusCFAIssued Status = "CFA Issued"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderInvestigation, StatusResolved, StatusDismissed,
		StatusEscalated, StatusCFAIssued:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	switch s {
	case StatusResolved, StatusDismissed, StatusEscalated:
		return true
	}
	return false
}

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingScheduled, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// Accused is the respondent sub-record. ResidentID links a registered
// resident when the respondent is one.
type Accused struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	Contact    string `json:"contact,omitempty"`
	ResidentID *int64 `json:"resident_id,omitempty"`
}

func (a Accused) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Accused) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(b, a)
}

type Meeting struct {
	MeetingNumber int           `json:"meeting_number"`
	Date          time.Time     `json:"date"`
	Location      string        `json:"location,omitempty"`
	Attendees     []string      `json:"attendees,omitempty"`
	Discussion    string        `json:"discussion,omitempty"`
	Agreements    string        `json:"agreements,omitempty"`
	NextSteps     string        `json:"next_steps,omitempty"`
	Status        MeetingStatus `json:"status"`
}

type Meetings []Meeting

func (m Meetings) Value() (driver.Value, error) {
	if m == nil {
		m = Meetings{}
	}
	return json.Marshal(m)
}

func (m *Meetings) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(b, m)
}

type ContactAttempt struct {
	Date       time.Time `json:"date"`
	Method     string    `json:"method"`
	Notes      string    `json:"notes,omitempty"`
	Successful bool      `json:"successful"`
}

type ContactHistory []ContactAttempt

func (c ContactHistory) Value() (driver.Value, error) {
	if c == nil {
		c = ContactHistory{}
	}
	return json.Marshal(c)
}

func (c *ContactHistory) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(b, c)
}

// DocumentRecord tracks a document generated for the case, such as a
// summons or the CFA itself.
type DocumentRecord struct {
	Type     string    `json:"type"`
	IssuedAt time.Time `json:"issued_at"`
	IssuedBy int64     `json:"issued_by,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

type DocumentHistory []DocumentRecord

func (d DocumentHistory) Value() (driver.Value, error) {
	if d == nil {
		d = DocumentHistory{}
	}
	return json.Marshal(d)
}

func (d *DocumentHistory) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(b, d)
}

type Case struct {
	ID                int64           `db:"id" json:"id"`
	CaseNumber        string          `db:"case_number" json:"case_number"`
	ComplainantID     int64           `db:"complainant_id" json:"complainant_id"`
	Accused           Accused         `db:"accused" json:"accused"`
	IncidentDate      time.Time       `db:"incident_date" json:"incident_date"`
	DateReported      time.Time       `db:"date_reported" json:"date_reported"`
	Location          string          `db:"location" json:"location"`
	ComplaintType     string          `db:"complaint_type" json:"complaint_type"`
	ComplaintDetails  string          `db:"complaint_details" json:"complaint_details"`
	Status            Status          `db:"status" json:"status"`
	CurrentMeeting    int             `db:"current_meeting" json:"current_meeting"`
	Meetings          Meetings        `db:"meetings" json:"meetings"`
	ContactHistory    ContactHistory  `db:"contact_history" json:"contact_history"`
	CFAIssued         bool            `db:"cfa_issued" json:"cfa_issued"`
	CFAIssueDate      *time.Time      `db:"cfa_issue_date" json:"cfa_issue_date,omitempty"`
	CFAReason         *string         `db:"cfa_reason" json:"cfa_reason,omitempty"`
	DocumentHistory   DocumentHistory `db:"document_history" json:"document_history"`
	ResolutionDetails *string         `db:"resolution_details" json:"resolution_details,omitempty"`
	ResolvedDate      *time.Time      `db:"resolved_date" json:"resolved_date,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

type Filter struct {
	Status        string
	ComplainantID int64
	Search        string
	Limit         int
	Offset        int
}

type Summary struct {
	Pending            int `db:"pending" json:"pending"`
	UnderInvestigation int `db:"under_investigation" json:"under_investigation"`
	Resolved           int `db:"resolved" json:"resolved"`
	Dismissed          int `db:"dismissed" json:"dismissed"`
	Escalated          int `db:"escalated" json:"escalated"`
	CFAIssued          int `db:"cfa_issued" json:"cfa_issued"`
}
