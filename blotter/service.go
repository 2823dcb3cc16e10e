package blotter

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ibarangay-be/util"

	"github.com/google/uuid"
)

// Store is the persistence surface the case engine needs.
type Store interface {
	Create(c *Case) error
	GetByID(id int64) (*Case, error)
	GetAll(filter Filter) ([]Case, int, error)
	Summary() (*Summary, error)
	SetStatus(id int64, from []Status, to Status, resolutionDetails *string, resolvedDate *time.Time) (bool, error)
	RecordMeeting(id int64, meetings Meetings, expectedCurrent int) (bool, error)
	UpdateMeetings(id int64, meetings Meetings) error
	IssueCFA(id int64, now time.Time, reason string, history DocumentHistory) (bool, error)
	AppendContact(id int64, history ContactHistory) error
	CountOverdue(now time.Time) (int, error)
}

type Emitter interface {
	Emit(event string, payload map[string]interface{})
}

type Service struct {
	store  Store
	events Emitter
	now    func() time.Time
}

func NewService(store Store, events Emitter) *Service {
	return &Service{
		store:  store,
		events: events,
		now:    time.Now,
	}
}

// File opens a new Pending case. The report date defaults to filing time
// when the caller leaves it zero.
func (s *Service) File(complainantID int64, accused Accused, incidentDate time.Time, dateReported time.Time, location, complaintType, details string) (*Case, error) {
	if strings.TrimSpace(accused.Name) == "" {
		return nil, util.Validationf("accused name is required")
	}
	if strings.TrimSpace(complaintType) == "" {
		return nil, util.Validationf("complaint type is required")
	}

	now := s.now()
	if dateReported.IsZero() {
		dateReported = now
	}

	c := &Case{
		CaseNumber:       generateCaseNumber(now),
		ComplainantID:    complainantID,
		Accused:          accused,
		IncidentDate:     incidentDate,
		DateReported:     dateReported,
		Location:         location,
		ComplaintType:    complaintType,
		ComplaintDetails: details,
		Status:           StatusPending,
		Meetings:         Meetings{},
		ContactHistory:   ContactHistory{},
		DocumentHistory:  DocumentHistory{},
	}

	if err := s.store.Create(c); err != nil {
		return nil, fmt.Errorf("failed to file blotter case: %w", err)
	}

	return c, nil
}

func generateCaseNumber(now time.Time) string {
	short := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("BLTR-%d-%s", now.Year(), short)
}

func (s *Service) GetByID(id int64) (*Case, error) {
	c, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NotFoundf("blotter case %d not found", id)
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) GetAll(filter Filter) ([]Case, int, error) {
	return s.store.GetAll(filter)
}

func (s *Service) Summary() (*Summary, error) {
	return s.store.Summary()
}

func (s *Service) CountOverdue(now time.Time) (int, error) {
	return s.store.CountOverdue(now)
}

// BeginInvestigation opens mediation on a pending case.
func (s *Service) BeginInvestigation(id int64) (*Case, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c.Status != StatusPending {
		return nil, util.StateConflictf("case %d is %s, only pending cases can move to investigation", id, c.Status)
	}

	applied, err := s.store.SetStatus(id, []Status{StatusPending}, StatusUnderInvestigation, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update case status: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("case %d changed status concurrently, try again", id)
	}

	return s.GetByID(id)
}

// RecordMeeting appends the next mediation meeting. Meeting numbers are
// strictly sequential and capped at three.
func (s *Service) RecordMeeting(id int64, meeting Meeting) (*Case, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if c.Status != StatusUnderInvestigation {
		return nil, util.StateConflictf("case %d is %s, meetings can only be recorded while under investigation", id, c.Status)
	}
	if !CanScheduleNextMeeting(c) {
		return nil, util.StateConflictf("case %d has already held all %d mediation meetings", id, maxMeetings)
	}
	if meeting.MeetingNumber != c.CurrentMeeting+1 {
		return nil, util.Validationf("meeting number must be %d, got %d", c.CurrentMeeting+1, meeting.MeetingNumber)
	}
	if meeting.Status == "" {
		meeting.Status = MeetingScheduled
	}
	if !meeting.Status.Valid() {
		return nil, util.Validationf("invalid meeting status %q", meeting.Status)
	}
	if meeting.Date.IsZero() {
		meeting.Date = s.now()
	}

	updated := append(Meetings{}, c.Meetings...)
	updated = append(updated, meeting)

	applied, err := s.store.RecordMeeting(id, updated, c.CurrentMeeting)
	if err != nil {
		return nil, fmt.Errorf("failed to record meeting: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("case %d changed concurrently, try again", id)
	}

	s.events.Emit("case.meeting_recorded", map[string]interface{}{
		"case_id":        id,
		"case_number":    c.CaseNumber,
		"user_id":        c.ComplainantID,
		"meeting_number": meeting.MeetingNumber,
		"message":        fmt.Sprintf("Mediation meeting %d scheduled for case %s", meeting.MeetingNumber, c.CaseNumber),
	})

	return s.GetByID(id)
}

// UpdateMeetingStatus marks an already-recorded meeting completed or
// cancelled. The meeting counter never moves here.
func (s *Service) UpdateMeetingStatus(id int64, meetingNumber int, status MeetingStatus) (*Case, error) {
	if !status.Valid() {
		return nil, util.Validationf("invalid meeting status %q", status)
	}

	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	found := false
	updated := append(Meetings{}, c.Meetings...)
	for i := range updated {
		if updated[i].MeetingNumber == meetingNumber {
			updated[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return nil, util.NotFoundf("case %d has no meeting %d", id, meetingNumber)
	}

	if err := s.store.UpdateMeetings(id, updated); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	return s.GetByID(id)
}

// IssueCFA certifies the complainant to file formal action. The case
// status stays as it is; only the flag and paper trail change.
func (s *Service) IssueCFA(id int64, issuedBy int64, reason string) (*Case, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !IsReadyForCFA(c) {
		if c.CFAIssued {
			return nil, util.StateConflictf("case %d already has a CFA issued", id)
		}
		return nil, util.StateConflictf("case %d is not eligible for CFA: %d of %d meetings held, status %s", id, c.CurrentMeeting, maxMeetings, c.Status)
	}

	now := s.now()
	if strings.TrimSpace(reason) == "" {
		if failed := ConsecutiveFailedContacts(c); failed >= 3 {
			reason = fmt.Sprintf("Mediation failed after %d meetings; %d+ failed contact attempts", maxMeetings, failed)
		} else {
			reason = fmt.Sprintf("Mediation failed after %d meetings without settlement", maxMeetings)
		}
	}

	history := append(DocumentHistory{}, c.DocumentHistory...)
	history = append(history, DocumentRecord{
		Type:     "cfa",
		IssuedAt: now,
		IssuedBy: issuedBy,
		Notes:    reason,
	})

	applied, err := s.store.IssueCFA(id, now, reason, history)
	if err != nil {
		return nil, fmt.Errorf("failed to issue CFA: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("case %d already has a CFA issued", id)
	}

	s.events.Emit("case.cfa_issued", map[string]interface{}{
		"case_id":     id,
		"case_number": c.CaseNumber,
		"user_id":     c.ComplainantID,
		"message":     fmt.Sprintf("A Certification to File Action was issued for case %s", c.CaseNumber),
	})

	return s.GetByID(id)
}

// Escalate hands the case to the PNP. Allowed from any non-terminal status.
func (s *Service) Escalate(id int64, resolutionDetails string) (*Case, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c.Status.Terminal() {
		return nil, util.StateConflictf("case %d is already %s", id, c.Status)
	}

	now := s.now()
	applied, err := s.store.SetStatus(id, []Status{StatusPending, StatusUnderInvestigation}, StatusEscalated, &resolutionDetails, &now)
	if err != nil {
		return nil, fmt.Errorf("failed to escalate case: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("case %d changed status concurrently, try again", id)
	}

	s.events.Emit("case.escalated", map[string]interface{}{
		"case_id":     id,
		"case_number": c.CaseNumber,
		"user_id":     c.ComplainantID,
		"message":     fmt.Sprintf("Case %s was escalated to the PNP", c.CaseNumber),
	})

	return s.GetByID(id)
}

// Resolve closes the case as Resolved or Dismissed. Resolved requires an
// active investigation; Dismissed is also allowed straight from Pending.
func (s *Service) Resolve(id int64, outcome Status, resolutionDetails string) (*Case, error) {
	if outcome != StatusResolved && outcome != StatusDismissed {
		return nil, util.Validationf("outcome must be %s or %s, got %s", StatusResolved, StatusDismissed, outcome)
	}

	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	from := []Status{StatusUnderInvestigation}
	if outcome == StatusDismissed {
		from = []Status{StatusPending, StatusUnderInvestigation}
	}

	allowed := false
	for _, f := range from {
		if c.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, util.StateConflictf("case %d is %s and cannot be marked %s", id, c.Status, outcome)
	}

	now := s.now()
	applied, err := s.store.SetStatus(id, from, outcome, &resolutionDetails, &now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve case: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("case %d changed status concurrently, try again", id)
	}

	s.events.Emit("case.resolved", map[string]interface{}{
		"case_id":     id,
		"case_number": c.CaseNumber,
		"user_id":     c.ComplainantID,
		"status":      string(outcome),
		"message":     fmt.Sprintf("Case %s was closed as %s", c.CaseNumber, outcome),
	})

	return s.GetByID(id)
}

// RecordContactAttempt logs an attempt to reach the respondent. No cap is
// enforced here; the streak only feeds CFA reason text.
func (s *Service) RecordContactAttempt(id int64, method string, successful bool, notes string) (*Case, error) {
	if strings.TrimSpace(method) == "" {
		return nil, util.Validationf("contact method is required")
	}

	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated := append(ContactHistory{}, c.ContactHistory...)
	updated = append(updated, ContactAttempt{
		Date:       s.now(),
		Method:     method,
		Notes:      notes,
		Successful: successful,
	})

	if err := s.store.AppendContact(id, updated); err != nil {
		return nil, fmt.Errorf("failed to record contact attempt: %w", err)
	}

	return s.GetByID(id)
}
