package blotter

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"ibarangay-be/util"
)

type mockStore struct {
	cases  map[int64]*Case
	nextID int64
}

func newMockStore() *mockStore {
	return &mockStore{cases: map[int64]*Case{}, nextID: 1}
}

func (m *mockStore) Create(c *Case) error {
	c.ID = m.nextID
	m.nextID++
	copied := *c
	m.cases[c.ID] = &copied
	return nil
}

func (m *mockStore) GetByID(id int64) (*Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (m *mockStore) GetAll(filter Filter) ([]Case, int, error) {
	var out []Case
	for _, c := range m.cases {
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		if filter.ComplainantID != 0 && c.ComplainantID != filter.ComplainantID {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *mockStore) Summary() (*Summary, error) {
	return &Summary{}, nil
}

func (m *mockStore) SetStatus(id int64, from []Status, to Status, resolutionDetails *string, resolvedDate *time.Time) (bool, error) {
	c, ok := m.cases[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range from {
		if c.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	c.Status = to
	if resolutionDetails != nil {
		c.ResolutionDetails = resolutionDetails
	}
	if resolvedDate != nil {
		c.ResolvedDate = resolvedDate
	}
	c.UpdatedAt = time.Now()
	return true, nil
}

func (m *mockStore) RecordMeeting(id int64, meetings Meetings, expectedCurrent int) (bool, error) {
	c, ok := m.cases[id]
	if !ok || c.Status != StatusUnderInvestigation || c.CurrentMeeting != expectedCurrent {
		return false, nil
	}
	c.Meetings = meetings
	c.CurrentMeeting++
	return true, nil
}

func (m *mockStore) UpdateMeetings(id int64, meetings Meetings) error {
	c, ok := m.cases[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.Meetings = meetings
	return nil
}

func (m *mockStore) IssueCFA(id int64, now time.Time, reason string, history DocumentHistory) (bool, error) {
	c, ok := m.cases[id]
	if !ok || c.Status != StatusUnderInvestigation || c.CurrentMeeting < 3 || c.CFAIssued {
		return false, nil
	}
	c.CFAIssued = true
	issuedAt := now
	c.CFAIssueDate = &issuedAt
	c.CFAReason = &reason
	c.DocumentHistory = history
	return true, nil
}

func (m *mockStore) AppendContact(id int64, history ContactHistory) error {
	c, ok := m.cases[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.ContactHistory = history
	return nil
}

func (m *mockStore) CountOverdue(now time.Time) (int, error) {
	count := 0
	for _, c := range m.cases {
		if IsOverdue(c, now) {
			count++
		}
	}
	return count, nil
}

type mockEmitter struct {
	events []string
}

func (m *mockEmitter) Emit(event string, payload map[string]interface{}) {
	m.events = append(m.events, event)
}

func (m *mockEmitter) has(event string) bool {
	for _, ev := range m.events {
		if ev == event {
			return true
		}
	}
	return false
}

func newTestService(now time.Time) (*Service, *mockStore, *mockEmitter) {
	store := newMockStore()
	emitter := &mockEmitter{}
	svc := NewService(store, emitter)
	svc.now = func() time.Time { return now }
	return svc, store, emitter
}

func fileTestCase(t *testing.T, svc *Service) *Case {
	t.Helper()
	c, err := svc.File(5, Accused{Name: "Juan Dela Cruz", Address: "Purok 3"},
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Time{}, "Barangay hall", "Property dispute", "Boundary disagreement between neighbors")
	if err != nil {
		t.Fatalf("filing failed: %v", err)
	}
	return c
}

func TestFileDefaults(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	c := fileTestCase(t, svc)

	if c.Status != StatusPending {
		t.Errorf("expected Pending, got %s", c.Status)
	}
	if !c.DateReported.Equal(now) {
		t.Errorf("date reported should default to filing time, got %s", c.DateReported)
	}
	if c.CurrentMeeting != 0 {
		t.Errorf("expected meeting counter 0, got %d", c.CurrentMeeting)
	}
	if !strings.HasPrefix(c.CaseNumber, "BLTR-2026-") {
		t.Errorf("unexpected case number format: %s", c.CaseNumber)
	}
}

func TestFileValidation(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	if _, err := svc.File(5, Accused{}, time.Now(), time.Time{}, "", "Theft", ""); !util.IsValidation(err) {
		t.Errorf("expected validation error for missing accused name, got %v", err)
	}
	if _, err := svc.File(5, Accused{Name: "Juan"}, time.Now(), time.Time{}, "", "", ""); !util.IsValidation(err) {
		t.Errorf("expected validation error for missing complaint type, got %v", err)
	}
}

func TestMediationLifecycle(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	svc, _, emitter := newTestService(now)

	c := fileTestCase(t, svc)

	// Meetings cannot be recorded before investigation opens.
	_, err := svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 1, Date: now})
	if !util.IsStateConflict(err) {
		t.Fatalf("expected state conflict before investigation, got %v", err)
	}

	if _, err := svc.BeginInvestigation(c.ID); err != nil {
		t.Fatalf("begin investigation failed: %v", err)
	}

	for i := 1; i <= 3; i++ {
		updated, err := svc.RecordMeeting(c.ID, Meeting{MeetingNumber: i, Date: now.AddDate(0, 0, i*7)})
		if err != nil {
			t.Fatalf("meeting %d failed: %v", i, err)
		}
		if updated.CurrentMeeting != i {
			t.Fatalf("expected counter %d, got %d", i, updated.CurrentMeeting)
		}
	}

	current, _ := svc.GetByID(c.ID)
	if CanScheduleNextMeeting(current) {
		t.Error("fourth meeting should not be schedulable")
	}
	if !IsReadyForCFA(current) {
		t.Error("case should be CFA-eligible after three meetings")
	}

	issued, err := svc.IssueCFA(c.ID, 99, "")
	if err != nil {
		t.Fatalf("CFA issuance failed: %v", err)
	}
	if !issued.CFAIssued {
		t.Error("cfa_issued flag not set")
	}
	if issued.Status != StatusUnderInvestigation {
		t.Errorf("CFA issuance must not change status, got %s", issued.Status)
	}
	if issued.CFAIssueDate == nil || !issued.CFAIssueDate.Equal(now) {
		t.Errorf("CFA issue date not stamped: %v", issued.CFAIssueDate)
	}

	cfaDoc := false
	for _, doc := range issued.DocumentHistory {
		if doc.Type == "cfa" {
			cfaDoc = true
		}
	}
	if !cfaDoc {
		t.Error("no cfa entry in document history")
	}

	// A second issuance must be refused.
	if _, err := svc.IssueCFA(c.ID, 99, ""); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict on second CFA, got %v", err)
	}

	if !emitter.has("case.meeting_recorded") {
		t.Error("no meeting event emitted")
	}
	if !emitter.has("case.cfa_issued") {
		t.Error("no CFA event emitted")
	}
}

func TestRecordMeetingSequencing(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	c := fileTestCase(t, svc)
	svc.BeginInvestigation(c.ID)

	// First meeting must be number 1.
	if _, err := svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 2, Date: now}); !util.IsValidation(err) {
		t.Errorf("expected validation error for out-of-order meeting, got %v", err)
	}

	svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 1, Date: now})

	// Repeating a recorded number is also out of order.
	if _, err := svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 1, Date: now}); !util.IsValidation(err) {
		t.Errorf("expected validation error for repeated meeting number, got %v", err)
	}

	svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 2, Date: now})
	svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 3, Date: now})

	// The cap is three.
	if _, err := svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 4, Date: now}); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict past the meeting cap, got %v", err)
	}
}

func TestIssueCFANotEligible(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	c := fileTestCase(t, svc)
	svc.BeginInvestigation(c.ID)
	svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 1, Date: time.Now()})

	if _, err := svc.IssueCFA(c.ID, 99, ""); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict with meetings remaining, got %v", err)
	}
}

func TestCFAReasonMentionsFailedContacts(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	c := fileTestCase(t, svc)
	svc.BeginInvestigation(c.ID)
	for i := 1; i <= 3; i++ {
		svc.RecordMeeting(c.ID, Meeting{MeetingNumber: i, Date: now})
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.RecordContactAttempt(c.ID, "phone", false, "no answer"); err != nil {
			t.Fatalf("contact attempt failed: %v", err)
		}
	}

	issued, err := svc.IssueCFA(c.ID, 99, "")
	if err != nil {
		t.Fatalf("CFA issuance failed: %v", err)
	}
	if issued.CFAReason == nil || !strings.Contains(*issued.CFAReason, "failed contact attempts") {
		t.Errorf("reason should mention the failed contact streak: %v", issued.CFAReason)
	}
}

func TestUpdateMeetingStatus(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	c := fileTestCase(t, svc)
	svc.BeginInvestigation(c.ID)
	svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 1, Date: now})

	updated, err := svc.UpdateMeetingStatus(c.ID, 1, MeetingCompleted)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Meetings[0].Status != MeetingCompleted {
		t.Errorf("expected completed, got %s", updated.Meetings[0].Status)
	}
	if updated.CurrentMeeting != 1 {
		t.Errorf("counter must not move, got %d", updated.CurrentMeeting)
	}

	if _, err := svc.UpdateMeetingStatus(c.ID, 2, MeetingCompleted); !util.IsNotFound(err) {
		t.Errorf("expected not found for unrecorded meeting, got %v", err)
	}
	if _, err := svc.UpdateMeetingStatus(c.ID, 1, MeetingStatus("done")); !util.IsValidation(err) {
		t.Errorf("expected validation error for bad status, got %v", err)
	}
}

func TestEscalate(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	svc, _, emitter := newTestService(now)

	c := fileTestCase(t, svc)

	escalated, err := svc.Escalate(c.ID, "Violence threatened, beyond barangay mediation")
	if err != nil {
		t.Fatalf("escalation failed: %v", err)
	}
	if escalated.Status != StatusEscalated {
		t.Errorf("expected Escalated to PNP, got %s", escalated.Status)
	}
	if escalated.ResolvedDate == nil || !escalated.ResolvedDate.Equal(now) {
		t.Errorf("resolved date not stamped: %v", escalated.ResolvedDate)
	}
	if !emitter.has("case.escalated") {
		t.Error("no escalation event emitted")
	}

	// Terminal now.
	if _, err := svc.Escalate(c.ID, "again"); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict on terminal case, got %v", err)
	}
	if _, err := svc.BeginInvestigation(c.ID); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict reopening terminal case, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	svc, _, emitter := newTestService(now)

	c := fileTestCase(t, svc)

	// Resolved requires an active investigation.
	if _, err := svc.Resolve(c.ID, StatusResolved, "settled"); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict resolving a pending case, got %v", err)
	}

	// Dismissal is allowed straight from Pending.
	dismissed, err := svc.Resolve(c.ID, StatusDismissed, "Complainant withdrew")
	if err != nil {
		t.Fatalf("dismissal failed: %v", err)
	}
	if dismissed.Status != StatusDismissed {
		t.Errorf("expected Dismissed, got %s", dismissed.Status)
	}
	if dismissed.ResolutionDetails == nil || *dismissed.ResolutionDetails != "Complainant withdrew" {
		t.Errorf("resolution details not stored: %v", dismissed.ResolutionDetails)
	}
	if !emitter.has("case.resolved") {
		t.Error("no resolution event emitted")
	}

	if _, err := svc.Resolve(c.ID, StatusEscalated, "x"); !util.IsValidation(err) {
		t.Errorf("expected validation error for bad outcome, got %v", err)
	}
}

func TestResolveAfterInvestigation(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	c := fileTestCase(t, svc)
	svc.BeginInvestigation(c.ID)
	svc.RecordMeeting(c.ID, Meeting{MeetingNumber: 1, Date: now})

	resolved, err := svc.Resolve(c.ID, StatusResolved, "Parties signed an amicable settlement")
	if err != nil {
		t.Fatalf("resolution failed: %v", err)
	}
	if resolved.Status != StatusResolved {
		t.Errorf("expected Resolved, got %s", resolved.Status)
	}
	if resolved.ResolvedDate == nil || !resolved.ResolvedDate.Equal(now) {
		t.Errorf("resolved date not stamped: %v", resolved.ResolvedDate)
	}
}

func TestCountOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC)
	svc, store, _ := newTestService(now)

	store.Create(&Case{ComplainantID: 1, Status: StatusPending, DateReported: now.AddDate(0, 0, -10)})
	store.Create(&Case{ComplainantID: 2, Status: StatusUnderInvestigation, DateReported: now.AddDate(0, 0, -8)})
	store.Create(&Case{ComplainantID: 3, Status: StatusPending, DateReported: now.AddDate(0, 0, -2)})
	store.Create(&Case{ComplainantID: 4, Status: StatusResolved, DateReported: now.AddDate(0, 0, -30)})

	count, err := svc.CountOverdue(now)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 overdue cases, got %d", count)
	}
}
