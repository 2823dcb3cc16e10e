package request

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"ibarangay-be/util"
)

type mockStore struct {
	requests map[int64]*DocumentRequest
	nextID   int64
}

func newMockStore() *mockStore {
	return &mockStore{requests: map[int64]*DocumentRequest{}, nextID: 1}
}

func (m *mockStore) Create(req *DocumentRequest) error {
	req.ID = m.nextID
	m.nextID++
	copied := *req
	m.requests[req.ID] = &copied
	return nil
}

func (m *mockStore) GetByID(id int64) (*DocumentRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (m *mockStore) GetAll(filter Filter) ([]DocumentRequest, int, error) {
	var out []DocumentRequest
	for _, req := range m.requests {
		if filter.Status != "" && string(req.Status) != filter.Status {
			continue
		}
		if filter.ResidentID != 0 && req.ResidentID != filter.ResidentID {
			continue
		}
		out = append(out, *req)
	}
	return out, len(out), nil
}

func (m *mockStore) Summary() (*Summary, error) {
	return &Summary{}, nil
}

func (m *mockStore) UpdateStatus(id int64, from []Status, to Status, stage *ProcessingStage, rejectionReason *string, note string) (bool, error) {
	req, ok := m.requests[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range from {
		if req.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	req.Status = to
	if to == StatusRejected {
		req.RejectionReason = rejectionReason
	} else {
		req.RejectionReason = nil
	}
	if stage != nil {
		req.ProcessingStage = *stage
	}
	if len(req.AutomationNotes) > 0 {
		req.AutomationNotes = append(req.AutomationNotes, note)
	}
	req.UpdatedAt = time.Now()
	return true, nil
}

func (m *mockStore) SetPickupPeriod(id int64, period *PickupPeriod) error {
	req, ok := m.requests[id]
	if !ok {
		return sql.ErrNoRows
	}
	req.PickupPeriod = period
	return nil
}

func (m *mockStore) ScheduleClaim(id int64, period *PickupPeriod, date time.Time, slotTime string) (bool, error) {
	req, ok := m.requests[id]
	if !ok || req.Status != StatusReadyToClaim {
		return false, nil
	}
	req.PickupPeriod = period
	req.ScheduledClaimDate = &date
	req.ScheduledClaimTime = &slotTime
	req.Status = StatusScheduledForPickup
	return true, nil
}

func (m *mockStore) ListExpiryCandidates() ([]DocumentRequest, error) {
	var out []DocumentRequest
	for _, req := range m.requests {
		if (req.Status == StatusScheduledForPickup || req.Status == StatusReadyToClaim) && !req.IsExpired {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *mockStore) ListArchiveCandidates() ([]DocumentRequest, error) {
	var out []DocumentRequest
	for _, req := range m.requests {
		if req.Status == StatusExpired && req.IsExpired {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *mockStore) MarkExpired(id int64, now time.Time, note string) (bool, error) {
	req, ok := m.requests[id]
	if !ok {
		return false, nil
	}
	if req.IsExpired || (req.Status != StatusScheduledForPickup && req.Status != StatusReadyToClaim) {
		return false, nil
	}
	req.Status = StatusExpired
	req.IsExpired = true
	expiredAt := now
	req.ExpirationDate = &expiredAt
	req.AutomationNotes = append(req.AutomationNotes, note)
	req.UpdatedAt = now
	return true, nil
}

func (m *mockStore) MarkArchived(id int64, now time.Time, note string) (bool, error) {
	req, ok := m.requests[id]
	if !ok || req.Status != StatusExpired || !req.IsExpired {
		return false, nil
	}
	req.Status = StatusArchived
	req.AutomationNotes = append(req.AutomationNotes, note)
	req.UpdatedAt = now
	return true, nil
}

type mockEmitter struct {
	events []string
}

func (m *mockEmitter) Emit(event string, payload map[string]interface{}) {
	m.events = append(m.events, event)
}

func newTestService(now time.Time) (*Service, *mockStore, *mockEmitter) {
	store := newMockStore()
	emitter := &mockEmitter{}
	svc := NewService(store, emitter)
	svc.now = func() time.Time { return now }
	return svc, store, emitter
}

func TestSubmitDerivesLifecycleFields(t *testing.T) {
	now := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	req, err := svc.Submit(7, []string{"Business Permit"}, "Urgent renewal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Status != StatusPending {
		t.Errorf("expected Pending, got %s", req.Status)
	}
	if req.PriorityScore != 9 {
		t.Errorf("expected priority score 9 (4 type + 5 urgency), got %d", req.PriorityScore)
	}
	if req.EstimatedCompletionDate == nil {
		t.Fatal("estimated completion date not set")
	}
	if wd := req.EstimatedCompletionDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
		t.Errorf("estimate landed on %s", wd)
	}
	if req.AutoArchiveDate == nil {
		t.Fatal("auto archive date not set")
	}
	if !req.AutoArchiveDate.Equal(now.AddDate(0, 0, 30)) {
		t.Errorf("expected auto archive 30 days out, got %s", req.AutoArchiveDate)
	}
}

func TestSubmitRequiresDocumentTypes(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	if _, err := svc.Submit(7, nil, "anything"); !util.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := svc.Submit(7, []string{""}, "anything"); !util.IsValidation(err) {
		t.Errorf("expected validation error for empty type, got %v", err)
	}
}

func TestTransitionChain(t *testing.T) {
	now := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	svc, _, emitter := newTestService(now)

	created, err := svc.Submit(7, []string{"Barangay Clearance"}, "employment")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	steps := []struct {
		op       func(int64) (*DocumentRequest, error)
		expected Status
	}{
		{svc.Approve, StatusApproved},
		{svc.StartProcessing, StatusProcessing},
		{svc.MarkReady, StatusReadyToClaim},
		{svc.MarkClaimed, StatusClaimed},
	}

	for _, step := range steps {
		req, err := step.op(created.ID)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", step.expected, err)
		}
		if req.Status != step.expected {
			t.Fatalf("expected %s, got %s", step.expected, req.Status)
		}
	}

	if len(emitter.events) != 4 {
		t.Errorf("expected 4 status events, got %d", len(emitter.events))
	}
}

func TestTransitionRejectsIllegalMoves(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	created, _ := svc.Submit(7, []string{"Barangay Clearance"}, "employment")

	// Pending cannot jump straight to Ready to Claim.
	if _, err := svc.MarkReady(created.ID); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict, got %v", err)
	}

	// Claimed is terminal.
	svc.Approve(created.ID)
	svc.StartProcessing(created.ID)
	svc.MarkReady(created.ID)
	svc.MarkClaimed(created.ID)
	if _, err := svc.Approve(created.ID); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict on claimed request, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	created, _ := svc.Submit(7, []string{"Barangay Clearance"}, "employment")

	if _, err := svc.Reject(created.ID, ""); !util.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	req, err := svc.Reject(created.ID, "Incomplete supporting documents")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if req.Status != StatusRejected {
		t.Errorf("expected Rejected, got %s", req.Status)
	}
	if req.RejectionReason == nil || *req.RejectionReason != "Incomplete supporting documents" {
		t.Errorf("rejection reason not stored: %v", req.RejectionReason)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	if _, err := svc.GetByID(999); !util.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestSetPickupPeriodGeneratesSlots(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	created, _ := svc.Submit(7, []string{"Barangay Clearance"}, "employment")
	svc.Approve(created.ID)

	start := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	req, err := svc.SetPickupPeriod(created.ID, start, end, "bring valid ID")
	if err != nil {
		t.Fatalf("set pickup period failed: %v", err)
	}
	if req.PickupPeriod == nil {
		t.Fatal("pickup period not stored")
	}
	if len(req.PickupPeriod.Slots) != 16 {
		t.Errorf("expected 16 slots for two working days, got %d", len(req.PickupPeriod.Slots))
	}
	if req.PickupPeriod.Notes != "bring valid ID" {
		t.Errorf("notes not stored: %q", req.PickupPeriod.Notes)
	}
}

func TestSetPickupPeriodValidation(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	created, _ := svc.Submit(7, []string{"Barangay Clearance"}, "employment")

	start := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	if _, err := svc.SetPickupPeriod(created.ID, start, end, ""); !util.IsValidation(err) {
		t.Errorf("expected validation error for inverted dates, got %v", err)
	}

	// Still Pending, so no window may be set yet.
	if _, err := svc.SetPickupPeriod(created.ID, end, start, ""); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict for pending request, got %v", err)
	}
}

func TestScheduleClaim(t *testing.T) {
	now := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
	svc, _, emitter := newTestService(now)
	created, _ := svc.Submit(7, []string{"Barangay Clearance"}, "employment")
	svc.Approve(created.ID)
	svc.StartProcessing(created.ID)
	svc.MarkReady(created.ID)

	start := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	if _, err := svc.SetPickupPeriod(created.ID, start, end, ""); err != nil {
		t.Fatalf("set pickup period failed: %v", err)
	}

	req, err := svc.ScheduleClaim(created.ID, start, "09:00")
	if err != nil {
		t.Fatalf("schedule claim failed: %v", err)
	}
	if req.Status != StatusScheduledForPickup {
		t.Errorf("expected Scheduled for Pickup, got %s", req.Status)
	}
	if req.ScheduledClaimTime == nil || *req.ScheduledClaimTime != "09:00" {
		t.Errorf("claim time not stored: %v", req.ScheduledClaimTime)
	}

	booked := false
	for _, slot := range req.PickupPeriod.Slots {
		if slot.Time == "09:00" && !slot.IsAvailable {
			booked = true
		}
	}
	if !booked {
		t.Error("booked slot still marked available")
	}

	found := false
	for _, ev := range emitter.events {
		if ev == "request.status_changed" {
			found = true
		}
	}
	if !found {
		t.Error("no status event emitted for scheduling")
	}
}

func TestScheduleClaimRejectsBadSlots(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	created, _ := svc.Submit(7, []string{"Barangay Clearance"}, "employment")
	svc.Approve(created.ID)
	svc.StartProcessing(created.ID)
	svc.MarkReady(created.ID)

	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	svc.SetPickupPeriod(created.ID, day, day, "")

	if _, err := svc.ScheduleClaim(created.ID, day, "12:00"); !util.IsValidation(err) {
		t.Errorf("expected validation error for nonexistent slot, got %v", err)
	}

	if _, err := svc.ScheduleClaim(created.ID, day, "09:00"); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	// Already Scheduled for Pickup, a second booking must not go through.
	if _, err := svc.ScheduleClaim(created.ID, day, "10:00"); !util.IsStateConflict(err) {
		t.Errorf("expected state conflict on second booking, got %v", err)
	}
}

func TestSweepExpiresLapsedPickups(t *testing.T) {
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	svc, store, emitter := newTestService(now)

	claimDate := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	claimTime := "14:00"
	store.Create(&DocumentRequest{
		ResidentID:         7,
		DocumentTypes:      []string{"Barangay Clearance"},
		Status:             StatusScheduledForPickup,
		ScheduledClaimDate: &claimDate,
		ScheduledClaimTime: &claimTime,
	})

	futureDate := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	store.Create(&DocumentRequest{
		ResidentID:         8,
		DocumentTypes:      []string{"Barangay Clearance"},
		Status:             StatusScheduledForPickup,
		ScheduledClaimDate: &futureDate,
		ScheduledClaimTime: &claimTime,
	})

	result, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if result.ExpiredCount != 1 {
		t.Errorf("expected 1 expiry, got %d", result.ExpiredCount)
	}

	expired, _ := svc.GetByID(1)
	if expired.Status != StatusExpired || !expired.IsExpired {
		t.Errorf("request 1 not expired: %s expired=%v", expired.Status, expired.IsExpired)
	}
	if expired.ExpirationDate == nil || !expired.ExpirationDate.Equal(now) {
		t.Errorf("expiration date not stamped: %v", expired.ExpirationDate)
	}
	if len(expired.AutomationNotes) == 0 {
		t.Error("no automation note recorded")
	}

	untouched, _ := svc.GetByID(2)
	if untouched.Status != StatusScheduledForPickup {
		t.Errorf("future pickup should be untouched, got %s", untouched.Status)
	}

	found := false
	for _, ev := range emitter.events {
		if ev == "request.expired" {
			found = true
		}
	}
	if !found {
		t.Error("no expiry event emitted")
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	svc, store, _ := newTestService(now)

	claimDate := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	store.Create(&DocumentRequest{
		ResidentID:         7,
		DocumentTypes:      []string{"Barangay Clearance"},
		Status:             StatusScheduledForPickup,
		ScheduledClaimDate: &claimDate,
	})

	first, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if first.ExpiredCount != 1 {
		t.Fatalf("expected 1 expiry, got %d", first.ExpiredCount)
	}

	second, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if second.ExpiredCount != 0 || second.ArchivedCount != 0 {
		t.Errorf("second sweep should be a no-op, got %+v", second)
	}
}

func TestSweepArchivesAfterGracePeriod(t *testing.T) {
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	svc, store, emitter := newTestService(now)

	oldExpiry := now.Add(-8 * 24 * time.Hour)
	store.Create(&DocumentRequest{
		ResidentID:     7,
		DocumentTypes:  []string{"Barangay Clearance"},
		Status:         StatusExpired,
		IsExpired:      true,
		ExpirationDate: &oldExpiry,
	})

	recentExpiry := now.Add(-6 * 24 * time.Hour)
	store.Create(&DocumentRequest{
		ResidentID:     8,
		DocumentTypes:  []string{"Barangay Clearance"},
		Status:         StatusExpired,
		IsExpired:      true,
		ExpirationDate: &recentExpiry,
	})

	result, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if result.ArchivedCount != 1 {
		t.Errorf("expected 1 archive, got %d", result.ArchivedCount)
	}

	archived, _ := svc.GetByID(1)
	if archived.Status != StatusArchived {
		t.Errorf("request 1 not archived: %s", archived.Status)
	}
	recent, _ := svc.GetByID(2)
	if recent.Status != StatusExpired {
		t.Errorf("request 2 archived too early: %s", recent.Status)
	}

	found := false
	for _, ev := range emitter.events {
		if ev == "request.archived" {
			found = true
		}
	}
	if !found {
		t.Error("no archive event emitted")
	}
}

func TestSweepContinuesPastFailures(t *testing.T) {
	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	store := newMockStore()
	failing := &failingStore{mockStore: store, failID: 1}
	svc := NewService(failing, &mockEmitter{})
	svc.now = func() time.Time { return now }

	claimDate := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		d := claimDate
		store.Create(&DocumentRequest{
			ResidentID:         int64(i + 1),
			DocumentTypes:      []string{"Barangay Clearance"},
			Status:             StatusScheduledForPickup,
			ScheduledClaimDate: &d,
		})
	}

	result, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("sweep should tolerate per-request failures: %v", err)
	}
	if result.ExpiredCount != 1 {
		t.Errorf("expected the surviving request to expire, got %d", result.ExpiredCount)
	}
}

type failingStore struct {
	*mockStore
	failID int64
}

func (f *failingStore) MarkExpired(id int64, now time.Time, note string) (bool, error) {
	if id == f.failID {
		return false, fmt.Errorf("write failed")
	}
	return f.mockStore.MarkExpired(id, now, note)
}
