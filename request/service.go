package request

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"ibarangay-be/util"
)

// Store is the persistence surface the lifecycle engine needs. The sqlx
// Repository implements it; tests use an in-memory fake.
type Store interface {
	Create(req *DocumentRequest) error
	GetByID(id int64) (*DocumentRequest, error)
	GetAll(filter Filter) ([]DocumentRequest, int, error)
	Summary() (*Summary, error)
	UpdateStatus(id int64, from []Status, to Status, stage *ProcessingStage, rejectionReason *string, note string) (bool, error)
	SetPickupPeriod(id int64, period *PickupPeriod) error
	ScheduleClaim(id int64, period *PickupPeriod, date time.Time, slotTime string) (bool, error)
	ListExpiryCandidates() ([]DocumentRequest, error)
	ListArchiveCandidates() ([]DocumentRequest, error)
	MarkExpired(id int64, now time.Time, note string) (bool, error)
	MarkArchived(id int64, now time.Time, note string) (bool, error)
}

// Emitter broadcasts lifecycle events. Emission is fire-and-forget.
type Emitter interface {
	Emit(event string, payload map[string]interface{})
}

// Interactive transitions allowed per current status. The sweep owns
// Expired and Archived; they are not reachable from here.
var allowedTransitions = map[Status][]Status{
	StatusPending:            {StatusApproved, StatusRejected},
	StatusApproved:           {StatusProcessing},
	StatusProcessing:         {StatusReadyToClaim},
	StatusReadyToClaim:       {StatusScheduledForPickup, StatusClaimed},
	StatusScheduledForPickup: {StatusClaimed},
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

// Submit creates a Pending request. Priority score, completion estimate and
// auto-archive date are derived here, once; they are never recomputed.
func (s *Service) Submit(residentID int64, documentTypes []string, purpose string) (*DocumentRequest, error) {
	if len(documentTypes) == 0 {
		return nil, util.Validationf("at least one document type is required")
	}
	for _, t := range documentTypes {
		if t == "" {
			return nil, util.Validationf("document type must not be empty")
		}
	}

	now := s.now()
	req := &DocumentRequest{
		ResidentID:      residentID,
		DocumentTypes:   documentTypes,
		Purpose:         purpose,
		Status:          StatusPending,
		ProcessingStage: StageSubmitted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	req.PriorityScore = ComputePriorityScore(req, now)
	estimated := EstimateCompletion(req, now)
	req.EstimatedCompletionDate = &estimated
	archiveAt := AutoArchiveDate(now)
	req.AutoArchiveDate = &archiveAt

	if err := s.store.Create(req); err != nil {
		return nil, fmt.Errorf("failed to create document request: %w", err)
	}

	return req, nil
}

func (s *Service) GetByID(id int64) (*DocumentRequest, error) {
	req, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NotFoundf("document request %d not found", id)
		}
		return nil, err
	}
	return req, nil
}

func (s *Service) GetAll(filter Filter) ([]DocumentRequest, int, error) {
	return s.store.GetAll(filter)
}

func (s *Service) Summary() (*Summary, error) {
	return s.store.Summary()
}

func (s *Service) Approve(id int64) (*DocumentRequest, error) {
	return s.transition(id, StatusApproved, nil, nil)
}

func (s *Service) StartProcessing(id int64) (*DocumentRequest, error) {
	stage := StageProcessing
	return s.transition(id, StatusProcessing, &stage, nil)
}

func (s *Service) MarkReady(id int64) (*DocumentRequest, error) {
	stage := StageReady
	return s.transition(id, StatusReadyToClaim, &stage, nil)
}

func (s *Service) Reject(id int64, reason string) (*DocumentRequest, error) {
	if reason == "" {
		return nil, util.Validationf("rejection reason is required")
	}
	return s.transition(id, StatusRejected, nil, &reason)
}

func (s *Service) MarkClaimed(id int64) (*DocumentRequest, error) {
	return s.transition(id, StatusClaimed, nil, nil)
}

func (s *Service) transition(id int64, to Status, stage *ProcessingStage, rejectionReason *string) (*DocumentRequest, error) {
	req, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(req.Status, to) {
		return nil, util.StateConflictf("cannot move request %d from %s to %s", id, req.Status, to)
	}

	note := fmt.Sprintf("Status changed to %s on %s", to, s.now().Format("2006-01-02 15:04"))
	applied, err := s.store.UpdateStatus(id, []Status{req.Status}, to, stage, rejectionReason, note)
	if err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("request %d changed status concurrently, try again", id)
	}

	s.events.Emit("request.status_changed", map[string]interface{}{
		"request_id": id,
		"user_id":    req.ResidentID,
		"status":     string(to),
		"message":    fmt.Sprintf("Your document request is now %s", to),
	})

	return s.GetByID(id)
}

func transitionAllowed(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SetPickupPeriod replaces the claim window. Slots are regenerated from the
// new dates; any previous slot list is discarded.
func (s *Service) SetPickupPeriod(id int64, start, end time.Time, notes string) (*DocumentRequest, error) {
	if end.Before(start) {
		return nil, util.Validationf("pickup period end date is before start date")
	}

	req, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	switch req.Status {
	case StatusApproved, StatusProcessing, StatusReadyToClaim:
	default:
		return nil, util.StateConflictf("cannot set a pickup period while request %d is %s", id, req.Status)
	}

	period := &PickupPeriod{
		StartDate: &start,
		EndDate:   &end,
		Slots:     GenerateTimeSlots(start, end),
		Notes:     notes,
	}

	if err := s.store.SetPickupPeriod(id, period); err != nil {
		return nil, fmt.Errorf("failed to set pickup period: %w", err)
	}

	return s.GetByID(id)
}

// ScheduleClaim books one generated slot for the resident and moves the
// request to Scheduled for Pickup.
func (s *Service) ScheduleClaim(id int64, date time.Time, slotTime string) (*DocumentRequest, error) {
	req, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != StatusReadyToClaim {
		return nil, util.StateConflictf("request %d is %s, only Ready to Claim requests can be scheduled", id, req.Status)
	}
	if req.PickupPeriod == nil || len(req.PickupPeriod.Slots) == 0 {
		return nil, util.StateConflictf("request %d has no pickup period set", id)
	}

	period := *req.PickupPeriod
	found := false
	for i, slot := range period.Slots {
		if sameDay(slot.Date, date) && slot.Time == slotTime {
			if !slot.IsAvailable {
				return nil, util.Validationf("slot %s %s is no longer available", date.Format("2006-01-02"), slotTime)
			}
			period.Slots[i].IsAvailable = false
			found = true
			break
		}
	}
	if !found {
		return nil, util.Validationf("slot %s %s does not exist in the pickup period", date.Format("2006-01-02"), slotTime)
	}

	applied, err := s.store.ScheduleClaim(id, &period, date, slotTime)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule claim: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("request %d changed status concurrently, try again", id)
	}

	s.events.Emit("request.status_changed", map[string]interface{}{
		"request_id": id,
		"user_id":    req.ResidentID,
		"status":     string(StatusScheduledForPickup),
		"message":    fmt.Sprintf("Pickup scheduled for %s at %s", date.Format("January 2, 2006"), slotTime),
	})

	return s.GetByID(id)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Sweep applies the time-driven transitions: expire overdue pickups, then
// archive requests expired for more than seven days. Per-entity failures
// are logged and skipped; only the enumeration itself can fail the sweep.
func (s *Service) Sweep(now time.Time) (SweepResult, error) {
	result := SweepResult{}

	candidates, err := s.store.ListExpiryCandidates()
	if err != nil {
		return result, fmt.Errorf("failed to list expiry candidates: %w", err)
	}

	for i := range candidates {
		req := &candidates[i]
		if !ShouldBeExpired(req, now) {
			continue
		}

		note := fmt.Sprintf("Automatically expired on %s: pickup window lapsed", now.Format("2006-01-02 15:04"))
		applied, err := s.store.MarkExpired(req.ID, now, note)
		if err != nil {
			log.Printf("Sweep: failed to expire request %d: %v", req.ID, err)
			continue
		}
		if !applied {
			continue
		}

		result.ExpiredCount++
		s.events.Emit("request.expired", map[string]interface{}{
			"request_id": req.ID,
			"user_id":    req.ResidentID,
			"message":    "Your document request expired because it was not claimed in time",
		})
	}

	archiveCandidates, err := s.store.ListArchiveCandidates()
	if err != nil {
		return result, fmt.Errorf("failed to list archive candidates: %w", err)
	}

	for i := range archiveCandidates {
		req := &archiveCandidates[i]
		if !ShouldBeArchived(req, now) {
			continue
		}

		note := fmt.Sprintf("Automatically archived on %s", now.Format("2006-01-02 15:04"))
		applied, err := s.store.MarkArchived(req.ID, now, note)
		if err != nil {
			log.Printf("Sweep: failed to archive request %d: %v", req.ID, err)
			continue
		}
		if !applied {
			continue
		}

		result.ArchivedCount++
		s.events.Emit("request.archived", map[string]interface{}{
			"request_id": req.ID,
			"user_id":    req.ResidentID,
			"message":    "Your expired document request was archived",
		})
	}

	return result, nil
}
