package message

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ibarangay-be/util"

	"github.com/google/uuid"
)

type Emitter interface {
	Emit(event string, payload map[string]interface{})
}

type Service struct {
	repo   *Repository
	events Emitter
}

func NewService(repo *Repository, events Emitter) *Service {
	return &Service{repo: repo, events: events}
}

// OpenThread starts a new conversation with the office.
func (s *Service) OpenThread(residentID int64, subject, body string) (*Thread, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, util.Validationf("subject is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, util.Validationf("message body is required")
	}

	t := &Thread{
		ID:         uuid.New(),
		ResidentID: residentID,
		Subject:    subject,
		Status:     ThreadOpen,
	}
	if err := s.repo.CreateThread(t); err != nil {
		return nil, fmt.Errorf("failed to open thread: %w", err)
	}

	if _, err := s.send(t, residentID, false, body); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) GetThread(id uuid.UUID) (*Thread, error) {
	t, err := s.repo.GetThreadByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NotFoundf("thread %s not found", id)
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) GetThreads(filter ThreadFilter) ([]Thread, int, error) {
	return s.repo.GetThreads(filter)
}

// Reply appends a message. Residents may only write to their own threads;
// a reply to a closed thread reopens it.
func (s *Service) Reply(threadID uuid.UUID, senderID int64, fromStaff bool, body string) (*Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, util.Validationf("message body is required")
	}

	t, err := s.GetThread(threadID)
	if err != nil {
		return nil, err
	}
	if !fromStaff && t.ResidentID != senderID {
		return nil, util.NotFoundf("thread %s not found", threadID)
	}

	return s.send(t, senderID, fromStaff, body)
}

func (s *Service) send(t *Thread, senderID int64, fromStaff bool, body string) (*Message, error) {
	m := &Message{
		ThreadID:  t.ID,
		SenderID:  senderID,
		FromStaff: fromStaff,
		Body:      body,
	}
	if err := s.repo.CreateMessage(m); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if fromStaff {
		s.events.Emit("message.received", map[string]interface{}{
			"thread_id": t.ID.String(),
			"user_id":   t.ResidentID,
			"message":   fmt.Sprintf("The barangay office replied to: %s", t.Subject),
		})
	}

	return m, nil
}

func (s *Service) GetMessages(threadID uuid.UUID, requesterID int64, isStaff bool, limit, offset int) ([]Message, int, error) {
	t, err := s.GetThread(threadID)
	if err != nil {
		return nil, 0, err
	}
	if !isStaff && t.ResidentID != requesterID {
		return nil, 0, util.NotFoundf("thread %s not found", threadID)
	}

	messages, total, err := s.repo.GetMessages(threadID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	// Reading the thread clears the other side's unread flags.
	if err := s.repo.MarkRead(threadID, !isStaff); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (s *Service) CloseThread(id uuid.UUID) (*Thread, error) {
	t, err := s.GetThread(id)
	if err != nil {
		return nil, err
	}
	if t.Status == ThreadClosed {
		return nil, util.StateConflictf("thread %s is already closed", id)
	}

	if err := s.repo.SetThreadStatus(id, ThreadClosed); err != nil {
		return nil, fmt.Errorf("failed to close thread: %w", err)
	}

	return s.GetThread(id)
}
