package notify

import (
	"fmt"
	"log"
	"time"

	"ibarangay-be/config"
)

// Hub channel every lifecycle event is published to; the frontend filters
// by event name and user id.
const lifecycleChannel = "lifecycle"

var eventTitles = map[string]string{
	"request.status_changed": "Document request update",
	"request.expired":        "Document request expired",
	"request.archived":       "Document request archived",
	"case.meeting_recorded":  "Blotter mediation meeting recorded",
	"case.cfa_issued":        "Certification to File Action issued",
	"case.escalated":         "Blotter case escalated",
	"case.resolved":          "Blotter case closed",
	"alert.broadcast":        "Emergency alert",
	"message.received":       "New message from the barangay office",
	"resident.approved":      "Registration approved",
	"resident.rejected":      "Registration rejected",
}

type Service struct {
	repo       *Repository
	wsClient   *config.WebSocketClient
	dispatcher *Dispatcher
}

func NewService(repo *Repository, wsClient *config.WebSocketClient, dispatcher *Dispatcher) *Service {
	return &Service{
		repo:       repo,
		wsClient:   wsClient,
		dispatcher: dispatcher,
	}
}

// Emit records and broadcasts a lifecycle event. It is fire-and-forget:
// delivery failures are logged and never propagated, so an emit can never
// roll back the mutation that triggered it.
func (s *Service) Emit(event string, payload map[string]interface{}) {
	title := eventTitles[event]
	if title == "" {
		title = event
	}

	body, _ := payload["message"].(string)

	n := &Notification{
		Event:   event,
		Title:   title,
		Body:    body,
		Payload: Payload(payload),
	}
	if userID, ok := payload["user_id"].(int64); ok {
		n.UserID = &userID
	}

	if err := s.repo.Create(n); err != nil {
		log.Printf("Failed to store notification for %s: %v", event, err)
	}

	s.publish(event, payload)

	if phone, ok := payload["phone"].(string); ok && phone != "" && body != "" {
		s.queueSMS(phone, body)
	}
}

func (s *Service) publish(event string, payload map[string]interface{}) {
	if s.wsClient == nil {
		return
	}

	data := map[string]interface{}{
		"event":     event,
		"payload":   payload,
		"timestamp": time.Now().Unix(),
	}

	if !s.wsClient.IsConnected() {
		if err := s.wsClient.Connect(); err != nil {
			log.Printf("Websocket unavailable, dropping %s broadcast: %v", event, err)
			return
		}
	}

	if err := s.wsClient.PublishAsync(lifecycleChannel, data); err != nil {
		log.Printf("Failed to publish %s to hub: %v", event, err)
	}
}

func (s *Service) queueSMS(phone, message string) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Submit(SMSJob{Phone: phone, Message: message}); err != nil {
		log.Printf("Failed to queue SMS for %s: %v", phone, err)
	}
}

// Broadcast pushes an alert to every recipient in one call. Used by the
// emergency alert endpoint.
func (s *Service) Broadcast(title, message string, phones []string) {
	s.Emit("alert.broadcast", map[string]interface{}{
		"title":   title,
		"message": fmt.Sprintf("%s: %s", title, message),
	})

	for _, phone := range phones {
		s.queueSMS(phone, fmt.Sprintf("[%s] %s", title, message))
	}
}

func (s *Service) GetByUser(userID int64, limit, offset int) ([]Notification, int, error) {
	return s.repo.GetByUser(userID, limit, offset)
}

func (s *Service) MarkRead(id, userID int64) error {
	return s.repo.MarkRead(id, userID)
}
