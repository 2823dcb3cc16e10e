package message

import (
	"time"

	"github.com/google/uuid"
)

type ThreadStatus string

const (
	ThreadOpen   ThreadStatus = "open"
	ThreadClosed ThreadStatus = "closed"
)

// Thread is one resident-to-office conversation, keyed by a session id so
// the frontend can resume it across logins.
type Thread struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	ResidentID    int64        `db:"resident_id" json:"resident_id"`
	Subject       string       `db:"subject" json:"subject"`
	Status        ThreadStatus `db:"status" json:"status"`
	LastMessageAt time.Time    `db:"last_message_at" json:"last_message_at"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

type Message struct {
	ID        int64     `db:"id" json:"id"`
	ThreadID  uuid.UUID `db:"thread_id" json:"thread_id"`
	SenderID  int64     `db:"sender_id" json:"sender_id"`
	FromStaff bool      `db:"from_staff" json:"from_staff"`
	Body      string    `db:"body" json:"body"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ThreadFilter struct {
	ResidentID int64
	Status     string
	Limit      int
	Offset     int
}
