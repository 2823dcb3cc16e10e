package notify

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type Payload map[string]interface{}

func (p Payload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Payload) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(b, p)
}

type Notification struct {
	ID        int64     `db:"id" json:"id"`
	Event     string    `db:"event" json:"event"`
	UserID    *int64    `db:"user_id" json:"user_id,omitempty"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Payload   Payload   `db:"payload" json:"payload,omitempty"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
