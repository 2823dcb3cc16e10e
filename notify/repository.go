package notify

import (
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(n *Notification) error {
	query := `
		INSERT INTO notifications (event, user_id, title, body, payload, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, false, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(query, n.Event, n.UserID, n.Title, n.Body, n.Payload).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *Repository) GetByUser(userID int64, limit, offset int) ([]Notification, int, error) {
	notifications := []Notification{}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 OR user_id IS NULL`
	if err := r.db.Get(&total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event, user_id, title, body, payload, is_read, created_at
		FROM notifications
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.Select(&notifications, query, userID, limit, offset); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *Repository) MarkRead(id, userID int64) error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
