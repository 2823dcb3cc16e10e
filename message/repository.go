package message

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateThread(t *Thread) error {
	query := `
		INSERT INTO message_threads (id, resident_id, subject, status, last_message_at, created_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING last_message_at, created_at
	`
	return r.db.QueryRow(query, t.ID, t.ResidentID, t.Subject, t.Status).
		Scan(&t.LastMessageAt, &t.CreatedAt)
}

func (r *Repository) GetThreadByID(id uuid.UUID) (*Thread, error) {
	var t Thread
	query := `SELECT * FROM message_threads WHERE id = $1`
	if err := r.db.Get(&t, query, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) GetThreads(filter ThreadFilter) ([]Thread, int, error) {
	threads := []Thread{}
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.ResidentID != 0 {
		conditions = append(conditions, fmt.Sprintf("resident_id = $%d", argIdx))
		args = append(args, filter.ResidentID)
		argIdx++
	}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM message_threads %s", where)
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM message_threads
		%s
		ORDER BY last_message_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)

	args = append(args, filter.Limit, filter.Offset)

	if err := r.db.Select(&threads, query, args...); err != nil {
		return nil, 0, err
	}

	return threads, total, nil
}

func (r *Repository) SetThreadStatus(id uuid.UUID, status ThreadStatus) error {
	_, err := r.db.Exec(`UPDATE message_threads SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *Repository) CreateMessage(m *Message) error {
	query := `
		INSERT INTO messages (thread_id, sender_id, from_staff, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, false, NOW())
		RETURNING id, created_at
	`
	if err := r.db.QueryRow(query, m.ThreadID, m.SenderID, m.FromStaff, m.Body).
		Scan(&m.ID, &m.CreatedAt); err != nil {
		return err
	}

	_, err := r.db.Exec(`UPDATE message_threads SET last_message_at = NOW(), status = 'open' WHERE id = $1`, m.ThreadID)
	return err
}

func (r *Repository) GetMessages(threadID uuid.UUID, limit, offset int) ([]Message, int, error) {
	messages := []Message{}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM messages WHERE thread_id = $1`, threadID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM messages
		WHERE thread_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.Select(&messages, query, threadID, limit, offset); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkRead marks every message in the thread sent by the other side.
func (r *Repository) MarkRead(threadID uuid.UUID, fromStaff bool) error {
	query := `
		UPDATE messages
		SET is_read = true
		WHERE thread_id = $1 AND from_staff = $2 AND is_read = false
	`
	_, err := r.db.Exec(query, threadID, fromStaff)
	return err
}
