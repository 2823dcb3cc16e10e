package announcement

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(a *Announcement) error {
	query := `
		INSERT INTO announcements
		(title, content, category, is_published, published_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		query,
		a.Title,
		a.Content,
		a.Category,
		a.IsPublished,
		a.PublishedAt,
		a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *Repository) GetByID(id int64) (*Announcement, error) {
	var a Announcement
	query := `SELECT * FROM announcements WHERE id = $1`
	if err := r.db.Get(&a, query, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetAll(filter Filter) ([]Announcement, int, error) {
	announcements := []Announcement{}
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, filter.Category)
		argIdx++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM announcements %s", where)
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM announcements
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)

	args = append(args, filter.Limit, filter.Offset)

	if err := r.db.Select(&announcements, query, args...); err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

func (r *Repository) GetPublished() ([]Announcement, error) {
	announcements := []Announcement{}
	query := `
		SELECT * FROM announcements
		WHERE is_published = true
		ORDER BY published_at DESC
		LIMIT 50
	`
	if err := r.db.Select(&announcements, query); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *Repository) Update(a *Announcement) error {
	query := `
		UPDATE announcements
		SET title = $2, content = $3, category = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, a.ID, a.Title, a.Content, a.Category)
	return err
}

func (r *Repository) Publish(id int64, at time.Time) error {
	query := `
		UPDATE announcements
		SET is_published = true, published_at = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, at)
	return err
}

func (r *Repository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM announcements WHERE id = $1`, id)
	return err
}
