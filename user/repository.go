package user

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *User) error {
	query := `
		INSERT INTO users
		(email, password, first_name, last_name, phone, address, account_type, status, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		query,
		u.Email,
		u.Password,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.Address,
		u.AccountType,
		u.Status,
		u.RoleID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(id int64) (*User, error) {
	var u User
	if err := r.db.Get(&u, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Get(&u, `SELECT * FROM users WHERE email = $1`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll(filter Filter) ([]User, int, error) {
	users := []User{}
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.AccountType != "" {
		conditions = append(conditions, fmt.Sprintf("account_type = $%d", argIdx))
		args = append(args, filter.AccountType)
		argIdx++
	}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", where)
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM users
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)

	args = append(args, filter.Limit, filter.Offset)

	if err := r.db.Select(&users, query, args...); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// SetStatus flips account status only from the expected prior status so a
// double approval cannot fire twice.
func (r *UserRepository) SetStatus(id int64, from, to string) (bool, error) {
	query := `
		UPDATE users
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	result, err := r.db.Exec(query, id, from, to)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *UserRepository) Update(u *User) error {
	query := `
		UPDATE users
		SET email = $2, password = $3, first_name = $4, last_name = $5,
		    phone = $6, address = $7, account_type = $8, role_id = $9,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, u.ID, u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Address, u.AccountType, u.RoleID)
	return err
}

func (r *UserRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	return err
}

// ListActivePhones feeds emergency alert SMS fan-out.
func (r *UserRepository) ListActivePhones() ([]string, error) {
	phones := []string{}
	query := `
		SELECT phone FROM users
		WHERE status = 'active' AND phone <> ''
	`
	if err := r.db.Select(&phones, query); err != nil {
		return nil, err
	}
	return phones, nil
}
