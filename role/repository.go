package role

import (
	"github.com/jmoiron/sqlx"
)

type RoleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(role *Role) error {
	query := `
		INSERT INTO roles (name, permissions)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.db.QueryRow(query, role.Name, role.Permissions).Scan(&role.ID)
}

func (r *RoleRepository) GetAll() ([]Role, error) {
	roles := []Role{}
	if err := r.db.Select(&roles, `SELECT * FROM roles ORDER BY id`); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepository) GetByID(id int) (*Role, error) {
	var role Role
	if err := r.db.Get(&role, `SELECT * FROM roles WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) GetByName(name string) (*Role, error) {
	var role Role
	if err := r.db.Get(&role, `SELECT * FROM roles WHERE name = $1`, name); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) Update(role *Role) error {
	query := `UPDATE roles SET name = $2, permissions = $3 WHERE id = $1`
	_, err := r.db.Exec(query, role.ID, role.Name, role.Permissions)
	return err
}

func (r *RoleRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM roles WHERE id = $1`, id)
	return err
}
