package role

import (
	"database/sql"
	"errors"
	"strings"

	"ibarangay-be/util"
)

type RoleService struct {
	repo *RoleRepository
}

func NewRoleService(repo *RoleRepository) *RoleService {
	return &RoleService{repo: repo}
}

func (s *RoleService) Create(name string, permissions []string) (*Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, util.Validationf("role name is required")
	}

	role := &Role{Name: name, Permissions: permissions}
	if err := s.repo.Create(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) GetAll() ([]Role, error) {
	return s.repo.GetAll()
}

func (s *RoleService) GetByID(id int) (*Role, error) {
	role, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NotFoundf("role %d not found", id)
		}
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Update(id int, name string, permissions []string) (*Role, error) {
	role, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) != "" {
		role.Name = name
	}
	if permissions != nil {
		role.Permissions = permissions
	}

	if err := s.repo.Update(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Delete(id int) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
