package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ibarangay-be/auth"
	"ibarangay-be/util"

	"github.com/redis/go-redis/v9"
)

type Emitter interface {
	Emit(event string, payload map[string]interface{})
}

type UserService struct {
	Repo   *UserRepository
	Redis  *redis.Client
	events Emitter
}

func NewUserService(repo *UserRepository, redisClient *redis.Client, events Emitter) *UserService {
	return &UserService{
		Repo:   repo,
		Redis:  redisClient,
		events: events,
	}
}

// Register creates a resident account awaiting staff approval.
func (s *UserService) Register(req RegisterRequest) (*User, error) {
	if _, err := s.Repo.GetByEmail(req.Email); err == nil {
		return nil, util.Validationf("email %s is already registered", req.Email)
	}

	hashedPassword, err := util.GenerateDeterministicHash(req.Password)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	u := &User{
		Email:       req.Email,
		Password:    hashedPassword,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Address:     req.Address,
		AccountType: AccountResident,
		Status:      StatusPendingApproval,
	}

	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	u.Password = ""
	return u, nil
}

// CreateStaff provisions a staff or admin account, active immediately.
func (s *UserService) CreateStaff(u *User) (*User, error) {
	if u.AccountType != AccountStaff && u.AccountType != AccountAdmin {
		return nil, util.Validationf("account type must be %s or %s", AccountStaff, AccountAdmin)
	}

	hashedPassword, err := util.GenerateDeterministicHash(u.Password)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}
	u.Password = hashedPassword
	u.Status = StatusActive

	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	u.Password = ""
	return u, nil
}

func (s *UserService) GetByID(id int64) (*User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NotFoundf("user %d not found", id)
		}
		return nil, err
	}
	u.Password = ""
	return u, nil
}

func (s *UserService) GetAll(filter Filter) ([]User, int, error) {
	users, total, err := s.Repo.GetAll(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, total, nil
}

// Approve activates a pending resident registration.
func (s *UserService) Approve(id int64) (*User, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusPendingApproval {
		return nil, util.StateConflictf("user %d is %s, only pending registrations can be approved", id, u.Status)
	}

	applied, err := s.Repo.SetStatus(id, StatusPendingApproval, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("user %d changed status concurrently, try again", id)
	}

	s.events.Emit("resident.approved", map[string]interface{}{
		"user_id": id,
		"phone":   u.Phone,
		"message": "Your barangay account registration was approved. You can now log in.",
	})

	return s.GetByID(id)
}

func (s *UserService) RejectRegistration(id int64, reason string) (*User, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusPendingApproval {
		return nil, util.StateConflictf("user %d is %s, only pending registrations can be rejected", id, u.Status)
	}

	applied, err := s.Repo.SetStatus(id, StatusPendingApproval, StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("failed to reject user: %w", err)
	}
	if !applied {
		return nil, util.StateConflictf("user %d changed status concurrently, try again", id)
	}

	message := "Your barangay account registration was rejected."
	if reason != "" {
		message = fmt.Sprintf("Your barangay account registration was rejected: %s", reason)
	}
	s.events.Emit("resident.rejected", map[string]interface{}{
		"user_id": id,
		"phone":   u.Phone,
		"message": message,
	})

	return s.GetByID(id)
}

func (s *UserService) Update(id int64, updated *User) (*User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NotFoundf("user %d not found", id)
		}
		return nil, err
	}

	if updated.Password != "" {
		hashedPassword, err := util.GenerateDeterministicHash(updated.Password)
		if err != nil {
			return nil, errors.New("failed to hash password")
		}
		u.Password = hashedPassword
	}
	if updated.Email != "" {
		u.Email = updated.Email
	}
	if updated.FirstName != "" {
		u.FirstName = updated.FirstName
	}
	if updated.LastName != "" {
		u.LastName = updated.LastName
	}
	if updated.Phone != "" {
		u.Phone = updated.Phone
	}
	if updated.Address != "" {
		u.Address = updated.Address
	}
	if updated.RoleID != nil {
		u.RoleID = updated.RoleID
	}

	if err := s.Repo.Update(u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetByID(id)
}

func (s *UserService) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *UserService) Login(email, password string) (*LoginResponse, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := util.VerifyPassword(u.Password, password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	switch u.Status {
	case StatusActive:
	case StatusPendingApproval:
		return nil, util.StateConflictf("account is awaiting staff approval")
	default:
		return nil, util.StateConflictf("account is %s", u.Status)
	}

	accessToken, err := auth.GenerateAccessToken(u.ID, u.Email, u.AccountType)
	if err != nil {
		return nil, errors.New("failed to generate access token")
	}

	refreshToken, err := auth.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, errors.New("failed to generate refresh token")
	}

	ctx := context.Background()
	key := fmt.Sprintf("refresh_token:%d", u.ID)
	if err := s.Redis.Set(ctx, key, refreshToken, 7*24*time.Hour).Err(); err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	u.Password = ""
	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u,
	}, nil
}

func (s *UserService) Logout(userID int64) error {
	ctx := context.Background()
	key := fmt.Sprintf("refresh_token:%d", userID)
	return s.Redis.Del(ctx, key).Err()
}

func (s *UserService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.New("invalid refresh token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return "", errors.New("invalid user ID in token")
	}

	ctx := context.Background()
	key := fmt.Sprintf("refresh_token:%d", userID)
	storedToken, err := s.Redis.Get(ctx, key).Result()
	if err != nil || storedToken != refreshToken {
		return "", errors.New("refresh token not found or invalid")
	}

	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return auth.GenerateAccessToken(u.ID, u.Email, u.AccountType)
}
