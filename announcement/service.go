package announcement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ibarangay-be/notify"
	"ibarangay-be/util"

	"github.com/redis/go-redis/v9"
)

const (
	publishedCacheKey = "announcements:published"
	publishedCacheTTL = 5 * time.Minute
)

// PhoneLister supplies recipient numbers for emergency alert SMS fan-out.
// The user repository implements it.
type PhoneLister interface {
	ListActivePhones() ([]string, error)
}

type Service struct {
	repo   *Repository
	redis  *redis.Client
	events *notify.Service
	phones PhoneLister
}

func NewService(repo *Repository, redisClient *redis.Client, events *notify.Service, phones PhoneLister) *Service {
	return &Service{
		repo:   repo,
		redis:  redisClient,
		events: events,
		phones: phones,
	}
}

func (s *Service) Create(createdBy int64, title, content, category string) (*Announcement, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.Validationf("title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, util.Validationf("content is required")
	}
	if category == "" {
		category = "general"
	}

	a := &Announcement{
		Title:     title,
		Content:   content,
		Category:  category,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(a); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	return a, nil
}

func (s *Service) GetAll(filter Filter) ([]Announcement, int, error) {
	return s.repo.GetAll(filter)
}

func (s *Service) GetByID(id int64) (*Announcement, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NotFoundf("announcement %d not found", id)
		}
		return nil, err
	}
	return a, nil
}

// GetPublished serves the public feed through a short-lived Redis cache.
// A cache miss or unreachable Redis falls back to the database.
func (s *Service) GetPublished() ([]Announcement, error) {
	ctx := context.Background()

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, publishedCacheKey).Bytes()
		if err == nil {
			var announcements []Announcement
			if err := json.Unmarshal(cached, &announcements); err == nil {
				return announcements, nil
			}
		}
	}

	announcements, err := s.repo.GetPublished()
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(announcements); err == nil {
			if err := s.redis.Set(ctx, publishedCacheKey, data, publishedCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache published announcements: %v", err)
			}
		}
	}

	return announcements, nil
}

func (s *Service) invalidatePublishedCache() {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(context.Background(), publishedCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate announcement cache: %v", err)
	}
}

func (s *Service) Update(id int64, title, content, category string) (*Announcement, error) {
	a, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) != "" {
		a.Title = title
	}
	if strings.TrimSpace(content) != "" {
		a.Content = content
	}
	if category != "" {
		a.Category = category
	}

	if err := s.repo.Update(a); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	s.invalidatePublishedCache()
	return s.GetByID(id)
}

func (s *Service) Publish(id int64) (*Announcement, error) {
	a, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a.IsPublished {
		return nil, util.StateConflictf("announcement %d is already published", id)
	}

	if err := s.repo.Publish(id, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to publish announcement: %w", err)
	}

	s.invalidatePublishedCache()
	return s.GetByID(id)
}

func (s *Service) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	s.invalidatePublishedCache()
	return nil
}

// SendAlert publishes an emergency announcement and fans it out over SMS
// and the notification hub in one shot.
func (s *Service) SendAlert(createdBy int64, title, message string) (*Announcement, error) {
	a, err := s.Create(createdBy, title, message, "alert")
	if err != nil {
		return nil, err
	}

	if err := s.repo.Publish(a.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to publish alert: %w", err)
	}
	s.invalidatePublishedCache()

	var phones []string
	if s.phones != nil {
		phones, err = s.phones.ListActivePhones()
		if err != nil {
			log.Printf("Failed to list alert recipients, SMS fan-out skipped: %v", err)
			phones = nil
		}
	}

	s.events.Broadcast(title, message, phones)

	return s.GetByID(a.ID)
}
