package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bookshelf/internal/cache"
	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	Name    string
	Bio     string
	Country string
}

// UserService exposes user lookups and profile edits.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	log   *logrus.Logger
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, log *logrus.Logger) UserService {
	return &userService{repo: repo, cache: cache, log: log}
}

// userCacheKey is the redis key holding the cached copy of a user.
func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// GetUser is read-through cached. The cached copy never carries the
// password hash.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.Name = name
	user.Bio = strings.TrimSpace(in.Bio)
	user.Country = strings.TrimSpace(in.Country)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, userCacheKey(id))
	return user, nil
}

// DeleteUser removes the user together with everything they own.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	s.log.WithField("user_id", id.String()).Info("user deleted")
	return nil
}
