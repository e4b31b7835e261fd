package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookshelf/internal/auth"
	"bookshelf/internal/cache"
	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
)

const bcryptCost = 10

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy burns the same bcrypt work as a real comparison so that an
// unknown email takes as long to reject as a wrong password.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bookshelf-dummy-password"), bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthService handles sign-up and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password, confirm string) (*model.User, error)
	Login(ctx context.Context, email, password string, remember bool) (*auth.Session, *model.User, error)
	// Session issues a new session for an already authenticated user.
	Session(user *model.User, remember bool) (*auth.Session, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
	log        *logrus.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
// The cache is the one UserService reads through; login drops the user's
// entry so the new last_login_at is visible.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client, log *logrus.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cache,
		log:        log,
		now:        time.Now,
	}
}

// Register creates a user with a hashed password and the current year's
// default goal.
func (s *authService) Register(ctx context.Context, name, email, password, confirm string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, errors.Validation("name, email and password are required")
	}
	if password != confirm {
		return nil, errors.Validation("passwords do not match")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Active:       true,
	}
	goal := model.DefaultGoal(user.ID, s.now().Year())

	if err := s.userRepo.CreateWithGoal(ctx, user, &goal); err != nil {
		// Lost the race against a concurrent sign-up with the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.WithField("user_id", user.ID.String()).Info("user registered")
	return user, nil
}

// Login verifies the credentials and issues a session. Every failure,
// whatever its cause, is reported as ErrAuthFailure.
func (s *authService) Login(ctx context.Context, email, password string, remember bool) (*auth.Session, *model.User, error) {
	email = NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("find user: %w", err)
		}
		compareDummy(password)
		s.log.Warn("login failed: unknown email")
		return nil, nil, errors.ErrAuthFailure
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.WithField("user_id", user.ID.String()).Warn("login failed: wrong password")
		return nil, nil, errors.ErrAuthFailure
	}
	if !user.Active {
		s.log.WithField("user_id", user.ID.String()).Warn("login failed: inactive user")
		return nil, nil, errors.ErrAuthFailure
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, nil, fmt.Errorf("update last login: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(user.ID))
	user.LastLoginAt = &now

	session, err := s.Session(user, remember)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func (s *authService) Session(user *model.User, remember bool) (*auth.Session, error) {
	session, err := s.jwtService.IssueSession(user.ID, user.Email, remember)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return session, nil
}
