// Package seed creates the demo account used for local development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
	"bookshelf/internal/service"
)

const (
	DemoName     = "Demo Reader"
	DemoEmail    = "admin@teste.com"
	DemoPassword = "123"

	demoGoalItems = 24
	demoGoalUnits = 8000
)

// Options selects what Run does besides ensuring the demo account exists.
type Options struct {
	// Reset deletes the demo account, and everything it owns, first.
	Reset bool
	// WithItems adds sample items when the account has none.
	WithItems bool
}

// Result reports what Run changed.
type Result struct {
	UserID       uuid.UUID
	Created      bool
	Reset        bool
	ItemsCreated int
}

// Seeder creates demo data through the repositories. Deletion goes through
// the user service so that no cached copy of the old account survives.
type Seeder struct {
	users    repository.UserRepository
	accounts service.UserService
	items    repository.ItemRepository
	log      *logrus.Logger
	now      func() time.Time
}

// New creates a Seeder.
func New(users repository.UserRepository, accounts service.UserService, items repository.ItemRepository, log *logrus.Logger) *Seeder {
	return &Seeder{users: users, accounts: accounts, items: items, log: log, now: time.Now}
}

// Run ensures the demo account exists. It is safe to run repeatedly.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	user, err := s.users.FindByEmail(ctx, DemoEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find demo user: %w", err)
	}

	if user != nil && opts.Reset {
		if err := s.accounts.DeleteUser(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("reset demo user: %w", err)
		}
		s.log.WithField("user_id", user.ID.String()).Info("demo user deleted")
		user = nil
		res.Reset = true
	}

	if user == nil {
		user, err = s.createDemoUser(ctx)
		if err != nil {
			return nil, err
		}
		res.Created = true
	}
	res.UserID = user.ID

	if opts.WithItems {
		n, err := s.createSampleItems(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		res.ItemsCreated = n
	}
	return res, nil
}

func (s *Seeder) createDemoUser(ctx context.Context) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		ID:           uuid.New(),
		Name:         DemoName,
		Email:        DemoEmail,
		PasswordHash: string(hash),
		Bio:          "Demo account for trying out the library",
		Active:       true,
	}
	goal := &model.Goal{
		UserID:      user.ID,
		Year:        s.now().Year(),
		TargetItems: demoGoalItems,
		TargetUnits: demoGoalUnits,
	}
	if err := s.users.CreateWithGoal(ctx, user, goal); err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}
	s.log.WithField("user_id", user.ID.String()).Info("demo user created")
	return user, nil
}

func (s *Seeder) createSampleItems(ctx context.Context, ownerID uuid.UUID) (int, error) {
	existing, err := s.items.ListForStats(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("list demo items: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	now := s.now()
	for i, sample := range SampleItems() {
		item := sample
		item.ID = uuid.New()
		item.OwnerID = ownerID
		status := item.Status
		item.Status = model.ItemStatusWant
		item.ApplyStatus(status, now)
		if err := s.items.Create(ctx, &item); err != nil {
			return i, fmt.Errorf("create demo item %q: %w", item.Title, err)
		}
	}
	return len(SampleItems()), nil
}

// SampleItems returns the demo collection.
func SampleItems() []model.Item {
	return []model.Item{
		{Title: "Dom Casmurro", Creator: "Machado de Assis", Category: "Classic", Status: model.ItemStatusDone, TotalUnits: 256, UnitsCompleted: 256, Rating: 5, Language: "pt"},
		{Title: "The Left Hand of Darkness", Creator: "Ursula K. Le Guin", Category: "Science Fiction", Status: model.ItemStatusDone, TotalUnits: 304, UnitsCompleted: 304, Rating: 4, Favorite: true, Language: "en"},
		{Title: "The Dispossessed", Creator: "Ursula K. Le Guin", Category: "Science Fiction", Status: model.ItemStatusInProgress, TotalUnits: 387, UnitsCompleted: 120, Language: "en"},
		{Title: "Invisible Cities", Creator: "Italo Calvino", Category: "Fiction", Status: model.ItemStatusWant, TotalUnits: 165, Language: "en"},
		{Title: "Grande Sertão: Veredas", Creator: "João Guimarães Rosa", Category: "Classic", Status: model.ItemStatusWant, TotalUnits: 624, Language: "pt"},
	}
}
