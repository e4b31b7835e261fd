package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
	"bookshelf/internal/stats"
)

// Dashboard is everything shown on the landing page of a signed-in user.
type Dashboard struct {
	Stats         stats.Snapshot   `json:"stats"`
	Recent        []model.Item     `json:"recent"`
	Reading       []stats.Progress `json:"reading"`
	WishlistCount int64            `json:"wishlist_count"`
	ActiveLoans   int64            `json:"active_loans"`
}

// DashboardService assembles the dashboard.
type DashboardService interface {
	Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

type dashboardService struct {
	itemRepo     repository.ItemRepository
	goalRepo     repository.GoalRepository
	wishlistRepo repository.WishlistRepository
	loanRepo     repository.LoanRepository
	recentLimit  int
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service. recentLimit bounds
// the recent items list.
func NewDashboardService(
	itemRepo repository.ItemRepository,
	goalRepo repository.GoalRepository,
	wishlistRepo repository.WishlistRepository,
	loanRepo repository.LoanRepository,
	recentLimit int,
) DashboardService {
	return &dashboardService{
		itemRepo:     itemRepo,
		goalRepo:     goalRepo,
		wishlistRepo: wishlistRepo,
		loanRepo:     loanRepo,
		recentLimit:  recentLimit,
		now:          time.Now,
	}
}

func (s *dashboardService) Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	items, err := s.itemRepo.ListForStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	year := s.now().Year()
	goal, err := s.goalRepo.FindByUserYear(ctx, userID, year)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get goal: %w", err)
		}
		goal = nil
	}

	wishlistCount, err := s.wishlistRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count wishlist: %w", err)
	}
	activeLoans, err := s.loanRepo.CountActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}

	return &Dashboard{
		Stats:         stats.Summarize(items, goal, year),
		Recent:        recent(items, s.recentLimit),
		Reading:       stats.ReadingProgress(items),
		WishlistCount: wishlistCount,
		ActiveLoans:   activeLoans,
	}, nil
}

// recent returns the n most recently created items, newest first.
func recent(items []model.Item, n int) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
