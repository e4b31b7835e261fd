package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookshelf/internal/auth"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
	"bookshelf/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password, confirm string) (*model.User, error) {
	args := m.Called(ctx, name, email, password, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, remember bool) (*auth.Session, *model.User, error) {
	args := m.Called(ctx, email, password, remember)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*auth.Session), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Session(user *model.User, remember bool) (*auth.Session, error) {
	args := m.Called(user, remember)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, in service.ProfileInput) (*model.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockItemService is a mock implementation of service.ItemService.
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) item(args mock.Arguments) (*model.Item, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) Create(ctx context.Context, ownerID uuid.UUID, in service.ItemInput) (*model.Item, error) {
	return m.item(m.Called(ctx, ownerID, in))
}

func (m *MockItemService) List(ctx context.Context, ownerID uuid.UUID, filter repository.ItemFilter) ([]model.Item, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemService) Get(ctx context.Context, callerID, itemID uuid.UUID) (*model.Item, error) {
	return m.item(m.Called(ctx, callerID, itemID))
}

func (m *MockItemService) Update(ctx context.Context, callerID, itemID uuid.UUID, in service.ItemInput) (*model.Item, error) {
	return m.item(m.Called(ctx, callerID, itemID, in))
}

func (m *MockItemService) Delete(ctx context.Context, callerID, itemID uuid.UUID) error {
	return m.Called(ctx, callerID, itemID).Error(0)
}

func (m *MockItemService) SetStatus(ctx context.Context, callerID, itemID uuid.UUID, status model.ItemStatus) (*model.Item, error) {
	return m.item(m.Called(ctx, callerID, itemID, status))
}

func (m *MockItemService) SetRating(ctx context.Context, callerID, itemID uuid.UUID, rating int) (*model.Item, error) {
	return m.item(m.Called(ctx, callerID, itemID, rating))
}

func (m *MockItemService) ToggleFavorite(ctx context.Context, callerID, itemID uuid.UUID) (*model.Item, error) {
	return m.item(m.Called(ctx, callerID, itemID))
}

func (m *MockItemService) Categories(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockDashboardService is a mock implementation of service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Get(ctx context.Context, userID uuid.UUID) (*service.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, userID uuid.UUID, format service.ExportFormat) (*service.Export, error) {
	args := m.Called(ctx, userID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Export), args.Error(1)
}

// MockLoanService is a mock implementation of service.LoanService.
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) Lend(ctx context.Context, callerID, itemID uuid.UUID, in service.LoanInput) (*model.Loan, error) {
	args := m.Called(ctx, callerID, itemID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Loan), args.Error(1)
}

func (m *MockLoanService) Return(ctx context.Context, callerID, loanID uuid.UUID) (*model.Loan, error) {
	args := m.Called(ctx, callerID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Loan), args.Error(1)
}

func (m *MockLoanService) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Loan, error) {
	args := m.Called(ctx, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Loan), args.Error(1)
}
