package mocks

import (
	"context"
	"time"

	"github.com/you/userhub/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	FindByNameFunc    func(ctx context.Context, name string) (*domain.User, error)
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.User, error)
	FindAllFunc       func(ctx context.Context) ([]*domain.User, error)
	MarkVerifiedFunc  func(ctx context.Context, userID uint) error
	SetLastLogoutFunc func(ctx context.Context, userID uint, at time.Time) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByName finds a user by name
func (m *MockUserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindAll returns all users
func (m *MockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	// Default behavior: empty list
	return []*domain.User{}, nil
}

// MarkVerified sets the user's verified flag
func (m *MockUserRepository) MarkVerified(ctx context.Context, userID uint) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// SetLastLogout stamps the user's last-logout marker
func (m *MockUserRepository) SetLastLogout(ctx context.Context, userID uint, at time.Time) error {
	if m.SetLastLogoutFunc != nil {
		return m.SetLastLogoutFunc(ctx, userID, at)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
