package mocks

import (
	"context"

	"github.com/you/userhub/domain"
)

// MockAccountService implements domain.AccountService interface for testing
type MockAccountService struct {
	ListUsersFunc    func(ctx context.Context) ([]*domain.User, error)
	ProfileFunc      func(ctx context.Context, userID uint) (*domain.User, error)
	RegisterFunc     func(ctx context.Context, name, password, phoneNumber string, roles []domain.Role) (*domain.User, error)
	LoginFunc        func(ctx context.Context, username, password string) (*domain.AuthResult, error)
	VerifyPhoneFunc  func(ctx context.Context, username, phoneNumber, code string) (*domain.VerifiedUser, error)
	LogoutFunc       func(ctx context.Context, userID uint) error
	AuthenticateFunc func(ctx context.Context, token string) (*domain.Identity, error)
}

// NewMockAccountService creates a new MockAccountService with default behaviors
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

// ListUsers returns all users
func (m *MockAccountService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	// Default behavior: empty list
	return []*domain.User{}, nil
}

// Profile fetches a user's own record
func (m *MockAccountService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Register creates a new account
func (m *MockAccountService) Register(ctx context.Context, name, password, phoneNumber string, roles []domain.Role) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, password, phoneNumber, roles)
	}
	// Default behavior: echo the input back
	return &domain.User{ID: 1, Name: name, PhoneNumber: phoneNumber, Roles: domain.DedupRoles(roles)}, nil
}

// Login authenticates credentials
func (m *MockAccountService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// VerifyPhone checks a verification code
func (m *MockAccountService) VerifyPhone(ctx context.Context, username, phoneNumber, code string) (*domain.VerifiedUser, error) {
	if m.VerifyPhoneFunc != nil {
		return m.VerifyPhoneFunc(ctx, username, phoneNumber, code)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Logout stamps the last-logout marker
func (m *MockAccountService) Logout(ctx context.Context, userID uint) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// Authenticate verifies a raw credential
func (m *MockAccountService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.AccountService = (*MockAccountService)(nil)
