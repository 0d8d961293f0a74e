package mocks

import (
	"github.com/you/userhub/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: deterministic fake hash
	return "hashed_" + password, nil
}

// Verify compares a password against a hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: match the fake hash scheme
	return hashedPassword == "hashed_"+password
}

// MockStrengthChecker implements domain.StrengthChecker interface for testing
type MockStrengthChecker struct {
	EvaluateFunc func(password string, userInputs ...string) (int, string)
}

// NewMockStrengthChecker creates a new MockStrengthChecker with default behaviors
func NewMockStrengthChecker() *MockStrengthChecker {
	return &MockStrengthChecker{}
}

// Evaluate scores a password
func (m *MockStrengthChecker) Evaluate(password string, userInputs ...string) (int, string) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(password, userInputs...)
	}
	// Default behavior: strong enough
	return 4, "instant feedback"
}

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc  func(userID uint, roles []domain.Role) (string, error)
	VerifyFunc func(token string) (*domain.Identity, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue signs a credential
func (m *MockTokenService) Issue(userID uint, roles []domain.Role) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, roles)
	}
	// Default behavior: fixed token
	return "signed-token", nil
}

// Verify validates a credential
func (m *MockTokenService) Verify(token string) (*domain.Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var (
	_ domain.PasswordService  = (*MockPasswordService)(nil)
	_ domain.StrengthChecker  = (*MockStrengthChecker)(nil)
	_ domain.TokenService     = (*MockTokenService)(nil)
)
