package mocks

import (
	"context"

	"github.com/you/userhub/domain"
)

// MockPhoneVerifier implements domain.PhoneVerifier interface for testing
type MockPhoneVerifier struct {
	SendCodeFunc  func(ctx context.Context, phoneNumber string) error
	CheckCodeFunc func(ctx context.Context, phoneNumber, code string) (bool, error)

	// SentTo records every SendCode destination, in call order.
	SentTo []string
}

// NewMockPhoneVerifier creates a new MockPhoneVerifier with default behaviors
func NewMockPhoneVerifier() *MockPhoneVerifier {
	return &MockPhoneVerifier{}
}

// SendCode triggers a verification code send
func (m *MockPhoneVerifier) SendCode(ctx context.Context, phoneNumber string) error {
	m.SentTo = append(m.SentTo, phoneNumber)
	if m.SendCodeFunc != nil {
		return m.SendCodeFunc(ctx, phoneNumber)
	}
	// Default behavior: success
	return nil
}

// CheckCode checks a submitted code
func (m *MockPhoneVerifier) CheckCode(ctx context.Context, phoneNumber, code string) (bool, error) {
	if m.CheckCodeFunc != nil {
		return m.CheckCodeFunc(ctx, phoneNumber, code)
	}
	// Default behavior: approved
	return true, nil
}

// Compile-time interface compliance verification
var _ domain.PhoneVerifier = (*MockPhoneVerifier)(nil)
