package mocks

import (
	"context"
	"time"

	"github.com/you/userhub/domain"
)

// MockRateLimiter implements domain.RateLimiter interface for testing
type MockRateLimiter struct {
	AdmitFunc func(ctx context.Context, clientKey string, maxRequests int, window time.Duration) error

	// Keys records every admitted or rejected client key, in call order.
	Keys []string
}

// NewMockRateLimiter creates a new MockRateLimiter with default behaviors
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

// Admit checks a client key against the window
func (m *MockRateLimiter) Admit(ctx context.Context, clientKey string, maxRequests int, window time.Duration) error {
	m.Keys = append(m.Keys, clientKey)
	if m.AdmitFunc != nil {
		return m.AdmitFunc(ctx, clientKey, maxRequests, window)
	}
	// Default behavior: admit
	return nil
}

// Compile-time interface compliance verification
var _ domain.RateLimiter = (*MockRateLimiter)(nil)
