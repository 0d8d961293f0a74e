package mocks

import (
	"github.com/you/userhub/domain"
)

// MockAuditLogger implements domain.AuditLogger interface for testing
type MockAuditLogger struct {
	// Events records every logged event, in call order.
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records the event
func (m *MockAuditLogger) LogEvent(event *domain.AuditEvent) {
	m.Events = append(m.Events, event)
}

// HasEvent reports whether an event of the given type was logged
func (m *MockAuditLogger) HasEvent(eventType domain.AuditEventType) bool {
	for _, e := range m.Events {
		if e.EventType == eventType {
			return true
		}
	}
	return false
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
