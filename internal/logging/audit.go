package logging

import (
	"github.com/rs/zerolog"

	"github.com/you/userhub/domain"
)

// AuditLogger writes audit events through zerolog
type AuditLogger struct {
	logger zerolog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger zerolog.Logger) domain.AuditLogger {
	return &AuditLogger{logger: logger.With().Str("component", "audit").Logger()}
}

// LogEvent implements domain.AuditLogger
func (a *AuditLogger) LogEvent(event *domain.AuditEvent) {
	evt := a.logger.Info()
	if !event.Success {
		evt = a.logger.Warn()
	}

	evt = evt.
		Str("event", string(event.EventType)).
		Uint("user_id", event.UserID).
		Bool("success", event.Success).
		Time("at", event.Timestamp)

	if event.Name != "" {
		evt = evt.Str("name", event.Name)
	}
	if event.Phone != "" {
		evt = evt.Str("phone", event.Phone)
	}
	if event.ErrorMsg != "" {
		evt = evt.Str("error", event.ErrorMsg)
	}

	evt.Msg("audit event")
}
