package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	UserRegisteredEvent     AuditEventType = "USER_REGISTERED"
	UserLoginEvent          AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent   AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent         AuditEventType = "USER_LOGOUT"
	PhoneVerifiedEvent      AuditEventType = "PHONE_VERIFIED"
	PhoneVerifyFailureEvent AuditEventType = "PHONE_VERIFICATION_FAILED"
	CodeSendFailureEvent    AuditEventType = "VERIFICATION_SEND_FAILED"
)

// AuditEvent records a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType
	UserID    uint
	Name      string
	Phone     string
	Timestamp time.Time
	Success   bool
	ErrorMsg  string
}

// AuditLogger defines operations for audit logging
type AuditLogger interface {
	LogEvent(event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError marks the event failed and records the cause
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithName sets the username field
func (e *AuditEvent) WithName(name string) *AuditEvent {
	e.Name = name
	return e
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}
