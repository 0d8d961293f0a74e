package domain

import "fmt"

// Stable machine-readable error codes surfaced to API clients.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidCode        = "INVALID_CODE"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeExpiredToken       = "EXPIRED_TOKEN"
	CodeExpiredSession     = "EXPIRED_SESSION"
	CodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	CodeInternal           = "INTERNAL"
)

// APIError is a typed error carried verbatim to the caller. Code is stable;
// Message is human-readable. Extensions satisfies the GraphQL engine's
// extended-error contract so the code lands in the error extensions.
type APIError struct {
	Code    string
	Message string
	cause   error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.cause }

func (e *APIError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// Is matches any APIError with the same code, so sentinel comparisons with
// errors.Is survive wrapping and dynamic messages.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// Authentication and authorization errors
var (
	ErrUnauthenticated = &APIError{Code: CodeUnauthenticated, Message: "you must be authenticated to access this field"}
	ErrForbidden       = &APIError{Code: CodeForbidden, Message: "you are not authorized to access this field"}
	ErrTokenInvalid    = &APIError{Code: CodeInvalidToken, Message: "invalid token"}
	ErrTokenExpired    = &APIError{Code: CodeExpiredToken, Message: "token has expired"}
	ErrSessionExpired  = &APIError{Code: CodeExpiredSession, Message: "session has expired, please log in again"}
)

// Account errors
var (
	ErrUserNotFound       = &APIError{Code: CodeNotFound, Message: "user not found"}
	ErrNameTaken          = &APIError{Code: CodeConflict, Message: "a user with that name already exists"}
	ErrInvalidCredentials = &APIError{Code: CodeInvalidCredentials, Message: "invalid credentials"}
	ErrInvalidCode        = &APIError{Code: CodeInvalidCode, Message: "invalid verification code"}
)

// Admission control
var ErrRateLimited = &APIError{Code: CodeRateLimited, Message: "rate limit reached, please try again later"}

// WeakPassword builds a WEAK_PASSWORD error carrying the scorer's feedback.
func WeakPassword(feedback string) *APIError {
	return &APIError{Code: CodeWeakPassword, Message: fmt.Sprintf("password is too weak: %s", feedback)}
}

// Internal wraps an unexpected store or provider failure. The cause is kept
// for logs; callers only see the generic message.
func Internal(err error) *APIError {
	return &APIError{Code: CodeInternal, Message: "internal server error", cause: err}
}
