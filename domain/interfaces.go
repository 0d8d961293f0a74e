package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByName(ctx context.Context, name string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	MarkVerified(ctx context.Context, userID uint) error
	SetLastLogout(ctx context.Context, userID uint, at time.Time) error
}

// TokenService signs and validates the stateless credential
type TokenService interface {
	Issue(userID uint, roles []Role) (string, error)
	Verify(token string) (*Identity, error)
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// StrengthChecker scores a candidate password. Score runs 0 (trivial) to 4;
// feedback is a human-readable hint surfaced on rejection.
type StrengthChecker interface {
	Evaluate(password string, userInputs ...string) (score int, feedback string)
}

// PhoneVerifier is the external one-time-code provider
type PhoneVerifier interface {
	SendCode(ctx context.Context, phoneNumber string) error
	CheckCode(ctx context.Context, phoneNumber, code string) (bool, error)
}

// RateLimiter admits or rejects a request for a client key within a window
type RateLimiter interface {
	Admit(ctx context.Context, clientKey string, maxRequests int, window time.Duration) error
}

// AccountService defines the business logic behind the API operations
type AccountService interface {
	ListUsers(ctx context.Context) ([]*User, error)
	Profile(ctx context.Context, userID uint) (*User, error)
	Register(ctx context.Context, name, password, phoneNumber string, roles []Role) (*User, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	VerifyPhone(ctx context.Context, username, phoneNumber, code string) (*VerifiedUser, error)
	Logout(ctx context.Context, userID uint) error

	// Authenticate verifies a raw credential and applies the last-logout
	// freshness check against the user record.
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
