package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/userhub/domain"
)

// MinPasswordScore is the zxcvbn score a password must reach to be accepted.
const MinPasswordScore = 3

// AccountServiceImpl implements domain.AccountService
type AccountServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	strengthSvc domain.StrengthChecker
	tokenSvc    domain.TokenService
	verifier    domain.PhoneVerifier
	audit       domain.AuditLogger
	tokenTTL    time.Duration
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	strengthSvc domain.StrengthChecker,
	tokenSvc domain.TokenService,
	verifier domain.PhoneVerifier,
	audit domain.AuditLogger,
	tokenTTL time.Duration,
) domain.AccountService {
	return &AccountServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		strengthSvc: strengthSvc,
		tokenSvc:    tokenSvc,
		verifier:    verifier,
		audit:       audit,
		tokenTTL:    tokenTTL,
	}
}

// ListUsers implements domain.AccountService, returning users in store order
func (s *AccountServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return users, nil
}

// Profile implements domain.AccountService
func (s *AccountServiceImpl) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err)
	}
	return user, nil
}

// Register implements domain.AccountService. Each step is a hard gate; the
// verification send is the one exception, deliberately not gating the
// response (the account stays unverified if it fails).
func (s *AccountServiceImpl) Register(ctx context.Context, name, password, phoneNumber string, roles []domain.Role) (*domain.User, error) {
	existing, err := s.userRepo.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, domain.ErrNameTaken
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.Internal(err)
	}

	score, feedback := s.strengthSvc.Evaluate(password, name, phoneNumber)
	if score < MinPasswordScore {
		return nil, domain.WeakPassword(feedback)
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &domain.User{
		Name:         name,
		PasswordHash: hashed,
		PhoneNumber:  phoneNumber,
		Roles:        domain.DedupRoles(roles),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The pre-check and the insert race; the unique constraint maps to
		// the same Conflict the pre-check reports.
		if errors.Is(err, domain.ErrNameTaken) {
			return nil, domain.ErrNameTaken
		}
		return nil, domain.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.UserRegisteredEvent, user.ID).WithName(name).WithPhone(phoneNumber))

	if err := s.verifier.SendCode(ctx, phoneNumber); err != nil {
		// Fire-and-forget: the account is kept (unverified) and the failure
		// is recorded; verifyPhoneNumber can be retried against a fresh code.
		s.audit.LogEvent(domain.NewAuditEvent(domain.CodeSendFailureEvent, user.ID).WithPhone(phoneNumber).WithError(err))
	}

	return user, nil
}

// Login implements domain.AccountService. Unknown usernames and bad
// passwords fail differently; the distinction is part of the observable
// contract.
func (s *AccountServiceImpl) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByName(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit.LogEvent(domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).WithName(username).WithError(err))
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.LogEvent(domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).WithName(username).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenSvc.Issue(user.ID, user.Roles)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("failed to sign token: %w", err))
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithName(username))

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

// VerifyPhone implements domain.AccountService. A missing user and a phone
// mismatch fail identically so callers cannot probe for usernames.
func (s *AccountServiceImpl) VerifyPhone(ctx context.Context, username, phoneNumber, code string) (*domain.VerifiedUser, error) {
	user, err := s.userRepo.FindByName(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err)
	}
	if user.PhoneNumber != phoneNumber {
		return nil, domain.ErrUserNotFound
	}

	approved, err := s.verifier.CheckCode(ctx, phoneNumber, code)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("verification check failed: %w", err))
	}
	if !approved {
		s.audit.LogEvent(domain.NewAuditEvent(domain.PhoneVerifyFailureEvent, user.ID).WithPhone(phoneNumber).WithError(domain.ErrInvalidCode))
		return nil, domain.ErrInvalidCode
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, domain.Internal(fmt.Errorf("failed to persist verified flag: %w", err))
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.PhoneVerifiedEvent, user.ID).WithName(username).WithPhone(phoneNumber))

	return &domain.VerifiedUser{
		Name:        user.Name,
		PhoneNumber: user.PhoneNumber,
		Verified:    true,
	}, nil
}

// Logout implements domain.AccountService. Stamping last-logout invalidates
// every credential issued before now.
func (s *AccountServiceImpl) Logout(ctx context.Context, userID uint) error {
	if err := s.userRepo.SetLastLogout(ctx, userID, time.Now()); err != nil {
		return domain.Internal(err)
	}
	s.audit.LogEvent(domain.NewAuditEvent(domain.UserLogoutEvent, userID))
	return nil
}

// Authenticate implements domain.AccountService: cryptographic verification
// first, then the freshness check against the user's last-logout marker.
func (s *AccountServiceImpl) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	identity, err := s.tokenSvc.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, domain.Internal(err)
	}

	if user.LastLogout != nil && identity.IssuedAt.Before(*user.LastLogout) {
		return nil, domain.ErrSessionExpired
	}

	return identity, nil
}
