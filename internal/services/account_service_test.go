package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/you/userhub/domain"
	"github.com/you/userhub/internal/mocks"
)

type serviceMocks struct {
	userRepo    *mocks.MockUserRepository
	passwordSvc *mocks.MockPasswordService
	strengthSvc *mocks.MockStrengthChecker
	tokenSvc    *mocks.MockTokenService
	verifier    *mocks.MockPhoneVerifier
	audit       *mocks.MockAuditLogger
}

func newServiceMocks() *serviceMocks {
	return &serviceMocks{
		userRepo:    mocks.NewMockUserRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		strengthSvc: mocks.NewMockStrengthChecker(),
		tokenSvc:    mocks.NewMockTokenService(),
		verifier:    mocks.NewMockPhoneVerifier(),
		audit:       mocks.NewMockAuditLogger(),
	}
}

func (m *serviceMocks) service() domain.AccountService {
	return NewAccountService(m.userRepo, m.passwordSvc, m.strengthSvc, m.tokenSvc, m.verifier, m.audit, time.Hour)
}

func storedUser() *domain.User {
	return &domain.User{
		ID:           7,
		Name:         "Greg Hirsch",
		PasswordHash: "hashed_password123",
		PhoneNumber:  "+15005550006",
		Roles:        []domain.Role{domain.RoleAdmin, domain.RoleStudent},
	}
}

func TestAccountServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		phone         string
		roles         []domain.Role
		setupMocks    func(*serviceMocks)
		expectedError error
		validate      func(t *testing.T, m *serviceMocks, user *domain.User)
	}{
		{
			name:     "successful registration deduplicates roles and sends one code",
			username: "Greg Hirsch",
			password: "a strong passphrase",
			phone:    "+15005550006",
			roles:    []domain.Role{domain.RoleStudent, domain.RoleAdmin, domain.RoleStudent},
			setupMocks: func(m *serviceMocks) {
				m.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					user.ID = 1
					return nil
				}
			},
			expectedError: nil,
			validate: func(t *testing.T, m *serviceMocks, user *domain.User) {
				if user == nil {
					t.Fatal("user is nil")
				}
				want := []domain.Role{domain.RoleStudent, domain.RoleAdmin}
				if !reflect.DeepEqual(user.Roles, want) {
					t.Errorf("roles = %v, want %v", user.Roles, want)
				}
				if user.PasswordHash != "hashed_a strong passphrase" {
					t.Errorf("unexpected hash %q", user.PasswordHash)
				}
				if user.Verified {
					t.Error("new user must be unverified")
				}
				if len(m.verifier.SentTo) != 1 || m.verifier.SentTo[0] != "+15005550006" {
					t.Errorf("verifier called with %v, want exactly one send to the supplied phone", m.verifier.SentTo)
				}
			},
		},
		{
			name:     "existing name is a conflict",
			username: "Greg Hirsch",
			password: "a strong passphrase",
			phone:    "+15005550006",
			roles:    []domain.Role{domain.RoleStudent},
			setupMocks: func(m *serviceMocks) {
				m.userRepo.FindByNameFunc = func(ctx context.Context, name string) (*domain.User, error) {
					return storedUser(), nil
				}
			},
			expectedError: domain.ErrNameTaken,
		},
		{
			name:     "weak password never reaches persistence or provider",
			username: "Greg Hirsch",
			password: "password",
			phone:    "+15005550006",
			roles:    []domain.Role{domain.RoleStudent},
			setupMocks: func(m *serviceMocks) {
				m.strengthSvc.EvaluateFunc = func(password string, userInputs ...string) (int, string) {
					return 1, "add another word or two"
				}
				m.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					t.Error("Create must not be called for a weak password")
					return nil
				}
			},
			expectedError: domain.WeakPassword("add another word or two"),
			validate: func(t *testing.T, m *serviceMocks, user *domain.User) {
				if len(m.verifier.SentTo) != 0 {
					t.Error("verifier must not be called for a weak password")
				}
			},
		},
		{
			name:     "weak password error surfaces scorer feedback",
			username: "Greg Hirsch",
			password: "password",
			phone:    "+15005550006",
			roles:    []domain.Role{domain.RoleStudent},
			setupMocks: func(m *serviceMocks) {
				m.strengthSvc.EvaluateFunc = func(password string, userInputs ...string) (int, string) {
					return 0, "this is a top-10 common password"
				}
			},
			expectedError: domain.WeakPassword(""),
			validate: func(t *testing.T, m *serviceMocks, user *domain.User) {},
		},
		{
			name:     "insert race maps the constraint violation to the same conflict",
			username: "Greg Hirsch",
			password: "a strong passphrase",
			phone:    "+15005550006",
			roles:    []domain.Role{domain.RoleStudent},
			setupMocks: func(m *serviceMocks) {
				m.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					return domain.ErrNameTaken
				}
			},
			expectedError: domain.ErrNameTaken,
		},
		{
			name:     "failed code send does not fail registration",
			username: "Greg Hirsch",
			password: "a strong passphrase",
			phone:    "+15005550006",
			roles:    []domain.Role{domain.RoleStudent},
			setupMocks: func(m *serviceMocks) {
				m.verifier.SendCodeFunc = func(ctx context.Context, phone string) error {
					return errors.New("provider unavailable")
				}
			},
			expectedError: nil,
			validate: func(t *testing.T, m *serviceMocks, user *domain.User) {
				if user == nil {
					t.Fatal("user is nil")
				}
				if !m.audit.HasEvent(domain.CodeSendFailureEvent) {
					t.Error("expected a send-failure audit event")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}

			user, err := m.service().Register(context.Background(), tt.username, tt.password, tt.phone, tt.roles)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("Register() error = %v, want %v", err, tt.expectedError)
				}
			} else if err != nil {
				t.Fatalf("Register() unexpected error = %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, m, user)
			}
		})
	}
}

func TestAccountServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMocks    func(*serviceMocks)
		expectedError error
		validate      func(t *testing.T, result *domain.AuthResult)
	}{
		{
			name:     "correct credentials issue a token with id and role set",
			username: "Greg Hirsch",
			password: "password123",
			setupMocks: func(m *serviceMocks) {
				m.userRepo.FindByNameFunc = func(ctx context.Context, name string) (*domain.User, error) {
					return storedUser(), nil
				}
				m.tokenSvc.IssueFunc = func(userID uint, roles []domain.Role) (string, error) {
					if userID != 7 {
						t.Errorf("Issue userID = %d, want 7", userID)
					}
					want := []domain.Role{domain.RoleAdmin, domain.RoleStudent}
					if !reflect.DeepEqual(roles, want) {
						t.Errorf("Issue roles = %v, want %v", roles, want)
					}
					return "signed-token", nil
				}
			},
			validate: func(t *testing.T, result *domain.AuthResult) {
				if result.Token != "signed-token" {
					t.Errorf("token = %q", result.Token)
				}
				if result.ExpiresIn != 3600 {
					t.Errorf("expiresIn = %d, want 3600", result.ExpiresIn)
				}
			},
		},
		{
			name:          "unknown username is not found",
			username:      "nobody",
			password:      "password123",
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:     "wrong password is invalid credentials",
			username: "Greg Hirsch",
			password: "wrong",
			setupMocks: func(m *serviceMocks) {
				m.userRepo.FindByNameFunc = func(ctx context.Context, name string) (*domain.User, error) {
					return storedUser(), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}

			result, err := m.service().Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("Login() error = %v, want %v", err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestAccountServiceImpl_VerifyPhone(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		phone         string
		code          string
		setupMocks    func(*serviceMocks)
		expectedError error
		validate      func(t *testing.T, m *serviceMocks, result *domain.VerifiedUser)
	}{
		{
			name:     "approved code marks verified",
			username: "Greg Hirsch",
			phone:    "+15005550006",
			code:     "123456",
			setupMocks: func(m *serviceMocks) {
				m.userRepo.FindByNameFunc = func(ctx context.Context, name string) (*domain.User, error) {
					return storedUser(), nil
				}
			},
			validate: func(t *testing.T, m *serviceMocks, result *domain.VerifiedUser) {
				if !result.Verified {
					t.Error("expected verified = true")
				}
				if result.Name != "Greg Hirsch" || result.PhoneNumber != "+15005550006" {
					t.Errorf("unexpected projection %+v", result)
				}
			},
		},
		{
			name:     "repeat verification stays verified",
			username: "Greg Hirsch",
			phone:    "+15005550006",
			code:     "123456",
			setupMocks: func(m *serviceMocks) {
				m.userRepo.FindByNameFunc = func(ctx context.Context, name string) (*domain.User, error) {
					u := storedUser()
					u.Verified = true
					return u, nil
				}
			},
			validate: func(t *testing.T, m *serviceMocks, result *domain.VerifiedUser) {
				if !result.Verified {
					t.Error("expected verified to remain true")
				}
			},
		},
		{
			name:          "unknown username is not found",
			username:      "nobody",
			phone:         "+15005550006",
			code:          "123456",
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:     "phone mismatch is the same not-found error",
			username: "Greg Hirsch",
			phone:    "+19999999999",
			code:     "123456",
			setupMocks: func(m *serviceMocks) {
				m.userRepo.FindByNameFunc = func(ctx context.Context, name string) (*domain.User, error) {
					return storedUser(), nil
				}
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:     "unapproved check is an invalid code",
			username: "Greg Hirsch",
			phone:    "+15005550006",
			code:     "000000",
			setupMocks: func(m *serviceMocks) {
				m.userRepo.FindByNameFunc = func(ctx context.Context, name string) (*domain.User, error) {
					return storedUser(), nil
				}
				m.verifier.CheckCodeFunc = func(ctx context.Context, phone, code string) (bool, error) {
					return false, nil
				}
			},
			expectedError: domain.ErrInvalidCode,
		},
		{
			name:     "persistence failure at the final step is internal",
			username: "Greg Hirsch",
			phone:    "+15005550006",
			code:     "123456",
			setupMocks: func(m *serviceMocks) {
				m.userRepo.FindByNameFunc = func(ctx context.Context, name string) (*domain.User, error) {
					return storedUser(), nil
				}
				m.userRepo.MarkVerifiedFunc = func(ctx context.Context, userID uint) error {
					return errors.New("connection reset")
				}
			},
			expectedError: domain.Internal(nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}

			result, err := m.service().VerifyPhone(context.Background(), tt.username, tt.phone, tt.code)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("VerifyPhone() error = %v, want %v", err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyPhone() unexpected error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, m, result)
			}
		})
	}
}

func TestAccountServiceImpl_Authenticate(t *testing.T) {
	issuedAt := time.Now().Add(-10 * time.Minute)
	identity := &domain.Identity{UserID: 7, Roles: []domain.Role{domain.RoleAdmin}, IssuedAt: issuedAt}

	tests := []struct {
		name          string
		setupMocks    func(*serviceMocks)
		expectedError error
	}{
		{
			name: "valid token for a fresh session",
			setupMocks: func(m *serviceMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.Identity, error) { return identity, nil }
				m.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return storedUser(), nil
				}
			},
		},
		{
			name: "token issued before last logout is an expired session",
			setupMocks: func(m *serviceMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.Identity, error) { return identity, nil }
				m.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					u := storedUser()
					loggedOut := issuedAt.Add(5 * time.Minute)
					u.LastLogout = &loggedOut
					return u, nil
				}
			},
			expectedError: domain.ErrSessionExpired,
		},
		{
			name: "token issued after last logout is accepted",
			setupMocks: func(m *serviceMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.Identity, error) { return identity, nil }
				m.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					u := storedUser()
					loggedOut := issuedAt.Add(-5 * time.Minute)
					u.LastLogout = &loggedOut
					return u, nil
				}
			},
		},
		{
			name: "verification failure propagates",
			setupMocks: func(m *serviceMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.Identity, error) {
					return nil, domain.ErrTokenExpired
				}
			},
			expectedError: domain.ErrTokenExpired,
		},
		{
			name: "token for a deleted user is invalid",
			setupMocks: func(m *serviceMocks) {
				m.tokenSvc.VerifyFunc = func(token string) (*domain.Identity, error) { return identity, nil }
			},
			expectedError: domain.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			tt.setupMocks(m)

			got, err := m.service().Authenticate(context.Background(), "some-token")

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("Authenticate() error = %v, want %v", err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() unexpected error = %v", err)
			}
			if got.UserID != 7 {
				t.Errorf("UserID = %d, want 7", got.UserID)
			}
		})
	}
}

func TestAccountServiceImpl_Profile(t *testing.T) {
	m := newServiceMocks()
	m.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		if id != 7 {
			t.Errorf("FindByID id = %d, want 7", id)
		}
		return storedUser(), nil
	}

	user, err := m.service().Profile(context.Background(), 7)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if user.Name != "Greg Hirsch" {
		t.Errorf("Name = %q", user.Name)
	}

	// Missing record for a valid token id is a not-found error.
	m2 := newServiceMocks()
	if _, err := m2.service().Profile(context.Background(), 404); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("Profile() error = %v, want ErrUserNotFound", err)
	}
}

func TestAccountServiceImpl_Logout(t *testing.T) {
	m := newServiceMocks()
	var stamped time.Time
	m.userRepo.SetLastLogoutFunc = func(ctx context.Context, userID uint, at time.Time) error {
		if userID != 7 {
			t.Errorf("SetLastLogout userID = %d, want 7", userID)
		}
		stamped = at
		return nil
	}

	if err := m.service().Logout(context.Background(), 7); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if time.Since(stamped) > time.Minute {
		t.Errorf("stamped time %v not near now", stamped)
	}
	if !m.audit.HasEvent(domain.UserLogoutEvent) {
		t.Error("expected a logout audit event")
	}
}

func TestAccountServiceImpl_ListUsers(t *testing.T) {
	m := newServiceMocks()
	m.userRepo.FindAllFunc = func(ctx context.Context) ([]*domain.User, error) {
		return []*domain.User{
			{ID: 1, Name: "a", Roles: []domain.Role{domain.RoleAdmin}},
			{ID: 2, Name: "b", Roles: []domain.Role{domain.RoleStudent}},
		}, nil
	}

	users, err := m.service().ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 || users[0].Name != "a" || users[1].Name != "b" {
		t.Errorf("unexpected users %v, want store order preserved", users)
	}
}
