package domain

import "time"

// Role is a named permission group attached to a user.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleInstructor Role = "INSTRUCTOR"
	RoleStudent    Role = "STUDENT"
)

// AllRoles lists every role the system knows about.
var AllRoles = []Role{RoleAdmin, RoleInstructor, RoleStudent}

// IsValid reports whether r is one of the known role values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// DedupRoles collapses duplicates while preserving first-occurrence order.
// Role membership is set-semantics; the store never holds the same role twice
// for one user.
func DedupRoles(roles []Role) []Role {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// RolesIntersect reports whether held shares at least one role with required.
func RolesIntersect(held, required []Role) bool {
	for _, need := range required {
		for _, have := range held {
			if have == need {
				return true
			}
		}
	}
	return false
}

// User represents a user in the system. Name is unique; Roles carries the
// deduplicated role set. LastLogout, when set, invalidates credentials issued
// before it.
type User struct {
	ID           uint
	Name         string
	PasswordHash string
	PhoneNumber  string
	Verified     bool
	Roles        []Role
	LastLogout   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the decoded payload of a verified credential.
type Identity struct {
	UserID   uint
	Roles    []Role
	IssuedAt time.Time
}

// AuthResult represents a successful login outcome.
type AuthResult struct {
	User      *User
	Token     string
	ExpiresIn int64
}

// VerifiedUser is the projection returned by phone verification.
type VerifiedUser struct {
	Name        string
	PhoneNumber string
	Verified    bool
}
