package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/userhub/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint         `gorm:"primaryKey"`
	Name         string       `gorm:"uniqueIndex;size:255"`
	PasswordHash string       `gorm:"column:password"`
	PhoneNumber  string       `gorm:"index;size:32"`
	Verified     bool         `gorm:"index"`
	LastLogout   *time.Time
	Roles        []DBUserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time    `gorm:"index"`
	UpdatedAt    time.Time    `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBUserRole is one role-join row; a user's role set is the bare Role values
// of its rows.
type DBUserRole struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"index"`
	Role   string `gorm:"size:32"`
}

// TableName returns the table name for GORM
func (DBUserRole) TableName() string {
	return "user_roles"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. A unique-constraint violation on
// the name column maps to domain.ErrNameTaken; the caller's pre-check and the
// insert race to the same externally observed error.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrNameTaken
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByName implements domain.UserRepository
func (r *UserRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Preload("Roles").Where("name = ?", name).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindAll implements domain.UserRepository, preserving store order
func (r *UserRepositoryImpl) FindAll(ctx context.Context) ([]*domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Preload("Roles").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, len(dbUsers))
	for i := range dbUsers {
		users[i] = r.dbToDomain(&dbUsers[i])
	}
	return users, nil
}

// MarkVerified implements domain.UserRepository (idempotent)
func (r *UserRepositoryImpl) MarkVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("verified", true).Error
}

// SetLastLogout implements domain.UserRepository
func (r *UserRepositoryImpl) SetLastLogout(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("last_logout", at).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	roles := make([]DBUserRole, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = DBUserRole{Role: string(role)}
	}
	return &DBUser{
		ID:           user.ID,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		PhoneNumber:  user.PhoneNumber,
		Verified:     user.Verified,
		LastLogout:   user.LastLogout,
		Roles:        roles,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	roles := make([]domain.Role, len(dbUser.Roles))
	for i, row := range dbUser.Roles {
		roles[i] = domain.Role(row.Role)
	}
	return &domain.User{
		ID:           dbUser.ID,
		Name:         dbUser.Name,
		PasswordHash: dbUser.PasswordHash,
		PhoneNumber:  dbUser.PhoneNumber,
		Verified:     dbUser.Verified,
		LastLogout:   dbUser.LastLogout,
		Roles:        roles,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
