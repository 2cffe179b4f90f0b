package users

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskhive/taskhive/pkg/auth"
)

// Store provides CRUD operations for user records.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the users table.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("auto-migrate users: %w", err)
	}
	return nil
}

// Create inserts a new user record.
func (s *Store) Create(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email. Returns nil, nil if no user exists.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by id. Returns nil, nil if no user exists.
func (s *Store) GetByID(ctx context.Context, id uint64) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

// ResolveIdentity implements auth.IdentityResolver with one indexed lookup
// per authorized request. Returns nil, nil when the id references nobody.
func (s *Store) ResolveIdentity(ctx context.Context, userID uint64) (*auth.Identity, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &auth.Identity{ID: user.ID, Email: user.Email}, nil
}
