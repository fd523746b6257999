package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/anighost1/pp-be/internal/db/controller/user"
	"github.com/anighost1/pp-be/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate verifies username and password and returns the user with its
// full access graph loaded.
func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	db := p.db.WithContext(ctx)

	u, err := user.GetByUsername(db, username)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	// Check if user is active
	if !u.Active {
		return nil, ErrUserAccountDisabled
	}

	// Verify password
	if !u.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	subject, err := user.GetSubject(db, u.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", u.ID, err)
	}

	return subject, nil
}
