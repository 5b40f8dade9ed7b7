package storage

import (
	"context"

	"github.com/andika/rekber-backend/pkg/models"
)

// UserStore defines the minimal identity operations the engines depend on.
type UserStore interface {
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateUser persists a new user. Returns ErrUserExists on an ID collision.
	CreateUser(ctx context.Context, user *models.User) error
}
