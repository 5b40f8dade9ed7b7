// Package identity resolves users for the lifecycle engines and keeps the
// OTP/session bookkeeping the mobile clients rely on. The engines only ever
// see the Lookup interface; the TTL cache stays on this side of the boundary.
package identity

import (
	"context"

	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

// Lookup resolves an email to a registered user.
type Lookup interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service implements Lookup over the users table, with OTP/session state in a
// TTL cache.
type Service struct {
	Users    storage.UserStore
	Sessions *SessionCache
}

// NewService creates a new identity Service.
func NewService(users storage.UserStore, sessions *SessionCache) *Service {
	return &Service{Users: users, Sessions: sessions}
}

// Make sure we conform to the interface
var _ Lookup = (*Service)(nil)

// ByEmail resolves an email to a registered user, or storage.ErrNotFound.
func (s *Service) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.Users.GetUserByEmail(ctx, email)
}
