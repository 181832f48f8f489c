package ports

import (
	"context"

	"github.com/userhub/user-api/internal/core/domain"
)

// UserRepository is the only persistence contract the use cases see.
// Identifiers are opaque strings; each adapter owns their encoding.
type UserRepository interface {
	// Create persists a transient user and returns a new value carrying the
	// assigned ID. CreatedAt is set when zero. The input is never modified.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// FindAll returns every stored user. Adapters document their order.
	FindAll(ctx context.Context) ([]*domain.User, error)
	// FindByID returns (nil, nil) when no user matches, including when id is
	// not a valid identifier for the underlying store.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
