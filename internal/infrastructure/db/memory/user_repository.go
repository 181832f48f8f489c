// Package memory is a process-local ports.UserRepository. It assigns
// sequential integer IDs starting at 1, keeps users in insertion order and
// does not enforce email uniqueness, so it is meant for development and tests
// only.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/userhub/user-api/internal/core/domain"
)

type record struct {
	id        int64
	name      string
	email     string
	role      string
	createdAt time.Time
}

type UserRepository struct {
	mu      sync.RWMutex
	records []record
	nextID  int64
	now     func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1, now: time.Now}
}

// Create appends u and returns a copy carrying the next sequential ID.
func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now().UTC()
	}

	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}

	r.mu.Lock()
	rec := record{
		id:        r.nextID,
		name:      u.Name,
		email:     u.Email,
		role:      role,
		createdAt: createdAt,
	}
	r.nextID++
	r.records = append(r.records, rec)
	r.mu.Unlock()

	return toDomain(rec), nil
}

// FindAll returns users in insertion order.
func (r *UserRepository) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, toDomain(rec))
	}
	return out, nil
}

// FindByID matches the decimal form of an assigned ID exactly. Anything that
// is not the canonical decimal form of an integer is reported as absent.
func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != id {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.id == n {
			return toDomain(rec), nil
		}
	}
	return nil, nil
}

func toDomain(rec record) *domain.User {
	role := rec.role
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{
		ID:        strconv.FormatInt(rec.id, 10),
		Name:      rec.name,
		Email:     rec.email,
		Role:      role,
		CreatedAt: rec.createdAt,
	}
}
