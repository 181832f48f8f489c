package mapper

import (
	"time"

	"github.com/userhub/user-api/internal/core/domain"
	"github.com/userhub/user-api/internal/core/dto"
)

// RawUser is a loosely filled record used to rebuild a domain user from
// arbitrary input. Zero fields are carried through as zero.
type RawUser struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// --- Domain → DTO ---

func ToDTO(u *domain.User) dto.User {
	return dto.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// ToDTOs maps users in order. The result is never nil so it renders as [].
func ToDTOs(users []*domain.User) []dto.User {
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, ToDTO(u))
	}
	return out
}

// --- Raw → Domain ---

func ToEntity(r RawUser) *domain.User {
	return &domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}
