package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/userhub/user-api/internal/core/domain"
	"github.com/userhub/user-api/internal/core/dto"
	"github.com/userhub/user-api/internal/core/mapper"
	"github.com/userhub/user-api/internal/core/ports"
)

// GetUserByID loads a single user. Unknown and malformed IDs both end up as
// domain.ErrUserNotFound.
type GetUserByID struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewGetUserByID(repo ports.UserRepository, log zerolog.Logger) *GetUserByID {
	return &GetUserByID{repo: repo, log: log}
}

func (uc *GetUserByID) Execute(ctx context.Context, id string) (dto.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return dto.User{}, fmt.Errorf("get user %q: %w", id, err)
	}
	if u == nil {
		uc.log.Debug().Str("user_id", id).Msg("user not found")
		return dto.User{}, domain.ErrUserNotFound
	}
	return mapper.ToDTO(u), nil
}
