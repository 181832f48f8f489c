package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/userhub/user-api/internal/core/dto"
	"github.com/userhub/user-api/internal/core/mapper"
	"github.com/userhub/user-api/internal/core/ports"
)

// GetAllUsers lists every stored user in the repository's order.
type GetAllUsers struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewGetAllUsers(repo ports.UserRepository, log zerolog.Logger) *GetAllUsers {
	return &GetAllUsers{repo: repo, log: log}
}

func (uc *GetAllUsers) Execute(ctx context.Context) ([]dto.User, error) {
	users, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all users: %w", err)
	}
	uc.log.Debug().Int("count", len(users)).Msg("users listed")
	return mapper.ToDTOs(users), nil
}
