package ports

import (
	"context"

	"github.com/userhub/user-api/internal/core/dto"
)

// CreateUserInput carries the already-decoded create payload.
// An empty Role means the default role applies.
type CreateUserInput struct {
	Name  string
	Email string
	Role  string
}

type CreateUserUseCase interface {
	Execute(ctx context.Context, in CreateUserInput) (dto.User, error)
}

type GetAllUsersUseCase interface {
	Execute(ctx context.Context) ([]dto.User, error)
}

type GetUserByIDUseCase interface {
	Execute(ctx context.Context, id string) (dto.User, error)
}
