package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/userhub/user-api/internal/core/domain"
	"github.com/userhub/user-api/internal/core/dto"
	"github.com/userhub/user-api/internal/core/mapper"
	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/pkg/metrics"
	"github.com/userhub/user-api/internal/pkg/validation"
)

type createUserRules struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// CreateUser validates the payload, persists a new user and returns its DTO.
type CreateUser struct {
	repo      ports.UserRepository
	validator *validation.Validator
	log       zerolog.Logger
}

func NewCreateUser(repo ports.UserRepository, log zerolog.Logger) *CreateUser {
	return &CreateUser{repo: repo, validator: validation.New(), log: log}
}

// Execute fails with a *domain.ValidationError when name or email is blank.
// Role falls back to domain.RoleUser.
func (uc *CreateUser) Execute(ctx context.Context, in ports.CreateUserInput) (dto.User, error) {
	rules := createUserRules{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
	}
	problems, err := uc.validator.Struct(rules)
	if err != nil {
		return dto.User{}, fmt.Errorf("create user: %w", err)
	}
	if len(problems) > 0 {
		return dto.User{}, domain.NewValidationError(problems...)
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = domain.RoleUser
	}

	created, err := uc.repo.Create(ctx, mapper.ToEntity(mapper.RawUser{
		Name:  rules.Name,
		Email: rules.Email,
		Role:  role,
	}))
	if err != nil {
		uc.log.Error().Err(err).Str("email", rules.Email).Msg("failed to create user")
		return dto.User{}, fmt.Errorf("create user: %w", err)
	}

	metrics.UsersCreatedTotal.WithLabelValues(created.Role).Inc()
	uc.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")

	return mapper.ToDTO(created), nil
}
