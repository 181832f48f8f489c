package handler

import "github.com/userhub/user-api/internal/core/dto"

type createUserRequest struct {
	Name  string `json:"name" example:"John"`
	Email string `json:"email" example:"john@x.com"`
	Role  string `json:"role,omitempty" example:"user"`
}

// Documentation-only shapes for the generated API reference.

type userEnvelope struct {
	Success bool     `json:"success" example:"true"`
	Message string   `json:"message" example:"User retrieved successfully"`
	Data    dto.User `json:"data"`
}

type userListEnvelope struct {
	Success bool       `json:"success" example:"true"`
	Message string     `json:"message" example:"Users retrieved successfully"`
	Data    []dto.User `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"user not found"`
	Data    any    `json:"data"`
}

