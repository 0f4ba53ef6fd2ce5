package dto

import (
	"github.com/google/uuid"

	userDTO "sciedu_backend/internals/features/users/user/dto"
)

type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Name     string     `json:"name" validate:"required,min=2,max=100"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     string     `json:"role" validate:"required,oneof=TEACHER STUDENT"`
	SchoolID *uuid.UUID `json:"school_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	User         userDTO.UserResponse `json:"user"`
}
