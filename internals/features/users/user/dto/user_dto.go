package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "sciedu_backend/internals/features/users/user/model"
)

// UserLite dipakai sebagai ringkasan relasi (teacher/student di resource lain)
type UserLite struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func ToUserLite(m userModel.UserModel) UserLite {
	return UserLite{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Avatar    *string    `json:"avatar,omitempty"`
	SchoolID  *uuid.UUID `json:"school_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromUserModel(m userModel.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      m.Role,
		Avatar:    m.Avatar,
		SchoolID:  m.SchoolID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

type UpdateUserRequest struct {
	Name     *string    `json:"name" validate:"omitempty,min=2,max=100"`
	Avatar   *string    `json:"avatar" validate:"omitempty,url"`
	SchoolID *uuid.UUID `json:"school_id"`
}
