package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database.
// Role immutable setelah dibuat (tidak ada endpoint ubah role).
type UserModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string     `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Name     string     `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Password string     `gorm:"not null" json:"-" validate:"required,min=6"`
	Role     string     `gorm:"type:varchar(20);not null;default:'STUDENT'" json:"role" validate:"required,oneof=TEACHER STUDENT ADMIN"`
	Avatar   *string    `gorm:"type:text" json:"avatar,omitempty"`
	SchoolID *uuid.UUID `gorm:"type:uuid;index" json:"school_id,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate isi UUID kalau DB tidak punya gen_random_uuid (mis. sqlite saat test)
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleStudent
	}
	return nil
}
