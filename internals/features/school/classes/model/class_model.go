package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "sciedu_backend/internals/features/users/user/model"
)

// ClassModel: kelas milik satu guru, opsional terkait sekolah
type ClassModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:120;not null" json:"name"`
	Grade       string     `gorm:"size:20;not null" json:"grade"`
	Subject     string     `gorm:"type:varchar(20);not null" json:"subject"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	TeacherID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"teacher_id"`
	SchoolID    *uuid.UUID `gorm:"type:uuid;index" json:"school_id,omitempty"`

	Teacher  *userModel.UserModel `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Students []ClassStudentModel  `gorm:"foreignKey:ClassID" json:"students,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
