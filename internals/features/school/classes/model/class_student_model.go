package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "sciedu_backend/internals/features/users/user/model"
)

// ClassStudentModel: join enrollment siswa × kelas.
// Unik per (class_id, student_id); visibilitas tugas siswa bergantung baris ini.
type ClassStudentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_student;constraint:OnDelete:CASCADE" json:"class_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_student;index" json:"student_id"`

	Student *userModel.UserModel `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (ClassStudentModel) TableName() string {
	return "class_students"
}

func (m *ClassStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
