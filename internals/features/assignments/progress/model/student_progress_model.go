package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "sciedu_backend/internals/features/users/user/model"
)

// StudentProgressModel — satu baris per (siswa, assignment).
type StudentProgressModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_student_assignment" json:"student_id"`
	AssignmentID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_student_assignment;index" json:"assignment_id"`
	Status       string         `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`
	TotalPoints  int            `gorm:"not null;default:0" json:"total_points"`
	EarnedPoints int            `gorm:"not null;default:0" json:"earned_points"`
	Percentage   float64        `gorm:"not null;default:0" json:"percentage"`
	Answers      datatypes.JSON `gorm:"type:jsonb" json:"answers,omitempty"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	SubmittedAt  *time.Time     `json:"submitted_at,omitempty"`
	GradedAt     *time.Time     `json:"graded_at,omitempty"`

	Student *userModel.UserModel `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StudentProgressModel) TableName() string {
	return "student_progress"
}

func (m *StudentProgressModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
