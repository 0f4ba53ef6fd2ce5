package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "sciedu_backend/internals/features/school/classes/model"
	questionModel "sciedu_backend/internals/features/assignments/question/model"
	userModel "sciedu_backend/internals/features/users/user/model"
)

// AssignmentModel — tugas per kelas. total_points dihitung ulang saat publish.
type AssignmentModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Subject     string     `gorm:"type:varchar(20);not null" json:"subject"`
	Difficulty  string     `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"difficulty"`
	TotalPoints int        `gorm:"not null;default:0" json:"total_points"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsPublished bool       `gorm:"not null;default:false" json:"is_published"`

	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`

	Teacher   *userModel.UserModel          `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Class     *classModel.ClassModel        `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Questions []questionModel.QuestionModel `gorm:"foreignKey:AssignmentID" json:"questions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
