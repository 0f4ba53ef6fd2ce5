package dto

import (
	"time"

	"github.com/google/uuid"

	assignmentModel "sciedu_backend/internals/features/assignments/assignment/model"
	classDTO "sciedu_backend/internals/features/school/classes/dto"
	userDTO "sciedu_backend/internals/features/users/user/dto"
)

type CreateAssignmentRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description" validate:"omitempty"`
	Subject     string     `json:"subject" validate:"required,oneof=BIOLOGY CHEMISTRY PHYSICS"`
	Difficulty  string     `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	DueDate     *time.Time `json:"due_date" validate:"omitempty"`
	ClassID     uuid.UUID  `json:"class_id" validate:"required"`
}

func (r CreateAssignmentRequest) ToModel(teacherID uuid.UUID) assignmentModel.AssignmentModel {
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = "MEDIUM"
	}
	return assignmentModel.AssignmentModel{
		Title:       r.Title,
		Description: r.Description,
		Subject:     r.Subject,
		Difficulty:  difficulty,
		DueDate:     r.DueDate,
		TeacherID:   teacherID,
		ClassID:     r.ClassID,
	}
}

type UpdateAssignmentRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=255"`
	Description *string    `json:"description" validate:"omitempty"`
	Subject     *string    `json:"subject" validate:"omitempty,oneof=BIOLOGY CHEMISTRY PHYSICS"`
	Difficulty  *string    `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	DueDate     *time.Time `json:"due_date" validate:"omitempty"`
}

type SetPublishedRequest struct {
	IsPublished *bool `json:"is_published" validate:"required"`
}

// AssignmentResponse — bentuk list/detail untuk FE, teacher & class diringkas.
type AssignmentResponse struct {
	ID            uuid.UUID           `json:"id"`
	Title         string              `json:"title"`
	Description   *string             `json:"description,omitempty"`
	Subject       string              `json:"subject"`
	Difficulty    string              `json:"difficulty"`
	TotalPoints   int                 `json:"total_points"`
	DueDate       *time.Time          `json:"due_date,omitempty"`
	IsPublished   bool                `json:"is_published"`
	Teacher       *userDTO.UserLite   `json:"teacher,omitempty"`
	Class         *classDTO.ClassLite `json:"class,omitempty"`
	QuestionCount int64               `json:"question_count"`
	ProgressCount int64               `json:"progress_count"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func FromAssignmentModel(m assignmentModel.AssignmentModel, questionCount, progressCount int64) AssignmentResponse {
	resp := AssignmentResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Subject:       m.Subject,
		Difficulty:    m.Difficulty,
		TotalPoints:   m.TotalPoints,
		DueDate:       m.DueDate,
		IsPublished:   m.IsPublished,
		QuestionCount: questionCount,
		ProgressCount: progressCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Teacher != nil {
		lite := userDTO.ToUserLite(*m.Teacher)
		resp.Teacher = &lite
	}
	if m.Class != nil {
		lite := classDTO.ToClassLite(*m.Class)
		resp.Class = &lite
	}
	return resp
}
