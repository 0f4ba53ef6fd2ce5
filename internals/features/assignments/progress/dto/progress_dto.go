package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	progressModel "sciedu_backend/internals/features/assignments/progress/model"
	userDTO "sciedu_backend/internals/features/users/user/dto"
)

type SubmitProgressRequest struct {
	// map question_id → jawaban (bentuk bebas per tipe soal)
	Answers map[string]json.RawMessage `json:"answers" validate:"required,min=1"`
}

type ProgressResponse struct {
	ID           uuid.UUID         `json:"id"`
	StudentID    uuid.UUID         `json:"student_id"`
	AssignmentID uuid.UUID         `json:"assignment_id"`
	Status       string            `json:"status"`
	TotalPoints  int               `json:"total_points"`
	EarnedPoints int               `json:"earned_points"`
	Percentage   float64           `json:"percentage"`
	StartedAt    *time.Time        `json:"started_at,omitempty"`
	SubmittedAt  *time.Time        `json:"submitted_at,omitempty"`
	GradedAt     *time.Time        `json:"graded_at,omitempty"`
	Student      *userDTO.UserLite `json:"student,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func FromProgressModel(m progressModel.StudentProgressModel) ProgressResponse {
	resp := ProgressResponse{
		ID:           m.ID,
		StudentID:    m.StudentID,
		AssignmentID: m.AssignmentID,
		Status:       m.Status,
		TotalPoints:  m.TotalPoints,
		EarnedPoints: m.EarnedPoints,
		Percentage:   m.Percentage,
		StartedAt:    m.StartedAt,
		SubmittedAt:  m.SubmittedAt,
		GradedAt:     m.GradedAt,
		CreatedAt:    m.CreatedAt,
	}
	if m.Student != nil {
		lite := userDTO.ToUserLite(*m.Student)
		resp.Student = &lite
	}
	return resp
}
