package dto

import (
	"time"

	"github.com/google/uuid"

	classModel "sciedu_backend/internals/features/school/classes/model"
	userDTO "sciedu_backend/internals/features/users/user/dto"
)

type CreateClassRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=120"`
	Grade       string     `json:"grade" validate:"required,min=1,max=20"`
	Subject     string     `json:"subject" validate:"required,oneof=BIOLOGY CHEMISTRY PHYSICS"`
	Description *string    `json:"description"`
	SchoolID    *uuid.UUID `json:"school_id"`
}

func (r CreateClassRequest) ToModel(teacherID uuid.UUID) classModel.ClassModel {
	return classModel.ClassModel{
		Name:        r.Name,
		Grade:       r.Grade,
		Subject:     r.Subject,
		Description: r.Description,
		TeacherID:   teacherID,
		SchoolID:    r.SchoolID,
	}
}

type UpdateClassRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=120"`
	Grade       *string    `json:"grade" validate:"omitempty,min=1,max=20"`
	Subject     *string    `json:"subject" validate:"omitempty,oneof=BIOLOGY CHEMISTRY PHYSICS"`
	Description *string    `json:"description"`
	SchoolID    *uuid.UUID `json:"school_id"`
}

type EnrollStudentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

// ClassLite dipakai sebagai ringkasan relasi di assignment
type ClassLite struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Grade string    `json:"grade"`
}

func ToClassLite(m classModel.ClassModel) ClassLite {
	return ClassLite{
		ID:    m.ID,
		Name:  m.Name,
		Grade: m.Grade,
	}
}

type ClassResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Grade        string             `json:"grade"`
	Subject      string             `json:"subject"`
	Description  *string            `json:"description,omitempty"`
	TeacherID    uuid.UUID          `json:"teacher_id"`
	SchoolID     *uuid.UUID         `json:"school_id,omitempty"`
	Teacher      *userDTO.UserLite  `json:"teacher,omitempty"`
	Students     []userDTO.UserLite `json:"students,omitempty"`
	StudentCount int64              `json:"student_count"`
	CreatedAt    time.Time          `json:"created_at"`
}

func FromClassModel(m classModel.ClassModel) ClassResponse {
	out := ClassResponse{
		ID:          m.ID,
		Name:        m.Name,
		Grade:       m.Grade,
		Subject:     m.Subject,
		Description: m.Description,
		TeacherID:   m.TeacherID,
		SchoolID:    m.SchoolID,
		CreatedAt:   m.CreatedAt,
	}
	if m.Teacher != nil {
		t := userDTO.ToUserLite(*m.Teacher)
		out.Teacher = &t
	}
	for _, cs := range m.Students {
		if cs.Student != nil {
			out.Students = append(out.Students, userDTO.ToUserLite(*cs.Student))
		}
	}
	out.StudentCount = int64(len(m.Students))
	return out
}
