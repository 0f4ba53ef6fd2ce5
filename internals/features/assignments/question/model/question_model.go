package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionModel — soal milik satu assignment. Payload jawaban/opsi disimpan
// sebagai JSON karena bentuknya beda per tipe soal.
type QuestionModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"assignment_id"`
	Type             string         `gorm:"type:varchar(20);not null" json:"type"`
	Text             string         `gorm:"type:text;not null" json:"text"`
	Points           int            `gorm:"not null;default:1" json:"points"`
	OrderIndex       int            `gorm:"not null;default:0" json:"order_index"`
	Subject          *string        `gorm:"type:varchar(20)" json:"subject,omitempty"`
	Topic            *string        `gorm:"type:varchar(100)" json:"topic,omitempty"`
	Difficulty       string         `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"difficulty"`
	Options          datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer    datatypes.JSON `gorm:"type:jsonb" json:"correct_answer,omitempty"`
	Explanation      *string        `gorm:"type:text" json:"explanation,omitempty"`
	Formula          *string        `gorm:"type:text" json:"formula,omitempty"`
	ChemicalEquation *string        `gorm:"type:text" json:"chemical_equation,omitempty"`
	DiagramData      datatypes.JSON `gorm:"type:jsonb" json:"diagram_data,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuestionModel) TableName() string {
	return "questions"
}

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
