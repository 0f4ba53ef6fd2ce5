package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubjectInfoModel — info kurikulum per mapel & jenjang.
type SubjectInfoModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Subject     string         `gorm:"type:varchar(20);not null;uniqueIndex:uq_subject_grade" json:"subject"`
	Grade       string         `gorm:"type:varchar(10);not null;uniqueIndex:uq_subject_grade" json:"grade"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Topics      datatypes.JSON `gorm:"type:jsonb" json:"topics"` // array string nama topik
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SubjectInfoModel) TableName() string {
	return "subject_infos"
}

func (m *SubjectInfoModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
