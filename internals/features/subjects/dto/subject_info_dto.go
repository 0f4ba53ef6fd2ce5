package dto

import (
	"encoding/json"

	"gorm.io/datatypes"

	subjectModel "sciedu_backend/internals/features/subjects/model"
)

type UpsertSubjectInfoRequest struct {
	Subject     string   `json:"subject" validate:"required,oneof=BIOLOGY CHEMISTRY PHYSICS"`
	Grade       string   `json:"grade" validate:"required,max=10"`
	Title       string   `json:"title" validate:"required,max=255"`
	Description *string  `json:"description" validate:"omitempty"`
	Topics      []string `json:"topics" validate:"omitempty,dive,required"`
}

func (r UpsertSubjectInfoRequest) ToModel() subjectModel.SubjectInfoModel {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	raw, _ := json.Marshal(topics)
	return subjectModel.SubjectInfoModel{
		Subject:     r.Subject,
		Grade:       r.Grade,
		Title:       r.Title,
		Description: r.Description,
		Topics:      datatypes.JSON(raw),
	}
}
