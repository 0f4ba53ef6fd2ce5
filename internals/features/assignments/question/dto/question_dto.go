package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sciedu_backend/internals/constants"
	questionModel "sciedu_backend/internals/features/assignments/question/model"
)

type CreateQuestionRequest struct {
	Type             string          `json:"type" validate:"required,oneof=MULTIPLE_CHOICE ESSAY CALCULATION DIAGRAM EQUATION TRUE_FALSE"`
	Text             string          `json:"text" validate:"required"`
	Points           int             `json:"points" validate:"required,min=1,max=100"`
	OrderIndex       int             `json:"order_index" validate:"min=0"`
	Subject          *string         `json:"subject" validate:"omitempty,oneof=BIOLOGY CHEMISTRY PHYSICS"`
	Topic            *string         `json:"topic" validate:"omitempty,max=100"`
	Difficulty       string          `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Options          []string        `json:"options" validate:"omitempty,dive,required"`
	CorrectAnswer    json.RawMessage `json:"correct_answer"`
	Explanation      *string         `json:"explanation"`
	Formula          *string         `json:"formula"`
	ChemicalEquation *string         `json:"chemical_equation"`
	DiagramData      json.RawMessage `json:"diagram_data"`
}

type UpdateQuestionRequest struct {
	Text             *string         `json:"text" validate:"omitempty"`
	Points           *int            `json:"points" validate:"omitempty,min=1,max=100"`
	OrderIndex       *int            `json:"order_index" validate:"omitempty,min=0"`
	Subject          *string         `json:"subject" validate:"omitempty,oneof=BIOLOGY CHEMISTRY PHYSICS"`
	Topic            *string         `json:"topic" validate:"omitempty,max=100"`
	Difficulty       *string         `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD"`
	Options          []string        `json:"options" validate:"omitempty,dive,required"`
	CorrectAnswer    json.RawMessage `json:"correct_answer"`
	Explanation      *string         `json:"explanation"`
	Formula          *string         `json:"formula"`
	ChemicalEquation *string         `json:"chemical_equation"`
	DiagramData      json.RawMessage `json:"diagram_data"`
}

// ValidatePayload cek bentuk options/correct_answer/diagram_data sesuai
// tipe soal. Return map field error ala validator biar envelope seragam.
func ValidatePayload(qType string, options []string, correctAnswer, diagramData json.RawMessage) map[string][]string {
	errs := map[string][]string{}

	switch qType {
	case constants.QuestionMultipleChoice:
		if len(options) < 2 {
			errs["options"] = append(errs["options"], "min_2_options")
		}
		var ans string
		if len(correctAnswer) == 0 || json.Unmarshal(correctAnswer, &ans) != nil {
			errs["correct_answer"] = append(errs["correct_answer"], "must_be_string")
		} else {
			found := false
			for _, opt := range options {
				if opt == ans {
					found = true
					break
				}
			}
			if !found {
				errs["correct_answer"] = append(errs["correct_answer"], "not_in_options")
			}
		}

	case constants.QuestionTrueFalse:
		var ans bool
		if len(correctAnswer) == 0 || json.Unmarshal(correctAnswer, &ans) != nil {
			errs["correct_answer"] = append(errs["correct_answer"], "must_be_boolean")
		}

	case constants.QuestionCalculation:
		var ans float64
		if len(correctAnswer) == 0 || json.Unmarshal(correctAnswer, &ans) != nil {
			errs["correct_answer"] = append(errs["correct_answer"], "must_be_number")
		}

	case constants.QuestionEquation:
		var ans string
		if len(correctAnswer) == 0 || json.Unmarshal(correctAnswer, &ans) != nil || ans == "" {
			errs["correct_answer"] = append(errs["correct_answer"], "must_be_string")
		}

	case constants.QuestionDiagram:
		if len(diagramData) == 0 || !json.Valid(diagramData) {
			errs["diagram_data"] = append(errs["diagram_data"], "required")
		}

	case constants.QuestionEssay:
		// jawaban esai bebas, correct_answer opsional (rubrik)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r CreateQuestionRequest) ToModel(assignmentID uuid.UUID) questionModel.QuestionModel {
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = constants.DifficultyMedium
	}
	m := questionModel.QuestionModel{
		AssignmentID:     assignmentID,
		Type:             r.Type,
		Text:             r.Text,
		Points:           r.Points,
		OrderIndex:       r.OrderIndex,
		Subject:          r.Subject,
		Topic:            r.Topic,
		Difficulty:       difficulty,
		Explanation:      r.Explanation,
		Formula:          r.Formula,
		ChemicalEquation: r.ChemicalEquation,
	}
	if r.Options != nil {
		raw, _ := json.Marshal(r.Options)
		m.Options = datatypes.JSON(raw)
	}
	if len(r.CorrectAnswer) > 0 {
		m.CorrectAnswer = datatypes.JSON(r.CorrectAnswer)
	}
	if len(r.DiagramData) > 0 {
		m.DiagramData = datatypes.JSON(r.DiagramData)
	}
	return m
}

// QuestionResponse — untuk siswa, correct_answer & explanation disembunyikan.
type QuestionResponse struct {
	ID               uuid.UUID      `json:"id"`
	AssignmentID     uuid.UUID      `json:"assignment_id"`
	Type             string         `json:"type"`
	Text             string         `json:"text"`
	Points           int            `json:"points"`
	OrderIndex       int            `json:"order_index"`
	Subject          *string        `json:"subject,omitempty"`
	Topic            *string        `json:"topic,omitempty"`
	Difficulty       string         `json:"difficulty"`
	Options          datatypes.JSON `json:"options,omitempty"`
	CorrectAnswer    datatypes.JSON `json:"correct_answer,omitempty"`
	Explanation      *string        `json:"explanation,omitempty"`
	Formula          *string        `json:"formula,omitempty"`
	ChemicalEquation *string        `json:"chemical_equation,omitempty"`
	DiagramData      datatypes.JSON `json:"diagram_data,omitempty"`
}

func FromQuestionModel(m questionModel.QuestionModel, includeAnswer bool) QuestionResponse {
	resp := QuestionResponse{
		ID:               m.ID,
		AssignmentID:     m.AssignmentID,
		Type:             m.Type,
		Text:             m.Text,
		Points:           m.Points,
		OrderIndex:       m.OrderIndex,
		Subject:          m.Subject,
		Topic:            m.Topic,
		Difficulty:       m.Difficulty,
		Options:          m.Options,
		Formula:          m.Formula,
		ChemicalEquation: m.ChemicalEquation,
		DiagramData:      m.DiagramData,
	}
	if includeAnswer {
		resp.CorrectAnswer = m.CorrectAnswer
		resp.Explanation = m.Explanation
	}
	return resp
}
