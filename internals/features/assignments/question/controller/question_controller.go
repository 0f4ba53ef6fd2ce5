package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	assignmentModel "sciedu_backend/internals/features/assignments/assignment/model"
	assignmentService "sciedu_backend/internals/features/assignments/assignment/service"
	questionDTO "sciedu_backend/internals/features/assignments/question/dto"
	questionModel "sciedu_backend/internals/features/assignments/question/model"
	helper "sciedu_backend/internals/helpers"
	helperAuth "sciedu_backend/internals/helpers/auth"
)

type QuestionController struct {
	DB *gorm.DB
}

var validate = validator.New()

// resolveAssignment ambil parent assignment dari path param.
func (h *QuestionController) resolveAssignment(c *fiber.Ctx) (*assignmentModel.AssignmentModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("assignmentId")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tugas tidak valid")
	}
	var m assignmentModel.AssignmentModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal ambil tugas")
	}
	return &m, nil
}

// GET /api/assignments/:assignmentId/questions
//
// Guru pemilik melihat kunci jawaban; siswa hanya soal published di kelasnya.
func (h *QuestionController) List(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helperAuth.GetRoleFromToken(c)

	parent, err := h.resolveAssignment(c)
	if err != nil {
		return err
	}

	includeAnswer := false
	switch role {
	case constants.RoleTeacher:
		if parent.TeacherID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "Anda bukan pemilik tugas ini")
		}
		includeAnswer = true
	case constants.RoleAdmin:
		includeAnswer = true
	case constants.RoleStudent:
		ok, err := assignmentService.CanStudentView(h.DB, parent, userID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek akses")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Tugas ini tidak tersedia untuk Anda")
		}
	}

	var questions []questionModel.QuestionModel
	if err := h.DB.Where("assignment_id = ?", parent.ID).
		Order("order_index ASC, created_at ASC").
		Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil soal")
	}

	out := make([]questionDTO.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionDTO.FromQuestionModel(q, includeAnswer))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// GET /api/assignments/:assignmentId/questions/:id
func (h *QuestionController) GetByID(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helperAuth.GetRoleFromToken(c)

	parent, err := h.resolveAssignment(c)
	if err != nil {
		return err
	}

	includeAnswer := false
	switch role {
	case constants.RoleTeacher:
		if parent.TeacherID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "Anda bukan pemilik tugas ini")
		}
		includeAnswer = true
	case constants.RoleAdmin:
		includeAnswer = true
	case constants.RoleStudent:
		ok, err := assignmentService.CanStudentView(h.DB, parent, userID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek akses")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Tugas ini tidak tersedia untuk Anda")
		}
	}

	qid, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID soal tidak valid")
	}
	var q questionModel.QuestionModel
	if err := h.DB.First(&q, "id = ? AND assignment_id = ?", qid, parent.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil soal")
	}
	return helper.JsonOK(c, "ok", questionDTO.FromQuestionModel(q, includeAnswer))
}

// POST /api/assignments/:assignmentId/questions (TEACHER pemilik)
func (h *QuestionController) Create(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	parent, err := h.resolveAssignment(c)
	if err != nil {
		return err
	}
	if parent.TeacherID != teacherID {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda bukan pemilik tugas ini")
	}

	var req questionDTO.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if fieldErrs := questionDTO.ValidatePayload(req.Type, req.Options, req.CorrectAnswer, req.DiagramData); fieldErrs != nil {
		return helper.JsonValidationError(c, "Payload soal tidak sesuai tipe", fieldErrs)
	}

	m := req.ToModel(parent.ID)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat soal")
	}
	return helper.JsonCreated(c, "Soal berhasil dibuat", questionDTO.FromQuestionModel(m, true))
}

// loadOwnedQuestion ambil soal + cek kepemilikan lewat parent assignment.
func (h *QuestionController) loadOwnedQuestion(c *fiber.Ctx, teacherID uuid.UUID) (*questionModel.QuestionModel, error) {
	parent, err := h.resolveAssignment(c)
	if err != nil {
		return nil, err
	}
	if parent.TeacherID != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Anda bukan pemilik tugas ini")
	}

	qid, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID soal tidak valid")
	}
	var q questionModel.QuestionModel
	if err := h.DB.First(&q, "id = ? AND assignment_id = ?", qid, parent.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal ambil soal")
	}
	return &q, nil
}

// PUT /api/assignments/:assignmentId/questions/:id (TEACHER pemilik)
func (h *QuestionController) Update(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	q, err := h.loadOwnedQuestion(c, teacherID)
	if err != nil {
		return err
	}

	var req questionDTO.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// validasi ulang payload terhadap nilai efektif setelah update
	effOptions := req.Options
	if effOptions == nil && len(q.Options) > 0 {
		_ = json.Unmarshal(q.Options, &effOptions)
	}
	effAnswer := req.CorrectAnswer
	if len(effAnswer) == 0 {
		effAnswer = []byte(q.CorrectAnswer)
	}
	effDiagram := req.DiagramData
	if len(effDiagram) == 0 {
		effDiagram = []byte(q.DiagramData)
	}
	if fieldErrs := questionDTO.ValidatePayload(q.Type, effOptions, effAnswer, effDiagram); fieldErrs != nil {
		return helper.JsonValidationError(c, "Payload soal tidak sesuai tipe", fieldErrs)
	}

	updates := map[string]any{}
	if req.Text != nil {
		updates["text"] = strings.TrimSpace(*req.Text)
	}
	if req.Points != nil {
		updates["points"] = *req.Points
	}
	if req.OrderIndex != nil {
		updates["order_index"] = *req.OrderIndex
	}
	if req.Options != nil {
		raw, _ := json.Marshal(req.Options)
		updates["options"] = raw
	}
	if len(req.CorrectAnswer) > 0 {
		updates["correct_answer"] = []byte(req.CorrectAnswer)
	}
	if req.Subject != nil {
		updates["subject"] = req.Subject
	}
	if req.Topic != nil {
		updates["topic"] = req.Topic
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.Explanation != nil {
		updates["explanation"] = req.Explanation
	}
	if req.Formula != nil {
		updates["formula"] = req.Formula
	}
	if req.ChemicalEquation != nil {
		updates["chemical_equation"] = req.ChemicalEquation
	}
	if len(req.DiagramData) > 0 {
		updates["diagram_data"] = []byte(req.DiagramData)
	}
	if len(updates) > 0 {
		if err := h.DB.Model(q).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update soal")
		}
	}
	return helper.JsonUpdated(c, "Soal diperbarui", questionDTO.FromQuestionModel(*q, true))
}

// DELETE /api/assignments/:assignmentId/questions/:id (TEACHER pemilik)
func (h *QuestionController) Delete(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	q, err := h.loadOwnedQuestion(c, teacherID)
	if err != nil {
		return err
	}
	if err := h.DB.Delete(q).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hapus soal")
	}
	return helper.JsonDeleted(c, "Soal dihapus", nil)
}
