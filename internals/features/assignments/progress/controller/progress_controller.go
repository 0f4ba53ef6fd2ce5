package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	assignmentModel "sciedu_backend/internals/features/assignments/assignment/model"
	assignmentService "sciedu_backend/internals/features/assignments/assignment/service"
	progressDTO "sciedu_backend/internals/features/assignments/progress/dto"
	progressModel "sciedu_backend/internals/features/assignments/progress/model"
	questionModel "sciedu_backend/internals/features/assignments/question/model"
	helper "sciedu_backend/internals/helpers"
	helperAuth "sciedu_backend/internals/helpers/auth"
)

type ProgressController struct {
	DB *gorm.DB
}

var validate = validator.New()

// resolveVisibleAssignment — assignment harus published & siswa terdaftar.
func (h *ProgressController) resolveVisibleAssignment(c *fiber.Ctx, studentID uuid.UUID) (*assignmentModel.AssignmentModel, error) {
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
	ok, err := assignmentService.CanStudentView(h.DB, &m, studentID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal cek akses")
	}
	if !ok {
		return nil, fiber.NewError(fiber.StatusForbidden, "Tugas ini tidak tersedia untuk Anda")
	}
	return &m, nil
}

// POST /api/assignments/:assignmentId/progress/start (STUDENT)
func (h *ProgressController) Start(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	asg, err := h.resolveVisibleAssignment(c, studentID)
	if err != nil {
		return err
	}

	var prog progressModel.StudentProgressModel
	err = h.DB.Where("student_id = ? AND assignment_id = ?", studentID, asg.ID).
		First(&prog).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		prog = progressModel.StudentProgressModel{
			StudentID:    studentID,
			AssignmentID: asg.ID,
			Status:       constants.ProgressInProgress,
			TotalPoints:  asg.TotalPoints,
			StartedAt:    &now,
		}
		if err := h.DB.Create(&prog).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mulai pengerjaan")
		}
		return helper.JsonCreated(c, "Pengerjaan dimulai", progressDTO.FromProgressModel(prog))
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek progres")
	}

	// sudah ada baris: start idempoten selama belum submit
	if prog.Status == constants.ProgressSubmitted || prog.Status == constants.ProgressGraded {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tugas sudah dikumpulkan")
	}
	if prog.Status == constants.ProgressNotStarted {
		now := time.Now()
		if err := h.DB.Model(&prog).Updates(map[string]any{
			"status":     constants.ProgressInProgress,
			"started_at": &now,
		}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mulai pengerjaan")
		}
		prog.Status = constants.ProgressInProgress
		prog.StartedAt = &now
	}
	return helper.JsonOK(c, "Pengerjaan berlanjut", progressDTO.FromProgressModel(prog))
}

// autoGradable — tipe soal yang bisa dinilai otomatis dari kunci jawaban.
func autoGradable(qType string) bool {
	switch qType {
	case constants.QuestionMultipleChoice, constants.QuestionTrueFalse,
		constants.QuestionCalculation, constants.QuestionEquation:
		return true
	}
	return false
}

// answerMatches bandingkan jawaban siswa vs kunci, toleran format JSON.
func answerMatches(given json.RawMessage, key []byte) bool {
	if len(given) == 0 || len(key) == 0 {
		return false
	}
	var g, k any
	if json.Unmarshal(given, &g) != nil || json.Unmarshal(key, &k) != nil {
		return bytes.Equal(bytes.TrimSpace(given), bytes.TrimSpace(key))
	}
	switch kv := k.(type) {
	case string:
		gv, ok := g.(string)
		return ok && strings.EqualFold(strings.TrimSpace(gv), strings.TrimSpace(kv))
	case float64:
		gv, ok := g.(float64)
		return ok && math.Abs(gv-kv) < 1e-9
	case bool:
		gv, ok := g.(bool)
		return ok && gv == kv
	}
	return false
}

// POST /api/assignments/:assignmentId/progress/submit (STUDENT)
//
// Soal auto-gradable dinilai langsung; kalau semua soal auto-gradable,
// status langsung GRADED, selain itu menunggu penilaian guru.
func (h *ProgressController) Submit(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	asg, err := h.resolveVisibleAssignment(c, studentID)
	if err != nil {
		return err
	}

	var req progressDTO.SubmitProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var prog progressModel.StudentProgressModel
	if err := h.DB.Where("student_id = ? AND assignment_id = ?", studentID, asg.ID).
		First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Mulai pengerjaan dulu sebelum submit")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek progres")
	}
	if prog.Status == constants.ProgressSubmitted || prog.Status == constants.ProgressGraded {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tugas sudah dikumpulkan")
	}

	var questions []questionModel.QuestionModel
	if err := h.DB.Where("assignment_id = ?", asg.ID).Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil soal")
	}

	earned := 0
	total := 0
	allAuto := true
	for _, q := range questions {
		total += q.Points
		if !autoGradable(q.Type) {
			allAuto = false
			continue
		}
		if answerMatches(req.Answers[q.ID.String()], q.CorrectAnswer) {
			earned += q.Points
		}
	}

	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(earned)/float64(total)*10000) / 100
	}

	now := time.Now()
	rawAnswers, _ := json.Marshal(req.Answers)
	updates := map[string]any{
		"status":        constants.ProgressSubmitted,
		"total_points":  total,
		"earned_points": earned,
		"percentage":    pct,
		"answers":       rawAnswers,
		"submitted_at":  &now,
	}
	if allAuto {
		updates["status"] = constants.ProgressGraded
		updates["graded_at"] = &now
	}
	if err := h.DB.Model(&prog).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal simpan jawaban")
	}

	if err := h.DB.First(&prog, "id = ?", prog.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil progres")
	}
	return helper.JsonOK(c, "Jawaban terkumpul", progressDTO.FromProgressModel(prog))
}

// GET /api/progress/me (STUDENT)
func (h *ProgressController) ListMine(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 10, 100)

	q := h.DB.Model(&progressModel.StudentProgressModel{}).
		Where("student_id = ?", studentID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung data")
	}

	var rows []progressModel.StudentProgressModel
	if err := q.Order("updated_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil progres")
	}

	out := make([]progressDTO.ProgressResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, progressDTO.FromProgressModel(r))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/assignments/:assignmentId/progress (TEACHER pemilik)
func (h *ProgressController) ListByAssignment(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("assignmentId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas tidak valid")
	}
	if _, err := assignmentService.LoadOwnedAssignment(h.DB, id, teacherID); err != nil {
		return err
	}

	var rows []progressModel.StudentProgressModel
	if err := h.DB.Preload("Student").
		Where("assignment_id = ?", id).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil progres")
	}

	out := make([]progressDTO.ProgressResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, progressDTO.FromProgressModel(r))
	}
	return helper.JsonList(c, "ok", out, nil)
}
