package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	assignmentDTO "sciedu_backend/internals/features/assignments/assignment/dto"
	assignmentModel "sciedu_backend/internals/features/assignments/assignment/model"
	assignmentService "sciedu_backend/internals/features/assignments/assignment/service"
	progressModel "sciedu_backend/internals/features/assignments/progress/model"
	questionModel "sciedu_backend/internals/features/assignments/question/model"
	helper "sciedu_backend/internals/helpers"
	helperAuth "sciedu_backend/internals/helpers/auth"
)

type AssignmentController struct {
	DB *gorm.DB
}

var validate = validator.New()

type idCount struct {
	AssignmentID uuid.UUID
	Cnt          int64
}

// countByAssignment hitung baris per assignment_id untuk sekumpulan id.
func (h *AssignmentController) countByAssignment(model any, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []idCount
	if err := h.DB.Model(model).
		Select("assignment_id, COUNT(*) AS cnt").
		Where("assignment_id IN ?", ids).
		Group("assignment_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.AssignmentID] = r.Cnt
	}
	return out, nil
}

// detailResponse reload assignment lengkap dengan relasi + count, dipakai
// setelah mutasi supaya response-nya sama bentuknya dengan GET detail.
func (h *AssignmentController) detailResponse(id uuid.UUID) (assignmentDTO.AssignmentResponse, error) {
	var m assignmentModel.AssignmentModel
	if err := h.DB.Preload("Teacher").Preload("Class").
		First(&m, "id = ?", id).Error; err != nil {
		return assignmentDTO.AssignmentResponse{}, err
	}
	qCounts, err := h.countByAssignment(&questionModel.QuestionModel{}, []uuid.UUID{m.ID})
	if err != nil {
		return assignmentDTO.AssignmentResponse{}, err
	}
	pCounts, err := h.countByAssignment(&progressModel.StudentProgressModel{}, []uuid.UUID{m.ID})
	if err != nil {
		return assignmentDTO.AssignmentResponse{}, err
	}
	return assignmentDTO.FromAssignmentModel(m, qCounts[m.ID], pCounts[m.ID]), nil
}

// GET /api/assignments
func (h *AssignmentController) List(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helperAuth.GetRoleFromToken(c)
	paging := helper.ResolvePaging(c, 10, 100)

	q := h.DB.Model(&assignmentModel.AssignmentModel{}).
		Scopes(assignmentService.VisibilityScope(h.DB, role, userID))

	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		q = q.Where("assignments.subject = ?", subject)
	}
	if classID := strings.TrimSpace(c.Query("class_id")); classID != "" {
		cid, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("assignments.class_id = ?", cid)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(assignments.title) LIKE ?", like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung data")
	}

	var items []assignmentModel.AssignmentModel
	if err := q.Preload("Teacher").Preload("Class").
		Order("assignments.created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data tugas")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, m := range items {
		ids = append(ids, m.ID)
	}
	qCounts, err := h.countByAssignment(&questionModel.QuestionModel{}, ids)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung soal")
	}
	pCounts, err := h.countByAssignment(&progressModel.StudentProgressModel{}, ids)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung progres")
	}

	out := make([]assignmentDTO.AssignmentResponse, 0, len(items))
	for _, m := range items {
		out = append(out, assignmentDTO.FromAssignmentModel(m, qCounts[m.ID], pCounts[m.ID]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/assignments/:id
func (h *AssignmentController) GetByID(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helperAuth.GetRoleFromToken(c)

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m assignmentModel.AssignmentModel
	if err := h.DB.Preload("Teacher").Preload("Class").
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil tugas")
	}

	switch role {
	case constants.RoleTeacher:
		if m.TeacherID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "Anda bukan pemilik tugas ini")
		}
	case constants.RoleStudent:
		ok, err := assignmentService.CanStudentView(h.DB, &m, userID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek akses")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Tugas ini tidak tersedia untuk Anda")
		}
	}

	qCounts, err := h.countByAssignment(&questionModel.QuestionModel{}, []uuid.UUID{m.ID})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung soal")
	}
	pCounts, err := h.countByAssignment(&progressModel.StudentProgressModel{}, []uuid.UUID{m.ID})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung progres")
	}
	return helper.JsonOK(c, "ok", assignmentDTO.FromAssignmentModel(m, qCounts[m.ID], pCounts[m.ID]))
}

// POST /api/assignments (TEACHER)
func (h *AssignmentController) Create(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req assignmentDTO.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := assignmentService.EnsureClassOwned(h.DB, req.ClassID, teacherID); err != nil {
		return err
	}

	m := req.ToModel(teacherID)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tugas")
	}
	return helper.JsonCreated(c, "Tugas berhasil dibuat", assignmentDTO.FromAssignmentModel(m, 0, 0))
}

// PUT /api/assignments/:id (TEACHER)
func (h *AssignmentController) Update(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := assignmentService.LoadOwnedAssignment(h.DB, id, teacherID)
	if err != nil {
		return err
	}

	var req assignmentDTO.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = req.Description
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.DueDate != nil {
		updates["due_date"] = req.DueDate
	}
	if len(updates) > 0 {
		if err := h.DB.Model(m).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update tugas")
		}
	}
	resp, err := h.detailResponse(m.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil tugas")
	}
	return helper.JsonUpdated(c, "Tugas diperbarui", resp)
}

// PATCH /api/assignments/:id/publish (TEACHER)
func (h *AssignmentController) SetPublished(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req assignmentDTO.SetPublishedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := assignmentService.SetPublished(h.DB, id, teacherID, *req.IsPublished)
	if err != nil {
		return err
	}

	msg := "Tugas di-unpublish"
	if m.IsPublished {
		msg = "Tugas berhasil dipublish"
	}
	resp, err := h.detailResponse(m.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil tugas")
	}
	return helper.JsonUpdated(c, msg, resp)
}

// DELETE /api/assignments/:id (TEACHER)
func (h *AssignmentController) Delete(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := assignmentService.DeleteAssignment(h.DB, id, teacherID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Tugas dihapus", nil)
}
