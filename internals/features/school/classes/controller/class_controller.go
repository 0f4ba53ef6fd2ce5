package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	classDTO "sciedu_backend/internals/features/school/classes/dto"
	classModel "sciedu_backend/internals/features/school/classes/model"
	userModel "sciedu_backend/internals/features/users/user/model"
	helper "sciedu_backend/internals/helpers"
	helperAuth "sciedu_backend/internals/helpers/auth"
)

type ClassController struct {
	DB *gorm.DB
}

var validate = validator.New()

// GET /api/classes
//
// Visibility: guru → kelas miliknya; siswa → kelas yang dia ikuti.
func (h *ClassController) List(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helperAuth.GetRoleFromToken(c)
	paging := helper.ResolvePaging(c, 10, 100)

	q := h.DB.Model(&classModel.ClassModel{})

	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		q = q.Where("subject = ?", subject)
	}
	if grade := strings.TrimSpace(c.Query("grade")); grade != "" {
		q = q.Where("grade = ?", grade)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(description) LIKE ?", like, like)
	}

	switch role {
	case constants.RoleTeacher:
		q = q.Where("teacher_id = ?", userID)
	case constants.RoleStudent:
		q = q.Where("id IN (?)", h.DB.Model(&classModel.ClassStudentModel{}).
			Select("class_id").Where("student_id = ?", userID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung data")
	}

	var classes []classModel.ClassModel
	if err := q.Preload("Teacher").Preload("Students.Student").
		Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data kelas")
	}

	out := make([]classDTO.ClassResponse, 0, len(classes))
	for _, cls := range classes {
		out = append(out, classDTO.FromClassModel(cls))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/classes (TEACHER only — role dicek middleware group)
func (h *ClassController) Create(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Grade = strings.TrimSpace(req.Grade)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(teacherID)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", classDTO.FromClassModel(m))
}

// loadOwnedClass ambil kelas + cek owner; error fiber siap return
func (h *ClassController) loadOwnedClass(c *fiber.Ctx, teacherID uuid.UUID) (*classModel.ClassModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var m classModel.ClassModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal ambil kelas")
	}
	if m.TeacherID != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Anda bukan pemilik kelas ini")
	}
	return &m, nil
}

// PUT /api/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	m, err := h.loadOwnedClass(c, teacherID)
	if err != nil {
		return err
	}

	var req classDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Grade != nil {
		updates["grade"] = strings.TrimSpace(*req.Grade)
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.Description != nil {
		updates["description"] = req.Description
	}
	if req.SchoolID != nil {
		updates["school_id"] = *req.SchoolID
	}
	if len(updates) > 0 {
		if err := h.DB.Model(m).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update kelas")
		}
	}

	return helper.JsonUpdated(c, "Kelas diperbarui", classDTO.FromClassModel(*m))
}

// DELETE /api/classes/:id
func (h *ClassController) Delete(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	m, err := h.loadOwnedClass(c, teacherID)
	if err != nil {
		return err
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", m.ID).
			Delete(&classModel.ClassStudentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hapus kelas")
	}
	return helper.JsonDeleted(c, "Kelas dihapus", nil)
}

/* =========================================================
   ROSTER (enrollment)
   ========================================================= */

// POST /api/classes/:id/students
func (h *ClassController) EnrollStudent(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	m, err := h.loadOwnedClass(c, teacherID)
	if err != nil {
		return err
	}

	var req classDTO.EnrollStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// pastikan target benar-benar siswa
	var student userModel.UserModel
	if err := h.DB.First(&student, "id = ?", req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek siswa")
	}
	if student.Role != constants.RoleStudent {
		return helper.JsonValidationError(c, "User ini bukan siswa", map[string][]string{
			"student_id": {"not_a_student"},
		})
	}

	var cnt int64
	if err := h.DB.Model(&classModel.ClassStudentModel{}).
		Where("class_id = ? AND student_id = ?", m.ID, req.StudentID).
		Count(&cnt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek enrollment")
	}
	if cnt > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Siswa sudah terdaftar di kelas ini")
	}

	enr := classModel.ClassStudentModel{
		ClassID:   m.ID,
		StudentID: req.StudentID,
	}
	if err := h.DB.Create(&enr).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal daftarkan siswa")
	}
	return helper.JsonCreated(c, "Siswa terdaftar di kelas", enr)
}

// DELETE /api/classes/:id/students/:studentId
func (h *ClassController) RemoveStudent(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	m, err := h.loadOwnedClass(c, teacherID)
	if err != nil {
		return err
	}

	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("studentId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	res := h.DB.Where("class_id = ? AND student_id = ?", m.ID, studentID).
		Delete(&classModel.ClassStudentModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal keluarkan siswa")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak terdaftar di kelas ini")
	}
	return helper.JsonDeleted(c, "Siswa dikeluarkan dari kelas", nil)
}
