package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	subjectDTO "sciedu_backend/internals/features/subjects/dto"
	subjectModel "sciedu_backend/internals/features/subjects/model"
	helper "sciedu_backend/internals/helpers"
)

type SubjectInfoController struct {
	DB *gorm.DB
}

var validate = validator.New()

// GET /api/subjects (public)
func (h *SubjectInfoController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&subjectModel.SubjectInfoModel{})

	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		q = q.Where("subject = ?", subject)
	}
	if grade := strings.TrimSpace(c.Query("grade")); grade != "" {
		q = q.Where("grade = ?", grade)
	}

	var infos []subjectModel.SubjectInfoModel
	if err := q.Order("subject ASC, grade ASC").Find(&infos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil info mapel")
	}
	return helper.JsonList(c, "ok", infos, nil)
}

// POST /api/admin/subjects — upsert per (subject, grade)
func (h *SubjectInfoController) Upsert(c *fiber.Ctx) error {
	var req subjectDTO.UpsertSubjectInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Grade = strings.TrimSpace(req.Grade)
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject"}, {Name: "grade"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "topics", "updated_at"}),
	}).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal simpan info mapel")
	}
	return helper.JsonCreated(c, "Info mapel tersimpan", m)
}
