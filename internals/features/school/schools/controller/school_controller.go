package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	schoolDTO "sciedu_backend/internals/features/school/schools/dto"
	schoolModel "sciedu_backend/internals/features/school/schools/model"
	helper "sciedu_backend/internals/helpers"
)

type SchoolController struct {
	DB *gorm.DB
}

var validate = validator.New()

// GET /api/schools
func (h *SchoolController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := h.DB.Model(&schoolModel.SchoolModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung data")
	}

	var schools []schoolModel.SchoolModel
	if err := q.Order("name ASC").Offset(paging.Offset).Limit(paging.Limit).
		Find(&schools).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data sekolah")
	}

	return helper.JsonList(c, "ok", schools, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/admin/schools
func (h *SchoolController) Create(c *fiber.Ctx) error {
	var req schoolDTO.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sekolah")
	}
	return helper.JsonCreated(c, "Sekolah berhasil dibuat", m)
}

// PUT /api/admin/schools/:id
func (h *SchoolController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req schoolDTO.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m schoolModel.SchoolModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil sekolah")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		updates["address"] = req.Address
	}
	if req.Phone != nil {
		updates["phone"] = req.Phone
	}
	if req.Email != nil {
		updates["email"] = req.Email
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&m).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update sekolah")
		}
	}

	return helper.JsonUpdated(c, "Sekolah diperbarui", m)
}

// DELETE /api/admin/schools/:id
func (h *SchoolController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := h.DB.Delete(&schoolModel.SchoolModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hapus sekolah")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Sekolah dihapus", nil)
}
