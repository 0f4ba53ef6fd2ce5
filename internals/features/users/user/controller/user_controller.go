package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	authRepo "sciedu_backend/internals/features/users/auth/repository"
	authService "sciedu_backend/internals/features/users/auth/service"
	userDTO "sciedu_backend/internals/features/users/user/dto"
	userModel "sciedu_backend/internals/features/users/user/model"
	helper "sciedu_backend/internals/helpers"
	helperAuth "sciedu_backend/internals/helpers/auth"
)

type UserController struct {
	DB *gorm.DB
}

var validate = validator.New()

// UPDATE PROFIL SENDIRI
// PUT /api/users/me
func (h *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil user")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.SchoolID != nil {
		updates["school_id"] = *req.SchoolID
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update profil")
		}
	}

	return helper.JsonUpdated(c, "Profil diperbarui", userDTO.FromUserModel(user))
}

/* =========================================================
   ADMIN: kelola akun guru
   ========================================================= */

type CreateTeacherRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// POST /api/admin/teachers
func (h *UserController) CreateTeacher(c *fiber.Ctx) error {
	var req CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	taken, err := authRepo.EmailTaken(h.DB, req.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek email")
	}
	if taken {
		return helper.JsonValidationError(c, "Email ini sudah digunakan", map[string][]string{
			"email": {"taken"},
		})
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}

	teacher := userModel.UserModel{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashed,
		Role:     constants.RoleTeacher,
	}
	if err := h.DB.Create(&teacher).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun guru")
	}

	return helper.JsonCreated(c, "Akun guru berhasil dibuat", userDTO.FromUserModel(teacher))
}

// GET /api/admin/teachers
func (h *UserController) ListTeachers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := h.DB.Model(&userModel.UserModel{}).Where("role = ?", constants.RoleTeacher)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung data")
	}

	var teachers []userModel.UserModel
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.Limit).
		Find(&teachers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data guru")
	}

	out := make([]userDTO.UserResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, userDTO.FromUserModel(t))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
