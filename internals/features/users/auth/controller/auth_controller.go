package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	authDTO "sciedu_backend/internals/features/users/auth/dto"
	authModel "sciedu_backend/internals/features/users/auth/model"
	authRepo "sciedu_backend/internals/features/users/auth/repository"
	authService "sciedu_backend/internals/features/users/auth/service"
	userDTO "sciedu_backend/internals/features/users/user/dto"
	userModel "sciedu_backend/internals/features/users/user/model"
	helper "sciedu_backend/internals/helpers"
	helperAuth "sciedu_backend/internals/helpers/auth"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = validator.New()

// REGISTER
// POST /api/auth/register
//
// Hanya siswa yang boleh self-register. Akun guru dibuat lewat endpoint admin.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Role != constants.RoleStudent {
		return helper.JsonError(c, fiber.StatusForbidden,
			"Hanya pendaftaran akun siswa yang diizinkan. Akun guru dibuat oleh admin.")
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

	user := userModel.UserModel{
		Email:    req.Email,
		Name:     req.Name,
		Password: hashed,
		Role:     constants.RoleStudent,
		SchoolID: req.SchoolID,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		log.Printf("[ERROR] register: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return helper.JsonCreated(c, "Akun berhasil dibuat", userDTO.FromUserModel(user))
}

// LOGIN
// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := authRepo.FindUserByEmail(h.DB, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek akun")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if !authService.CheckPassword(user.Password, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	access, refresh, err := authService.IssueTokenPair(*user)
	if err != nil {
		return err
	}

	// simpan hash refresh untuk rotasi
	hash, err := authService.ComputeRefreshHash(refresh)
	if err != nil {
		return err
	}
	if err := authRepo.CreateRefreshToken(h.DB, &authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     hash,
		ExpiresAt: authService.TokenExpiry(refresh),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal simpan sesi")
	}

	setAuthCookies(c, access, refresh)

	return helper.JsonOK(c, "Login berhasil", authDTO.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         userDTO.FromUserModel(*user),
	})
}

// REFRESH TOKEN
// POST /api/auth/refresh-token
func (h *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		// fallback body {"refresh_token": "..."}
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	sub, err := authService.ParseRefreshToken(raw)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// Pastikan hash refresh ada di DB
	hash, err := authService.ComputeRefreshHash(raw)
	if err != nil {
		return err
	}
	exists, err := authRepo.RefreshTokenExists(h.DB, hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !exists {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	user, err := authRepo.FindUserByID(h.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	// ROTATE: hapus token lama, terbitkan pasangan baru
	if err := authRepo.DeleteRefreshTokenByHash(h.DB, hash); err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	access, refresh, err := authService.IssueTokenPair(*user)
	if err != nil {
		return err
	}
	newHash, err := authService.ComputeRefreshHash(refresh)
	if err != nil {
		return err
	}
	if err := authRepo.CreateRefreshToken(h.DB, &authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     newHash,
		ExpiresAt: authService.TokenExpiry(refresh),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal simpan refresh baru")
	}

	setAuthCookies(c, access, refresh)

	return helper.JsonOK(c, "Token diperbarui", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// LOGOUT
// POST /api/auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		if err := authRepo.BlacklistToken(h.DB, raw, authService.TokenExpiry(raw)); err != nil {
			log.Printf("[ERROR] blacklist token: %v", err)
		}
	}
	if refresh := helper.GetRefreshTokenFromCookie(c); refresh != "" {
		if hash, err := authService.ComputeRefreshHash(refresh); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(h.DB, hash)
		}
	}

	c.ClearCookie("access_token", "refresh_token")
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// ME
// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(h.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil profil")
	}
	return helper.JsonOK(c, "ok", userDTO.FromUserModel(*user))
}

func setAuthCookies(c *fiber.Ctx, access, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

func strptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
