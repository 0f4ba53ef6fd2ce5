// file: internals/helpers/auth/claims.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Kunci Locals yang diisi middleware AuthJWT
const (
	LocUserID   = "user_id"
	LocUserRole = "user_role"
	LocUserName = "user_name"
	LocSchoolID = "school_id"
)

// GetUserIDFromToken ambil user_id (UUID) dari Locals; 401 kalau tidak ada/invalid
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: user ID tidak ditemukan")
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: user ID tidak valid")
	}
	return id, nil
}

// GetRoleFromToken ambil role dari Locals; "" kalau tidak ada
func GetRoleFromToken(c *fiber.Ctx) string {
	if role, ok := c.Locals(LocUserRole).(string); ok {
		return strings.TrimSpace(role)
	}
	return ""
}

// GetSchoolIDFromToken ambil school_id (opsional) dari Locals
func GetSchoolIDFromToken(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals(LocSchoolID).(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &id
}
