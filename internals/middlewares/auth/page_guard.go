package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helperAuth "sciedu_backend/internals/helpers/auth"
	"sciedu_backend/internals/policy"
)

// PageGuard menjaga route halaman (non-/api): evaluasi policy per request.
//
// - User login yang buka halaman guest-only (login/register) di-redirect ke
//   landing page sesuai role.
// - Gagal policy → redirect /unauthorized.
// - Belum login di halaman non-publik → redirect /login.
//
// Token dibaca best-effort (cookie/Bearer); token invalid diperlakukan
// sebagai belum login, bukan error.
func PageGuard(secret string) fiber.Handler {
	secret = strings.TrimSpace(secret)

	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return c.Next()
		}

		role := resolveRoleLoose(c, secret)
		path := c.Path()

		if role != "" && policy.IsGuestOnly(path) {
			return c.Redirect(policy.LandingPath(role), fiber.StatusFound)
		}

		if !policy.IsAllowed(path, role) {
			if role == "" {
				return c.Redirect("/login", fiber.StatusFound)
			}
			return c.Redirect(policy.UnauthorizedPath, fiber.StatusFound)
		}

		c.Locals(helperAuth.LocUserRole, role)
		return c.Next()
	}
}

// resolveRoleLoose parse token tanpa menggagalkan request
func resolveRoleLoose(c *fiber.Ctx, secret string) string {
	if secret == "" {
		return ""
	}

	raw := ""
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		raw = strings.TrimSpace(authz[7:])
	} else {
		raw = strings.TrimSpace(c.Cookies("access_token"))
	}
	if raw == "" {
		return ""
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return ""
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	return strClaim(claims, "role")
}
