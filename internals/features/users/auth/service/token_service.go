// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"sciedu_backend/internals/configs"
	userModel "sciedu_backend/internals/features/users/user/model"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

func buildAccessClaims(u userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"id":   u.ID.String(),
		"sub":  u.ID.String(),
		"name": u.Name,
		"role": u.Role,
		"typ":  "access",
		"iat":  now.Unix(),
		"exp":  now.Add(AccessTTL).Unix(),
	}
	if u.SchoolID != nil {
		claims["school_id"] = u.SchoolID.String()
	}
	return claims
}

func buildRefreshClaims(u userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": u.ID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(RefreshTTL).Unix(),
	}
}

// IssueTokenPair buat access + refresh token (HS256) untuk user
func IssueTokenPair(u userModel.UserModel) (access string, refresh string, err error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return "", "", err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", "", err
	}

	now := nowUTC()
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(u, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}
	return access, refresh, nil
}

// ComputeRefreshHash: yang disimpan di DB adalah HMAC dari raw refresh token
func ComputeRefreshHash(rawToken string) (string, error) {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, []byte(refreshSecret))
	mac.Write([]byte(rawToken))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// ParseRefreshToken validasi refresh JWT dan kembalikan subject (user id string)
func ParseRefreshToken(rawToken string) (string, error) {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}
	tok, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	return sub, nil
}

// TokenExpiry baca exp dari token (dipakai untuk TTL blacklist saat logout
// dan expiry sesi refresh)
func TokenExpiry(rawToken string) time.Time {
	parser := jwt.Parser{SkipClaimsValidation: true}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(rawToken, claims); err != nil {
		return nowUTC().Add(AccessTTL)
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC()
	}
	return nowUTC().Add(AccessTTL)
}
