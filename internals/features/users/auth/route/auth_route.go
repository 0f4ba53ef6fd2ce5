package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "sciedu_backend/internals/features/users/auth/controller"
	authRepo "sciedu_backend/internals/features/users/auth/repository"
	"sciedu_backend/internals/configs"
	authMiddleware "sciedu_backend/internals/middlewares/auth"
	"sciedu_backend/internals/middlewares"
)

// AuthRoutes mount endpoint auth (sebagian publik, sebagian butuh token)
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &authController.AuthController{DB: db}

	pub := app.Group("/api/auth")
	pub.Post("/register", ctl.Register)
	pub.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	pub.Post("/refresh-token", ctl.RefreshToken)

	priv := app.Group("/api/auth",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			BlacklistChecker:    authRepo.IsTokenBlacklisted(db),
			AllowCookieFallback: true,
		}),
	)
	priv.Get("/me", ctl.Me)
	priv.Post("/logout", ctl.Logout)
}
