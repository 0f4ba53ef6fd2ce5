package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "sciedu_backend/internals/features/users/user/controller"
)

// UserRoutes: endpoint profil user login
// Dipasang di bawah group yang sudah lewat AuthJWT.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &userController.UserController{DB: db}
	users := r.Group("/users")
	users.Put("/me", ctl.UpdateMe)
}

// AdminUserRoutes: kelola akun guru (ADMIN only — role dicek di group caller)
func AdminUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &userController.UserController{DB: db}
	teachers := r.Group("/teachers")
	teachers.Get("/", ctl.ListTeachers)
	teachers.Post("/", ctl.CreateTeacher)
}
