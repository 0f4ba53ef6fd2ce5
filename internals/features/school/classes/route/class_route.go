package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	classController "sciedu_backend/internals/features/school/classes/controller"
	authMiddleware "sciedu_backend/internals/middlewares/auth"
)

// ClassRoutes — akses semua role login (visibility diatur di controller).
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &classController.ClassController{DB: db}
	r.Get("/classes", ctrl.List)
}

// TeacherClassRoutes — mutasi kelas & roster. Gate guru per-route supaya
// tidak bocor ke route /api lain.
func TeacherClassRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &classController.ClassController{DB: db}
	gate := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("pengelolaan kelas"), constants.TeacherOnly...)

	classes := r.Group("/classes")
	classes.Post("/", gate, ctrl.Create)
	classes.Put("/:id", gate, ctrl.Update)
	classes.Delete("/:id", gate, ctrl.Delete)
	classes.Post("/:id/students", gate, ctrl.EnrollStudent)
	classes.Delete("/:id/students/:studentId", gate, ctrl.RemoveStudent)
}
