package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	progressController "sciedu_backend/internals/features/assignments/progress/controller"
	authMiddleware "sciedu_backend/internals/middlewares/auth"
)

// StudentProgressRoutes — alur pengerjaan siswa. Gate siswa per-route
// supaya tidak bocor ke route /api lain.
func StudentProgressRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &progressController.ProgressController{DB: db}
	gate := authMiddleware.OnlyRoles(
		constants.RoleErrorStudent("pengerjaan tugas"), constants.StudentOnly...)

	r.Post("/assignments/:assignmentId/progress/start", gate, ctrl.Start)
	r.Post("/assignments/:assignmentId/progress/submit", gate, ctrl.Submit)
	r.Get("/progress/me", gate, ctrl.ListMine)
}

// TeacherProgressRoutes — guru pantau progres per tugas.
func TeacherProgressRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &progressController.ProgressController{DB: db}
	gate := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("pemantauan progres"), constants.TeacherOnly...)

	r.Get("/assignments/:assignmentId/progress", gate, ctrl.ListByAssignment)
}
