package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	assignmentController "sciedu_backend/internals/features/assignments/assignment/controller"
	authMiddleware "sciedu_backend/internals/middlewares/auth"
)

// AssignmentRoutes — read-only, semua role login (visibility di controller).
func AssignmentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &assignmentController.AssignmentController{DB: db}
	r.Get("/assignments", ctrl.List)
	r.Get("/assignments/:id", ctrl.GetByID)
}

// TeacherAssignmentRoutes — mutasi tugas. Gate guru per-route supaya tidak
// bocor ke route /api lain.
func TeacherAssignmentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &assignmentController.AssignmentController{DB: db}
	gate := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("pengelolaan tugas"), constants.TeacherOnly...)

	assignments := r.Group("/assignments")
	assignments.Post("/", gate, ctrl.Create)
	assignments.Put("/:id", gate, ctrl.Update)
	assignments.Patch("/:id/publish", gate, ctrl.SetPublished)
	assignments.Delete("/:id", gate, ctrl.Delete)
}
