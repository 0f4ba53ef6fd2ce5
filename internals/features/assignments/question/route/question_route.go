package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	questionController "sciedu_backend/internals/features/assignments/question/controller"
	authMiddleware "sciedu_backend/internals/middlewares/auth"
)

// QuestionRoutes — baca soal, semua role login (kunci jawaban difilter di controller).
func QuestionRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &questionController.QuestionController{DB: db}
	r.Get("/assignments/:assignmentId/questions", ctrl.List)
	r.Get("/assignments/:assignmentId/questions/:id", ctrl.GetByID)
}

// TeacherQuestionRoutes — mutasi soal. Gate guru per-route supaya tidak
// bocor ke route /api lain.
func TeacherQuestionRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &questionController.QuestionController{DB: db}
	gate := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("pengelolaan soal"), constants.TeacherOnly...)

	questions := r.Group("/assignments/:assignmentId/questions")
	questions.Post("/", gate, ctrl.Create)
	questions.Put("/:id", gate, ctrl.Update)
	questions.Delete("/:id", gate, ctrl.Delete)
}
