package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectController "sciedu_backend/internals/features/subjects/controller"
)

func SubjectRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &subjectController.SubjectInfoController{DB: db}
	r.Get("/subjects", ctrl.List)
}

func AdminSubjectRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &subjectController.SubjectInfoController{DB: db}
	r.Post("/subjects", ctrl.Upsert)
}
