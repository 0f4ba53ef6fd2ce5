package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolController "sciedu_backend/internals/features/school/schools/controller"
)

// SchoolRoutes: list sekolah untuk semua user login
func SchoolRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &schoolController.SchoolController{DB: db}
	schools := r.Group("/schools")
	schools.Get("/", ctl.List)
}

// AdminSchoolRoutes: full CRUD (ADMIN only — role dicek di group caller)
func AdminSchoolRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &schoolController.SchoolController{DB: db}
	schools := r.Group("/schools")
	schools.Post("/", ctl.Create)
	schools.Put("/:id", ctl.Update)
	schools.Delete("/:id", ctl.Delete)
}
