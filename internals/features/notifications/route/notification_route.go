package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sciedu_backend/internals/constants"
	notificationController "sciedu_backend/internals/features/notifications/controller"
	authMiddleware "sciedu_backend/internals/middlewares/auth"
)

func NotificationRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &notificationController.NotificationController{DB: db}
	r.Get("/notifications", ctrl.ListMine)
	r.Patch("/notifications/:id/read", ctrl.MarkRead)
}

// StaffNotificationRoutes — kirim notifikasi, guru/admin. Gate per-route
// supaya tidak bocor ke route /api lain.
func StaffNotificationRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &notificationController.NotificationController{DB: db}
	gate := authMiddleware.OnlyRoles(
		"❌ Hanya guru atau admin yang boleh mengirim notifikasi.", constants.TeacherAndAdmin...)

	r.Post("/notifications", gate, ctrl.Create)
}
