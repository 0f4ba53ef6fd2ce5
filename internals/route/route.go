package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sciedu_backend/internals/configs"
	"sciedu_backend/internals/constants"
	authRepo "sciedu_backend/internals/features/users/auth/repository"
	authMiddleware "sciedu_backend/internals/middlewares/auth"

	assignmentRoute "sciedu_backend/internals/features/assignments/assignment/route"
	progressRoute "sciedu_backend/internals/features/assignments/progress/route"
	questionRoute "sciedu_backend/internals/features/assignments/question/route"
	notificationRoute "sciedu_backend/internals/features/notifications/route"
	classRoute "sciedu_backend/internals/features/school/classes/route"
	schoolRoute "sciedu_backend/internals/features/school/schools/route"
	subjectRoute "sciedu_backend/internals/features/subjects/route"
	authRoute "sciedu_backend/internals/features/users/auth/route"
	userRoute "sciedu_backend/internals/features/users/user/route"
)

// SetupRoutes daftar semua group route aplikasi.
//
// Gate role dipasang per-route di file route masing-masing: group middleware
// Fiber nempel sebagai `Use` di prefix, jadi gate di group `/api` bersama
// akan kena SEMUA request /api. Satu-satunya gate level group ada di
// /api/admin karena seluruh subtree-nya admin-only.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// 🌐 Guard halaman non-API (redirect sesuai role)
	app.Use(authMiddleware.PageGuard(configs.JWTSecret))

	// 🔓 Auth (register/login/refresh publik, me/logout privat)
	authRoute.AuthRoutes(app, db)

	// 🔓 Publik tanpa token
	public := app.Group("/api")
	subjectRoute.SubjectRoutes(public, db)

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		BlacklistChecker:    authRepo.IsTokenBlacklisted(db),
		AllowCookieFallback: true,
	})

	// 🔐 Semua endpoint /api di bawah ini butuh token; pembatasan role
	// (guru/siswa/staff) dicek per-route di file route terkait.
	private := app.Group("/api", jwt)
	userRoute.UserRoutes(private, db)
	schoolRoute.SchoolRoutes(private, db)
	classRoute.ClassRoutes(private, db)
	classRoute.TeacherClassRoutes(private, db)
	assignmentRoute.AssignmentRoutes(private, db)
	assignmentRoute.TeacherAssignmentRoutes(private, db)
	questionRoute.QuestionRoutes(private, db)
	questionRoute.TeacherQuestionRoutes(private, db)
	progressRoute.StudentProgressRoutes(private, db)
	progressRoute.TeacherProgressRoutes(private, db)
	notificationRoute.NotificationRoutes(private, db)
	notificationRoute.StaffNotificationRoutes(private, db)

	// 🛡️ Admin only — prefix khusus, aman digate di level group
	admin := app.Group("/api/admin", jwt,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("administrasi"), constants.AdminOnly...),
	)
	userRoute.AdminUserRoutes(admin, db)
	schoolRoute.AdminSchoolRoutes(admin, db)
	subjectRoute.AdminSubjectRoutes(admin, db)
}
