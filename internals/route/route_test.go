package route

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sciedu_backend/internals/configs"
	"sciedu_backend/internals/constants"
	assignmentModel "sciedu_backend/internals/features/assignments/assignment/model"
	progressModel "sciedu_backend/internals/features/assignments/progress/model"
	questionModel "sciedu_backend/internals/features/assignments/question/model"
	notificationModel "sciedu_backend/internals/features/notifications/model"
	classModel "sciedu_backend/internals/features/school/classes/model"
	schoolModel "sciedu_backend/internals/features/school/schools/model"
	subjectModel "sciedu_backend/internals/features/subjects/model"
	authModel "sciedu_backend/internals/features/users/auth/model"
	authService "sciedu_backend/internals/features/users/auth/service"
	userModel "sciedu_backend/internals/features/users/user/model"
	helper "sciedu_backend/internals/helpers"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&schoolModel.SchoolModel{},
		&classModel.ClassModel{},
		&classModel.ClassStudentModel{},
		&assignmentModel.AssignmentModel{},
		&questionModel.QuestionModel{},
		&progressModel.StudentProgressModel{},
		&subjectModel.SubjectInfoModel{},
		&notificationModel.NotificationModel{},
		&authModel.TokenBlacklist{},
		&authModel.RefreshTokenModel{},
	))

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	SetupRoutes(app, db)
	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, role string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		Email:    uuid.NewString() + "@sekolah.test",
		Name:     "User " + role,
		Password: "hash",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func tokenFor(t *testing.T, u userModel.UserModel) string {
	t.Helper()
	access, _, err := authService.IssueTokenPair(u)
	require.NoError(t, err)
	return access
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func TestRegisterStudentsOnly(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "guru@sekolah.test",
		"name":     "Bu Guru",
		"password": "rahasia123",
		"role":     constants.RoleTeacher,
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "siswa@sekolah.test",
		"name":     "Ani",
		"password": "rahasia123",
		"role":     constants.RoleStudent,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
}

func TestValidationEnvelopeShape(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "bukan-email",
		"name":     "A",
		"password": "x",
		"role":     constants.RoleStudent,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, false, body["success"])
	require.Equal(t, "VALIDATION_ERROR", body["error_code"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, errs)
}

func TestStudentCannotMutateAssignments(t *testing.T) {
	app, db := newTestApp(t)
	std := seedUser(t, db, constants.RoleStudent)
	token := tokenFor(t, std)

	resp := doJSON(t, app, fiber.MethodPost, "/api/assignments/", token, fiber.Map{
		"title":    "Coba",
		"subject":  constants.SubjectBiology,
		"class_id": uuid.New(),
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPatch, "/api/assignments/"+uuid.NewString()+"/publish", token, fiber.Map{
		"is_published": true,
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/assignments/"+uuid.NewString(), token, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStudentVisibilityFollowsPublish(t *testing.T) {
	app, db := newTestApp(t)
	tch := seedUser(t, db, constants.RoleTeacher)
	std := seedUser(t, db, constants.RoleStudent)

	cls := classModel.ClassModel{
		Name: "Biologi X-B", Grade: "10",
		Subject: constants.SubjectBiology, TeacherID: tch.ID,
	}
	require.NoError(t, db.Create(&cls).Error)
	require.NoError(t, db.Create(&classModel.ClassStudentModel{
		ClassID: cls.ID, StudentID: std.ID,
	}).Error)

	asg := assignmentModel.AssignmentModel{
		Title: "Sel & Jaringan", Subject: constants.SubjectBiology,
		Difficulty: constants.DifficultyEasy, TeacherID: tch.ID, ClassID: cls.ID,
	}
	require.NoError(t, db.Create(&asg).Error)
	require.NoError(t, db.Create(&questionModel.QuestionModel{
		AssignmentID: asg.ID, Type: constants.QuestionEssay,
		Text: "Apa fungsi mitokondria?", Points: 5,
		Difficulty: constants.DifficultyEasy,
	}).Error)

	stdToken := tokenFor(t, std)
	tchToken := tokenFor(t, tch)

	// belum published → siswa ditolak
	resp := doJSON(t, app, fiber.MethodGet, "/api/assignments/"+asg.ID.String(), stdToken, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// guru publish lewat API
	resp = doJSON(t, app, fiber.MethodPatch, "/api/assignments/"+asg.ID.String()+"/publish", tchToken, fiber.Map{
		"is_published": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	require.Equal(t, true, data["is_published"])
	require.EqualValues(t, 5, data["total_points"])

	// response publish bentuknya sama dengan detail: relasi + count ikut
	teacher, ok := data["teacher"].(map[string]any)
	require.True(t, ok, "teacher harus ikut di response publish")
	require.Equal(t, tch.Name, teacher["name"])
	class, ok := data["class"].(map[string]any)
	require.True(t, ok, "class harus ikut di response publish")
	require.Equal(t, cls.Name, class["name"])
	require.EqualValues(t, 1, data["question_count"])
	require.EqualValues(t, 0, data["progress_count"])

	// sekarang siswa bisa lihat
	resp = doJSON(t, app, fiber.MethodGet, "/api/assignments/"+asg.ID.String(), stdToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPublishZeroQuestionsViaAPI(t *testing.T) {
	app, db := newTestApp(t)
	tch := seedUser(t, db, constants.RoleTeacher)

	cls := classModel.ClassModel{
		Name: "Fisika XII-A", Grade: "12",
		Subject: constants.SubjectPhysics, TeacherID: tch.ID,
	}
	require.NoError(t, db.Create(&cls).Error)
	asg := assignmentModel.AssignmentModel{
		Title: "Gelombang", Subject: constants.SubjectPhysics,
		Difficulty: constants.DifficultyHard, TeacherID: tch.ID, ClassID: cls.ID,
	}
	require.NoError(t, db.Create(&asg).Error)

	resp := doJSON(t, app, fiber.MethodPatch, "/api/assignments/"+asg.ID.String()+"/publish", tokenFor(t, tch), fiber.Map{
		"is_published": true,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentProgressFlow(t *testing.T) {
	app, db := newTestApp(t)
	tch := seedUser(t, db, constants.RoleTeacher)
	std := seedUser(t, db, constants.RoleStudent)

	cls := classModel.ClassModel{
		Name: "Kimia XI-A", Grade: "11",
		Subject: constants.SubjectChemistry, TeacherID: tch.ID,
	}
	require.NoError(t, db.Create(&cls).Error)
	require.NoError(t, db.Create(&classModel.ClassStudentModel{
		ClassID: cls.ID, StudentID: std.ID,
	}).Error)

	asg := assignmentModel.AssignmentModel{
		Title: "Ikatan Kimia", Subject: constants.SubjectChemistry,
		Difficulty: constants.DifficultyMedium, TeacherID: tch.ID, ClassID: cls.ID,
		IsPublished: true, TotalPoints: 10,
	}
	require.NoError(t, db.Create(&asg).Error)
	q := questionModel.QuestionModel{
		AssignmentID: asg.ID, Type: constants.QuestionMultipleChoice,
		Text: "Ikatan pada NaCl?", Points: 10,
		Difficulty:    constants.DifficultyMedium,
		Options:       datatypes.JSON(`["ionik","kovalen","logam"]`),
		CorrectAnswer: datatypes.JSON(`"ionik"`),
	}
	require.NoError(t, db.Create(&q).Error)

	stdToken := tokenFor(t, std)
	base := "/api/assignments/" + asg.ID.String()

	// mulai pengerjaan
	resp := doJSON(t, app, fiber.MethodPost, base+"/progress/start", stdToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, constants.ProgressInProgress, data["status"])

	// guru kena gate siswa di route start
	resp = doJSON(t, app, fiber.MethodPost, base+"/progress/start", tokenFor(t, tch), nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// submit jawaban benar → semua soal auto-grade → langsung GRADED
	resp = doJSON(t, app, fiber.MethodPost, base+"/progress/submit", stdToken, fiber.Map{
		"answers": fiber.Map{q.ID.String(): "ionik"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = decodeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, constants.ProgressGraded, data["status"])
	require.EqualValues(t, 10, data["earned_points"])
	require.EqualValues(t, 100, data["percentage"])

	// progres sendiri kebaca
	resp = doJSON(t, app, fiber.MethodGet, "/api/progress/me", stdToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := decodeBody(t, resp)["data"].([]any)
	require.Len(t, items, 1)
}

func TestAdminManagesTeachers(t *testing.T) {
	app, db := newTestApp(t)
	adm := seedUser(t, db, constants.RoleAdmin)
	admToken := tokenFor(t, adm)

	resp := doJSON(t, app, fiber.MethodPost, "/api/admin/teachers/", admToken, fiber.Map{
		"email":    "guru.baru@sekolah.test",
		"name":     "Pak Budi",
		"password": "rahasia123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, constants.RoleTeacher, data["role"])

	resp = doJSON(t, app, fiber.MethodGet, "/api/admin/teachers", admToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := decodeBody(t, resp)["data"].([]any)
	require.Len(t, items, 1)

	// non-admin ditolak di subtree /api/admin
	tch := seedUser(t, db, constants.RoleTeacher)
	resp = doJSON(t, app, fiber.MethodGet, "/api/admin/teachers", tokenFor(t, tch), nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStaffNotificationGate(t *testing.T) {
	app, db := newTestApp(t)
	tch := seedUser(t, db, constants.RoleTeacher)
	std := seedUser(t, db, constants.RoleStudent)

	payload := fiber.Map{
		"user_id": std.ID,
		"title":   "Tugas baru",
		"message": "Ada tugas Kimia baru di kelasmu",
		"type":    "ASSIGNMENT",
	}

	resp := doJSON(t, app, fiber.MethodPost, "/api/notifications", tokenFor(t, tch), payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// siswa tidak boleh kirim notifikasi
	resp = doJSON(t, app, fiber.MethodPost, "/api/notifications", tokenFor(t, std), payload)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// siswa tetap bisa baca notifikasi miliknya
	resp = doJSON(t, app, fiber.MethodGet, "/api/notifications", tokenFor(t, std), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := decodeBody(t, resp)["data"].([]any)
	require.Len(t, items, 1)
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/api/assignments", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
