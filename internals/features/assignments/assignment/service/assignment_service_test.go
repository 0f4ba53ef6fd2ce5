package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sciedu_backend/internals/constants"
	assignmentModel "sciedu_backend/internals/features/assignments/assignment/model"
	progressModel "sciedu_backend/internals/features/assignments/progress/model"
	questionModel "sciedu_backend/internals/features/assignments/question/model"
	classModel "sciedu_backend/internals/features/school/classes/model"
	userModel "sciedu_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&classModel.ClassModel{},
		&classModel.ClassStudentModel{},
		&assignmentModel.AssignmentModel{},
		&questionModel.QuestionModel{},
		&progressModel.StudentProgressModel{},
	))
	return db
}

func mkUser(t *testing.T, db *gorm.DB, role string) userModel.UserModel {
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

func mkClass(t *testing.T, db *gorm.DB, teacherID uuid.UUID) classModel.ClassModel {
	t.Helper()
	cls := classModel.ClassModel{
		Name:      "Kimia XI-A",
		Grade:     "11",
		Subject:   constants.SubjectChemistry,
		TeacherID: teacherID,
	}
	require.NoError(t, db.Create(&cls).Error)
	return cls
}

func mkAssignment(t *testing.T, db *gorm.DB, teacherID, classID uuid.UUID) assignmentModel.AssignmentModel {
	t.Helper()
	a := assignmentModel.AssignmentModel{
		Title:      "Stoikiometri",
		Subject:    constants.SubjectChemistry,
		Difficulty: constants.DifficultyMedium,
		TeacherID:  teacherID,
		ClassID:    classID,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func mkQuestion(t *testing.T, db *gorm.DB, assignmentID uuid.UUID, points int) questionModel.QuestionModel {
	t.Helper()
	q := questionModel.QuestionModel{
		AssignmentID: assignmentID,
		Type:         constants.QuestionEssay,
		Text:         "Jelaskan konsep mol.",
		Points:       points,
		Difficulty:   constants.DifficultyMedium,
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}

func requireFiberStatus(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	require.Equal(t, want, fe.Code)
}

func TestSetPublishedRecomputesTotalPoints(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	cls := mkClass(t, db, tch.ID)
	asg := mkAssignment(t, db, tch.ID, cls.ID)
	mkQuestion(t, db, asg.ID, 2)
	mkQuestion(t, db, asg.ID, 5)

	got, err := SetPublished(db, asg.ID, tch.ID, true)
	require.NoError(t, err)
	require.True(t, got.IsPublished)
	require.Equal(t, 7, got.TotalPoints)

	// tambah soal lalu publish ulang → total ikut naik
	mkQuestion(t, db, asg.ID, 3)
	got, err = SetPublished(db, asg.ID, tch.ID, true)
	require.NoError(t, err)
	require.Equal(t, 10, got.TotalPoints)

	// unpublish tidak menyentuh total
	got, err = SetPublished(db, asg.ID, tch.ID, false)
	require.NoError(t, err)
	require.False(t, got.IsPublished)
	require.Equal(t, 10, got.TotalPoints)

	var stored assignmentModel.AssignmentModel
	require.NoError(t, db.First(&stored, "id = ?", asg.ID).Error)
	require.False(t, stored.IsPublished)
	require.Equal(t, 10, stored.TotalPoints)
}

func TestSetPublishedIdempotent(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	cls := mkClass(t, db, tch.ID)
	asg := mkAssignment(t, db, tch.ID, cls.ID)
	mkQuestion(t, db, asg.ID, 4)

	_, err := SetPublished(db, asg.ID, tch.ID, true)
	require.NoError(t, err)
	got, err := SetPublished(db, asg.ID, tch.ID, true)
	require.NoError(t, err)
	require.True(t, got.IsPublished)
	require.Equal(t, 4, got.TotalPoints)
}

func TestSetPublishedZeroQuestionsFails(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	cls := mkClass(t, db, tch.ID)
	asg := mkAssignment(t, db, tch.ID, cls.ID)

	_, err := SetPublished(db, asg.ID, tch.ID, true)
	requireFiberStatus(t, err, fiber.StatusBadRequest)

	var stored assignmentModel.AssignmentModel
	require.NoError(t, db.First(&stored, "id = ?", asg.ID).Error)
	require.False(t, stored.IsPublished)
}

func TestSetPublishedOwnershipAndNotFound(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	other := mkUser(t, db, constants.RoleTeacher)
	cls := mkClass(t, db, tch.ID)
	asg := mkAssignment(t, db, tch.ID, cls.ID)
	mkQuestion(t, db, asg.ID, 1)

	_, err := SetPublished(db, asg.ID, other.ID, true)
	requireFiberStatus(t, err, fiber.StatusForbidden)

	_, err = SetPublished(db, uuid.New(), tch.ID, true)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestDeleteAssignmentGuards(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	std := mkUser(t, db, constants.RoleStudent)
	cls := mkClass(t, db, tch.ID)
	asg := mkAssignment(t, db, tch.ID, cls.ID)
	mkQuestion(t, db, asg.ID, 2)

	// ada progres siswa → tolak
	prog := progressModel.StudentProgressModel{
		StudentID:    std.ID,
		AssignmentID: asg.ID,
		Status:       constants.ProgressInProgress,
	}
	require.NoError(t, db.Create(&prog).Error)
	err := DeleteAssignment(db, asg.ID, tch.ID)
	requireFiberStatus(t, err, fiber.StatusBadRequest)

	// tanpa progres → terhapus beserta soal
	require.NoError(t, db.Delete(&prog).Error)
	require.NoError(t, DeleteAssignment(db, asg.ID, tch.ID))

	var asgCount, qCount int64
	require.NoError(t, db.Model(&assignmentModel.AssignmentModel{}).Where("id = ?", asg.ID).Count(&asgCount).Error)
	require.NoError(t, db.Model(&questionModel.QuestionModel{}).Where("assignment_id = ?", asg.ID).Count(&qCount).Error)
	require.Zero(t, asgCount)
	require.Zero(t, qCount)
}

func TestDeleteAssignmentOwnership(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	other := mkUser(t, db, constants.RoleTeacher)
	cls := mkClass(t, db, tch.ID)
	asg := mkAssignment(t, db, tch.ID, cls.ID)

	requireFiberStatus(t, DeleteAssignment(db, asg.ID, other.ID), fiber.StatusForbidden)
	requireFiberStatus(t, DeleteAssignment(db, uuid.New(), tch.ID), fiber.StatusNotFound)
}

func TestEnsureClassOwned(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	other := mkUser(t, db, constants.RoleTeacher)
	cls := mkClass(t, db, tch.ID)

	require.NoError(t, EnsureClassOwned(db, cls.ID, tch.ID))
	requireFiberStatus(t, EnsureClassOwned(db, cls.ID, other.ID), fiber.StatusForbidden)
	requireFiberStatus(t, EnsureClassOwned(db, uuid.New(), tch.ID), fiber.StatusNotFound)
}

func TestCanStudentView(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	std := mkUser(t, db, constants.RoleStudent)
	outsider := mkUser(t, db, constants.RoleStudent)
	cls := mkClass(t, db, tch.ID)
	asg := mkAssignment(t, db, tch.ID, cls.ID)
	mkQuestion(t, db, asg.ID, 1)

	require.NoError(t, db.Create(&classModel.ClassStudentModel{
		ClassID:   cls.ID,
		StudentID: std.ID,
	}).Error)

	// belum published → tidak terlihat walau terdaftar
	loaded := func() *assignmentModel.AssignmentModel {
		var m assignmentModel.AssignmentModel
		require.NoError(t, db.First(&m, "id = ?", asg.ID).Error)
		return &m
	}
	ok, err := CanStudentView(db, loaded(), std.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = SetPublished(db, asg.ID, tch.ID, true)
	require.NoError(t, err)

	ok, err = CanStudentView(db, loaded(), std.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// published tapi tidak terdaftar → tetap tidak terlihat
	ok, err = CanStudentView(db, loaded(), outsider.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVisibilityScope(t *testing.T) {
	db := newTestDB(t)
	tch := mkUser(t, db, constants.RoleTeacher)
	other := mkUser(t, db, constants.RoleTeacher)
	std := mkUser(t, db, constants.RoleStudent)

	clsA := mkClass(t, db, tch.ID)
	clsB := mkClass(t, db, other.ID)
	asgA := mkAssignment(t, db, tch.ID, clsA.ID)
	asgB := mkAssignment(t, db, other.ID, clsB.ID)
	mkQuestion(t, db, asgA.ID, 1)
	mkQuestion(t, db, asgB.ID, 1)

	require.NoError(t, db.Create(&classModel.ClassStudentModel{
		ClassID:   clsA.ID,
		StudentID: std.ID,
	}).Error)
	_, err := SetPublished(db, asgA.ID, tch.ID, true)
	require.NoError(t, err)

	countFor := func(role string, userID uuid.UUID) int64 {
		var n int64
		require.NoError(t, db.Model(&assignmentModel.AssignmentModel{}).
			Scopes(VisibilityScope(db, role, userID)).Count(&n).Error)
		return n
	}

	require.EqualValues(t, 1, countFor(constants.RoleTeacher, tch.ID))
	require.EqualValues(t, 1, countFor(constants.RoleTeacher, other.ID))
	// siswa: hanya published di kelas yang diikuti (asgB belum published utk dia pun bukan kelasnya)
	require.EqualValues(t, 1, countFor(constants.RoleStudent, std.ID))
	// admin lihat semua
	require.EqualValues(t, 2, countFor(constants.RoleAdmin, uuid.New()))
}
