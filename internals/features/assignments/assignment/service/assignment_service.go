package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "sciedu_backend/internals/features/assignments/assignment/model"
	progressModel "sciedu_backend/internals/features/assignments/progress/model"
	questionModel "sciedu_backend/internals/features/assignments/question/model"
	classModel "sciedu_backend/internals/features/school/classes/model"
	"sciedu_backend/internals/constants"
)

// EnsureClassOwned memastikan kelas ada & dimiliki guru ybs.
func EnsureClassOwned(db *gorm.DB, classID, teacherID uuid.UUID) error {
	var cls classModel.ClassModel
	if err := db.Select("id", "teacher_id").First(&cls, "id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek kelas")
	}
	if cls.TeacherID != teacherID {
		return fiber.NewError(fiber.StatusForbidden, "Anda bukan pemilik kelas ini")
	}
	return nil
}

// LoadOwnedAssignment ambil assignment milik guru ybs.
func LoadOwnedAssignment(db *gorm.DB, id, teacherID uuid.UUID) (*assignmentModel.AssignmentModel, error) {
	var m assignmentModel.AssignmentModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal ambil tugas")
	}
	if m.TeacherID != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Anda bukan pemilik tugas ini")
	}
	return &m, nil
}

// SetPublished ubah status publish. Saat publish, total_points dihitung
// ulang dari jumlah poin soal dalam satu transaksi; tugas tanpa soal
// tidak boleh dipublish. Unpublish tidak menyentuh total_points.
func SetPublished(db *gorm.DB, id, teacherID uuid.UUID, publish bool) (*assignmentModel.AssignmentModel, error) {
	m, err := LoadOwnedAssignment(db, id, teacherID)
	if err != nil {
		return nil, err
	}

	if !publish {
		if m.IsPublished {
			if err := db.Model(m).Update("is_published", false).Error; err != nil {
				return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal update tugas")
			}
			m.IsPublished = false
		}
		return m, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&questionModel.QuestionModel{}).
			Where("assignment_id = ?", m.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tugas tanpa soal tidak bisa dipublish")
		}

		var total int64
		if err := tx.Model(&questionModel.QuestionModel{}).
			Where("assignment_id = ?", m.ID).
			Select("COALESCE(SUM(points), 0)").Scan(&total).Error; err != nil {
			return err
		}

		if err := tx.Model(m).Updates(map[string]any{
			"is_published": true,
			"total_points": total,
		}).Error; err != nil {
			return err
		}
		m.IsPublished = true
		m.TotalPoints = int(total)
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal publish tugas")
	}
	return m, nil
}

// DeleteAssignment hapus tugas + soalnya. Ditolak kalau sudah ada
// progres siswa pada tugas ini.
func DeleteAssignment(db *gorm.DB, id, teacherID uuid.UUID) error {
	m, err := LoadOwnedAssignment(db, id, teacherID)
	if err != nil {
		return err
	}

	var submissions int64
	if err := db.Model(&progressModel.StudentProgressModel{}).
		Where("assignment_id = ?", m.ID).Count(&submissions).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek progres siswa")
	}
	if submissions > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Tugas sudah dikerjakan siswa, tidak bisa dihapus")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", m.ID).
			Delete(&questionModel.QuestionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal hapus tugas")
	}
	return nil
}

// VisibilityScope membatasi query assignment per role:
// guru → tugas miliknya; siswa → tugas published di kelas yang dia ikuti;
// admin → semua.
func VisibilityScope(db *gorm.DB, role string, userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		switch role {
		case constants.RoleTeacher:
			return q.Where("assignments.teacher_id = ?", userID)
		case constants.RoleStudent:
			return q.Where("assignments.is_published = ?", true).
				Where("assignments.class_id IN (?)", db.Model(&classModel.ClassStudentModel{}).
					Select("class_id").Where("student_id = ?", userID))
		default:
			return q
		}
	}
}

// CanStudentView cek satu assignment terlihat oleh siswa.
func CanStudentView(db *gorm.DB, m *assignmentModel.AssignmentModel, studentID uuid.UUID) (bool, error) {
	if !m.IsPublished {
		return false, nil
	}
	var cnt int64
	if err := db.Model(&classModel.ClassStudentModel{}).
		Where("class_id = ? AND student_id = ?", m.ClassID, studentID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
