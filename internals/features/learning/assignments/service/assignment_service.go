package service

import (
	"errors"
	"log"

	"qodwa_backend/internals/features/learning/assignments/model"
	userModel "qodwa_backend/internals/features/users/user/model"
	"qodwa_backend/internals/services/email"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* =========================================================
   Assign a teacher to a student
========================================================= */

type AssignInput struct {
	TeacherID uuid.UUID
	StudentID uuid.UUID
	IsPrimary bool
	Notes     *string
}

// Assign creates (or revives) the teacher-student connection. Promoting to
// primary clears every other primary flag for the student in the same
// transaction so a student never ends up with two primary teachers.
func Assign(db *gorm.DB, in AssignInput) (*model.TeacherConnectionModel, error) {
	if in.TeacherID == in.StudentID {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Teacher and student must differ")
	}

	var conn model.TeacherConnectionModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var teacher userModel.UserModel
		if err := tx.First(&teacher, "id = ?", in.TeacherID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
			}
			return err
		}
		if !teacher.IsApprovedTeacher() {
			return fiber.NewError(fiber.StatusConflict, "Teacher is not approved yet")
		}

		var student userModel.UserModel
		if err := tx.First(&student, "id = ?", in.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return err
		}

		// Reuse a soft-deleted pair instead of inserting a duplicate.
		err := tx.Unscoped().
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&conn, "teacher_connection_teacher_id = ? AND teacher_connection_student_id = ?", in.TeacherID, in.StudentID).Error
		switch {
		case err == nil && !conn.TeacherConnectionDeletedAt.Valid:
			// Re-assigning an existing pair is only meaningful as a promotion.
			if !in.IsPrimary || conn.TeacherConnectionIsPrimary {
				return fiber.NewError(fiber.StatusConflict, "Teacher is already assigned to this student")
			}
		case err == nil:
			if err := tx.Unscoped().Model(&conn).Updates(map[string]any{
				"teacher_connection_deleted_at": nil,
				"teacher_connection_is_primary": false,
				"teacher_connection_notes":      in.Notes,
			}).Error; err != nil {
				return err
			}
			conn.TeacherConnectionDeletedAt = gorm.DeletedAt{}
			conn.TeacherConnectionIsPrimary = false
			conn.TeacherConnectionNotes = in.Notes
		case errors.Is(err, gorm.ErrRecordNotFound):
			conn = model.TeacherConnectionModel{
				TeacherConnectionTeacherID: in.TeacherID,
				TeacherConnectionStudentID: in.StudentID,
				TeacherConnectionNotes:     in.Notes,
			}
			if err := tx.Create(&conn).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if in.IsPrimary {
			if err := promoteToPrimary(tx, &conn, in.TeacherID, in.StudentID); err != nil {
				return err
			}
		}

		conn.Teacher = &teacher
		conn.Student = &student
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] teacher %s assigned to student %s (primary=%v)", in.TeacherID, in.StudentID, in.IsPrimary)
	email.Default.DispatchAll(email.TeacherAssigned(
		conn.Student.Email, displayName(conn.Student),
		conn.Teacher.Email, displayName(conn.Teacher),
		in.IsPrimary,
	))
	return &conn, nil
}

func promoteToPrimary(tx *gorm.DB, conn *model.TeacherConnectionModel, teacherID, studentID uuid.UUID) error {
	// Clear-then-set inside the caller's transaction.
	if err := tx.Model(&model.TeacherConnectionModel{}).
		Where("teacher_connection_student_id = ? AND teacher_connection_is_primary = TRUE", studentID).
		Update("teacher_connection_is_primary", false).Error; err != nil {
		return err
	}
	if err := tx.Model(conn).Update("teacher_connection_is_primary", true).Error; err != nil {
		return err
	}
	conn.TeacherConnectionIsPrimary = true

	// Denormalized shortcut used by dashboards and class scheduling.
	return tx.Model(&userModel.UserModel{}).
		Where("id = ?", studentID).
		Update("assigned_teacher_id", teacherID).Error
}

/* =========================================================
   Remove an assignment
========================================================= */

func Remove(db *gorm.DB, connectionID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var conn model.TeacherConnectionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&conn, "teacher_connection_id = ?", connectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Assignment not found")
			}
			return err
		}

		if err := tx.Delete(&conn).Error; err != nil {
			return err
		}
		if conn.TeacherConnectionIsPrimary {
			if err := tx.Model(&userModel.UserModel{}).
				Where("id = ? AND assigned_teacher_id = ?", conn.TeacherConnectionStudentID, conn.TeacherConnectionTeacherID).
				Update("assigned_teacher_id", nil).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func displayName(u *userModel.UserModel) string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.UserName
}
