// internals/features/learning/assignments/model/teacher_connection_model.go
package model

import (
	"time"

	userModel "qodwa_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL: teacher_connections
   One row per teacher-student pair. At most one row per
   student carries is_primary = true (partial unique index).
   ========================================================= */

type TeacherConnectionModel struct {
	TeacherConnectionID uuid.UUID `gorm:"column:teacher_connection_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_connection_id"`

	TeacherConnectionTeacherID uuid.UUID `gorm:"column:teacher_connection_teacher_id;type:uuid;not null;index:idx_teacher_connection_pair,unique,where:teacher_connection_deleted_at IS NULL" json:"teacher_connection_teacher_id"`
	TeacherConnectionStudentID uuid.UUID `gorm:"column:teacher_connection_student_id;type:uuid;not null;index:idx_teacher_connection_pair,unique,where:teacher_connection_deleted_at IS NULL" json:"teacher_connection_student_id"`

	TeacherConnectionIsPrimary bool    `gorm:"column:teacher_connection_is_primary;not null;default:false" json:"teacher_connection_is_primary"`
	TeacherConnectionNotes     *string `gorm:"column:teacher_connection_notes"                             json:"teacher_connection_notes,omitempty"`

	TeacherConnectionAssignedAt time.Time `gorm:"column:teacher_connection_assigned_at;autoCreateTime" json:"teacher_connection_assigned_at"`

	// Preloads
	Teacher *userModel.UserModel `gorm:"foreignKey:TeacherConnectionTeacherID;references:ID" json:"teacher,omitempty"`
	Student *userModel.UserModel `gorm:"foreignKey:TeacherConnectionStudentID;references:ID" json:"student,omitempty"`

	TeacherConnectionCreatedAt time.Time      `gorm:"column:teacher_connection_created_at;autoCreateTime" json:"teacher_connection_created_at"`
	TeacherConnectionUpdatedAt time.Time      `gorm:"column:teacher_connection_updated_at;autoUpdateTime" json:"teacher_connection_updated_at"`
	TeacherConnectionDeletedAt gorm.DeletedAt `gorm:"column:teacher_connection_deleted_at;index"          json:"teacher_connection_deleted_at,omitempty"`
}

func (TeacherConnectionModel) TableName() string { return "teacher_connections" }
