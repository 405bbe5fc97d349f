// internals/features/users/user/model/user_model.go
package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM: teacher_approval_status_enum (must match the DB)
   ========================================================= */

type TeacherApprovalStatus string

const (
	TeacherApprovalPending  TeacherApprovalStatus = "PENDING"
	TeacherApprovalApproved TeacherApprovalStatus = "APPROVED"
	TeacherApprovalRejected TeacherApprovalStatus = "REJECTED"
)

// Scan & Value → keep values uppercase + trimmed
func (s *TeacherApprovalStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = TeacherApprovalStatus(strings.ToUpper(strings.TrimSpace(v)))
	case []byte:
		*s = TeacherApprovalStatus(strings.ToUpper(strings.TrimSpace(string(v))))
	case nil:
		*s = ""
	default:
		*s = TeacherApprovalStatus(strings.ToUpper(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (s TeacherApprovalStatus) Value() (driver.Value, error) {
	return strings.ToUpper(strings.TrimSpace(string(s))), nil
}

/* =========================================================
   MODEL: users
   ========================================================= */

type UserModel struct {
	// PK
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	// Identity
	UserName string  `gorm:"column:user_name;type:varchar(50);not null;uniqueIndex" json:"user_name"`
	FullName *string `gorm:"column:full_name;type:varchar(100)"                     json:"full_name,omitempty"`
	Email    string  `gorm:"column:email;type:varchar(255);not null;uniqueIndex"    json:"email"`
	Password string  `gorm:"column:password;type:varchar(250);not null"             json:"-"`
	Phone    *string `gorm:"column:phone;type:varchar(30)"                          json:"phone,omitempty"`
	Gender   *string `gorm:"column:gender;type:varchar(10)"                         json:"gender,omitempty"`

	// Access
	Role     string `gorm:"column:role;type:varchar(20);not null;default:'user';index" json:"role"`
	IsActive bool   `gorm:"column:is_active;not null;default:true"                     json:"is_active"`

	// Teacher profile (only meaningful when is_teacher)
	IsTeacher             bool                   `gorm:"column:is_teacher;not null;default:false;index"        json:"is_teacher"`
	TeacherApprovalStatus *TeacherApprovalStatus `gorm:"column:teacher_approval_status;type:varchar(10);index" json:"teacher_approval_status,omitempty"`
	TeacherRejectedReason *string                `gorm:"column:teacher_rejected_reason"                        json:"teacher_rejected_reason,omitempty"`
	TeacherApprovedAt     *time.Time             `gorm:"column:teacher_approved_at"                            json:"teacher_approved_at,omitempty"`
	Subjects              datatypes.JSON         `gorm:"column:subjects;type:jsonb"                            json:"subjects,omitempty"`
	Qualifications        *string                `gorm:"column:qualifications"                                 json:"qualifications,omitempty"`
	YearsExperience       *int16                 `gorm:"column:years_experience"                               json:"years_experience,omitempty"`
	ZoomLink              *string                `gorm:"column:zoom_link;type:varchar(500)"                    json:"zoom_link,omitempty"`

	// Primary teacher back-reference (students only)
	AssignedTeacherID *uuid.UUID `gorm:"column:assigned_teacher_id;type:uuid;index" json:"assigned_teacher_id,omitempty"`

	// Audit
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"          json:"deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// IsApprovedTeacher reports whether the account may act as a teacher.
func (u *UserModel) IsApprovedTeacher() bool {
	return u.IsTeacher &&
		u.TeacherApprovalStatus != nil &&
		*u.TeacherApprovalStatus == TeacherApprovalApproved
}
