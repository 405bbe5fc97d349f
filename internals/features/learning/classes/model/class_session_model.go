// internals/features/learning/classes/model/class_session_model.go
package model

import (
	"database/sql/driver"
	"strings"
	"time"

	userModel "qodwa_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM: class_session_status_enum
   ========================================================= */

type ClassSessionStatus string

const (
	ClassScheduled  ClassSessionStatus = "SCHEDULED"
	ClassInProgress ClassSessionStatus = "IN_PROGRESS"
	ClassCompleted  ClassSessionStatus = "COMPLETED"
	ClassCancelled  ClassSessionStatus = "CANCELLED"
	ClassExpired    ClassSessionStatus = "EXPIRED"
)

func (s *ClassSessionStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = ClassSessionStatus(strings.ToUpper(strings.TrimSpace(v)))
	case []byte:
		*s = ClassSessionStatus(strings.ToUpper(strings.TrimSpace(string(v))))
	case nil:
		*s = ""
	default:
		*s = ClassSessionStatus(strings.ToUpper(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (s ClassSessionStatus) Value() (driver.Value, error) {
	return strings.ToUpper(strings.TrimSpace(string(s))), nil
}

// IsFinal reports whether the session can no longer transition.
func (s ClassSessionStatus) IsFinal() bool {
	switch s {
	case ClassCompleted, ClassCancelled, ClassExpired:
		return true
	}
	return false
}

/* =========================================================
   MODEL: class_sessions
   ========================================================= */

type ClassSessionModel struct {
	ClassSessionID uuid.UUID `gorm:"column:class_session_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_session_id"`

	ClassSessionTeacherID      uuid.UUID `gorm:"column:class_session_teacher_id;type:uuid;not null;index"      json:"class_session_teacher_id"`
	ClassSessionStudentID      uuid.UUID `gorm:"column:class_session_student_id;type:uuid;not null;index"      json:"class_session_student_id"`
	ClassSessionSubscriptionID uuid.UUID `gorm:"column:class_session_subscription_id;type:uuid;not null;index" json:"class_session_subscription_id"`

	ClassSessionStatus ClassSessionStatus `gorm:"column:class_session_status;type:varchar(12);not null;default:'SCHEDULED';index" json:"class_session_status"`

	ClassSessionScheduledAt *time.Time `gorm:"column:class_session_scheduled_at"       json:"class_session_scheduled_at,omitempty"`
	ClassSessionStartedAt   *time.Time `gorm:"column:class_session_started_at"         json:"class_session_started_at,omitempty"`
	ClassSessionEndedAt     *time.Time `gorm:"column:class_session_ended_at"           json:"class_session_ended_at,omitempty"`
	ClassSessionExpiresAt   *time.Time `gorm:"column:class_session_expires_at;index"   json:"class_session_expires_at,omitempty"`

	ClassSessionDurationMinutes int     `gorm:"column:class_session_duration_minutes;not null;default:30" json:"class_session_duration_minutes"`
	ClassSessionMeetingLink     *string `gorm:"column:class_session_meeting_link"                         json:"class_session_meeting_link,omitempty"`
	ClassSessionNotes           *string `gorm:"column:class_session_notes"                                json:"class_session_notes,omitempty"`

	// Preloads
	Teacher *userModel.UserModel `gorm:"foreignKey:ClassSessionTeacherID;references:ID" json:"teacher,omitempty"`
	Student *userModel.UserModel `gorm:"foreignKey:ClassSessionStudentID;references:ID" json:"student,omitempty"`

	ClassSessionCreatedAt time.Time      `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time      `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at"`
	ClassSessionDeletedAt gorm.DeletedAt `gorm:"column:class_session_deleted_at;index"          json:"class_session_deleted_at,omitempty"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }
