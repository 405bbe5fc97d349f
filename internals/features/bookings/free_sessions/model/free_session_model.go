// internals/features/bookings/free_sessions/model/free_session_model.go
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
   ENUM: free_session_status_enum
   ========================================================= */

type FreeSessionStatus string

const (
	FreeSessionPending   FreeSessionStatus = "PENDING"
	FreeSessionScheduled FreeSessionStatus = "SCHEDULED"
	FreeSessionCompleted FreeSessionStatus = "COMPLETED"
	FreeSessionCancelled FreeSessionStatus = "CANCELLED"
	FreeSessionNoShow    FreeSessionStatus = "NO_SHOW"
)

// transitions is the booking state machine. Anything absent is rejected.
var transitions = map[FreeSessionStatus][]FreeSessionStatus{
	FreeSessionPending:   {FreeSessionScheduled, FreeSessionCancelled},
	FreeSessionScheduled: {FreeSessionCompleted, FreeSessionCancelled, FreeSessionNoShow},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to FreeSessionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ParseFreeSessionStatus(raw string) (FreeSessionStatus, bool) {
	s := FreeSessionStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case FreeSessionPending, FreeSessionScheduled, FreeSessionCompleted, FreeSessionCancelled, FreeSessionNoShow:
		return s, true
	}
	return "", false
}

func (s *FreeSessionStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = FreeSessionStatus(strings.ToUpper(strings.TrimSpace(v)))
	case []byte:
		*s = FreeSessionStatus(strings.ToUpper(strings.TrimSpace(string(v))))
	case nil:
		*s = ""
	default:
		*s = FreeSessionStatus(strings.ToUpper(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (s FreeSessionStatus) Value() (driver.Value, error) {
	return strings.ToUpper(strings.TrimSpace(string(s))), nil
}

/* =========================================================
   MODEL: free_session_bookings
   ========================================================= */

type FreeSessionBookingModel struct {
	FreeSessionBookingID uuid.UUID `gorm:"column:free_session_booking_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"free_session_booking_id"`

	// Contact details as submitted on the public form.
	FreeSessionBookingName  string  `gorm:"column:free_session_booking_name;type:varchar(100);not null" json:"free_session_booking_name"`
	FreeSessionBookingEmail string  `gorm:"column:free_session_booking_email;type:varchar(255);not null;index" json:"free_session_booking_email"`
	FreeSessionBookingPhone *string `gorm:"column:free_session_booking_phone;type:varchar(30)"          json:"free_session_booking_phone,omitempty"`

	// Set when the requester was logged in at submission time.
	FreeSessionBookingStudentID *uuid.UUID `gorm:"column:free_session_booking_student_id;type:uuid;index" json:"free_session_booking_student_id,omitempty"`

	FreeSessionBookingPreferredTime *string `gorm:"column:free_session_booking_preferred_time;type:varchar(120)" json:"free_session_booking_preferred_time,omitempty"`
	FreeSessionBookingNotes         *string `gorm:"column:free_session_booking_notes"                            json:"free_session_booking_notes,omitempty"`

	FreeSessionBookingStatus      FreeSessionStatus `gorm:"column:free_session_booking_status;type:varchar(12);not null;default:'PENDING';index" json:"free_session_booking_status"`
	FreeSessionBookingTeacherID   *uuid.UUID        `gorm:"column:free_session_booking_teacher_id;type:uuid;index" json:"free_session_booking_teacher_id,omitempty"`
	FreeSessionBookingScheduledAt *time.Time        `gorm:"column:free_session_booking_scheduled_at"               json:"free_session_booking_scheduled_at,omitempty"`
	FreeSessionBookingMeetingLink *string           `gorm:"column:free_session_booking_meeting_link;type:varchar(500)" json:"free_session_booking_meeting_link,omitempty"`

	// Preload
	Teacher *userModel.UserModel `gorm:"foreignKey:FreeSessionBookingTeacherID;references:ID" json:"teacher,omitempty"`

	FreeSessionBookingCreatedAt time.Time      `gorm:"column:free_session_booking_created_at;autoCreateTime" json:"free_session_booking_created_at"`
	FreeSessionBookingUpdatedAt time.Time      `gorm:"column:free_session_booking_updated_at;autoUpdateTime" json:"free_session_booking_updated_at"`
	FreeSessionBookingDeletedAt gorm.DeletedAt `gorm:"column:free_session_booking_deleted_at;index"          json:"free_session_booking_deleted_at,omitempty"`
}

func (FreeSessionBookingModel) TableName() string { return "free_session_bookings" }
