// internals/features/bookings/free_sessions/dto/free_session_dto.go
package dto

import (
	"strings"
	"time"

	"qodwa_backend/internals/features/bookings/free_sessions/model"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type CreateFreeSessionRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=30"`
	PreferredTime *string `json:"preferred_time" validate:"omitempty,max=120"`
	Notes         *string `json:"notes" validate:"omitempty,max=1000"`
}

func (r CreateFreeSessionRequest) ToModel(studentID *uuid.UUID) model.FreeSessionBookingModel {
	return model.FreeSessionBookingModel{
		FreeSessionBookingName:          strings.TrimSpace(r.Name),
		FreeSessionBookingEmail:         strings.ToLower(strings.TrimSpace(r.Email)),
		FreeSessionBookingPhone:         r.Phone,
		FreeSessionBookingStudentID:     studentID,
		FreeSessionBookingPreferredTime: r.PreferredTime,
		FreeSessionBookingNotes:         r.Notes,
		FreeSessionBookingStatus:        model.FreeSessionPending,
	}
}

// UpdateFreeSessionRequest is the admin PATCH payload. Status moves run
// through the state machine, everything else is a plain field update.
type UpdateFreeSessionRequest struct {
	Status      *string    `json:"status" validate:"omitempty,max=12"`
	TeacherID   *uuid.UUID `json:"teacher_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	MeetingLink *string    `json:"meeting_link" validate:"omitempty,url,max=500"`
	Notes       *string    `json:"notes" validate:"omitempty,max=1000"`
}
