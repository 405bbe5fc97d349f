// internals/features/learning/classes/dto/class_session_dto.go
package dto

import (
	"time"

	"qodwa_backend/internals/features/learning/classes/model"
	userDTO "qodwa_backend/internals/features/users/user/dto"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type ScheduleClassRequest struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       *string   `json:"notes" validate:"omitempty,max=500"`
}

/* ===================== RESPONSES ===================== */

type ClassSessionResponse struct {
	ClassSessionID              uuid.UUID                `json:"class_session_id"`
	ClassSessionTeacherID       uuid.UUID                `json:"class_session_teacher_id"`
	ClassSessionStudentID       uuid.UUID                `json:"class_session_student_id"`
	ClassSessionSubscriptionID  uuid.UUID                `json:"class_session_subscription_id"`
	ClassSessionStatus          model.ClassSessionStatus `json:"class_session_status"`
	ClassSessionScheduledAt     *time.Time               `json:"class_session_scheduled_at,omitempty"`
	ClassSessionStartedAt       *time.Time               `json:"class_session_started_at,omitempty"`
	ClassSessionEndedAt         *time.Time               `json:"class_session_ended_at,omitempty"`
	ClassSessionExpiresAt       *time.Time               `json:"class_session_expires_at,omitempty"`
	ClassSessionDurationMinutes int                      `json:"class_session_duration_minutes"`
	ClassSessionMeetingLink     *string                  `json:"class_session_meeting_link,omitempty"`
	ClassSessionNotes           *string                  `json:"class_session_notes,omitempty"`
	Teacher                     *userDTO.UserResponse    `json:"teacher,omitempty"`
	Student                     *userDTO.UserResponse    `json:"student,omitempty"`
}

func FromModel(m *model.ClassSessionModel) ClassSessionResponse {
	resp := ClassSessionResponse{
		ClassSessionID:              m.ClassSessionID,
		ClassSessionTeacherID:       m.ClassSessionTeacherID,
		ClassSessionStudentID:       m.ClassSessionStudentID,
		ClassSessionSubscriptionID:  m.ClassSessionSubscriptionID,
		ClassSessionStatus:          m.ClassSessionStatus,
		ClassSessionScheduledAt:     m.ClassSessionScheduledAt,
		ClassSessionStartedAt:       m.ClassSessionStartedAt,
		ClassSessionEndedAt:         m.ClassSessionEndedAt,
		ClassSessionExpiresAt:       m.ClassSessionExpiresAt,
		ClassSessionDurationMinutes: m.ClassSessionDurationMinutes,
		ClassSessionMeetingLink:     m.ClassSessionMeetingLink,
		ClassSessionNotes:           m.ClassSessionNotes,
	}
	if m.Teacher != nil {
		t := userDTO.FromModel(m.Teacher)
		resp.Teacher = &t
	}
	if m.Student != nil {
		s := userDTO.FromModel(m.Student)
		resp.Student = &s
	}
	return resp
}

func FromModels(ms []model.ClassSessionModel) []ClassSessionResponse {
	out := make([]ClassSessionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

/* ===================== EARNINGS ===================== */

type EarningsSummaryResponse struct {
	TotalCents int                         `json:"total_cents"`
	Currency   string                      `json:"currency"`
	Earnings   []model.TeacherEarningModel `json:"earnings"`
}
