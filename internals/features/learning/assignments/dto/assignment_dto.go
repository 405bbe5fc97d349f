// internals/features/learning/assignments/dto/assignment_dto.go
package dto

import (
	"time"

	"qodwa_backend/internals/features/learning/assignments/model"
	userDTO "qodwa_backend/internals/features/users/user/dto"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type AssignTeacherRequest struct {
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	IsPrimary bool      `json:"is_primary"`
	Notes     *string   `json:"notes" validate:"omitempty,max=500"`
}

/* ===================== RESPONSES ===================== */

type TeacherConnectionResponse struct {
	TeacherConnectionID         uuid.UUID             `json:"teacher_connection_id"`
	TeacherConnectionTeacherID  uuid.UUID             `json:"teacher_connection_teacher_id"`
	TeacherConnectionStudentID  uuid.UUID             `json:"teacher_connection_student_id"`
	TeacherConnectionIsPrimary  bool                  `json:"teacher_connection_is_primary"`
	TeacherConnectionNotes      *string               `json:"teacher_connection_notes,omitempty"`
	TeacherConnectionAssignedAt time.Time             `json:"teacher_connection_assigned_at"`
	Teacher                     *userDTO.UserResponse `json:"teacher,omitempty"`
	Student                     *userDTO.UserResponse `json:"student,omitempty"`
}

func FromModel(m *model.TeacherConnectionModel) TeacherConnectionResponse {
	resp := TeacherConnectionResponse{
		TeacherConnectionID:         m.TeacherConnectionID,
		TeacherConnectionTeacherID:  m.TeacherConnectionTeacherID,
		TeacherConnectionStudentID:  m.TeacherConnectionStudentID,
		TeacherConnectionIsPrimary:  m.TeacherConnectionIsPrimary,
		TeacherConnectionNotes:      m.TeacherConnectionNotes,
		TeacherConnectionAssignedAt: m.TeacherConnectionAssignedAt,
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

func FromModels(ms []model.TeacherConnectionModel) []TeacherConnectionResponse {
	out := make([]TeacherConnectionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
