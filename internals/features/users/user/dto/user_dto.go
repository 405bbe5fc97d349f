package dto

import (
	"strings"
	"time"

	"qodwa_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

//
// ========== RESPONSE ==========
//

type UserResponse struct {
	ID                    uuid.UUID      `json:"id"`
	UserName              string         `json:"user_name"`
	FullName              *string        `json:"full_name,omitempty"`
	Email                 string         `json:"email"`
	Phone                 *string        `json:"phone,omitempty"`
	Gender                *string        `json:"gender,omitempty"`
	Role                  string         `json:"role"`
	IsActive              bool           `json:"is_active"`
	IsTeacher             bool           `json:"is_teacher"`
	TeacherApprovalStatus *string        `json:"teacher_approval_status,omitempty"`
	TeacherRejectedReason *string        `json:"teacher_rejected_reason,omitempty"`
	Subjects              datatypes.JSON `json:"subjects,omitempty"`
	Qualifications        *string        `json:"qualifications,omitempty"`
	YearsExperience       *int16         `json:"years_experience,omitempty"`
	ZoomLink              *string        `json:"zoom_link,omitempty"`
	AssignedTeacherID     *uuid.UUID     `json:"assigned_teacher_id,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
}

func FromModel(m *model.UserModel) UserResponse {
	var status *string
	if m.TeacherApprovalStatus != nil {
		s := string(*m.TeacherApprovalStatus)
		status = &s
	}
	return UserResponse{
		ID:                    m.ID,
		UserName:              m.UserName,
		FullName:              m.FullName,
		Email:                 m.Email,
		Phone:                 m.Phone,
		Gender:                m.Gender,
		Role:                  m.Role,
		IsActive:              m.IsActive,
		IsTeacher:             m.IsTeacher,
		TeacherApprovalStatus: status,
		TeacherRejectedReason: m.TeacherRejectedReason,
		Subjects:              m.Subjects,
		Qualifications:        m.Qualifications,
		YearsExperience:       m.YearsExperience,
		ZoomLink:              m.ZoomLink,
		AssignedTeacherID:     m.AssignedTeacherID,
		CreatedAt:             m.CreatedAt,
	}
}

func FromModels(ms []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

//
// ========== UPDATE / PATCH ==========
//
// PATCH note: pointer fields — nil = unchanged, non-nil = set.

type UpdateUserRequest struct {
	UserName        *string         `json:"user_name" validate:"omitempty,min=3,max=50"`
	FullName        *string         `json:"full_name" validate:"omitempty,max=100"`
	Phone           *string         `json:"phone" validate:"omitempty,max=30"`
	Gender          *string         `json:"gender" validate:"omitempty,oneof=male female"`
	IsActive        *bool           `json:"is_active" validate:"omitempty"`
	Subjects        *datatypes.JSON `json:"subjects" validate:"omitempty"`
	Qualifications  *string         `json:"qualifications" validate:"omitempty"`
	YearsExperience *int16          `json:"years_experience" validate:"omitempty,gte=0"`
	ZoomLink        *string         `json:"zoom_link" validate:"omitempty,url,max=500"`
}

// ApplyToModel copies the non-nil fields onto the model.
func (r UpdateUserRequest) ApplyToModel(m *model.UserModel) {
	if r.UserName != nil {
		m.UserName = strings.TrimSpace(*r.UserName)
	}
	if r.FullName != nil {
		m.FullName = r.FullName
	}
	if r.Phone != nil {
		m.Phone = r.Phone
	}
	if r.Gender != nil {
		m.Gender = r.Gender
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	if r.Subjects != nil {
		m.Subjects = *r.Subjects
	}
	if r.Qualifications != nil {
		m.Qualifications = r.Qualifications
	}
	if r.YearsExperience != nil {
		m.YearsExperience = r.YearsExperience
	}
	if r.ZoomLink != nil {
		m.ZoomLink = r.ZoomLink
	}
}

//
// ========== ADMIN ACTIONS ==========
//

type RejectTeacherRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}
