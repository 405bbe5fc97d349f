// internals/features/learning/classes/model/teacher_earning_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherEarningModel records the payout owed for one completed class.
// The unique class_session_id guard makes earning creation idempotent.
type TeacherEarningModel struct {
	TeacherEarningID uuid.UUID `gorm:"column:teacher_earning_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_earning_id"`

	TeacherEarningTeacherID      uuid.UUID `gorm:"column:teacher_earning_teacher_id;type:uuid;not null;index"       json:"teacher_earning_teacher_id"`
	TeacherEarningClassSessionID uuid.UUID `gorm:"column:teacher_earning_class_session_id;type:uuid;not null;uniqueIndex" json:"teacher_earning_class_session_id"`

	TeacherEarningAmountCents int    `gorm:"column:teacher_earning_amount_cents;not null"                    json:"teacher_earning_amount_cents"`
	TeacherEarningCurrency    string `gorm:"column:teacher_earning_currency;type:varchar(3);not null;default:'USD'" json:"teacher_earning_currency"`

	TeacherEarningCreatedAt time.Time      `gorm:"column:teacher_earning_created_at;autoCreateTime" json:"teacher_earning_created_at"`
	TeacherEarningDeletedAt gorm.DeletedAt `gorm:"column:teacher_earning_deleted_at;index"          json:"teacher_earning_deleted_at,omitempty"`
}

func (TeacherEarningModel) TableName() string { return "teacher_earnings" }
