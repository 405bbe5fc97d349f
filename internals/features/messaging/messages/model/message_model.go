// internals/features/messaging/messages/model/message_model.go
package model

import (
	"time"

	userModel "qodwa_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   MODEL: message_threads
   One thread per teacher-student pair.
   ========================================================= */

type MessageThreadModel struct {
	MessageThreadID uuid.UUID `gorm:"column:message_thread_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"message_thread_id"`

	MessageThreadTeacherID uuid.UUID `gorm:"column:message_thread_teacher_id;type:uuid;not null;index:idx_message_thread_pair,unique" json:"message_thread_teacher_id"`
	MessageThreadStudentID uuid.UUID `gorm:"column:message_thread_student_id;type:uuid;not null;index:idx_message_thread_pair,unique" json:"message_thread_student_id"`

	MessageThreadLastMessageAt *time.Time `gorm:"column:message_thread_last_message_at;index" json:"message_thread_last_message_at,omitempty"`

	// Preloads
	Teacher *userModel.UserModel `gorm:"foreignKey:MessageThreadTeacherID;references:ID" json:"teacher,omitempty"`
	Student *userModel.UserModel `gorm:"foreignKey:MessageThreadStudentID;references:ID" json:"student,omitempty"`

	MessageThreadCreatedAt time.Time      `gorm:"column:message_thread_created_at;autoCreateTime" json:"message_thread_created_at"`
	MessageThreadUpdatedAt time.Time      `gorm:"column:message_thread_updated_at;autoUpdateTime" json:"message_thread_updated_at"`
	MessageThreadDeletedAt gorm.DeletedAt `gorm:"column:message_thread_deleted_at;index"          json:"message_thread_deleted_at,omitempty"`
}

func (MessageThreadModel) TableName() string { return "message_threads" }

// Involves reports whether the user is one of the two thread participants.
func (t *MessageThreadModel) Involves(userID uuid.UUID) bool {
	return t.MessageThreadTeacherID == userID || t.MessageThreadStudentID == userID
}

/* =========================================================
   MODEL: messages
   ========================================================= */

type MessageModel struct {
	MessageID uuid.UUID `gorm:"column:message_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"message_id"`

	MessageThreadID uuid.UUID `gorm:"column:message_thread_id;type:uuid;not null;index" json:"message_thread_id"`
	MessageSenderID uuid.UUID `gorm:"column:message_sender_id;type:uuid;not null;index" json:"message_sender_id"`

	MessageBody string `gorm:"column:message_body;not null" json:"message_body"`

	MessageIsRead   bool `gorm:"column:message_is_read;not null;default:false"   json:"message_is_read"`
	MessageIsPinned bool `gorm:"column:message_is_pinned;not null;default:false" json:"message_is_pinned"`

	MessageCreatedAt time.Time      `gorm:"column:message_created_at;autoCreateTime" json:"message_created_at"`
	MessageUpdatedAt time.Time      `gorm:"column:message_updated_at;autoUpdateTime" json:"message_updated_at"`
	MessageDeletedAt gorm.DeletedAt `gorm:"column:message_deleted_at;index"          json:"message_deleted_at,omitempty"`
}

func (MessageModel) TableName() string { return "messages" }
