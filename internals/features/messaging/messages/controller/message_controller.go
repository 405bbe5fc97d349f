// internals/features/messaging/messages/controller/message_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"qodwa_backend/internals/features/messaging/messages/dto"
	"qodwa_backend/internals/features/messaging/messages/model"
	userModel "qodwa_backend/internals/features/users/user/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageController serves both sides of a thread, the route group decides
// which role reaches it.
type MessageController struct {
	DB *gorm.DB
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db}
}

// GET /api/u/messages/threads  |  GET /api/t/messages/threads
func (ctl *MessageController) ListThreads(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var threads []model.MessageThreadModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Teacher").Preload("Student").
		Where("message_thread_teacher_id = ? OR message_thread_student_id = ?", userID, userID).
		Order("message_thread_last_message_at DESC NULLS LAST").
		Find(&threads).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load threads")
	}
	return helper.JsonOK(c, "OK", threads)
}

// GET /api/u/messages/threads/:id  |  GET /api/t/messages/threads/:id
// Opening a thread marks the counterpart's messages as read.
func (ctl *MessageController) GetThread(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	threadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid thread id")
	}

	thread, err := ctl.loadThread(c, threadID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var messages []model.MessageModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("message_thread_id = ?", threadID).
		Order("message_created_at ASC").
		Find(&messages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load messages")
	}

	if err := ctl.DB.WithContext(c.Context()).Model(&model.MessageModel{}).
		Where("message_thread_id = ? AND message_sender_id <> ? AND message_is_read = FALSE", threadID, userID).
		Update("message_is_read", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark messages as read")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"thread":   thread,
		"messages": messages,
	})
}

// POST /api/u/messages  |  POST /api/t/messages
func (ctl *MessageController) Send(c *fiber.Ctx) error {
	senderID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}
	if req.ThreadID == nil && req.Recipient == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "thread_id or recipient_id is required")
	}

	var msg model.MessageModel
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var thread model.MessageThreadModel
		var err error
		if req.ThreadID != nil {
			thread, err = lockThread(tx, *req.ThreadID, senderID)
		} else {
			thread, err = findOrCreateThread(tx, senderID, *req.Recipient)
		}
		if err != nil {
			return err
		}

		msg = model.MessageModel{
			MessageThreadID: thread.MessageThreadID,
			MessageSenderID: senderID,
			MessageBody:     strings.TrimSpace(req.Body),
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&thread).
			Update("message_thread_last_message_at", time.Now()).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.JsonCreated(c, "Message sent", msg)
}

// PATCH /api/u/messages/:id/pin  |  PATCH /api/t/messages/:id/pin
func (ctl *MessageController) Pin(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid message id")
	}

	var req dto.PinMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var msg model.MessageModel
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, "message_id = ?", messageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Message not found")
			}
			return err
		}
		if _, err := lockThread(tx, msg.MessageThreadID, userID); err != nil {
			return err
		}
		if err := tx.Model(&msg).Update("message_is_pinned", *req.Pinned).Error; err != nil {
			return err
		}
		msg.MessageIsPinned = *req.Pinned
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.JsonUpdated(c, "Message updated", msg)
}

/* ===================== internals ===================== */

func (ctl *MessageController) loadThread(c *fiber.Ctx, threadID, userID uuid.UUID) (*model.MessageThreadModel, error) {
	var thread model.MessageThreadModel
	err := ctl.DB.WithContext(c.Context()).
		Preload("Teacher").Preload("Student").
		First(&thread, "message_thread_id = ?", threadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Thread not found")
	}
	if err != nil {
		return nil, err
	}
	if !thread.Involves(userID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You are not part of this thread")
	}
	return &thread, nil
}

func lockThread(tx *gorm.DB, threadID, userID uuid.UUID) (model.MessageThreadModel, error) {
	var thread model.MessageThreadModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&thread, "message_thread_id = ?", threadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return thread, fiber.NewError(fiber.StatusNotFound, "Thread not found")
	}
	if err != nil {
		return thread, err
	}
	if !thread.Involves(userID) {
		return thread, fiber.NewError(fiber.StatusForbidden, "You are not part of this thread")
	}
	return thread, nil
}

// findOrCreateThread resolves which side is the teacher from the user rows,
// then reuses the unique pair row when it already exists.
func findOrCreateThread(tx *gorm.DB, senderID, recipientID uuid.UUID) (model.MessageThreadModel, error) {
	var thread model.MessageThreadModel
	if senderID == recipientID {
		return thread, fiber.NewError(fiber.StatusBadRequest, "Cannot message yourself")
	}

	var sender, recipient userModel.UserModel
	if err := tx.First(&sender, "id = ?", senderID).Error; err != nil {
		return thread, err
	}
	if err := tx.First(&recipient, "id = ?", recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return thread, fiber.NewError(fiber.StatusNotFound, "Recipient not found")
		}
		return thread, err
	}

	teacherID, studentID := senderID, recipientID
	switch {
	case sender.IsApprovedTeacher():
	case recipient.IsApprovedTeacher():
		teacherID, studentID = recipientID, senderID
	default:
		return thread, fiber.NewError(fiber.StatusBadRequest, "A thread needs a teacher and a student")
	}

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&thread, "message_thread_teacher_id = ? AND message_thread_student_id = ?", teacherID, studentID).Error
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return thread, err
	}

	thread = model.MessageThreadModel{
		MessageThreadTeacherID: teacherID,
		MessageThreadStudentID: studentID,
	}
	if err := tx.Create(&thread).Error; err != nil {
		return thread, err
	}
	return thread, nil
}
