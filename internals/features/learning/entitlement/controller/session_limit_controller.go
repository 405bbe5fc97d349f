// internals/features/learning/entitlement/controller/session_limit_controller.go
package controller

import (
	"time"

	"qodwa_backend/internals/features/learning/entitlement/service"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionLimitController struct {
	DB *gorm.DB
}

func NewSessionLimitController(db *gorm.DB) *SessionLimitController {
	return &SessionLimitController{DB: db}
}

// GET /api/u/session-limit
func (ctl *SessionLimitController) MySessionLimit(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.respond(c, studentID)
}

// GET /api/t/students/:id/session-limit
// Teachers may only look up students connected to them.
func (ctl *SessionLimitController) StudentSessionLimit(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var connected int64
	if err := ctl.DB.WithContext(c.Context()).Table("teacher_connections").
		Where("teacher_connection_teacher_id = ? AND teacher_connection_student_id = ? AND teacher_connection_deleted_at IS NULL",
			teacherID, studentID).
		Count(&connected).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check connection")
	}
	if connected == 0 {
		return helper.JsonError(c, fiber.StatusForbidden, "Student is not assigned to you")
	}
	return ctl.respond(c, studentID)
}

func (ctl *SessionLimitController) respond(c *fiber.Ctx, studentID uuid.UUID) error {
	snap, err := service.LoadSnapshot(ctl.DB.WithContext(c.Context()), studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load session limit")
	}
	return helper.JsonOK(c, "OK", service.Evaluate(snap, time.Now()))
}
