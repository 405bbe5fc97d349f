// internals/features/learning/classes/controller/class_teacher_controller.go
package controller

import (
	"strings"

	"qodwa_backend/internals/features/learning/classes/dto"
	"qodwa_backend/internals/features/learning/classes/model"
	"qodwa_backend/internals/features/learning/classes/service"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassTeacherController struct {
	DB *gorm.DB
}

func NewClassTeacherController(db *gorm.DB) *ClassTeacherController {
	return &ClassTeacherController{DB: db}
}

// GET /api/t/classes?status=
func (ctl *ClassTeacherController) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.ClassSessionModel{}).
		Where("class_session_teacher_id = ?", teacherID)
	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		q = q.Where("class_session_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count classes")
	}

	var sessions []model.ClassSessionModel
	if err := q.Preload("Student").
		Order("class_session_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load classes")
	}
	return helper.JsonList(c, "Classes fetched", dto.FromModels(sessions),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// POST /api/t/classes
func (ctl *ClassTeacherController) Schedule(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ScheduleClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	sess, err := service.Schedule(ctl.DB.WithContext(c.Context()), teacherID, req.StudentID, req.ScheduledAt, req.Notes)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Class scheduled", dto.FromModel(sess))
}

// POST /api/t/classes/:id/start
func (ctl *ClassTeacherController) Start(c *fiber.Ctx) error {
	return ctl.transition(c, service.Start, "Class started")
}

// POST /api/t/classes/:id/end
func (ctl *ClassTeacherController) End(c *fiber.Ctx) error {
	return ctl.transition(c, service.End, "Class ended")
}

// POST /api/t/classes/:id/cancel
func (ctl *ClassTeacherController) Cancel(c *fiber.Ctx) error {
	return ctl.transition(c, service.Cancel, "Class cancelled")
}

func (ctl *ClassTeacherController) transition(
	c *fiber.Ctx,
	fn func(*gorm.DB, uuid.UUID, uuid.UUID) (*model.ClassSessionModel, error),
	message string,
) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class session id")
	}

	sess, err := fn(ctl.DB.WithContext(c.Context()), teacherID, sessionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, message, dto.FromModel(sess))
}

// GET /api/t/earnings
func (ctl *ClassTeacherController) Earnings(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var earnings []model.TeacherEarningModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("teacher_earning_teacher_id = ?", teacherID).
		Order("teacher_earning_created_at DESC").
		Find(&earnings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load earnings")
	}

	resp := dto.EarningsSummaryResponse{Currency: "USD", Earnings: earnings}
	for i := range earnings {
		resp.TotalCents += earnings[i].TeacherEarningAmountCents
		resp.Currency = earnings[i].TeacherEarningCurrency
	}
	return helper.JsonOK(c, "OK", resp)
}
