// internals/features/learning/assignments/controller/assignment_admin_controller.go
package controller

import (
	"qodwa_backend/internals/features/learning/assignments/dto"
	"qodwa_backend/internals/features/learning/assignments/model"
	"qodwa_backend/internals/features/learning/assignments/service"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentAdminController struct {
	DB *gorm.DB
}

func NewAssignmentAdminController(db *gorm.DB) *AssignmentAdminController {
	return &AssignmentAdminController{DB: db}
}

// GET /api/a/assignments?teacher_id=&student_id=
func (ctl *AssignmentAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.TeacherConnectionModel{})
	if raw := c.Query("teacher_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher_id")
		}
		q = q.Where("teacher_connection_teacher_id = ?", id)
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id")
		}
		q = q.Where("teacher_connection_student_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count assignments")
	}

	var conns []model.TeacherConnectionModel
	if err := q.Preload("Teacher").Preload("Student").
		Order("teacher_connection_assigned_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&conns).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load assignments")
	}

	return helper.JsonList(c, "Assignments fetched", dto.FromModels(conns),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// POST /api/a/assignments
func (ctl *AssignmentAdminController) Assign(c *fiber.Ctx) error {
	var req dto.AssignTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	conn, err := service.Assign(ctl.DB.WithContext(c.Context()), service.AssignInput{
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		IsPrimary: req.IsPrimary,
		Notes:     req.Notes,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Teacher assigned", dto.FromModel(conn))
}

// DELETE /api/a/assignments/:id
func (ctl *AssignmentAdminController) Remove(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	if err := service.Remove(ctl.DB.WithContext(c.Context()), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Assignment removed", fiber.Map{"teacher_connection_id": id})
}
