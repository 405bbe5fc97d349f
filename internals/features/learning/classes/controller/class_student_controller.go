// internals/features/learning/classes/controller/class_student_controller.go
package controller

import (
	"strings"

	"qodwa_backend/internals/features/learning/classes/dto"
	"qodwa_backend/internals/features/learning/classes/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ClassStudentController struct {
	DB *gorm.DB
}

func NewClassStudentController(db *gorm.DB) *ClassStudentController {
	return &ClassStudentController{DB: db}
}

// GET /api/u/classes?status=
func (ctl *ClassStudentController) List(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.ClassSessionModel{}).
		Where("class_session_student_id = ?", studentID)
	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		q = q.Where("class_session_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count classes")
	}

	var sessions []model.ClassSessionModel
	if err := q.Preload("Teacher").
		Order("class_session_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load classes")
	}
	return helper.JsonList(c, "Classes fetched", dto.FromModels(sessions),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}
