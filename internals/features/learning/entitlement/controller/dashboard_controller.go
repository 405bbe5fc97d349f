// internals/features/learning/entitlement/controller/dashboard_controller.go
package controller

import (
	"time"

	asgDTO "qodwa_backend/internals/features/learning/assignments/dto"
	asgModel "qodwa_backend/internals/features/learning/assignments/model"
	classDTO "qodwa_backend/internals/features/learning/classes/dto"
	classModel "qodwa_backend/internals/features/learning/classes/model"
	"qodwa_backend/internals/features/learning/entitlement/service"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type dashboardResponse struct {
	SessionLimit    service.Result                     `json:"session_limit"`
	UpcomingClasses []classDTO.ClassSessionResponse    `json:"upcoming_classes"`
	Teachers        []asgDTO.TeacherConnectionResponse `json:"teachers"`
}

// GET /api/u/dashboard
// One round trip for the student home screen: entitlement state, the next
// scheduled classes and the assigned teachers (primary first).
func (ctl *DashboardController) MyDashboard(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctl.DB.WithContext(c.Context())
	now := time.Now()

	snap, err := service.LoadSnapshot(db, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load session limit")
	}

	var upcoming []classModel.ClassSessionModel
	if err := db.
		Preload("Teacher").
		Where("class_session_student_id = ? AND class_session_status = ? AND class_session_scheduled_at >= ?",
			studentID, classModel.ClassScheduled, now).
		Order("class_session_scheduled_at ASC").
		Limit(5).
		Find(&upcoming).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load upcoming classes")
	}

	var conns []asgModel.TeacherConnectionModel
	if err := db.
		Preload("Teacher").
		Where("teacher_connection_student_id = ?", studentID).
		Order("teacher_connection_is_primary DESC, teacher_connection_assigned_at DESC").
		Find(&conns).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load teachers")
	}

	return helper.JsonOK(c, "OK", dashboardResponse{
		SessionLimit:    service.Evaluate(snap, now),
		UpcomingClasses: classDTO.FromModels(upcoming),
		Teachers:        asgDTO.FromModels(conns),
	})
}
