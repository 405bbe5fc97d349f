// internals/features/learning/assignments/controller/my_connections_controller.go
package controller

import (
	"qodwa_backend/internals/features/learning/assignments/dto"
	"qodwa_backend/internals/features/learning/assignments/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MyConnectionsController serves the connection lists for the logged-in side
// of the pair: teachers see their students, students see their teachers.
type MyConnectionsController struct {
	DB *gorm.DB
}

func NewMyConnectionsController(db *gorm.DB) *MyConnectionsController {
	return &MyConnectionsController{DB: db}
}

// GET /api/t/students
func (ctl *MyConnectionsController) MyStudents(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var conns []model.TeacherConnectionModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Student").
		Where("teacher_connection_teacher_id = ?", teacherID).
		Order("teacher_connection_assigned_at DESC").
		Find(&conns).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}
	return helper.JsonOK(c, "OK", dto.FromModels(conns))
}

// GET /api/u/teachers
func (ctl *MyConnectionsController) MyTeachers(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var conns []model.TeacherConnectionModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Teacher").
		Where("teacher_connection_student_id = ?", studentID).
		Order("teacher_connection_is_primary DESC, teacher_connection_assigned_at DESC").
		Find(&conns).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load teachers")
	}
	return helper.JsonOK(c, "OK", dto.FromModels(conns))
}
