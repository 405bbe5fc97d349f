// internals/features/learning/assignments/route/assignment_route.go
package route

import (
	"qodwa_backend/internals/features/learning/assignments/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AssignmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAssignmentAdminController(db)

	as := admin.Group("/assignments")
	as.Get("/", ctrl.List)
	as.Post("/", ctrl.Assign)
	as.Delete("/:id", ctrl.Remove)
}

func AssignmentTeacherRoutes(teacher fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMyConnectionsController(db)

	teacher.Get("/students", ctrl.MyStudents)
}

func AssignmentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMyConnectionsController(db)

	user.Get("/teachers", ctrl.MyTeachers)
}
