// internals/features/learning/classes/route/class_route.go
package route

import (
	"qodwa_backend/internals/features/learning/classes/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ClassTeacherRoutes(teacher fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassTeacherController(db)

	cls := teacher.Group("/classes")
	cls.Get("/", ctrl.List)
	cls.Post("/", ctrl.Schedule)
	cls.Post("/:id/start", ctrl.Start)
	cls.Post("/:id/end", ctrl.End)
	cls.Post("/:id/cancel", ctrl.Cancel)

	teacher.Get("/earnings", ctrl.Earnings)
}

func ClassUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassStudentController(db)

	user.Get("/classes", ctrl.List)
}
