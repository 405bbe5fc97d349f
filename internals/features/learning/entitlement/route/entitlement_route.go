// internals/features/learning/entitlement/route/entitlement_route.go
package route

import (
	"qodwa_backend/internals/features/learning/entitlement/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EntitlementUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSessionLimitController(db)
	dash := controller.NewDashboardController(db)

	user.Get("/session-limit", ctrl.MySessionLimit)
	user.Get("/dashboard", dash.MyDashboard)
}

func EntitlementTeacherRoutes(teacher fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSessionLimitController(db)

	teacher.Get("/students/:id/session-limit", ctrl.StudentSessionLimit)
}
