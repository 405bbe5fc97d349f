// internals/features/bookings/free_sessions/route/free_session_route.go
package route

import (
	"qodwa_backend/internals/features/bookings/free_sessions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func FreeSessionPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFreeSessionPublicController(db)

	public.Post("/free-sessions", ctrl.Create)
}

func FreeSessionUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFreeSessionPublicController(db)

	user.Get("/free-sessions", ctrl.MyBookings)
}

func FreeSessionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFreeSessionAdminController(db)

	fs := admin.Group("/free-sessions")
	fs.Get("/", ctrl.List)
	fs.Patch("/:id", ctrl.Update)
}
