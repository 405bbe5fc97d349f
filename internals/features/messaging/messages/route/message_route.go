// internals/features/messaging/messages/route/message_route.go
package route

import (
	"qodwa_backend/internals/features/messaging/messages/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MessageRoutes is mounted on both /api/u and /api/t, the controller checks
// thread membership for every access.
func MessageRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMessageController(db)

	msg := r.Group("/messages")
	msg.Get("/threads", ctrl.ListThreads)
	msg.Get("/threads/:id", ctrl.GetThread)
	msg.Post("/", ctrl.Send)
	msg.Patch("/:id/pin", ctrl.Pin)
}
