// internals/features/billing/subscriptions/route/user_route.go
package route

import (
	"qodwa_backend/internals/features/billing/subscriptions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SubscriptionUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubscriptionUserController(db)

	subs := user.Group("/subscriptions")
	subs.Get("/", ctrl.List)
	subs.Post("/checkout", ctrl.Checkout)
	subs.Post("/:id/cancel", ctrl.Cancel)
	subs.Patch("/:id/auto-renewal", ctrl.ToggleAutoRenew)
}
