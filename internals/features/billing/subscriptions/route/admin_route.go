// internals/features/billing/subscriptions/route/admin_route.go
package route

import (
	"qodwa_backend/internals/features/billing/subscriptions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SubscriptionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubscriptionAdminController(db)

	admin.Get("/subscriptions", ctrl.List)
}
