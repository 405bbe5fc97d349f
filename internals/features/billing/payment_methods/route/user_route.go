// internals/features/billing/payment_methods/route/user_route.go
package route

import (
	"qodwa_backend/internals/features/billing/payment_methods/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PaymentMethodUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentMethodController(db)

	pm := user.Group("/payment-methods")
	pm.Get("/", ctrl.List)
	pm.Post("/", ctrl.Create)
	pm.Patch("/:id/default", ctrl.SetDefault)
	pm.Delete("/:id", ctrl.Delete)
}
