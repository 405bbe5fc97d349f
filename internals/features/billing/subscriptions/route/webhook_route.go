// internals/features/billing/subscriptions/route/webhook_route.go
package route

import (
	"qodwa_backend/internals/configs"
	"qodwa_backend/internals/features/billing/subscriptions/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PaymentWebhookRoutes registers the gateway callback. The auth middleware
// skips this path, verification happens via the notification signature.
func PaymentWebhookRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubscriptionWebhookController(db, configs.MidtransServerKey)

	api.Post("/payments/notification", ctrl.HandleNotification)
}
