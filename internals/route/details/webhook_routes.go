// internals/route/details/webhook_routes.go
package details

import (
	subscriptionRoute "qodwa_backend/internals/features/billing/subscriptions/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func WebhookRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	subscriptionRoute.PaymentWebhookRoutes(api, db)
}
