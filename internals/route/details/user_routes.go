// internals/route/details/user_routes.go
package details

import (
	paymentMethodRoute "qodwa_backend/internals/features/billing/payment_methods/route"
	subscriptionRoute "qodwa_backend/internals/features/billing/subscriptions/route"
	freeSessionRoute "qodwa_backend/internals/features/bookings/free_sessions/route"
	assignmentRoute "qodwa_backend/internals/features/learning/assignments/route"
	classRoute "qodwa_backend/internals/features/learning/classes/route"
	entitlementRoute "qodwa_backend/internals/features/learning/entitlement/route"
	messageRoute "qodwa_backend/internals/features/messaging/messages/route"
	authMiddleware "qodwa_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserRoutes is the logged-in student surface.
func UserRoutes(app *fiber.App, db *gorm.DB) {
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	entitlementRoute.EntitlementUserRoutes(user, db)
	assignmentRoute.AssignmentUserRoutes(user, db)
	classRoute.ClassUserRoutes(user, db)
	subscriptionRoute.SubscriptionUserRoutes(user, db)
	paymentMethodRoute.PaymentMethodUserRoutes(user, db)
	freeSessionRoute.FreeSessionUserRoutes(user, db)
	messageRoute.MessageRoutes(user, db)
}
