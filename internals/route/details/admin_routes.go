// internals/route/details/admin_routes.go
package details

import (
	"qodwa_backend/internals/constants"
	packageRoute "qodwa_backend/internals/features/billing/packages/route"
	subscriptionRoute "qodwa_backend/internals/features/billing/subscriptions/route"
	freeSessionRoute "qodwa_backend/internals/features/bookings/free_sessions/route"
	assignmentRoute "qodwa_backend/internals/features/learning/assignments/route"
	userRoute "qodwa_backend/internals/features/users/user/route"
	authMiddleware "qodwa_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRoutes requires the admin role.
func AdminRoutes(app *fiber.App, db *gorm.DB) {
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("admin area"), constants.AdminOnly),
	)

	userRoute.UserAdminRoutes(admin, db)
	packageRoute.PackageAdminRoutes(admin, db)
	assignmentRoute.AssignmentAdminRoutes(admin, db)
	subscriptionRoute.SubscriptionAdminRoutes(admin, db)
	freeSessionRoute.FreeSessionAdminRoutes(admin, db)
}
