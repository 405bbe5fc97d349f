// internals/route/details/public_routes.go
package details

import (
	packageRoute "qodwa_backend/internals/features/billing/packages/route"
	freeSessionRoute "qodwa_backend/internals/features/bookings/free_sessions/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PublicRoutes are reachable without a token: the package catalog and the
// free trial-session request form.
func PublicRoutes(app *fiber.App, db *gorm.DB) {
	public := app.Group("/api/public")

	packageRoute.PackagePublicRoutes(public, db)
	freeSessionRoute.FreeSessionPublicRoutes(public, db)
}
