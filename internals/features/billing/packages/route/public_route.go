// internals/features/billing/packages/route/public_route.go
package route

import (
	"qodwa_backend/internals/features/billing/packages/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PackagePublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPackageUserController(db)
	public.Get("/packages", ctrl.ListActive)
}
