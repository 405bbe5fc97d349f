// internals/features/billing/packages/route/admin_route.go
package route

import (
	"qodwa_backend/internals/features/billing/packages/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PackageAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPackageAdminController(db)

	pkgs := admin.Group("/packages")
	pkgs.Get("/", ctrl.List)
	pkgs.Post("/", ctrl.Create)
	pkgs.Put("/:id", ctrl.Update)
	pkgs.Delete("/:id", ctrl.Delete)
}
