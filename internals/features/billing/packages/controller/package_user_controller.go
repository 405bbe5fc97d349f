package controller

import (
	"qodwa_backend/internals/features/billing/packages/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PackageUserController struct {
	DB *gorm.DB
}

func NewPackageUserController(db *gorm.DB) *PackageUserController {
	return &PackageUserController{DB: db}
}

/* ============================================
   GET /api/public/packages — active packages only
   ============================================ */
func (ctrl *PackageUserController) ListActive(c *fiber.Ctx) error {
	var pkgs []model.PackageModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("package_is_active = TRUE").
		Order("package_sort_order ASC, package_price_cents ASC").
		Find(&pkgs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch packages")
	}

	return helper.JsonOK(c, "Packages fetched", pkgs)
}
