package controller

import (
	"errors"

	"qodwa_backend/internals/features/billing/packages/dto"
	"qodwa_backend/internals/features/billing/packages/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackageAdminController struct {
	DB *gorm.DB
}

func NewPackageAdminController(db *gorm.DB) *PackageAdminController {
	return &PackageAdminController{DB: db}
}

/* ============================================
   POST /api/a/packages
   ============================================ */
func (ctrl *PackageAdminController) Create(c *fiber.Ctx) error {
	var body dto.CreatePackageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := helper.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	pkg := body.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(&pkg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create package")
	}

	return helper.JsonCreated(c, "Package created", pkg)
}

/* ============================================
   GET /api/a/packages (includes inactive)
   ============================================ */
func (ctrl *PackageAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.Context()).Model(&model.PackageModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count packages")
	}

	var pkgs []model.PackageModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("package_sort_order ASC, package_created_at ASC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&pkgs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch packages")
	}

	return helper.JsonList(c, "Packages fetched", pkgs,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* ============================================
   PUT /api/a/packages/:id
   Terms are frozen once a subscription references the package.
   ============================================ */
func (ctrl *PackageAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid package id")
	}

	var body dto.UpdatePackageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := helper.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var updated model.PackageModel
	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var pkg model.PackageModel
		if err := tx.First(&pkg, "package_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Package not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch package")
		}

		if body.TouchesTerms() {
			var refs int64
			if err := tx.Table("subscriptions").
				Where("subscription_package_id = ? AND subscription_deleted_at IS NULL", id).
				Count(&refs).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check subscriptions")
			}
			if refs > 0 {
				return fiber.NewError(fiber.StatusConflict, "Package terms are frozen while subscriptions reference it")
			}
		}

		body.ApplyToModel(&pkg)
		if err := tx.Save(&pkg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update package")
		}
		updated = pkg
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Package updated", updated)
}

/* ============================================
   DELETE /api/a/packages/:id (soft)
   ============================================ */
func (ctrl *PackageAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid package id")
	}

	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Table("subscriptions").
			Where("subscription_package_id = ? AND subscription_status = 'ACTIVE' AND subscription_deleted_at IS NULL", id).
			Count(&refs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check subscriptions")
		}
		if refs > 0 {
			return fiber.NewError(fiber.StatusConflict, "Package has active subscriptions")
		}

		res := tx.Delete(&model.PackageModel{}, "package_id = ?", id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete package")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Package not found")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Package deleted", fiber.Map{"package_id": id})
}
