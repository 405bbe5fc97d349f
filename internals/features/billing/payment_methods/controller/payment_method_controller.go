package controller

import (
	"errors"

	"qodwa_backend/internals/features/billing/payment_methods/dto"
	"qodwa_backend/internals/features/billing/payment_methods/model"
	"qodwa_backend/internals/features/billing/payment_methods/service"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentMethodController struct {
	DB *gorm.DB
}

func NewPaymentMethodController(db *gorm.DB) *PaymentMethodController {
	return &PaymentMethodController{DB: db}
}

/* ============================================
   GET /api/u/payment-methods
   ============================================ */
func (ctrl *PaymentMethodController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var methods []model.PaymentMethodModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("payment_method_user_id = ? AND payment_method_is_active = TRUE", userID).
		Order("payment_method_is_default DESC, payment_method_created_at DESC").
		Find(&methods).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch payment methods")
	}

	return helper.JsonOK(c, "Payment methods fetched", methods)
}

/* ============================================
   POST /api/u/payment-methods
   ============================================ */
func (ctrl *PaymentMethodController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.CreatePaymentMethodRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := helper.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	rec := body.ToModel()
	rec.PaymentMethodUserID = userID

	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PaymentMethodModel{}).
			Where("payment_method_user_id = ? AND payment_method_is_active = TRUE", userID).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check payment methods")
		}

		// first method always becomes the default
		makeDefault := body.SetDefault || count == 0
		if makeDefault {
			if err := tx.Model(&model.PaymentMethodModel{}).
				Where("payment_method_user_id = ? AND payment_method_is_default = TRUE", userID).
				Update("payment_method_is_default", false).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear previous default")
			}
			rec.PaymentMethodIsDefault = true
		}

		if err := tx.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save payment method")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Payment method added", rec)
}

/* ============================================
   PATCH /api/u/payment-methods/:id/default
   "Clear all, set one" inside a single transaction so there is never a
   window with zero or two defaults.
   ============================================ */
func (ctrl *PaymentMethodController) SetDefault(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment method id")
	}

	var updated model.PaymentMethodModel
	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var target model.PaymentMethodModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_method_id = ? AND payment_method_user_id = ? AND payment_method_is_active = TRUE", id, userID).
			First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Payment method not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment method")
		}

		if err := tx.Model(&model.PaymentMethodModel{}).
			Where("payment_method_user_id = ? AND payment_method_is_default = TRUE", userID).
			Update("payment_method_is_default", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear previous default")
		}
		if err := tx.Model(&target).
			Update("payment_method_is_default", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to set default")
		}
		updated = target
		updated.PaymentMethodIsDefault = true
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Default payment method updated", updated)
}

/* ============================================
   DELETE /api/u/payment-methods/:id
   Refused while it is the sole method backing auto-renewal.
   ============================================ */
func (ctrl *PaymentMethodController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payment method id")
	}

	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var target model.PaymentMethodModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_method_id = ? AND payment_method_user_id = ? AND payment_method_is_active = TRUE", id, userID).
			First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Payment method not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payment method")
		}

		var activeMethods int64
		if err := tx.Model(&model.PaymentMethodModel{}).
			Where("payment_method_user_id = ? AND payment_method_is_active = TRUE", userID).
			Count(&activeMethods).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to count payment methods")
		}

		var autoRenewSubs int64
		if err := tx.Table("subscriptions").
			Where("subscription_student_id = ? AND subscription_auto_renew = TRUE AND subscription_status = 'ACTIVE' AND subscription_deleted_at IS NULL", userID).
			Count(&autoRenewSubs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check subscriptions")
		}

		ok, reason := service.CanRemovePaymentMethod(target.PaymentMethodIsDefault, activeMethods, autoRenewSubs)
		if !ok {
			return fiber.NewError(fiber.StatusConflict, reason)
		}

		if err := tx.Model(&target).Updates(map[string]any{
			"payment_method_is_active":  false,
			"payment_method_is_default": false,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove payment method")
		}
		if err := tx.Delete(&target).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove payment method")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Payment method removed", fiber.Map{"payment_method_id": id})
}
