// internals/features/billing/subscriptions/controller/subscription_user_controller.go
package controller

import (
	"errors"

	pmService "qodwa_backend/internals/features/billing/payment_methods/service"
	"qodwa_backend/internals/features/billing/subscriptions/dto"
	"qodwa_backend/internals/features/billing/subscriptions/model"
	"qodwa_backend/internals/features/billing/subscriptions/service"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionUserController struct {
	DB *gorm.DB
}

func NewSubscriptionUserController(db *gorm.DB) *SubscriptionUserController {
	return &SubscriptionUserController{DB: db}
}

// GET /api/u/subscriptions
func (ctl *SubscriptionUserController) List(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var subs []model.SubscriptionModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Package").
		Where("subscription_student_id = ?", studentID).
		Order("subscription_created_at DESC").
		Find(&subs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load subscriptions")
	}
	return helper.JsonOK(c, "OK", dto.FromModels(subs))
}

// POST /api/u/subscriptions/checkout
func (ctl *SubscriptionUserController) Checkout(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	res, err := service.Checkout(ctl.DB.WithContext(c.Context()), studentID, req.PackageID, req.AutoRenew)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Checkout created, complete the payment to activate", dto.CheckoutResponse{
		Subscription: dto.FromModel(res.Subscription),
		SnapToken:    res.SnapToken,
		RedirectURL:  res.RedirectURL,
	})
}

// POST /api/u/subscriptions/:id/cancel
func (ctl *SubscriptionUserController) Cancel(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	subID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subscription id")
	}

	sub, err := service.Cancel(ctl.DB.WithContext(c.Context()), studentID, subID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Subscription cancelled", dto.FromModel(sub))
}

// PATCH /api/u/subscriptions/:id/auto-renewal
func (ctl *SubscriptionUserController) ToggleAutoRenew(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	subID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subscription id")
	}

	var req dto.ToggleAutoRenewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}
	enable := *req.Enabled

	var sub model.SubscriptionModel
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sub, "subscription_id = ? AND subscription_student_id = ?", subID, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Subscription not found")
			}
			return err
		}
		if sub.SubscriptionStatus != model.SubscriptionActive && sub.SubscriptionStatus != model.SubscriptionPastDue {
			return fiber.NewError(fiber.StatusConflict, "Only an active subscription can change auto renewal")
		}

		var activeMethods int64
		if err := tx.Table("payment_methods").
			Where("payment_method_user_id = ? AND payment_method_is_active = TRUE AND payment_method_deleted_at IS NULL", studentID).
			Count(&activeMethods).Error; err != nil {
			return err
		}
		if ok, reason := pmService.CanToggleAutoRenew(enable, activeMethods); !ok {
			return fiber.NewError(fiber.StatusConflict, reason)
		}

		if err := tx.Model(&sub).Update("subscription_auto_renew", enable).Error; err != nil {
			return err
		}
		sub.SubscriptionAutoRenew = enable
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.JsonUpdated(c, "Auto renewal updated", dto.FromModel(&sub))
}
