// internals/features/billing/subscriptions/controller/subscription_admin_controller.go
package controller

import (
	"strings"

	"qodwa_backend/internals/features/billing/subscriptions/dto"
	"qodwa_backend/internals/features/billing/subscriptions/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionAdminController struct {
	DB *gorm.DB
}

func NewSubscriptionAdminController(db *gorm.DB) *SubscriptionAdminController {
	return &SubscriptionAdminController{DB: db}
}

// GET /api/a/subscriptions?status=&student_id=&page=&per_page=
func (ctl *SubscriptionAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.SubscriptionModel{})

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		q = q.Where("subscription_status = ?", status)
	}
	if raw := strings.TrimSpace(c.Query("student_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id")
		}
		q = q.Where("subscription_student_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count subscriptions")
	}

	var subs []model.SubscriptionModel
	if err := q.Preload("Package").
		Order("subscription_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&subs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load subscriptions")
	}

	return helper.JsonList(c, "Subscriptions fetched", dto.FromModels(subs),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}
