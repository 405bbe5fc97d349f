// internals/features/bookings/free_sessions/controller/free_session_public_controller.go
package controller

import (
	"qodwa_backend/internals/features/bookings/free_sessions/dto"
	"qodwa_backend/internals/features/bookings/free_sessions/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FreeSessionPublicController struct {
	DB *gorm.DB
}

func NewFreeSessionPublicController(db *gorm.DB) *FreeSessionPublicController {
	return &FreeSessionPublicController{DB: db}
}

// POST /api/public/free-sessions
// Open form, no login required. When a token is present the booking is
// linked to the account so it shows up on the student dashboard.
func (ctl *FreeSessionPublicController) Create(c *fiber.Ctx) error {
	var req dto.CreateFreeSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var studentID *uuid.UUID
	if id, err := helper.GetUserIDFromToken(c); err == nil {
		studentID = &id
	}

	booking := req.ToModel(studentID)
	if err := ctl.DB.WithContext(c.Context()).Create(&booking).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create booking")
	}
	return helper.JsonCreated(c, "Free session requested, we will contact you shortly", booking)
}

// GET /api/u/free-sessions
// Bookings linked to the logged-in student, teacher included once scheduled.
func (ctl *FreeSessionPublicController) MyBookings(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var bookings []model.FreeSessionBookingModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Teacher").
		Where("free_session_booking_student_id = ?", studentID).
		Order("free_session_booking_created_at DESC").
		Find(&bookings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load bookings")
	}
	return helper.JsonOK(c, "OK", bookings)
}
