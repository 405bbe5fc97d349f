// internals/features/bookings/free_sessions/controller/free_session_admin_controller.go
package controller

import (
	"errors"
	"strings"

	"qodwa_backend/internals/features/bookings/free_sessions/dto"
	"qodwa_backend/internals/features/bookings/free_sessions/model"
	userModel "qodwa_backend/internals/features/users/user/model"
	helper "qodwa_backend/internals/helpers"
	"qodwa_backend/internals/services/email"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FreeSessionAdminController struct {
	DB *gorm.DB
}

func NewFreeSessionAdminController(db *gorm.DB) *FreeSessionAdminController {
	return &FreeSessionAdminController{DB: db}
}

// GET /api/a/free-sessions?status=
func (ctl *FreeSessionAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.FreeSessionBookingModel{})
	if raw := c.Query("status"); raw != "" {
		status, ok := model.ParseFreeSessionStatus(raw)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status filter")
		}
		q = q.Where("free_session_booking_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count bookings")
	}

	var bookings []model.FreeSessionBookingModel
	if err := q.Preload("Teacher").
		Order("free_session_booking_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&bookings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load bookings")
	}
	return helper.JsonList(c, "Bookings fetched", bookings,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// PATCH /api/a/free-sessions/:id
func (ctl *FreeSessionAdminController) Update(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid booking id")
	}

	var req dto.UpdateFreeSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var booking model.FreeSessionBookingModel
	var scheduled bool

	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "free_session_booking_id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Booking not found")
			}
			return err
		}

		updates := map[string]any{}

		if req.Status != nil {
			next, ok := model.ParseFreeSessionStatus(*req.Status)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown status")
			}
			if !model.CanTransition(booking.FreeSessionBookingStatus, next) {
				return fiber.NewError(fiber.StatusConflict,
					"Cannot move booking from "+string(booking.FreeSessionBookingStatus)+" to "+string(next))
			}
			if next == model.FreeSessionScheduled {
				if req.TeacherID == nil && booking.FreeSessionBookingTeacherID == nil {
					return fiber.NewError(fiber.StatusBadRequest, "Scheduling requires a teacher")
				}
				if req.ScheduledAt == nil && booking.FreeSessionBookingScheduledAt == nil {
					return fiber.NewError(fiber.StatusBadRequest, "Scheduling requires a time")
				}
				scheduled = true
			}
			updates["free_session_booking_status"] = next
			booking.FreeSessionBookingStatus = next
		}

		if req.TeacherID != nil {
			var teacher userModel.UserModel
			if err := tx.First(&teacher, "id = ?", *req.TeacherID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
				}
				return err
			}
			if !teacher.IsApprovedTeacher() {
				return fiber.NewError(fiber.StatusConflict, "Teacher is not approved yet")
			}
			updates["free_session_booking_teacher_id"] = *req.TeacherID
			booking.FreeSessionBookingTeacherID = req.TeacherID
		}
		if req.ScheduledAt != nil {
			updates["free_session_booking_scheduled_at"] = *req.ScheduledAt
			booking.FreeSessionBookingScheduledAt = req.ScheduledAt
		}
		if req.MeetingLink != nil {
			link := strings.TrimSpace(*req.MeetingLink)
			updates["free_session_booking_meeting_link"] = link
			booking.FreeSessionBookingMeetingLink = &link
		}
		if req.Notes != nil {
			updates["free_session_booking_notes"] = *req.Notes
			booking.FreeSessionBookingNotes = req.Notes
		}

		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
		}
		return tx.Model(&booking).Updates(updates).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	if scheduled {
		when := ""
		if booking.FreeSessionBookingScheduledAt != nil {
			when = booking.FreeSessionBookingScheduledAt.Format("Mon, 02 Jan 2006 15:04 MST")
		}
		link := ""
		if booking.FreeSessionBookingMeetingLink != nil {
			link = *booking.FreeSessionBookingMeetingLink
		}
		email.Default.Dispatch(email.FreeSessionScheduled(
			booking.FreeSessionBookingEmail, booking.FreeSessionBookingName, when, link))
	}

	return helper.JsonUpdated(c, "Booking updated", booking)
}
