package controller

import (
	"errors"
	"time"

	"qodwa_backend/internals/features/users/user/dto"
	"qodwa_backend/internals/features/users/user/model"
	helper "qodwa_backend/internals/helpers"
	"qodwa_backend/internals/services/email"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeacherApprovalController struct {
	DB *gorm.DB
}

func NewTeacherApprovalController(db *gorm.DB) *TeacherApprovalController {
	return &TeacherApprovalController{DB: db}
}

func displayName(u *model.UserModel) string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.UserName
}

// loadPendingTeacher locks the row and verifies it is a reviewable application.
func loadPendingTeacher(tx *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	var user model.UserModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teacher")
	}
	if !user.IsTeacher || user.TeacherApprovalStatus == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "User has no teacher application")
	}
	if *user.TeacherApprovalStatus != model.TeacherApprovalPending {
		return nil, fiber.NewError(fiber.StatusConflict, "Application has already been reviewed")
	}
	return &user, nil
}

/* ============================================
   POST /api/a/teachers/:id/approve
   ============================================ */
func (ctrl *TeacherApprovalController) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	var approved *model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		user, err := loadPendingTeacher(tx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		status := model.TeacherApprovalApproved
		user.TeacherApprovalStatus = &status
		user.TeacherApprovedAt = &now
		user.TeacherRejectedReason = nil
		user.Role = "teacher"

		if err := tx.Save(user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to approve teacher")
		}
		approved = user
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	// best-effort notification, never blocks the approval
	email.Default.Dispatch(email.TeacherApproved(approved.Email, displayName(approved)))

	return helper.JsonUpdated(c, "Teacher approved", dto.FromModel(approved))
}

/* ============================================
   POST /api/a/teachers/:id/reject
   Body: { "reason": "..." }
   ============================================ */
func (ctrl *TeacherApprovalController) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	var body dto.RejectTeacherRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := helper.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var rejected *model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		user, err := loadPendingTeacher(tx, id)
		if err != nil {
			return err
		}

		status := model.TeacherApprovalRejected
		user.TeacherApprovalStatus = &status
		user.TeacherRejectedReason = &body.Reason

		if err := tx.Save(user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to reject teacher")
		}
		rejected = user
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	email.Default.Dispatch(email.TeacherRejected(rejected.Email, displayName(rejected), body.Reason))

	return helper.JsonUpdated(c, "Teacher rejected", dto.FromModel(rejected))
}
