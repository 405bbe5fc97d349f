// internals/features/users/auth/service/password_service.go
package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"qodwa_backend/internals/configs"
	authDTO "qodwa_backend/internals/features/users/auth/dto"
	authModel "qodwa_backend/internals/features/users/auth/model"
	userModel "qodwa_backend/internals/features/users/user/model"
	helper "qodwa_backend/internals/helpers"
	"qodwa_backend/internals/services/email"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

/* ==========================
   CHANGE PASSWORD (logged in)
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var input authDTO.ChangePasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	if err := db.WithContext(c.Context()).
		Model(&user).
		Update("password", string(hashed)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password changed", nil)
}

/* ==========================
   FORGOT / RESET
========================== */

// ForgotPassword always answers 200 so the endpoint cannot be used to probe
// which emails exist. The mail itself is best-effort.
func ForgotPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.ForgotPasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var user userModel.UserModel
	err := db.WithContext(c.Context()).
		Where("LOWER(email) = LOWER(?)", input.Email).
		First(&user).Error
	if err == nil && user.IsActive {
		raw := make([]byte, 32)
		if _, rerr := rand.Read(raw); rerr == nil {
			token := hex.EncodeToString(raw)
			secret, serr := getRefreshSecret()
			if serr == nil {
				prt := authModel.PasswordResetTokenModel{
					UserID:    user.ID,
					TokenHash: computeRefreshHash(token, secret),
					ExpiresAt: nowUTC().Add(resetTokenTTL),
				}
				if cerr := db.WithContext(c.Context()).Create(&prt).Error; cerr == nil {
					link := configs.AppBaseURL + "/reset-password?token=" + token
					email.Default.Dispatch(email.PasswordReset(user.Email, displayName(&user), link))
				}
			}
		}
	}

	return helper.JsonOK(c, "If the email exists, a reset link has been sent", nil)
}

func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.ResetPasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	secret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	hash := computeRefreshHash(input.Token, secret)

	if err := db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var prt authModel.PasswordResetTokenModel
		if err := tx.
			Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", hash, nowUTC()).
			First(&prt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired reset token")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify reset token")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
		}
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", prt.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update password")
		}

		now := nowUTC()
		if err := tx.Model(&prt).Update("used_at", &now).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to consume reset token")
		}

		// kill existing sessions for this user
		if err := tx.Model(&authModel.RefreshTokenModel{}).
			Where("user_id = ? AND revoked_at IS NULL", prt.UserID).
			Update("revoked_at", &now).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke sessions")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Password has been reset", nil)
}
