// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"strings"
	"time"

	authModel "qodwa_backend/internals/features/users/auth/model"
	userModel "qodwa_backend/internals/features/users/user/model"
	helper "qodwa_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==========================
   REFRESH
========================== */

// RefreshToken rotates the refresh token: the presented token is revoked and a
// fresh access+refresh pair is issued.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refresh := strings.TrimSpace(c.Cookies("refresh_token"))
	if refresh == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&body); err == nil {
			refresh = strings.TrimSpace(body.RefreshToken)
		}
	}
	if refresh == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No refresh token provided")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// verify signature + typ claim
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(refresh, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(refreshSecret), nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Not a refresh token")
	}

	// match against the stored hash; must be active
	hash := computeRefreshHash(refresh, refreshSecret)
	stored, err := FindRefreshTokenByHashActive(db, hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token revoked or unknown")
	}

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).First(&user, "id = ?", stored.UserID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User no longer exists")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact the admin.")
	}

	// rotate: revoke the old one, then issue a new pair
	if err := RevokeRefreshTokenByID(db, stored.ID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to rotate refresh token")
	}

	return issueTokens(c, db, user)
}

func FindRefreshTokenByHashActive(db *gorm.DB, hash []byte) (*authModel.RefreshTokenModel, error) {
	var rt authModel.RefreshTokenModel
	err := db.
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, time.Now().UTC()).
		First(&rt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found or inactive")
		}
		return nil, err
	}
	return &rt, nil
}

func RevokeRefreshTokenByID(db *gorm.DB, id uuid.UUID) error {
	now := time.Now().UTC()
	return db.
		Model(&authModel.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", &now).Error
}
