// internals/features/users/auth/service/auth_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"strings"
	"time"

	"qodwa_backend/internals/configs"
	authModel "qodwa_backend/internals/features/users/auth/model"
	userModel "qodwa_backend/internals/features/users/user/model"
	helper "qodwa_backend/internals/helpers"
	"qodwa_backend/internals/services/email"

	"github.com/bytedance/sonic"
	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	accessTTLDefault  = 15 * time.Minute
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	return configs.JWTSecret, nil
}

func getRefreshSecret() (string, error) {
	if configs.JWTRefreshSecret == "" {
		return "", errors.New("JWT_REFRESH_SECRET is not set")
	}
	return configs.JWTRefreshSecret, nil
}

// computeRefreshHash: HMAC-SHA256 of the refresh token, keyed by the refresh secret.
func computeRefreshHash(token, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

// sonicSubjects encodes the subject list into the JSONB column type.
func sonicSubjects(subjects []string) (datatypes.JSON, error) {
	b, err := sonic.Marshal(subjects)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func displayName(u *userModel.UserModel) string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.UserName
}

/* ==========================
   REGISTER (student)
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		UserName string  `json:"user_name" validate:"required,min=3,max=50"`
		FullName *string `json:"full_name" validate:"omitempty,max=100"`
		Email    string  `json:"email" validate:"required,email,max=255"`
		Password string  `json:"password" validate:"required,min=8,max=72"`
		Phone    *string `json:"phone" validate:"omitempty,max=30"`
		Gender   *string `json:"gender" validate:"omitempty,oneof=male female"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(input.UserName),
		FullName: input.FullName,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(passwordHash),
		Phone:    input.Phone,
		Gender:   input.Gender,
		Role:     "user",
		IsActive: true,
	}
	if err := db.WithContext(c.Context()).Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email or username already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	// best-effort welcome mail
	email.Default.Dispatch(email.StudentWelcome(user.Email, displayName(&user)))

	return helper.JsonCreated(c, "Registration successful", fiber.Map{"id": user.ID})
}

/* ==========================
   TEACHER APPLICATION
========================== */

// ApplyTeacher files (or re-files after a rejection) a teacher application
// for the logged-in account. Status goes back to PENDING and the previous
// rejection reason is cleared.
func ApplyTeacher(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var input struct {
		Subjects        []string `json:"subjects" validate:"required,min=1"`
		Qualifications  string   `json:"qualifications" validate:"required,min=10"`
		YearsExperience int16    `json:"years_experience" validate:"gte=0,lte=80"`
		ZoomLink        *string  `json:"zoom_link" validate:"omitempty,url,max=500"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, helper.BuildValidationErrors(err))
	}

	var applicant userModel.UserModel
	if err := db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var user userModel.UserModel
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		if user.TeacherApprovalStatus != nil && *user.TeacherApprovalStatus == userModel.TeacherApprovalPending {
			return fiber.NewError(fiber.StatusConflict, "An application is already pending review")
		}
		if user.IsApprovedTeacher() {
			return fiber.NewError(fiber.StatusConflict, "You are already an approved teacher")
		}

		subjectsJSON, err := sonicSubjects(input.Subjects)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid subjects")
		}

		status := userModel.TeacherApprovalPending
		user.IsTeacher = true
		user.TeacherApprovalStatus = &status
		user.TeacherRejectedReason = nil
		user.Subjects = subjectsJSON
		user.Qualifications = &input.Qualifications
		user.YearsExperience = &input.YearsExperience
		user.ZoomLink = input.ZoomLink

		if err := tx.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save application")
		}
		applicant = user
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	// applicant + admin copies, all-settled
	email.Default.DispatchAll(email.TeacherApplicationReceived(applicant.Email, displayName(&applicant)))

	return helper.JsonCreated(c, "Application submitted", fiber.Map{
		"teacher_approval_status": userModel.TeacherApprovalPending,
	})
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Identifier = strings.TrimSpace(input.Identifier)
	if input.Identifier == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifier and password are required")
	}

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).
		Where("LOWER(email) = LOWER(?) OR user_name = ?", input.Identifier, input.Identifier).
		First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect identifier or password")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact the admin.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect identifier or password")
	}

	return issueTokens(c, db, user)
}

/* ==========================
   GOOGLE SIGN-IN
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token is required")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil || claimSet.Email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Could not decode Google token")
	}

	gmail := strings.ToLower(strings.TrimSpace(claimSet.Email))
	var user userModel.UserModel
	err = db.WithContext(c.Context()).Where("LOWER(email) = ?", gmail).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// first Google sign-in creates a student account
		dummy, hashErr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if hashErr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to provision account")
		}
		name := claimSet.Name
		user = userModel.UserModel{
			UserName: gmail,
			FullName: &name,
			Email:    gmail,
			Password: string(dummy),
			Role:     "user",
			IsActive: true,
		}
		if err := db.WithContext(c.Context()).Create(&user).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
		email.Default.Dispatch(email.StudentWelcome(user.Email, displayName(&user)))
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact the admin.")
	}

	return issueTokens(c, db, user)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helper.GetRawAccessToken(c)
	if accessToken == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No access token provided")
	}

	// blacklist the access token until it would have expired anyway
	bl := authModel.TokenBlacklistModel{
		Token:     accessToken,
		ExpiredAt: nowUTC().Add(resolveBlacklistTTL(accessToken)),
	}
	if err := db.WithContext(c.Context()).Create(&bl).Error; err != nil {
		low := strings.ToLower(err.Error())
		if !strings.Contains(low, "duplicate key") && !strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
		}
	}

	// revoke the refresh token when the cookie is present
	if refresh := strings.TrimSpace(c.Cookies("refresh_token")); refresh != "" {
		if secret, err := getRefreshSecret(); err == nil {
			hash := computeRefreshHash(refresh, secret)
			now := nowUTC()
			_ = db.WithContext(c.Context()).
				Model(&authModel.RefreshTokenModel{}).
				Where("token_hash = ? AND revoked_at IS NULL", hash).
				Update("revoked_at", &now).Error
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logged out", nil)
}

// resolveBlacklistTTL reads exp from the token; falls back to the access TTL.
func resolveBlacklistTTL(accessToken string) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
				return until
			}
		}
	}
	return accessTTLDefault
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":        "access",
		"sub":        user.ID.String(),
		"id":         user.ID.String(),
		"user_name":  user.UserName,
		"role":       user.Role,
		"is_teacher": user.IsTeacher,
		"iat":        now.Unix(),
		"exp":        now.Add(accessTTLDefault).Unix(),
	}
	if user.FullName != nil {
		claims["full_name"] = *user.FullName
	}
	return claims
}

func buildLoginResponseUser(user userModel.UserModel) fiber.Map {
	resp := fiber.Map{
		"id":         user.ID,
		"user_name":  user.UserName,
		"email":      user.Email,
		"role":       user.Role,
		"is_teacher": user.IsTeacher,
	}
	if user.FullName != nil {
		resp["full_name"] = *user.FullName
	}
	if user.TeacherApprovalStatus != nil {
		resp["teacher_approval_status"] = *user.TeacherApprovalStatus
	}
	return resp
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) error {
	now := nowUTC()

	secret, err := getJWTSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).SignedString([]byte(secret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.ID, now)).SignedString([]byte(refreshSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	ua := c.Get("User-Agent")
	ip := c.IP()
	rt := authModel.RefreshTokenModel{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: &ua,
		IP:        &ip,
	}
	if err := db.WithContext(c.Context()).Create(&rt).Error; err != nil {
		log.Printf("[ERROR] storing refresh token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store session")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          buildLoginResponseUser(user),
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	secure := configs.GetEnv("COOKIE_SECURE", "true") == "true"
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  now.Add(accessTTLDefault),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  now.Add(refreshTTLDefault),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: true,
			Path:     "/",
		})
	}
}
