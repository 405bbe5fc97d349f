// internals/features/users/auth/route/auth_route.go
package route

import (
	"qodwa_backend/internals/features/users/auth/controller"
	"qodwa_backend/internals/middlewares"
	authMw "qodwa_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes: public auth surface + logged-in account actions
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/refresh", ctrl.RefreshToken)
	auth.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	auth.Post("/reset-password", ctrl.ResetPassword)

	// authenticated
	me := app.Group("/api/auth", authMw.AuthMiddleware(db))
	me.Get("/me", ctrl.Me)
	me.Post("/logout", ctrl.Logout)
	me.Post("/change-password", ctrl.ChangePassword)
	me.Post("/teacher/apply", ctrl.ApplyTeacher)
}
