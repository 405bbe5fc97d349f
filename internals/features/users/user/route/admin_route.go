// internals/features/users/user/route/admin_route.go
package route

import (
	"qodwa_backend/internals/features/users/user/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserAdminRoutes: user management + teacher approval (admin group)
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userCtrl := controller.NewUserAdminController(db)
	approvalCtrl := controller.NewTeacherApprovalController(db)

	users := admin.Group("/users")
	users.Get("/", userCtrl.List)
	users.Get("/:id", userCtrl.GetByID)
	users.Put("/:id", userCtrl.Update)
	users.Delete("/:id", userCtrl.Delete)

	teachers := admin.Group("/teachers")
	teachers.Post("/:id/approve", approvalCtrl.Approve)
	teachers.Post("/:id/reject", approvalCtrl.Reject)
}
