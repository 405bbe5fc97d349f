// internals/route/details/teacher_routes.go
package details

import (
	"qodwa_backend/internals/constants"
	assignmentRoute "qodwa_backend/internals/features/learning/assignments/route"
	classRoute "qodwa_backend/internals/features/learning/classes/route"
	entitlementRoute "qodwa_backend/internals/features/learning/entitlement/route"
	messageRoute "qodwa_backend/internals/features/messaging/messages/route"
	authMiddleware "qodwa_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TeacherRoutes requires an approved teacher (or admin) token.
func TeacherRoutes(app *fiber.App, db *gorm.DB) {
	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("teacher area"), constants.TeacherAndUp),
	)

	assignmentRoute.AssignmentTeacherRoutes(teacher, db)
	entitlementRoute.EntitlementTeacherRoutes(teacher, db)
	classRoute.ClassTeacherRoutes(teacher, db)
	messageRoute.MessageRoutes(teacher, db)
}
