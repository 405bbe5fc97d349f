// internals/route/index.go
package routes

import (
	"log"

	routeDetails "qodwa_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	log.Println("[INFO] Setting up AUTH routes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up PUBLIC group...")
	routeDetails.PublicRoutes(app, db)

	log.Println("[INFO] Setting up WEBHOOK routes...")
	routeDetails.WebhookRoutes(app, db)

	log.Println("[INFO] Setting up USER group...")
	routeDetails.UserRoutes(app, db)

	log.Println("[INFO] Setting up TEACHER group...")
	routeDetails.TeacherRoutes(app, db)

	log.Println("[INFO] Setting up ADMIN group...")
	routeDetails.AdminRoutes(app, db)
}
