package courseRoutes

import (
	courseControllers "nxtsync/controllers/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public course catalogue routes.
func SetupCourseRoutes(app *fiber.App) {
	app.Get("/courses", courseControllers.GetCourses)
}
