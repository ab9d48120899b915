package adminRoutes

import (
	adminControllers "nxtsync/controllers/admin"
	"nxtsync/middleware"
	adminValidators "nxtsync/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the admin panel routes. Every route requires
// a valid token carrying the ADMIN role.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/overview", adminControllers.GetOverview)
	adminGroup.Get("/students", adminControllers.GetStudents)
	adminGroup.Get("/courses", adminControllers.GetCourses)
	adminGroup.Post("/course", adminValidators.CreateCourse(), adminControllers.CreateCourse)
	adminGroup.Get("/certificate/requests", adminControllers.GetCertificateRequests)
	adminGroup.Post("/certificate/approve", adminValidators.ApproveCertificate(), adminControllers.ApproveCertificate)
	adminGroup.Post("/certificate/reject", adminValidators.RejectCertificate(), adminControllers.RejectCertificate)
}
