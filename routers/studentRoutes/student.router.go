package studentRoutes

import (
	studentControllers "nxtsync/controllers/student"
	"nxtsync/middleware"
	studentValidators "nxtsync/validators/student"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up the student dashboard routes. All of them
// require a valid token.
func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/student", middleware.JWTMiddleware)

	studentGroup.Get("/profile", studentControllers.GetProfile)
	studentGroup.Get("/progress", studentControllers.GetProgress)
	studentGroup.Put("/progress", studentValidators.UpdateProgress(), studentControllers.UpdateProgress)
	studentGroup.Get("/certificate", studentControllers.GetCertificates)
	studentGroup.Get("/certificate/my-requests", studentControllers.GetMyRequests)
	studentGroup.Post("/certificate/request", studentValidators.RequestCertificate(), studentControllers.RequestCertificate)
}
