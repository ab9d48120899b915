package authRoutes

import (
	authControllers "nxtsync/controllers/auth"
	authValidators "nxtsync/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/send-otp", authValidators.SendOTP(), authControllers.SendOTP)
	authGroup.Post("/verify-otp", authValidators.VerifyOTP(), authControllers.VerifyOTP)
	authGroup.Post("/student/enroll", authValidators.Enroll(), authControllers.EnrollStudent)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/admin/register", authValidators.RegisterAdmin(), authControllers.RegisterAdmin)
}
