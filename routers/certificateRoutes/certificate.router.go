package certificateRoutes

import (
	certificateControllers "nxtsync/controllers/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up the public verification route hit by
// the QR code on issued certificates.
func SetupCertificateRoutes(app *fiber.App) {
	app.Get("/certificate/verify/:certificateId", certificateControllers.VerifyCertificate)
}
