package certificateController

import (
	"nxtsync/database"
	"nxtsync/middleware"
	"nxtsync/models"

	"github.com/gofiber/fiber/v2"
)

// VerifyCertificate is the public lookup behind the QR code printed on
// every issued certificate.
func VerifyCertificate(c *fiber.Ctx) error {
	certificateID := c.Params("certificateId")
	if certificateID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("certificate_id = ? AND is_deleted = ?", certificateID, false).
		First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found", nil)
	}

	var student models.Student
	db.Where("id = ?", certificate.StudentID).First(&student)

	var course models.Course
	db.Where("id = ?", certificate.CourseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid.", fiber.Map{
		"valid":            true,
		"certificateId":    certificate.CertificateID,
		"student":          student.Name,
		"studentId":        student.StudentID,
		"course":           course.CourseName,
		"issueDate":        certificate.IssueDate,
		"verificationCode": certificate.VerificationCode,
		"downloadUrl":      certificate.CertificateURL,
	})
}
