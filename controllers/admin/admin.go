package adminController

import (
	"log"
	"time"

	"nxtsync/database"
	"nxtsync/middleware"
	"nxtsync/models"
	"nxtsync/utils"
	adminValidator "nxtsync/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetOverview returns the dashboard counters.
func GetOverview(c *fiber.Ctx) error {
	db := database.Database.Db

	var studentCount int64
	db.Model(&models.Student{}).Where("is_deleted = ?", false).Count(&studentCount)

	var courseCount int64
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&courseCount)

	var pendingRequests int64
	db.Model(&models.CertificateRequest{}).Where("status = ? AND is_deleted = ?",
		models.RequestPending, false).Count(&pendingRequests)

	var issuedCertificates int64
	db.Model(&models.Certificate{}).Where("is_deleted = ?", false).Count(&issuedCertificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Overview fetched successfully.", fiber.Map{
		"students":           studentCount,
		"courses":            courseCount,
		"pendingRequests":    pendingRequests,
		"issuedCertificates": issuedCertificates,
	})
}

// CreateCourse adds a course to the catalogue. Course codes are unique.
func CreateCourse(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("course_code = ? AND is_deleted = ?", reqData.CourseCode, false).
		First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course code already exists", nil)
	}

	course := models.Course{
		CourseName:  reqData.CourseName,
		CourseCode:  reqData.CourseCode,
		Duration:    reqData.Duration,
		Description: reqData.Description,
		CreatedBy:   adminID,
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

// GetCourses lists all active courses for the admin panel.
func GetCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at DESC").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

// GetStudents lists registered students. Password hashes never leave the
// model layer.
func GetStudents(c *fiber.Ctx) error {
	var students []models.Student
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at DESC").Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully.", students)
}

type requestWithDetails struct {
	ID           uint   `json:"id"`
	StudentID    uint   `json:"studentId"`
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
	StudentCode  string `json:"studentCode"`
	CourseID     uint   `json:"courseId"`
	CourseName   string `json:"courseName"`
	CourseCode   string `json:"courseCode"`
	Status       string `json:"status"`
	RequestedAt  string `json:"requestedAt"`
}

// GetCertificateRequests lists certificate requests with student and
// course details inlined for the review screen.
func GetCertificateRequests(c *fiber.Ctx) error {
	db := database.Database.Db

	var requests []models.CertificateRequest
	if err := db.Where("is_deleted = ?", false).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	result := make([]requestWithDetails, 0, len(requests))
	for _, request := range requests {
		var student models.Student
		db.Where("id = ?", request.StudentID).First(&student)

		var course models.Course
		db.Where("id = ?", request.CourseID).First(&course)

		result = append(result, requestWithDetails{
			ID:           request.ID,
			StudentID:    student.ID,
			StudentName:  student.Name,
			StudentEmail: student.Email,
			StudentCode:  student.StudentID,
			CourseID:     course.ID,
			CourseName:   course.CourseName,
			CourseCode:   course.CourseCode,
			Status:       request.Status,
			RequestedAt:  request.CreatedAt.Format(time.RFC3339),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully.", result)
}

// ApproveCertificate claims a pending request, renders the certificate
// PDF and records the issued certificate, all in one transaction. The
// claim is a conditional update so two admins racing on the same request
// produce exactly one certificate.
func ApproveCertificate(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedApprove").(*adminValidator.ApproveRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request models.CertificateRequest
	if err := db.Where("id = ? AND is_deleted = ?", reqData.RequestID, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request", nil)
	}

	var student models.Student
	if err := db.Where("id = ? AND is_deleted = ?", request.StudentID, false).
		First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", request.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request", nil)
	}

	now := time.Now()
	certificateID := utils.NewCertificateID()
	verificationCode := utils.GenerateVerificationCode()

	var certificate models.Certificate
	err := db.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.CertificateRequest{}).
			Where("id = ? AND status = ? AND is_deleted = ?", request.ID, models.RequestPending, false).
			Updates(map[string]interface{}{
				"status":      models.RequestApproved,
				"approved_by": adminID,
				"approved_at": now,
			})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		certificateURL, genErr := utils.GenerateCertificate(utils.CertificateData{
			StudentName:      student.Name,
			CourseName:       course.CourseName,
			Duration:         course.Duration,
			Date:             now,
			CertificateID:    certificateID,
			VerificationCode: verificationCode,
		})
		if genErr != nil {
			return genErr
		}

		certificate = models.Certificate{
			CertificateID:    certificateID,
			StudentID:        request.StudentID,
			CourseID:         request.CourseID,
			IssueDate:        now,
			CertificateURL:   certificateURL,
			VerificationCode: verificationCode,
		}
		if err := tx.Create(&certificate).Error; err != nil {
			return err
		}

		endDate := datatypes.Date(now)
		return tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND course_id = ? AND is_deleted = ?",
				request.StudentID, request.CourseID, false).
			Updates(map[string]interface{}{
				"completed": true,
				"progress":  float64(100),
				"end_date":  endDate,
			}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request", nil)
		}
		log.Printf("Error approving certificate request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	// Email after commit. A delivery failure never undoes the approval.
	message := "Certificate approved and emailed."
	if err := utils.SendCertificateEmail(student.Email, student.Name, course.CourseName,
		certificateID, utils.CertificateFilePath(certificate.CertificateURL)); err != nil {
		log.Printf("EMAIL SERVICE ERROR (soft fail): %v", err)
		message = "Certificate approved, but email failed to send."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, certificate)
}

// RejectCertificate closes a pending request with a reason. Decided
// requests stay as they are.
func RejectCertificate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReject").(*adminValidator.RejectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request models.CertificateRequest
	if err := db.Where("id = ? AND is_deleted = ?", reqData.RequestID, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found", nil)
	}

	result := db.Model(&models.CertificateRequest{}).
		Where("id = ? AND status = ? AND is_deleted = ?", request.ID, models.RequestPending, false).
		Updates(map[string]interface{}{
			"status":           models.RequestRejected,
			"rejection_reason": reqData.Reason,
		})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject request!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request already decided!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request rejected.", nil)
}
