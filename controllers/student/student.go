package studentController

import (
	"fmt"
	"time"

	"nxtsync/database"
	"nxtsync/middleware"
	"nxtsync/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func currentStudent(c *fiber.Ctx) (*models.Student, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, fmt.Errorf("missing user id")
	}

	var student models.Student
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// GetProfile returns the signed-in student's account details along with
// enrollment and certificate counts.
func GetProfile(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student not found!", nil)
	}

	db := database.Database.Db

	var enrollmentCount int64
	db.Model(&models.Enrollment{}).Where("student_id = ? AND is_deleted = ?", student.ID, false).Count(&enrollmentCount)

	var certificateCount int64
	db.Model(&models.Certificate{}).Where("student_id = ? AND is_deleted = ?", student.ID, false).Count(&certificateCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", fiber.Map{
		"id":           student.ID,
		"name":         student.Name,
		"email":        student.Email,
		"mobile":       student.Mobile,
		"studentId":    student.StudentID,
		"enrollments":  enrollmentCount,
		"certificates": certificateCount,
	})
}

type enrollmentWithCourse struct {
	ID         uint            `json:"id"`
	CourseID   uint            `json:"courseId"`
	CourseName string          `json:"courseName"`
	CourseCode string          `json:"courseCode"`
	Duration   string          `json:"duration"`
	Completed  bool            `json:"completed"`
	Progress   float64         `json:"progress"`
	StartDate  datatypes.Date  `json:"startDate"`
	EndDate    *datatypes.Date `json:"endDate"`
}

// GetProgress lists the student's enrollments with course details inlined.
func GetProgress(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student not found!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("student_id = ? AND is_deleted = ?", student.ID, false).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	result := make([]enrollmentWithCourse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		var course models.Course
		if err := db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
			continue
		}
		result = append(result, enrollmentWithCourse{
			ID:         enrollment.ID,
			CourseID:   course.ID,
			CourseName: course.CourseName,
			CourseCode: course.CourseCode,
			Duration:   course.Duration,
			Completed:  enrollment.Completed,
			Progress:   enrollment.Progress,
			StartDate:  enrollment.StartDate,
			EndDate:    enrollment.EndDate,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", result)
}

// UpdateProgress marks one of the student's enrollments as completed.
func UpdateProgress(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student not found!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		CourseID uint `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?",
		student.ID, reqData.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course", nil)
	}

	endDate := datatypes.Date(time.Now())
	enrollment.Completed = true
	enrollment.Progress = 100
	enrollment.EndDate = &endDate

	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course marked as completed.", enrollment)
}

// RequestCertificate opens a certificate request for a completed course.
// At most one request per (student, course) pair, whatever its status.
func RequestCertificate(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student not found!", nil)
	}

	reqData, ok := c.Locals("validatedCertRequest").(*struct {
		CourseID uint `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?",
		student.ID, reqData.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course", nil)
	}

	if !enrollment.Completed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course not completed yet", nil)
	}

	var existing models.CertificateRequest
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?",
		student.ID, reqData.CourseID, false).First(&existing).Error; err == nil {
		message := fmt.Sprintf("Certificate request already exists (status: %s)", existing.Status)
		return middleware.JsonResponse(c, fiber.StatusConflict, false, message, nil)
	}

	request := models.CertificateRequest{
		StudentID: student.ID,
		CourseID:  reqData.CourseID,
		Status:    models.RequestPending,
	}

	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate requested successfully.", request)
}

type requestWithCourse struct {
	ID              uint   `json:"id"`
	CourseID        uint   `json:"courseId"`
	CourseName      string `json:"courseName"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	RequestedAt     string `json:"requestedAt"`
}

// GetMyRequests lists the student's certificate requests.
func GetMyRequests(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student not found!", nil)
	}

	db := database.Database.Db

	var requests []models.CertificateRequest
	if err := db.Where("student_id = ? AND is_deleted = ?", student.ID, false).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	result := make([]requestWithCourse, 0, len(requests))
	for _, request := range requests {
		var course models.Course
		db.Where("id = ?", request.CourseID).First(&course)
		result = append(result, requestWithCourse{
			ID:              request.ID,
			CourseID:        request.CourseID,
			CourseName:      course.CourseName,
			Status:          request.Status,
			RejectionReason: request.RejectionReason,
			RequestedAt:     request.CreatedAt.Format(time.RFC3339),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully.", result)
}

type certificateWithCourse struct {
	ID             uint      `json:"id"`
	CertificateID  string    `json:"certificateId"`
	CourseName     string    `json:"courseName"`
	IssueDate      time.Time `json:"issueDate"`
	CertificateURL string    `json:"certificateUrl"`
}

// GetCertificates lists the student's issued certificates.
func GetCertificates(c *fiber.Ctx) error {
	student, err := currentStudent(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student not found!", nil)
	}

	db := database.Database.Db

	var certificates []models.Certificate
	if err := db.Where("student_id = ? AND is_deleted = ?", student.ID, false).
		Order("issue_date DESC").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]certificateWithCourse, 0, len(certificates))
	for _, certificate := range certificates {
		var course models.Course
		db.Where("id = ?", certificate.CourseID).First(&course)
		result = append(result, certificateWithCourse{
			ID:             certificate.ID,
			CertificateID:  certificate.CertificateID,
			CourseName:     course.CourseName,
			IssueDate:      certificate.IssueDate,
			CertificateURL: certificate.CertificateURL,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully.", result)
}
