package studentController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"nxtsync/config"
	"nxtsync/database"
	"nxtsync/middleware"
	"nxtsync/models"
	studentRoutes "nxtsync/routers/studentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	config.AppConfig = &config.Config{
		Port:           "5000",
		DBDriver:       "sqlite",
		DBName:         filepath.Join(dir, "test.db"),
		JWTKey:         "test-secret",
		SaltRound:      bcrypt.MinCost,
		OrgCode:        "nxtsync",
		BaseURL:        "http://localhost:5000",
		PublicDir:      dir,
		CertificateDir: filepath.Join(dir, "certificates"),
	}

	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	studentRoutes.SetupStudentRoutes(app)
	return app
}

func seedStudent(t *testing.T) (models.Student, string) {
	t.Helper()

	student := models.Student{
		Name:      "Jane Student",
		Email:     "jane@example.com",
		Mobile:    "+15551234567",
		StudentID: "nxtsync-ai-ml-2026-0001",
		Password:  "irrelevant",
	}
	require.NoError(t, database.Database.Db.Create(&student).Error)

	token, err := middleware.GenerateJWT(student.ID, "STUDENT")
	require.NoError(t, err)
	return student, token
}

func seedCourse(t *testing.T) models.Course {
	t.Helper()

	course := models.Course{
		CourseName: "Full Stack Web Development",
		CourseCode: "FS-WD",
		Duration:   "6 Months",
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func seedEnrollment(t *testing.T, studentID, courseID uint, completed bool) models.Enrollment {
	t.Helper()

	enrollment := models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Completed: completed,
		StartDate: datatypes.Date(time.Now()),
	}
	if completed {
		enrollment.Progress = 100
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
	return enrollment
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestProfileRequiresToken(t *testing.T) {
	app := setupTestApp(t)

	code, _ := doJSON(t, app, http.MethodGet, "/student/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestGetProfile(t *testing.T) {
	app := setupTestApp(t)
	student, token := seedStudent(t)
	course := seedCourse(t)
	seedEnrollment(t, student.ID, course.ID, false)

	code, body := doJSON(t, app, http.MethodGet, "/student/profile", nil, token)
	require.Equal(t, http.StatusOK, code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, student.StudentID, data["studentId"])
	assert.Equal(t, float64(1), data["enrollments"])
	assert.Equal(t, float64(0), data["certificates"])
}

func TestGetProgress(t *testing.T) {
	app := setupTestApp(t)
	student, token := seedStudent(t)
	course := seedCourse(t)
	seedEnrollment(t, student.ID, course.ID, false)

	code, body := doJSON(t, app, http.MethodGet, "/student/progress", nil, token)
	require.Equal(t, http.StatusOK, code)

	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, course.CourseName, row["courseName"])
	assert.Equal(t, course.CourseCode, row["courseCode"])
	assert.Equal(t, false, row["completed"])
}

func TestUpdateProgressMarksCompleted(t *testing.T) {
	app := setupTestApp(t)
	student, token := seedStudent(t)
	course := seedCourse(t)
	seedEnrollment(t, student.ID, course.ID, false)

	code, _ := doJSON(t, app, http.MethodPut, "/student/progress", fiber.Map{
		"courseId": course.ID,
	}, token)
	require.Equal(t, http.StatusOK, code)

	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.True(t, enrollment.Completed)
	assert.Equal(t, float64(100), enrollment.Progress)
	assert.NotNil(t, enrollment.EndDate)
}

func TestUpdateProgressNotEnrolled(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedStudent(t)
	course := seedCourse(t)

	code, body := doJSON(t, app, http.MethodPut, "/student/progress", fiber.Map{
		"courseId": course.ID,
	}, token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not enrolled in this course", body["message"])
}

func TestRequestCertificateNeedsCompletion(t *testing.T) {
	app := setupTestApp(t)
	student, token := seedStudent(t)
	course := seedCourse(t)
	seedEnrollment(t, student.ID, course.ID, false)

	code, body := doJSON(t, app, http.MethodPost, "/student/certificate/request", fiber.Map{
		"courseId": course.ID,
	}, token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Course not completed yet", body["message"])
}

func TestRequestCertificateOncePerCourse(t *testing.T) {
	app := setupTestApp(t)
	student, token := seedStudent(t)
	course := seedCourse(t)
	seedEnrollment(t, student.ID, course.ID, true)

	code, _ := doJSON(t, app, http.MethodPost, "/student/certificate/request", fiber.Map{
		"courseId": course.ID,
	}, token)
	require.Equal(t, http.StatusCreated, code)

	var request models.CertificateRequest
	require.NoError(t, database.Database.Db.
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&request).Error)
	assert.Equal(t, models.RequestPending, request.Status)

	// A second request for the same course is rejected whatever the status
	code, body := doJSON(t, app, http.MethodPost, "/student/certificate/request", fiber.Map{
		"courseId": course.ID,
	}, token)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body["message"], "already exists")
	assert.Contains(t, body["message"], models.RequestPending)
}

func TestGetMyRequests(t *testing.T) {
	app := setupTestApp(t)
	student, token := seedStudent(t)
	course := seedCourse(t)
	seedEnrollment(t, student.ID, course.ID, true)

	request := models.CertificateRequest{
		StudentID:       student.ID,
		CourseID:        course.ID,
		Status:          models.RequestRejected,
		RejectionReason: "Progress record incomplete",
	}
	require.NoError(t, database.Database.Db.Create(&request).Error)

	code, body := doJSON(t, app, http.MethodGet, "/student/certificate/my-requests", nil, token)
	require.Equal(t, http.StatusOK, code)

	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, models.RequestRejected, row["status"])
	assert.Equal(t, "Progress record incomplete", row["rejectionReason"])
	assert.Equal(t, course.CourseName, row["courseName"])
}

func TestGetCertificates(t *testing.T) {
	app := setupTestApp(t)
	student, token := seedStudent(t)
	course := seedCourse(t)

	certificate := models.Certificate{
		CertificateID:    "CERT-1712345678901",
		StudentID:        student.ID,
		CourseID:         course.ID,
		IssueDate:        time.Now(),
		CertificateURL:   "/certificates/CERT-CERT-1712345678901.pdf",
		VerificationCode: "ABCD1234",
	}
	require.NoError(t, database.Database.Db.Create(&certificate).Error)

	code, body := doJSON(t, app, http.MethodGet, "/student/certificate", nil, token)
	require.Equal(t, http.StatusOK, code)

	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, certificate.CertificateID, row["certificateId"])
	assert.Equal(t, certificate.CertificateURL, row["certificateUrl"])
	assert.Equal(t, course.CourseName, row["courseName"])
}
