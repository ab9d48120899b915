package adminController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nxtsync/config"
	"nxtsync/database"
	"nxtsync/middleware"
	"nxtsync/models"
	adminRoutes "nxtsync/routers/adminRoutes"
	certificateRoutes "nxtsync/routers/certificateRoutes"
	"nxtsync/utils"

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
	adminRoutes.SetupAdminRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	return app
}

func seedAdmin(t *testing.T) (models.Admin, string) {
	t.Helper()

	admin := models.Admin{
		Name:     "Root Admin",
		Email:    "admin@nxtsync.com",
		Password: "irrelevant",
	}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, "ADMIN")
	require.NoError(t, err)
	return admin, token
}

// seedPendingRequest wires up a student, course, completed enrollment and
// a pending certificate request.
func seedPendingRequest(t *testing.T) (models.Student, models.Course, models.CertificateRequest) {
	t.Helper()

	db := database.Database.Db

	student := models.Student{
		Name:      "Jane Student",
		Email:     "jane@example.com",
		Mobile:    "+15551234567",
		StudentID: "nxtsync-fs-wd-2026-0001",
		Password:  "irrelevant",
	}
	require.NoError(t, db.Create(&student).Error)

	course := models.Course{
		CourseName: "Full Stack Web Development",
		CourseCode: "FS-WD",
		Duration:   "6 Months",
	}
	require.NoError(t, db.Create(&course).Error)

	enrollment := models.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
		Completed: true,
		Progress:  100,
		StartDate: datatypes.Date(time.Now()),
	}
	require.NoError(t, db.Create(&enrollment).Error)

	request := models.CertificateRequest{
		StudentID: student.ID,
		CourseID:  course.ID,
		Status:    models.RequestPending,
	}
	require.NoError(t, db.Create(&request).Error)

	return student, course, request
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

func TestAdminRoutesRejectStudentTokens(t *testing.T) {
	app := setupTestApp(t)
	seedAdmin(t)

	studentToken, err := middleware.GenerateJWT(42, "STUDENT")
	require.NoError(t, err)

	code, _ := doJSON(t, app, http.MethodGet, "/admin/overview", nil, studentToken)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestGetOverview(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedAdmin(t)
	seedPendingRequest(t)

	code, body := doJSON(t, app, http.MethodGet, "/admin/overview", nil, token)
	require.Equal(t, http.StatusOK, code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["students"])
	assert.Equal(t, float64(1), data["courses"])
	assert.Equal(t, float64(1), data["pendingRequests"])
	assert.Equal(t, float64(0), data["issuedCertificates"])
}

func TestCreateCourse(t *testing.T) {
	app := setupTestApp(t)
	admin, token := seedAdmin(t)

	payload := fiber.Map{
		"courseName":  "Cloud Computing & DevOps",
		"courseCode":  "CC-DO",
		"duration":    "6 Months",
		"description": "Cloud platforms and CI/CD pipelines.",
	}

	code, body := doJSON(t, app, http.MethodPost, "/admin/course", payload, token)
	require.Equal(t, http.StatusCreated, code)

	var course models.Course
	require.NoError(t, database.Database.Db.
		Where("course_code = ?", "CC-DO").First(&course).Error)
	assert.Equal(t, admin.ID, course.CreatedBy)

	// Duplicate code is a conflict
	code, body = doJSON(t, app, http.MethodPost, "/admin/course", payload, token)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Course code already exists", body["message"])
}

func TestGetCertificateRequests(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedAdmin(t)
	student, course, _ := seedPendingRequest(t)

	code, body := doJSON(t, app, http.MethodGet, "/admin/certificate/requests", nil, token)
	require.Equal(t, http.StatusOK, code)

	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, student.Name, row["studentName"])
	assert.Equal(t, student.StudentID, row["studentCode"])
	assert.Equal(t, course.CourseName, row["courseName"])
	assert.Equal(t, models.RequestPending, row["status"])
}

func TestApproveCertificate(t *testing.T) {
	app := setupTestApp(t)
	admin, token := seedAdmin(t)
	student, course, request := seedPendingRequest(t)

	code, body := doJSON(t, app, http.MethodPost, "/admin/certificate/approve", fiber.Map{
		"requestId": request.ID,
	}, token)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["message"], "Certificate approved")

	var updated models.CertificateRequest
	require.NoError(t, database.Database.Db.First(&updated, request.ID).Error)
	assert.Equal(t, models.RequestApproved, updated.Status)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, admin.ID, *updated.ApprovedBy)
	assert.NotNil(t, updated.ApprovedAt)

	var certificate models.Certificate
	require.NoError(t, database.Database.Db.
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&certificate).Error)
	assert.NotEmpty(t, certificate.CertificateID)
	assert.Len(t, certificate.VerificationCode, 8)

	// The PDF landed on disk where the static handler serves it from
	_, err := os.Stat(utils.CertificateFilePath(certificate.CertificateURL))
	assert.NoError(t, err)

	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.True(t, enrollment.Completed)
	assert.NotNil(t, enrollment.EndDate)

	// A decided request cannot be approved again
	code, body = doJSON(t, app, http.MethodPost, "/admin/certificate/approve", fiber.Map{
		"requestId": request.ID,
	}, token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request", body["message"])

	// Public verification resolves the issued certificate
	code, body = doJSON(t, app, http.MethodGet, "/certificate/verify/"+certificate.CertificateID, nil, "")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, student.Name, data["student"])
	assert.Equal(t, course.CourseName, data["course"])
	assert.Equal(t, certificate.VerificationCode, data["verificationCode"])
}

func TestApproveUnknownRequest(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedAdmin(t)

	code, body := doJSON(t, app, http.MethodPost, "/admin/certificate/approve", fiber.Map{
		"requestId": 999,
	}, token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request", body["message"])
}

func TestRejectCertificate(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedAdmin(t)
	_, _, request := seedPendingRequest(t)

	code, _ := doJSON(t, app, http.MethodPost, "/admin/certificate/reject", fiber.Map{
		"requestId": request.ID,
		"reason":    "Progress record incomplete",
	}, token)
	require.Equal(t, http.StatusOK, code)

	var updated models.CertificateRequest
	require.NoError(t, database.Database.Db.First(&updated, request.ID).Error)
	assert.Equal(t, models.RequestRejected, updated.Status)
	assert.Equal(t, "Progress record incomplete", updated.RejectionReason)

	// Rejection is terminal
	code, body := doJSON(t, app, http.MethodPost, "/admin/certificate/reject", fiber.Map{
		"requestId": request.ID,
		"reason":    "Second thoughts",
	}, token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Request already decided!", body["message"])

	// Nor can a rejected request be approved
	code, _ = doJSON(t, app, http.MethodPost, "/admin/certificate/approve", fiber.Map{
		"requestId": request.ID,
	}, token)
	assert.Equal(t, http.StatusBadRequest, code)

	// No certificate exists for the pair
	var count int64
	database.Database.Db.Model(&models.Certificate{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRejectUnknownRequest(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedAdmin(t)

	code, body := doJSON(t, app, http.MethodPost, "/admin/certificate/reject", fiber.Map{
		"requestId": 999,
		"reason":    "whatever",
	}, token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Request not found", body["message"])
}

// Two admins hammering approve on the same request must produce exactly
// one certificate.
func TestConcurrentApproveIssuesOneCertificate(t *testing.T) {
	app := setupTestApp(t)
	_, token := seedAdmin(t)
	_, _, request := seedPendingRequest(t)

	const attempts = 8

	var wg sync.WaitGroup
	var approved int64

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			raw, _ := json.Marshal(fiber.Map{"requestId": request.ID})
			req := httptest.NewRequest(http.MethodPost, "/admin/certificate/approve", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req, -1)
			if err != nil {
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				atomic.AddInt64(&approved, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), approved, "exactly one approval must win")

	var certificates int64
	database.Database.Db.Model(&models.Certificate{}).Count(&certificates)
	assert.Equal(t, int64(1), certificates)
}
