package authValidator

import (
	"regexp"
	"strings"

	"nxtsync/middleware"
	"nxtsync/models"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Helper to validate mobile number format (optional + prefix)
func isValidMobile(mobile string) bool {
	re := regexp.MustCompile(`^\+?\d{7,15}$`)
	return re.MatchString(mobile)
}

// SendOTP validator middleware
func SendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Identifier string `json:"identifier"`
			Type       string `json:"type"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		switch reqData.Type {
		case models.OtpChannelEmail:
			if !isValidEmail(reqData.Identifier) {
				errors["identifier"] = "Invalid email!"
			}
		case models.OtpChannelMobile:
			if !isValidMobile(reqData.Identifier) {
				errors["identifier"] = "Invalid mobile number!"
			}
		default:
			errors["type"] = "Type must be either email or mobile!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOtp", reqData)
		return c.Next()
	}
}

// VerifyOTP validator middleware
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Identifier string `json:"identifier"`
			Type       string `json:"type"`
			Code       string `json:"code"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		switch reqData.Type {
		case models.OtpChannelEmail:
			if !isValidEmail(reqData.Identifier) {
				errors["identifier"] = "Invalid email!"
			}
		case models.OtpChannelMobile:
			if !isValidMobile(reqData.Identifier) {
				errors["identifier"] = "Invalid mobile number!"
			}
		default:
			errors["type"] = "Type must be either email or mobile!"
		}

		if reqData.Code == "" {
			errors["code"] = "OTP code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOtp", reqData)
		return c.Next()
	}
}

// Enroll validator middleware
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name"`
			Email        string `json:"email"`
			MobileNumber string `json:"mobileNumber"`
			CourseID     uint   `json:"courseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if reqData.MobileNumber == "" || !isValidMobile(reqData.MobileNumber) {
			errors["mobileNumber"] = "Invalid mobile number!"
		}
		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

// Login validator middleware. The client states its role explicitly;
// identifier shape is never used to guess it.
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
			Role       string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Identifier) == "" {
			errors["identifier"] = "Identifier is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		role := strings.ToLower(reqData.Role)
		if role != "student" && role != "admin" {
			errors["role"] = "Role must be either student or admin!"
		}
		reqData.Role = role

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// RegisterAdmin validator middleware
func RegisterAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdmin", reqData)
		return c.Next()
	}
}
