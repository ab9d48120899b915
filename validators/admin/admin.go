package adminValidator

import (
	"nxtsync/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateCourseRequest is the admin course-creation payload.
type CreateCourseRequest struct {
	CourseName  string `json:"courseName" validate:"required,min=3"`
	CourseCode  string `json:"courseCode" validate:"required,min=2,max=20"`
	Duration    string `json:"duration" validate:"required"`
	Description string `json:"description"`
}

// ApproveRequest identifies the certificate request to approve.
type ApproveRequest struct {
	RequestID uint `json:"requestId" validate:"required"`
}

// RejectRequest identifies the request to reject and why.
type RejectRequest struct {
	RequestID uint   `json:"requestId" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Failed on " + fe.Tag() + " validation!"
		}
	} else {
		errors["body"] = "Invalid request data!"
	}
	return errors
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// ApproveCertificate validator middleware
func ApproveCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ApproveRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedApprove", reqData)
		return c.Next()
	}
}

// RejectCertificate validator middleware
func RejectCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RejectRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}
