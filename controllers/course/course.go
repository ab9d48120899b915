package courseController

import (
	"nxtsync/database"
	"nxtsync/middleware"
	"nxtsync/models"

	"github.com/gofiber/fiber/v2"
)

// GetCourses returns the public catalogue of active courses.
func GetCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at DESC").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}
