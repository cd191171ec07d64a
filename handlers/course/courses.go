package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/utils/response"
	"github.com/langmarket/api/utils/validation"
)

// CourseHandler handles the public course endpoints
type CourseHandler struct {
	service *services.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{
		service: service,
	}
}

// ListCourses handles GET /api/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	filter := database.CourseFilter{
		Type: validation.SanitizeString(c.Query("type")),
	}

	if raw := c.Query("school_id"); raw != "" {
		schoolID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "school_id must be a positive integer")
		}
		filter.SchoolID = uint(schoolID)
	}

	items, err := h.service.ListCourses(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Success(c, items)
}
