package school

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/utils/response"
	"github.com/langmarket/api/utils/validation"
)

// SchoolHandler handles the public school endpoints
type SchoolHandler struct {
	service *services.SchoolService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(service *services.SchoolService) *SchoolHandler {
	return &SchoolHandler{
		service: service,
	}
}

// ListSchools handles GET /api/schools
func (h *SchoolHandler) ListSchools(c *fiber.Ctx) error {
	status := c.Query("status", model.SchoolStatusActive)
	if status != model.SchoolStatusActive && status != model.SchoolStatusInactive {
		return response.BadRequest(c, "status must be active or inactive")
	}

	filter := database.SchoolFilter{
		Country: validation.SanitizeString(c.Query("country")),
		City:    validation.SanitizeString(c.Query("city")),
		Status:  status,
	}

	items, err := h.service.ListSchools(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch schools")
	}

	return response.Success(c, items)
}

// GetSchool handles GET /api/schools/:slug
func (h *SchoolHandler) GetSchool(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !validation.IsSlug(slug) {
		return response.BadRequest(c, "Invalid school slug")
	}

	school, err := h.service.GetSchoolBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "School not found")
		}
		return response.InternalServerError(c, "Failed to fetch school")
	}

	return response.Success(c, school)
}
