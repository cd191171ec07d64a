package admin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/utils/response"
	"github.com/langmarket/api/utils/validation"
)

// CourseAdminHandler handles the admin course endpoints
type CourseAdminHandler struct {
	store     database.Storage
	service   *services.CourseService
	validator *validation.Validator
}

// NewCourseAdminHandler creates a new admin course handler
func NewCourseAdminHandler(store database.Storage, service *services.CourseService) *CourseAdminHandler {
	return &CourseAdminHandler{
		store:     store,
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	SchoolID      uint    `json:"school_id" validate:"required,min=1"`
	Name          string  `json:"name" validate:"required,min=2,max=255"`
	Type          string  `json:"type" validate:"required,oneof=general intensive exam business"`
	DurationWeeks int     `json:"duration_weeks" validate:"required,min=1,max=104"`
	Price         float64 `json:"price" validate:"required,gte=0"`
	VisaIncluded  bool    `json:"visa_included"`
}

// UpdateCourseRequest represents the request body for updating a course
type UpdateCourseRequest struct {
	Name          string   `json:"name" validate:"omitempty,min=2,max=255"`
	Type          string   `json:"type" validate:"omitempty,oneof=general intensive exam business"`
	DurationWeeks *int     `json:"duration_weeks" validate:"omitempty,min=1,max=104"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	VisaIncluded  *bool    `json:"visa_included"`
}

// ListCourses handles GET /api/admin/courses
func (h *CourseAdminHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	pagination := response.CalculatePagination(page, limit, 0)
	courses, total, err := h.store.AdminListCourses(c.Context(), pagination.CurrentPage, pagination.PerPage)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, response.CalculatePagination(page, limit, total))
}

// CreateCourse handles POST /api/admin/courses
func (h *CourseAdminHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	course := model.Course{
		SchoolID:      req.SchoolID,
		Name:          validation.SanitizeString(req.Name),
		Type:          req.Type,
		DurationWeeks: req.DurationWeeks,
		Price:         req.Price,
		VisaIncluded:  req.VisaIncluded,
	}

	if err := h.service.CreateCourse(c.Context(), &course); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "School not found")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/admin/courses/:id
func (h *CourseAdminHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	course, err := h.store.GetCourseByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if req.Name != "" {
		course.Name = validation.SanitizeString(req.Name)
	}
	if req.Type != "" {
		course.Type = req.Type
	}
	if req.DurationWeeks != nil {
		course.DurationWeeks = *req.DurationWeeks
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.VisaIncluded != nil {
		course.VisaIncluded = *req.VisaIncluded
	}

	if err := h.service.UpdateCourse(c.Context(), course); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "School not found")
		}
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// DeleteCourse handles DELETE /api/admin/courses/:id
func (h *CourseAdminHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	if err := h.service.DeleteCourse(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}
