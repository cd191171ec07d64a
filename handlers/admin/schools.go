package admin

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/utils/response"
	"github.com/langmarket/api/utils/validation"
	"gorm.io/datatypes"
)

// SchoolAdminHandler handles the admin school endpoints
type SchoolAdminHandler struct {
	store     database.Storage
	service   *services.SchoolService
	validator *validation.Validator
}

// NewSchoolAdminHandler creates a new admin school handler
func NewSchoolAdminHandler(store database.Storage, service *services.SchoolService) *SchoolAdminHandler {
	return &SchoolAdminHandler{
		store:     store,
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateSchoolRequest represents the request body for creating a school
type CreateSchoolRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Slug        string   `json:"slug" validate:"required,slug,max=255"`
	City        string   `json:"city" validate:"required,min=2,max=120"`
	Country     string   `json:"country" validate:"required,min=2,max=120"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	FoundedYear int      `json:"founded_year" validate:"omitempty,gte=1800,lte=2100"`
	Rating      float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Logo        string   `json:"logo" validate:"omitempty,url,max=512"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateSchoolRequest represents the request body for updating a school.
// Pointer fields distinguish "not provided" from zero values.
type UpdateSchoolRequest struct {
	Name        string   `json:"name" validate:"omitempty,min=2,max=255"`
	Slug        string   `json:"slug" validate:"omitempty,slug,max=255"`
	City        string   `json:"city" validate:"omitempty,min=2,max=120"`
	Country     string   `json:"country" validate:"omitempty,min=2,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	FoundedYear *int     `json:"founded_year" validate:"omitempty,gte=1800,lte=2100"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Logo        *string  `json:"logo" validate:"omitempty,max=512"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListSchools handles GET /api/admin/schools
func (h *SchoolAdminHandler) ListSchools(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	pagination := response.CalculatePagination(page, limit, 0)
	schools, total, err := h.store.AdminListSchools(c.Context(), pagination.CurrentPage, pagination.PerPage)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch schools")
	}

	return response.Paginated(c, schools, response.CalculatePagination(page, limit, total))
}

// CreateSchool handles POST /api/admin/schools
func (h *SchoolAdminHandler) CreateSchool(c *fiber.Ctx) error {
	var req CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	status := req.Status
	if status == "" {
		status = model.SchoolStatusActive
	}

	images, err := marshalImages(req.Images)
	if err != nil {
		return response.BadRequest(c, "Invalid image list")
	}

	school := model.School{
		Name:        validation.SanitizeString(req.Name),
		Slug:        req.Slug,
		City:        validation.SanitizeString(req.City),
		Country:     validation.SanitizeString(req.Country),
		Description: validation.SanitizeString(req.Description),
		FoundedYear: req.FoundedYear,
		Rating:      req.Rating,
		Logo:        req.Logo,
		Images:      images,
		Status:      status,
	}

	if err := h.service.CreateSchool(c.Context(), &school); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			return response.Conflict(c, "School with this slug already exists")
		}
		return response.InternalServerError(c, "Failed to create school")
	}

	return response.Created(c, school)
}

// UpdateSchool handles PUT /api/admin/schools/:id
func (h *SchoolAdminHandler) UpdateSchool(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid school id")
	}

	var req UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	school, err := h.store.GetSchoolByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "School not found")
		}
		return response.InternalServerError(c, "Failed to fetch school")
	}
	oldSlug := school.Slug

	if req.Name != "" {
		school.Name = validation.SanitizeString(req.Name)
	}
	if req.Slug != "" {
		school.Slug = req.Slug
	}
	if req.City != "" {
		school.City = validation.SanitizeString(req.City)
	}
	if req.Country != "" {
		school.Country = validation.SanitizeString(req.Country)
	}
	if req.Description != nil {
		school.Description = validation.SanitizeString(*req.Description)
	}
	if req.FoundedYear != nil {
		school.FoundedYear = *req.FoundedYear
	}
	if req.Rating != nil {
		school.Rating = *req.Rating
	}
	if req.Logo != nil {
		school.Logo = *req.Logo
	}
	if req.Images != nil {
		images, err := marshalImages(req.Images)
		if err != nil {
			return response.BadRequest(c, "Invalid image list")
		}
		school.Images = images
	}
	if req.Status != "" {
		school.Status = req.Status
	}

	if err := h.service.UpdateSchool(c.Context(), school, oldSlug); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			return response.Conflict(c, "School with this slug already exists")
		}
		return response.InternalServerError(c, "Failed to update school")
	}

	return response.SuccessWithMessage(c, "School updated successfully", school)
}

// DeleteSchool handles DELETE /api/admin/schools/:id
func (h *SchoolAdminHandler) DeleteSchool(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid school id")
	}

	if err := h.service.DeleteSchool(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "School not found")
		}
		return response.InternalServerError(c, "Failed to delete school")
	}

	return response.SuccessWithMessage(c, "School deleted successfully", nil)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func marshalImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
