package location

import (
	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/utils/response"
	"github.com/langmarket/api/utils/validation"
)

// LocationHandler handles the public country and city endpoints
type LocationHandler struct {
	service *services.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service *services.LocationService) *LocationHandler {
	return &LocationHandler{
		service: service,
	}
}

// ListCountries handles GET /api/countries
func (h *LocationHandler) ListCountries(c *fiber.Ctx) error {
	countries, err := h.service.ListCountries(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch countries")
	}

	return response.Success(c, countries)
}

// ListCities handles GET /api/cities/:country
func (h *LocationHandler) ListCities(c *fiber.Ctx) error {
	country := validation.SanitizeString(c.Params("country"))
	if country == "" {
		return response.BadRequest(c, "Country is required")
	}

	cities, err := h.service.ListCities(c.Context(), country)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch cities")
	}

	return response.Success(c, cities)
}
