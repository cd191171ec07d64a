package blog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/utils/response"
	"github.com/langmarket/api/utils/validation"
)

// BlogHandler handles the public blog endpoints
type BlogHandler struct {
	service *services.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(service *services.BlogService) *BlogHandler {
	return &BlogHandler{
		service: service,
	}
}

// ListPosts handles GET /api/blog
func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	items, err := h.service.ListPosts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch blog posts")
	}

	return response.Success(c, items)
}

// GetPost handles GET /api/blog/:slug
func (h *BlogHandler) GetPost(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !validation.IsSlug(slug) {
		return response.BadRequest(c, "Invalid post slug")
	}

	post, err := h.service.GetPostBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post")
	}

	return response.Success(c, post)
}
