package admin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/utils/middleware"
	"github.com/langmarket/api/utils/response"
	"github.com/langmarket/api/utils/validation"
)

// BlogAdminHandler handles the admin blog endpoints
type BlogAdminHandler struct {
	store     database.Storage
	service   *services.BlogService
	validator *validation.Validator
}

// NewBlogAdminHandler creates a new admin blog handler
func NewBlogAdminHandler(store database.Storage, service *services.BlogService) *BlogAdminHandler {
	return &BlogAdminHandler{
		store:     store,
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreatePostRequest represents the request body for creating a blog post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=2,max=255"`
	Slug    string `json:"slug" validate:"required,slug,max=255"`
	Content string `json:"content" validate:"required"`
	Status  string `json:"status" validate:"omitempty,oneof=draft published"`
}

// UpdatePostRequest represents the request body for updating a blog post
type UpdatePostRequest struct {
	Title   string `json:"title" validate:"omitempty,min=2,max=255"`
	Slug    string `json:"slug" validate:"omitempty,slug,max=255"`
	Content string `json:"content" validate:"omitempty"`
	Status  string `json:"status" validate:"omitempty,oneof=draft published"`
}

// ListPosts handles GET /api/admin/blog
func (h *BlogAdminHandler) ListPosts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	pagination := response.CalculatePagination(page, limit, 0)
	posts, total, err := h.store.AdminListPosts(c.Context(), pagination.CurrentPage, pagination.PerPage)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch posts")
	}

	return response.Paginated(c, posts, response.CalculatePagination(page, limit, total))
}

// CreatePost handles POST /api/admin/blog
func (h *BlogAdminHandler) CreatePost(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	status := req.Status
	if status == "" {
		status = model.PostStatusDraft
	}

	post := model.BlogPost{
		Title:    validation.SanitizeString(req.Title),
		Slug:     req.Slug,
		Content:  req.Content,
		AuthorID: user.ID,
		Status:   status,
	}

	if err := h.service.CreatePost(c.Context(), &post); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			return response.Conflict(c, "Post with this slug already exists")
		}
		return response.InternalServerError(c, "Failed to create post")
	}

	return response.Created(c, post)
}

// UpdatePost handles PUT /api/admin/blog/:id
func (h *BlogAdminHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid post id")
	}

	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	post, err := h.store.GetPostByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post")
	}
	oldSlug := post.Slug

	if req.Title != "" {
		post.Title = validation.SanitizeString(req.Title)
	}
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Status != "" {
		post.Status = req.Status
	}

	if err := h.service.UpdatePost(c.Context(), post, oldSlug); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			return response.Conflict(c, "Post with this slug already exists")
		}
		return response.InternalServerError(c, "Failed to update post")
	}

	return response.SuccessWithMessage(c, "Post updated successfully", post)
}

// DeletePost handles DELETE /api/admin/blog/:id
func (h *BlogAdminHandler) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid post id")
	}

	if err := h.service.DeletePost(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to delete post")
	}

	return response.SuccessWithMessage(c, "Post deleted successfully", nil)
}
