package admin

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/utils/response"
	"gorm.io/datatypes"
)

// UploadHandler handles admin image uploads
type UploadHandler struct {
	store   database.Storage
	images  *services.ImageService
	schools *services.SchoolService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store database.Storage, images *services.ImageService, schools *services.SchoolService) *UploadHandler {
	return &UploadHandler{
		store:   store,
		images:  images,
		schools: schools,
	}
}

// Upload handles POST /api/admin/upload. The image is resized, converted to
// webp and uploaded to object storage; its CDN URL is attached to the school
// only after the upload succeeds, so a failure never leaves a partial record.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.images == nil {
		return response.ServiceUnavailable(c, "Object storage is not configured")
	}

	schoolID, err := strconv.ParseUint(c.FormValue("school_id"), 10, 32)
	if err != nil || schoolID == 0 {
		return response.BadRequest(c, "school_id is required")
	}

	school, err := h.store.GetSchoolByID(c.Context(), uint(schoolID))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "School not found")
		}
		return response.InternalServerError(c, "Failed to fetch school")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "image file is required")
	}
	if fileHeader.Size > services.MaxUploadSize {
		return response.BadRequest(c, "Image exceeds the 5MB upload limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}

	url, err := h.images.ProcessAndUpload(c.Context(), school.ID, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImageTooLarge):
			return response.BadRequest(c, "Image exceeds the 5MB upload limit")
		case errors.Is(err, services.ErrUnsupportedImage):
			return response.BadRequest(c, "Image must be jpeg, png or webp")
		default:
			return response.InternalServerError(c, "Failed to process image")
		}
	}

	// Attach the URL to the school's image list now that the upload is durable
	urls := []string{}
	if len(school.Images) > 0 {
		if err := json.Unmarshal(school.Images, &urls); err != nil {
			urls = []string{}
		}
	}
	urls = append(urls, url)
	raw, err := json.Marshal(urls)
	if err != nil {
		return response.InternalServerError(c, "Failed to update school images")
	}
	school.Images = datatypes.JSON(raw)

	if err := h.schools.UpdateSchool(c.Context(), school, school.Slug); err != nil {
		return response.InternalServerError(c, "Failed to update school images")
	}

	return response.SuccessWithMessage(c, "Image uploaded successfully", fiber.Map{
		"url":    url,
		"images": urls,
	})
}

type removeImageRequest struct {
	SchoolID uint   `json:"school_id"`
	URL      string `json:"url"`
}

// RemoveImage handles DELETE /api/admin/upload. The URL is detached from the
// school record first; the stored object is then deleted best-effort, since a
// leftover object is harmless once no record references it.
func (h *UploadHandler) RemoveImage(c *fiber.Ctx) error {
	if h.images == nil {
		return response.ServiceUnavailable(c, "Object storage is not configured")
	}

	var req removeImageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.SchoolID == 0 || req.URL == "" {
		return response.BadRequest(c, "school_id and url are required")
	}

	school, err := h.store.GetSchoolByID(c.Context(), req.SchoolID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "School not found")
		}
		return response.InternalServerError(c, "Failed to fetch school")
	}

	urls := []string{}
	if len(school.Images) > 0 {
		if err := json.Unmarshal(school.Images, &urls); err != nil {
			urls = []string{}
		}
	}
	kept := make([]string, 0, len(urls))
	found := false
	for _, u := range urls {
		if u == req.URL {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return response.NotFound(c, "Image not found on school")
	}

	raw, err := json.Marshal(kept)
	if err != nil {
		return response.InternalServerError(c, "Failed to update school images")
	}
	school.Images = datatypes.JSON(raw)

	if err := h.schools.UpdateSchool(c.Context(), school, school.Slug); err != nil {
		return response.InternalServerError(c, "Failed to update school images")
	}

	if err := h.images.Delete(c.Context(), req.URL); err != nil {
		log.Printf("Warning: failed to delete stored image %s: %v", req.URL, err)
	}

	return response.SuccessWithMessage(c, "Image removed successfully", fiber.Map{
		"images": kept,
	})
}
