package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	authutil "github.com/langmarket/api/utils/auth"
	"github.com/langmarket/api/utils/middleware"
	"github.com/langmarket/api/utils/response"
	"github.com/langmarket/api/utils/validation"
)

// AuthHandler handles admin authentication
type AuthHandler struct {
	store      database.Storage
	jwtManager *authutil.JWTManager
	bruteForce *middleware.BruteForceProtection
	validator  *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store database.Storage, jwtManager *authutil.JWTManager, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtManager: jwtManager,
		bruteForce: bruteForce,
		validator:  validation.NewValidator(),
	}
}

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest represents the request body for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	user, err := h.store.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.recordFailure(c)
			return response.Unauthorized(c, "Invalid credentials")
		}
		return response.InternalServerError(c, "Failed to load user")
	}

	if err := authutil.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		h.recordFailure(c)
		return response.Unauthorized(c, "Invalid credentials")
	}

	if !user.IsAdmin() {
		return response.Forbidden(c, "Admin access required")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	if h.bruteForce != nil {
		h.bruteForce.RecordSuccessfulAttempt(c, c.IP())
	}

	return response.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Refresh handles POST /api/admin/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return response.Unauthorized(c, "Invalid refresh token")
	}

	user, err := h.store.GetUserByID(c.Context(), claims.UserID)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return response.Unauthorized(c, "Token has been invalidated")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	return response.Success(c, fiber.Map{
		"access_token": accessToken,
	})
}

func (h *AuthHandler) recordFailure(c *fiber.Ctx) {
	if h.bruteForce != nil {
		h.bruteForce.RecordFailedAttempt(c, c.IP())
	}
}
