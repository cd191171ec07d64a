package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/utils/auth"
	"github.com/langmarket/api/utils/response"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	store      database.Storage
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, store database.Storage) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		store:      store,
	}
}

// validateRequest checks the bearer token, loads the user, and verifies the
// token version. Returns the claims and user on success.
func (m *AuthMiddleware) validateRequest(c *fiber.Ctx) (*auth.Claims, *model.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil, response.Unauthorized(c, "Missing authorization token")
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, response.Unauthorized(c, "Token has expired")
		}
		return nil, nil, response.Unauthorized(c, "Invalid token")
	}

	if claims.TokenType != "access" {
		return nil, nil, response.Unauthorized(c, "Invalid token type")
	}

	user, err := m.store.GetUserByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil, response.Unauthorized(c, "User not found")
		}
		return nil, nil, response.InternalServerError(c, "Failed to load user")
	}

	// Tokens minted before the last version bump are rejected
	if user.TokenVersion != claims.TokenVersion {
		return nil, nil, response.Unauthorized(c, "Token has been invalidated")
	}

	return claims, user, nil
}

func storeUserContext(c *fiber.Ctx, claims *auth.Claims, user *model.User) {
	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)
	c.Locals("claims", claims)
	c.Locals("user", user)
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, err := m.validateRequest(c)
		if err != nil {
			return err
		}

		storeUserContext(c, claims, user)
		return c.Next()
	}
}

// RequireAdmin is middleware that requires a valid JWT token carrying the
// admin role
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, err := m.validateRequest(c)
		if err != nil {
			return err
		}

		if claims.Role != model.RoleAdmin {
			return response.Forbidden(c, "Admin access required")
		}

		storeUserContext(c, claims, user)
		return c.Next()
	}
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}
