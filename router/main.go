package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/config"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/handlers"
	admin_handlers "github.com/langmarket/api/handlers/admin"
	auth_handlers "github.com/langmarket/api/handlers/auth"
	blog_handlers "github.com/langmarket/api/handlers/blog"
	course_handlers "github.com/langmarket/api/handlers/course"
	location_handlers "github.com/langmarket/api/handlers/location"
	school_handlers "github.com/langmarket/api/handlers/school"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/services/spaces"
	"github.com/langmarket/api/utils/auth"
	"github.com/langmarket/api/utils/cache"
	"github.com/langmarket/api/utils/middleware"
)

// SetupRoutes wires middleware, services and handlers onto the app.
// redisCache and spacesClient may be nil; reads then degrade to the store
// and uploads report storage as unavailable.
func SetupRoutes(app *fiber.App, getEnv *config.EnviornmentVariable, store database.Storage, redisCache *cache.RedisCache, spacesClient *spaces.Client) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "langmarket-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	})

	// A nil *RedisCache must stay a nil interface so services skip the cache
	var cacheLayer services.Cache
	if redisCache != nil {
		cacheLayer = redisCache
	}

	// Services
	schoolService := services.NewSchoolService(store, cacheLayer)
	courseService := services.NewCourseService(store, cacheLayer)
	blogService := services.NewBlogService(store, cacheLayer)
	locationService := services.NewLocationService(store, cacheLayer)

	var imageService *services.ImageService
	if spacesClient != nil {
		imageService = services.NewImageService(spacesClient)
	}

	// Brute force protection on the admin login
	var bruteForce *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForce = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, store)

	// Handlers
	healthHandler := handlers.NewHealthHandler(store, redisCache)
	schoolHandler := school_handlers.NewSchoolHandler(schoolService)
	courseHandler := course_handlers.NewCourseHandler(courseService)
	blogHandler := blog_handlers.NewBlogHandler(blogService)
	locationHandler := location_handlers.NewLocationHandler(locationService)
	authHandler := auth_handlers.NewAuthHandler(store, jwtManager, bruteForce)
	schoolAdminHandler := admin_handlers.NewSchoolAdminHandler(store, schoolService)
	courseAdminHandler := admin_handlers.NewCourseAdminHandler(store, courseService)
	blogAdminHandler := admin_handlers.NewBlogAdminHandler(store, blogService)
	uploadHandler := admin_handlers.NewUploadHandler(store, imageService, schoolService)

	// Security middleware
	allowedOrigins := getEnv.ALLOWED_ORIGINS
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", healthHandler.Check)

	api := app.Group("/api")

	// Public read endpoints
	api.Get("/schools", schoolHandler.ListSchools)
	api.Get("/schools/:slug", schoolHandler.GetSchool)
	api.Get("/courses", courseHandler.ListCourses)
	api.Get("/countries", locationHandler.ListCountries)
	api.Get("/cities/:country", locationHandler.ListCities)
	api.Get("/blog", blogHandler.ListPosts)
	api.Get("/blog/:slug", blogHandler.GetPost)

	// Admin endpoints
	admin := api.Group("/admin")

	// Login with brute force protection when Redis is up
	if bruteForce != nil {
		admin.Post("/login", bruteForce.CheckAttempt(), authHandler.Login)
	} else {
		admin.Post("/login", authHandler.Login)
	}
	admin.Post("/refresh", authHandler.Refresh)

	// Everything below requires an admin token
	admin.Use(authMiddleware.RequireAdmin())

	admin.Get("/schools", schoolAdminHandler.ListSchools)
	admin.Post("/schools", schoolAdminHandler.CreateSchool)
	admin.Put("/schools/:id", schoolAdminHandler.UpdateSchool)
	admin.Delete("/schools/:id", schoolAdminHandler.DeleteSchool)

	admin.Get("/courses", courseAdminHandler.ListCourses)
	admin.Post("/courses", courseAdminHandler.CreateCourse)
	admin.Put("/courses/:id", courseAdminHandler.UpdateCourse)
	admin.Delete("/courses/:id", courseAdminHandler.DeleteCourse)

	admin.Post("/upload", uploadHandler.Upload)
	admin.Delete("/upload", uploadHandler.RemoveImage)

	admin.Get("/blog", blogAdminHandler.ListPosts)
	admin.Post("/blog", blogAdminHandler.CreatePost)
	admin.Put("/blog/:id", blogAdminHandler.UpdatePost)
	admin.Delete("/blog/:id", blogAdminHandler.DeletePost)
}
