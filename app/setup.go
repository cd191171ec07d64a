package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/langmarket/api/api"
	"github.com/langmarket/api/config"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/router"
	"github.com/langmarket/api/services"
	"github.com/langmarket/api/services/cron"
	"github.com/langmarket/api/services/spaces"
	"github.com/langmarket/api/utils/cache"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Ensure the admin account from the environment exists
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.BootstrapAdmin(bootstrapCtx, getEnv.ADMIN_EMAIL, getEnv.ADMIN_PASSWORD); err != nil {
		cancelBootstrap()
		return err
	}
	cancelBootstrap()

	// Redis is optional. Without it every read goes straight to Postgres.
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL, getEnv.REDIS_PASSWORD, getEnv.REDIS_DB)
		if err != nil {
			log.Printf("Warning: Redis unavailable, serving without cache: %v", err)
			redisCache = nil
		}
	} else {
		log.Println("REDIS_URL not set, serving without cache")
	}

	// Object storage is optional. Without it image uploads return 503.
	var spacesClient *spaces.Client
	if getEnv.SPACES_ACCESS_KEY != "" && getEnv.SPACES_BUCKET != "" {
		spacesClient, err = spaces.NewClient(spaces.Config{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			CDNURL:    getEnv.SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: object storage unavailable: %v", err)
			spacesClient = nil
		}
	} else {
		log.Println("SPACES_* not set, image uploads disabled")
	}

	// Cache warmer keeps the top school detail entries populated
	var cronManager *cron.CronManager
	if redisCache != nil {
		var cacheLayer services.Cache = redisCache
		warmService := services.NewSchoolService(store, cacheLayer)
		cronManager = cron.NewCronManager(store, warmService, getEnv.CACHE_WARM_TOP_N)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	// Defer closing DB, Redis and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes (security middleware is attached inside)
	router.SetupRoutes(app, getEnv, store, redisCache, spacesClient)

	// Get the PORT & Start the Server
	return server.Run()
}
