package main

import (
	"context"
	"log" // Standard log package

	"github.com/gofiber/adaptor/v2"                 // Fiber adaptor for net/http handlers
	"github.com/gofiber/fiber/v2"                   // Fiber framework
	"github.com/gofiber/fiber/v2/middleware/logger" // Fiber logger middleware

	"nutricare/backend/cache"
	"nutricare/backend/config"
	"nutricare/backend/database"
	"nutricare/backend/handlers"
	"nutricare/backend/middleware"
	"nutricare/backend/models"
	"nutricare/backend/monitoring"
	"nutricare/backend/services"
	"nutricare/backend/storage"
)

// main is the entry point of the application.
func main() {
	// Load configuration first
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection and make sure the schema exists
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// Redis cache is optional: without REDIS_ADDR every read goes straight
	// to the database.
	var appCache cache.Cache
	if cfg.RedisAddr != "" {
		appCache, err = cache.NewRedisCache(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer appCache.Close()
		log.Println("Redis cache initialized")
	} else {
		log.Println("REDIS_ADDR not set, running without cache")
	}

	// Blob store for uploaded client documents
	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	// Prometheus collectors
	monitoring.Init()

	// Create the Fiber app. The body limit leaves headroom over the 10 MiB
	// upload cap so oversized uploads reach the handler and get a 413
	// instead of a dropped connection.
	app := fiber.New(fiber.Config{
		BodyLimit: models.MaxFileSize + 1<<20,
	})

	// Request logging and metrics for every route
	app.Use(logger.New())
	app.Use(middleware.Metrics())

	// Simple health check route at the root
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok", "message": "NutriCare backend is running"})
	})

	// Prometheus metrics endpoint via the net/http adaptor
	app.Get("/metrics", adaptor.HTTPHandler(monitoring.Handler()))

	// Uploaded client documents are served from the blob directory
	app.Static("/uploads", store.Dir())

	// --- Setup application services ---
	authService := services.NewAuthService(cfg)
	clientService := services.NewClientService(db, appCache, store)
	checkupService := services.NewCheckupService(db, appCache)
	bookingService := services.NewBookingService(db, clientService)
	appointmentService := services.NewAppointmentService(db)
	fileService := services.NewFileService(db, store)
	exportService := services.NewExportService(clientService, checkupService)

	// --- Setup middleware ---
	authMiddleware := middleware.Protected(cfg)

	// --- Setup routes ---
	api := app.Group("/api")
	handlers.SetupAuthRoutes(api, authService)
	handlers.SetupClientRoutes(api, clientService, authMiddleware)
	handlers.SetupCheckupRoutes(api, checkupService, authMiddleware)
	handlers.SetupFileRoutes(api, fileService, authMiddleware)
	handlers.SetupBookingRoutes(api, bookingService, authMiddleware)
	handlers.SetupAppointmentRoutes(api, appointmentService, authMiddleware)
	handlers.SetupExportRoutes(api, exportService, authMiddleware)

	// Start the server
	port := cfg.ServerPort
	log.Printf("Starting NutriCare backend server on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
