package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"washlab-backend/internal/adapters/http/middleware"
	"washlab-backend/internal/adapters/http/routes"
	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/config"
	"washlab-backend/internal/pkg/mailer"
	"washlab-backend/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"

	_ "washlab-backend/docs" // Swagger docs
)

// @title WASHLAB API
// @version 1.0
// @description Rural water infrastructure management API for WASHLAB hubs.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@washlab.org

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.washlab.org
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the initial super-admin account
	if err := config.SeedSuperAdmin(db, cfg); err != nil {
		log.Printf("⚠️ Warning: Failed to seed super-admin: %v", err)
	}

	// SMTP mailer for verification codes
	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Sender:   cfg.SMTP.Sender,
	})

	// S3 storage for documents, photos and lab reports
	uploader, err := storage.NewS3Storage(context.Background(), storage.S3Config{
		Region:       cfg.Storage.Region,
		Bucket:       cfg.Storage.Bucket,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		BaseEndpoint: cfg.Storage.BaseEndpoint,
		PublicURL:    cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize S3 storage: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "WASHLAB API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, mail, uploader)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
