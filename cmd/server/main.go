package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"fleet_vendor/internal/config"
	"fleet_vendor/internal/controllers"
	"fleet_vendor/internal/logger"
	"fleet_vendor/internal/middleware"
	"fleet_vendor/internal/notify"
	"fleet_vendor/internal/routes"
	"fleet_vendor/internal/services"
	"fleet_vendor/internal/storage"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Document file storage (optional; uploads degrade to empty URLs)
	if os.Getenv("S3_BUCKET") != "" {
		uploader, err := storage.NewS3Storage(context.Background(), storage.ConfigFromEnv())
		if err != nil {
			log.Printf("S3 storage unavailable, documents will be created without files: %v", err)
		} else {
			controllers.SetUploader(uploader)
		}
	}

	// Notification dispatch: AMQP when a broker is configured, log otherwise
	var notifier services.Notifier = notify.LogNotifier{}
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("RabbitMQ unavailable, notifications fall back to log: %v", err)
		} else {
			defer conn.Close()
			notifier = notify.NewAMQPNotifier(conn)
		}
	}

	// Daily expiry sweep at midnight
	sweeper := services.NewSweeper(config.DB, notifier)
	c := cron.New()
	if _, err := c.AddFunc(config.GetEnv("SWEEP_SCHEDULE", "0 0 * * *"), func() {
		if _, err := sweeper.Run(context.Background()); err != nil {
			log.Printf("Expiry sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule expiry sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
