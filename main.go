package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mentorlink/internal/config"
	"mentorlink/internal/handlers"
	"mentorlink/internal/middleware"
	"mentorlink/internal/models"
	"mentorlink/internal/repositories"
	"mentorlink/internal/services"
	"mentorlink/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := openDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.MatchingRequest{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional, enabled when a URL is configured) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	matchingRepo := repositories.NewGORMMatchingRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	mentorService := services.NewMentorService(userRepo)
	profileService := services.NewProfileService(userRepo, cfg.MaxImageBytes)
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	matchingService := services.NewMatchingService(matchingRepo, userRepo, events)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(profileService)
	mentorHandler := handlers.NewMentorHandler(mentorService)
	matchingHandler := handlers.NewMatchingHandler(matchingService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Public routes. The health check must be registered before the protected
	// group, otherwise the auth middleware swallows it.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	authHandler.RegisterRoutes(app)

	// Protected routes
	protected := app.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protected)
	mentorHandler.RegisterRoutes(protected)
	matchingHandler.RegisterRoutes(protected)

	// --- Matching event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for matching events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received matching event %s (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeMatchEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase picks the GORM driver from the DSN: anything that looks like a
// PostgreSQL connection string gets the postgres driver, everything else is
// treated as a SQLite path. Error translation is enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey on both drivers.
func openDatabase(dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}
	if strings.Contains(dsn, "host=") || strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}
	return gorm.Open(sqlite.Open(dsn), gormCfg)
}
