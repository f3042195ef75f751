package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/satsinush/homelab-sub002/internal/config"
	"github.com/satsinush/homelab-sub002/internal/handler"
	"github.com/satsinush/homelab-sub002/internal/handler/middleware"
	"github.com/satsinush/homelab-sub002/internal/migrations"
	"github.com/satsinush/homelab-sub002/internal/repository/postgres"
	"github.com/satsinush/homelab-sub002/internal/service"
	"github.com/satsinush/homelab-sub002/internal/wol"
	"github.com/satsinush/homelab-sub002/pkg/jwt"
	"github.com/satsinush/homelab-sub002/pkg/ratelimit"
	"github.com/satsinush/homelab-sub002/pkg/validator"
)

const version = "1.0.0"

func main() {
	// Load configuration; a missing JWT secret fails here, not per-request
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()
	log.Println("✓ Database connection established")

	// Run schema migrations
	if err := runMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("✓ Migrations applied")

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()
	log.Println("✓ Redis connection established")

	// Initialize validator
	validate := validator.NewValidator()

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	deviceRepo := postgres.NewDeviceRepository(db)

	// Initialize JWT token service
	tokenService, err := jwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Initialize login rate limiter
	limiter := ratelimit.NewLimiter(redisClient, cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginMax)

	// Initialize WoL dispatcher
	dispatcher := wol.NewDispatcher(cfg.WOL.BroadcastAddr, cfg.WOL.Port, cfg.WOL.Timeout)

	// Initialize services
	userService := service.NewUserService(userRepo, tokenService, cfg)
	deviceService := service.NewDeviceService(deviceRepo, dispatcher)

	// Seed the admin account on first boot
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	user, err := userService.CreateDefaultUser(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to bootstrap default user: %v", err)
	}
	log.Printf("✓ Admin account ready (username=%s) - change the seeded password after first login", user.Username)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, limiter, validate)
	deviceHandler := handler.NewDeviceHandler(deviceService, validate)
	healthHandler := handler.NewHealthHandler(cfg.Server.Environment, version)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Wakeboard v" + version,
		ErrorHandler: handler.NewErrorHandler(cfg.IsDevelopment()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Global middleware
	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware())

	authMiddleware := middleware.AuthMiddleware(userService)

	handler.SetupRoutes(app, authHandler, deviceHandler, healthHandler, authMiddleware)

	// Start server
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("✓ Server listening on port %s", cfg.Server.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db.DB, ".")
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
