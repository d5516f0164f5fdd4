package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bpr-presale.backend/internal/config"
	"bpr-presale.backend/internal/infrastructure/mail"
	"bpr-presale.backend/internal/infrastructure/models"
	"bpr-presale.backend/internal/infrastructure/repositories"
	"bpr-presale.backend/internal/interfaces/http/handlers"
	"bpr-presale.backend/internal/interfaces/http/middleware"
	"bpr-presale.backend/internal/usecases"
	"bpr-presale.backend/pkg/logger"
	"bpr-presale.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	autoMigrate = func(db *gorm.DB) error { return db.AutoMigrate(&models.Registration{}) }
	getStdDB    = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	runServer   = serveWithShutdown
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis when configured. Intake must keep working
	// without it, so an unset URL is not an error.
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Info(context.Background(), "Redis initialized")
	} else {
		log.Println("REDIS_URL not set, idempotency middleware disabled")
	}

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := autoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize repositories
	registrationRepo := repositories.NewRegistrationRepository(db)

	// Initialize mail sender
	renderer := mail.NewTemplateRenderer(cfg.Mail.TemplateDir)
	sender := mail.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password,
		renderer, cfg.Mail.FromName, cfg.Mail.FromAddress)

	// Initialize usecases
	registrationUsecase := usecases.NewRegistrationUsecase(registrationRepo)
	authUsecase := usecases.NewAuthUsecase(cfg.Admin.PrivateKey)
	notificationUsecase := usecases.NewNotificationUsecase(registrationRepo, sender, cfg.Mail.BatchDelay)

	// Initialize handlers
	registrationHandler := handlers.NewRegistrationHandler(registrationUsecase)
	adminHandler := handlers.NewAdminHandler(authUsecase)
	emailHandler := handlers.NewEmailHandler(notificationUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerAPIRoutes(r, routeDeps{
		registrationHandler: registrationHandler,
		adminHandler:        adminHandler,
		emailHandler:        emailHandler,
	})

	log.Printf("🚀 BPR Pre-Sale Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// serveWithShutdown runs the HTTP server and drains in-flight requests
// on SIGINT/SIGTERM before returning.
func serveWithShutdown(r *gin.Engine, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		log.Println("🛑 Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
