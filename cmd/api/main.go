package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	mongorepo "go-jobboard-backend/internal/repository/mongo"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/cache"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Job Board Backend API
// @version         1.0
// @description     Backend for job board platform using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithField("error", err.Error()).Fatal("Failed to load config")
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.WithField("port", cfg.Port).Info("Starting job board backend")

	// 3. Setup Database
	db, disconnect, err := database.NewMongoDatabase(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Log.WithField("error", err.Error()).Fatal("Failed to connect to database")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := disconnect(ctx); err != nil {
			logger.Log.WithField("error", err.Error()).Error("Mongo disconnect failed")
		}
	}()

	if err := mongorepo.EnsureIndexes(db); err != nil {
		logger.Log.WithField("error", err.Error()).Fatal("Failed to ensure indexes")
	}

	// 4. Setup Redis (optional; everything degrades without it)
	var statsCache cache.Cache
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.WithField("error", err.Error()).Warn("Redis unavailable, continuing without it")
		} else {
			statsCache = cache.NewRedisCache(redis.Client())
			defer redis.Close()
		}
	}

	// 5. Setup Repositories
	userRepo := mongorepo.NewUserRepository(db)
	jobRepo := mongorepo.NewJobRepository(db)
	categoryRepo := mongorepo.NewCategoryRepository(db)
	contactRepo := mongorepo.NewContactRepository(db)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact notifications will be skipped")
	}

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	statsTTL := time.Duration(cfg.ContactStatsCacheSeconds) * time.Second
	userUC := usecase.NewUserUsecase(userRepo, jobRepo, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, categoryRepo, validate)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(userRepo, jobRepo, validate)
	contactUC := usecase.NewContactUsecase(contactRepo, emailService, statsCache, statsTTL, validate)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:        userUC,
		JobUC:         jobUC,
		CategoryUC:    categoryUC,
		ApplicationUC: applicationUC,
		ContactUC:     contactUC,
		Mongo:         db,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithField("error", err.Error()).Error("Listen failed")
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithField("error", err.Error()).Error("Server forced to shutdown")
	}

	logger.Log.Info("Server exiting")
}
