package v1

import (
	"context"
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type RouterDeps struct {
	UserUC        domain.UserUsecase
	JobUC         domain.JobUsecase
	CategoryUC    domain.CategoryUsecase
	ApplicationUC domain.ApplicationUsecase
	ContactUC     domain.ContactUsecase
	Mongo         *mongo.Database
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.IdentityMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config)))
	r.Use(middleware.ErrorHandler())

	writeLimited := middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig(deps.Config))

	r.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Job Board API", gin.H{
			"version": "v1",
			"docs":    "/v1/swagger/index.html",
		})
	})

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := deps.Mongo.Client().Ping(ctx, readpref.Primary()); err != nil {
			dbStatus = "down"
		}
		cacheStatus := "up"
		if !redis.IsAvailable() {
			cacheStatus = "down"
		}

		if dbStatus == "down" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
			})
			return
		}
		response.Success(c, http.StatusOK, "System operational", gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewUserHandler(v1, deps.UserUC)
	NewJobHandler(v1, deps.JobUC)
	NewCategoryHandler(v1, deps.CategoryUC)
	NewApplicationHandler(v1, writeLimited, deps.ApplicationUC)
	NewContactHandler(v1, writeLimited, deps.ContactUC)

	return r
}
