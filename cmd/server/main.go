package main

import (
	"fmt"
	"log"

	"gamescout/backend/internal/auth"
	"gamescout/backend/internal/cache"
	"gamescout/backend/internal/config"
	"gamescout/backend/internal/database"
	"gamescout/backend/internal/handler"
	"gamescout/backend/internal/logger"
	"gamescout/backend/internal/middleware"
	"gamescout/backend/internal/monitoring"
	"gamescout/backend/internal/rawg"
	"gamescout/backend/internal/recommend"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamescout/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           GameScout API
// @version         1.0
// @description     Game recommendation service backed by the RAWG games database.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig

	logger.Init(cfg.LogLevel, cfg.GinMode)

	// Connect to the database
	database.Connect(cfg.DatabaseURL)

	// Redis is optional; the service degrades to DB-only caching without it.
	if err := cache.Init(cfg.RedisURL, cfg.RedisPassword); err != nil {
		logger.L().WithError(err).Warn("redis unavailable, running without it")
	}

	monitoring.InitMetrics()

	handler.Recommender = recommend.NewService(
		database.DB,
		rawg.NewClient(cfg.RawgBaseURL, cfg.RawgAPIKey),
	)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), monitoring.PrometheusMiddleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", handler.Index)
	router.GET("/healthz", handler.Health)
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Auth routes
	router.POST("/signup", handler.Signup)
	router.POST("/login", handler.Login)
	router.POST("/logout", handler.Logout)

	// Survey and results; results works for guests too.
	router.GET("/survey", handler.GetSurvey)
	router.POST("/survey", handler.PostSurvey)
	router.GET("/results", auth.OptionalAuthMiddleware(), handler.GetResults)
	router.GET("/my-lists", auth.OptionalAuthMiddleware(), handler.GetMyLists)

	// User routes (protected)
	userRoutes := router.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	{
		userRoutes.GET("/me", handler.GetMe)
	}

	// Admin routes (protected by auth and admin check)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
	{
		adminRoutes.GET("/users", handler.ListUsers)
		adminRoutes.DELETE("/cache", handler.PurgeCache)
	}

	fmt.Println("Server is running on :" + cfg.Port)
	fmt.Println("Swagger UI is available at http://localhost:" + cfg.Port + "/swagger/index.html")
	log.Fatal(router.Run(":" + cfg.Port))
}
