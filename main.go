package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shoppyglobe/shoppyglobe-api/config"
	"github.com/shoppyglobe/shoppyglobe-api/controllers"
	"github.com/shoppyglobe/shoppyglobe-api/database"
	"github.com/shoppyglobe/shoppyglobe-api/logger"
	"github.com/shoppyglobe/shoppyglobe-api/middleware"
	"github.com/shoppyglobe/shoppyglobe-api/repository"
	"github.com/shoppyglobe/shoppyglobe-api/routes"
	"github.com/shoppyglobe/shoppyglobe-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not up yet.
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Sync()
	log := logger.Log

	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}()
	log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDB))

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(indexCtx, database.DB); err != nil {
		cancelIndex()
		log.Fatal("Index creation failed", zap.Error(err))
	}
	cancelIndex()

	// The product cache is optional; without REDIS_URL every lookup goes to
	// the database.
	var cache *services.CacheManager
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal("Redis connection failed", zap.Error(err))
		}
		defer redisClient.Close()
		cache = services.NewCacheManager(redisClient)
		log.Info("Connected to Redis")
	}

	userRepo := repository.NewUserRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	cartRepo := repository.NewCartRepository(database.DB)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService, log)
	productService := services.NewProductService(productRepo, cache, log)
	cartService := services.NewCartService(cartRepo, productRepo, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(
		router,
		controllers.NewAuthController(authService),
		controllers.NewProductController(productService),
		controllers.NewCartController(cartService),
		tokenService,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("ShoppyGlobe API running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error", zap.Error(err))
	}
	log.Info("Server shutdown complete")
}
