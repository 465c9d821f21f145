package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carzi/internal/config"
	"carzi/internal/handlers"
	"carzi/internal/middleware"
	"carzi/internal/repositories/mongodb"
	"carzi/internal/services"
	"carzi/pkg/cache"
	"carzi/pkg/database"
	"carzi/pkg/logger"
	"carzi/pkg/mailer"
	"carzi/pkg/payment"
	"carzi/pkg/sms"
	"carzi/pkg/storage"
	"carzi/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: logFormat(cfg),
		Output: "stdout",
		Colors: cfg.App.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting Carzi server")

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.EnsureIndexes(ctx, db.Database); err != nil {
			cancel()
			log.WithError(err).Fatal("Failed to ensure indexes")
		}
		cancel()
	}

	// Redis is optional; without it the car repository just skips caching.
	var cacheService services.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, caching disabled")
	} else {
		cacheService = redisCache
		defer redisCache.Close()
	}

	store, err := buildStorage(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}

	var smsProvider sms.Provider
	if cfg.SMS.Enabled {
		smsProvider = sms.NewTwilioProvider(cfg.SMS.TwilioAccountSID, cfg.SMS.TwilioAuthToken, cfg.SMS.TwilioFromNumber)
	}

	gateway := payment.NewRazorpayGateway(cfg.Payment.RazorpayKeyID, cfg.Payment.RazorpayKeySecret)

	mail := mailer.NewSMTPMailer(&mailer.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})

	userRepo := mongodb.NewUserRepository(db.Database)
	carRepo := mongodb.NewCarRepository(db.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	reviewRepo := mongodb.NewReviewRepository(db.Database)
	otpRepo := mongodb.NewOTPRepository(db.Database)

	authService := services.NewAuthService(userRepo, otpRepo, mail, log, cfg.Security.JWTSecret, cfg.App.ClientURL)
	carService := services.NewCarService(carRepo, bookingRepo, store, log)
	bookingService := services.NewBookingService(bookingRepo, carRepo, userRepo, gateway, smsProvider, log, cfg.Payment.Currency)
	reviewService := services.NewReviewService(reviewRepo, carRepo, log)

	authHandler := handlers.NewAuthHandler(authService, log)
	carHandler := handlers.NewCarHandler(carService, log)
	bookingHandler := handlers.NewBookingHandler(bookingService, log)
	reviewHandler := handlers.NewReviewHandler(reviewService, log)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Security.CORSAllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "version": cfg.App.Version})
	})

	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	api := router.Group("/api/v1")
	routes.SetupAuthRoutes(api, authHandler, cfg.Security.JWTSecret)
	routes.SetupCarRoutes(api, carHandler, reviewHandler, cfg.Security.JWTSecret)
	routes.SetupBookingRoutes(api, bookingHandler, cfg.Security.JWTSecret)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	log.Info("Server stopped")
}

func buildStorage(cfg *config.Config) (storage.Provider, error) {
	switch cfg.Storage.Provider {
	case "aws", "s3":
		return storage.NewAWSS3Storage(cfg.Storage.AWS.Region, cfg.Storage.AWS.Bucket, cfg.Storage.AWS.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.Storage.Local.BasePath, cfg.Storage.Local.BaseURL)
	}
}

func logFormat(cfg *config.Config) string {
	if cfg.App.Environment == "production" {
		return "json"
	}
	return "text"
}
