package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"eats-api/internal/config"
	"eats-api/internal/events"
	"eats-api/internal/handlers"
	"eats-api/internal/logger"
	"eats-api/internal/mail"
	"eats-api/internal/middleware"
	"eats-api/internal/repository"
	"eats-api/internal/routes"
	"eats-api/internal/service"
	"eats-api/internal/storage"
	"eats-api/internal/token"
)

func main() {
	logger.Setup()
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := config.OpenDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database setup failed")
	}

	// Repositories
	users := repository.NewUserRepository(db)
	verifications := repository.NewVerificationRepository(db)
	restaurants := repository.NewRestaurantRepository(db)
	categories := repository.NewCategoryRepository(db)
	dishes := repository.NewDishRepository(db)
	orders := repository.NewOrderRepository(db)
	payments := repository.NewPaymentRepository(db)

	// Collaborators
	tokens := token.New(cfg.JWTSecret)
	hub := events.NewHub()
	var mailer service.Mailer
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		mailer = mail.New(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)
	} else {
		logrus.Warn("mailgun not configured, verification mail disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var uploader handlers.Uploader
	if cfg.AWSBucket != "" {
		s3Uploader, err := storage.NewS3Uploader(ctx, cfg.AWSBucket, cfg.AWSRegion)
		if err != nil {
			logrus.WithError(err).Warn("uploads disabled")
		} else {
			uploader = s3Uploader
		}
	} else {
		logrus.Warn("AWS bucket not configured, uploads disabled")
	}

	// Services
	userService := service.NewUsers(users, verifications, tokens, mailer)
	restaurantService := service.NewRestaurants(restaurants, categories, dishes)
	orderService := service.NewOrders(orders, restaurants, dishes, hub)
	paymentService := service.NewPayments(payments, restaurants)

	go paymentService.RunPromotionSweeper(ctx, cfg.PromotionSweepInterval)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Authenticate:  middleware.Authenticate(users, tokens),
		Auth:          handlers.NewAuthHandler(userService),
		Restaurants:   handlers.NewRestaurantHandler(restaurantService),
		Orders:        handlers.NewOrderHandler(orderService),
		Payments:      handlers.NewPaymentHandler(paymentService),
		Subscriptions: handlers.NewSubscriptionHandler(hub),
		Uploads:       handlers.NewUploadHandler(uploader),
	})

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
