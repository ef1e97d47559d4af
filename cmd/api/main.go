package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"doulabook/internal/config"
	"doulabook/internal/database"
	"doulabook/internal/middleware"
	"doulabook/internal/modules/auth"
	"doulabook/internal/modules/availability"
	"doulabook/internal/modules/booking"
	"doulabook/internal/modules/chat"
	"doulabook/internal/modules/doula"
	"doulabook/internal/modules/favourite"
	"doulabook/internal/modules/payment"
	"doulabook/internal/modules/reminder"
	"doulabook/internal/modules/review"
	jwtsvc "doulabook/internal/pkg/jwt"
	"doulabook/internal/pkg/metrics"
	"doulabook/internal/repository"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	userRepo := repository.NewUserRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	favouriteRepo := repository.NewFavouriteRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	doulaService := doula.NewService(userRepo)
	doulaHandler := doula.NewHandler(doulaService)

	availabilityService := availability.NewService(availabilityRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	reminderService := reminder.NewService(reminderRepo, userRepo)
	reminderHandler := reminder.NewHandler(reminderService)

	bookingService := booking.NewService(bookingRepo, availabilityRepo, userRepo, reminderService, log)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	paymentService := payment.NewService(paymentRepo, bookingRepo, bookingService, userRepo, payment.Config{
		WebhookSecret: cfg.PaymentWebhookSecret,
		CheckoutBase:  cfg.PaymentCheckoutBase,
		Currency:      cfg.PaymentCurrency,
	}, log)
	paymentHandler := payment.NewHandler(paymentService)

	favouriteService := favourite.NewService(favouriteRepo, userRepo)
	favouriteHandler := favourite.NewHandler(favouriteService)

	hub := chat.NewHub()
	defer hub.Close()
	chatService := chat.NewService(messageRepo, userRepo)
	chatHandler := chat.NewHandler(chatService, hub)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/chat", chat.ServeWS(hub, log))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		doulaHandler.RegisterPublicRoutes(v1)
		availabilityHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			favouriteHandler.RegisterRoutes(protected)
			reminderHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)

			doulaOnly := protected.Group("/")
			doulaOnly.Use(middleware.RequireRole("doula"))
			{
				availabilityHandler.RegisterRoutes(doulaOnly)
				doulaHandler.RegisterRoutes(doulaOnly)
			}
		}
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("starting api")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
