package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/mailer"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/otp"
	"github.com/BruksfildServices01/salon-booking/internal/payments"
	"github.com/BruksfildServices01/salon-booking/internal/storage"
	"github.com/BruksfildServices01/salon-booking/internal/token"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client, mail mailer.Sender) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	tokens := token.NewIssuer(
		cfg.JWTSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTExpire,
		cfg.JWTRefreshExpire,
	)
	throttle := otp.NewThrottle(rdb)

	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	authLimiter := middleware.NewRateLimiter(30, 10)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	updateBookingUC := ucBooking.NewUpdateBooking(bookingRepo, auditDispatcher)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, auditDispatcher)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, mail, throttle)
	salonHandler := handlers.NewSalonHandler(db, auditDispatcher)
	reviewHandler := handlers.NewReviewHandler(db)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		getBookingUC,
		updateBookingUC,
		deleteBookingUC,
		listBookingsUC,
	)

	authenticate := middleware.Authenticate(tokens, db)

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify", authHandler.Verify)
			auth.POST("/login", authHandler.Login)
			auth.POST("/request-otp", authHandler.RequestOTP)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)

			auth.GET("/me", authenticate, authHandler.GetMe)
			auth.PUT("/update-profile", authenticate, authHandler.UpdateProfile)
		}

		// ------------------------------
		// SALONS
		// ------------------------------
		salons := api.Group("/salons")
		{
			salons.GET("", salonHandler.List)
			salons.GET("/:id", salonHandler.Get)

			salons.POST("", authenticate, middleware.Authorize(models.RoleSalonOwner), salonHandler.Create)
			salons.PUT("/:id", authenticate, middleware.Authorize(models.RoleSalonOwner, models.RoleAdmin), salonHandler.Update)
			salons.DELETE("/:id", authenticate, middleware.Authorize(models.RoleSalonOwner, models.RoleAdmin), salonHandler.Delete)

			// any authenticated user; one review per user per salon
			salons.POST("/:id/reviews", authenticate, reviewHandler.Add)
			salons.PUT("/:id/reviews", authenticate, reviewHandler.Update)
			salons.DELETE("/:id/reviews", authenticate, reviewHandler.Delete)
		}

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		bookings := api.Group("/bookings")
		bookings.Use(authenticate)
		{
			bookings.POST("", bookingHandler.Create)
			bookings.GET("", middleware.Authorize(models.RoleAdmin), bookingHandler.List)

			bookings.GET("/:id", bookingHandler.Get)
			bookings.PUT("/:id", bookingHandler.Update)
			bookings.DELETE("/:id", bookingHandler.Delete)
		}

		// ------------------------------
		// UPLOADS
		// ------------------------------
		if cfg.S3Bucket != "" {
			uploadHandler := handlers.NewUploadHandler(storage.NewUploader(cfg))
			api.POST("/uploads", authenticate, uploadHandler.Upload)
		}

		// ------------------------------
		// PAYMENTS
		// ------------------------------
		if cfg.MPAccessToken != "" {
			paymentSvc, err := payments.NewService(cfg.MPAccessToken)
			if err != nil {
				log.Error().Err(err).Msg("payments disabled: mercadopago init failed")
			} else {
				paymentHandler := handlers.NewPaymentHandler(db, paymentSvc, getBookingUC)
				api.POST("/bookings/:id/pay", authenticate, paymentHandler.Pay)
				api.POST("/payments/webhook", paymentHandler.Webhook)
			}
		}
	}
}
