package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stayease/internal/auth"
	"stayease/internal/bookings"
	"stayease/internal/cancellation"
	"stayease/internal/hotels"
	"stayease/internal/notifications"
	"stayease/internal/shared/config"
	"stayease/internal/shared/database"
	"stayease/pkg/cache"
	"stayease/pkg/logger"
	"stayease/pkg/retry"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Service
	log      *logger.Logger

	// services shared across features
	hotelService   hotels.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Service, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
		log:      log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// hotels must be wired before bookings for dependency injection
		r.setupHotelRoutes(api)
		r.setupBookingRoutes(api)
		r.setupCancellationRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "stayease-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "stayease-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config, r.notifier)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, r.config, authController)
}

func (r *Router) setupHotelRoutes(rg *gin.RouterGroup) {
	hotelRepo := hotels.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedis())
	r.hotelService = hotels.NewService(hotelRepo, cacheService, r.config.Redis.HotelCacheTTL, r.config.Redis.SearchCacheTTL)
	hotelController := hotels.NewController(r.hotelService)

	hotels.SetupHotelRoutes(rg, hotelController)
	hotels.SetupAdminHotelRoutes(rg, r.config, hotelController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.bookingService = bookings.NewService(bookingRepo, r.hotelService, r.notifier, r.log)
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, r.config, bookingController)
	bookings.SetupAdminBookingRoutes(rg, r.config, bookingController)
}

func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	cancellationRepo := cancellation.NewRepository(r.db.GetPostgreSQL())
	provider := cancellation.NewHTTPProvider(r.config.Provider)
	retryOpts := retry.Options{
		MaxRetries: r.config.Retry.MaxRetries,
		BaseDelay:  r.config.Retry.BaseDelay,
		RetryIf:    cancellation.IsRetryable,
	}

	cancellationService := cancellation.NewService(
		cancellationRepo,
		&bookingServiceAdapter{svc: r.bookingService},
		provider,
		r.notifier,
		retryOpts,
		r.log,
	)
	cancellationController := cancellation.NewController(cancellationService)

	cancellation.SetupCancellationRoutes(rg, r.config, cancellationController)
}

// bookingServiceAdapter narrows the booking service to what the
// cancellation feature needs.
type bookingServiceAdapter struct {
	svc bookings.Service
}

func (a *bookingServiceAdapter) GetBooking(ctx context.Context, bookingID uuid.UUID) (cancellation.BookingInfo, error) {
	booking, err := a.svc.GetBooking(ctx, bookingID)
	if err != nil {
		return cancellation.BookingInfo{}, err
	}

	info := cancellation.BookingInfo{
		ID:          booking.ID,
		UserID:      booking.UserID,
		HotelID:     booking.HotelID,
		TotalPrice:  booking.TotalPrice,
		Currency:    booking.Currency,
		Status:      string(booking.Status),
		CheckInDate: booking.CheckInDate,
		BookingRef:  booking.BookingRef,
	}
	if booking.User != nil {
		info.UserEmail = booking.User.Email
	}
	return info, nil
}

func (a *bookingServiceAdapter) CancelBookingInternal(ctx context.Context, bookingID uuid.UUID) error {
	return a.svc.CancelBookingInternal(ctx, bookingID)
}

func (a *bookingServiceAdapter) RefundPayment(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal) error {
	return a.svc.RefundPayment(ctx, bookingID, amount)
}
