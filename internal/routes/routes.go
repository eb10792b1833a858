package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/glowslot/salon-scheduler/internal/audit"
	"github.com/glowslot/salon-scheduler/internal/config"
	"github.com/glowslot/salon-scheduler/internal/handlers"
	"github.com/glowslot/salon-scheduler/internal/infra/repository"
	"github.com/glowslot/salon-scheduler/internal/lock"
	"github.com/glowslot/salon-scheduler/internal/middleware"
	"github.com/glowslot/salon-scheduler/internal/notify"
	ucBooking "github.com/glowslot/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// ROUTES
// ======================================================

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) {
	// Infrastructure
	repo := repository.NewBookingGormRepository(db)
	locks := lock.NewCoordinator(redisClient, cfg.SlotLockTTL, log)
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	notifyDispatcher := notify.NewDispatcher(db, log)

	// Use cases
	availabilityUC := ucBooking.NewGetAvailability(repo)
	createUC := ucBooking.NewCreateBooking(repo, locks, auditDispatcher, notifyDispatcher)
	cancelUC := ucBooking.NewCancelBooking(repo, auditDispatcher, notifyDispatcher)
	completeUC := ucBooking.NewCompleteBooking(repo, auditDispatcher)
	collectPaymentUC := ucBooking.NewCollectPayment(repo, auditDispatcher)
	listByDateUC := ucBooking.NewListBookingsByDate(repo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(repo)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)
	stylistHandler := handlers.NewStylistHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	holidayHandler := handlers.NewHolidayHandler(db, auditDispatcher)
	scheduleHandler := handlers.NewStylistScheduleHandler(db, auditDispatcher)
	customerHandler := handlers.NewCustomerHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	bookingHandler := handlers.NewBookingHandler(
		createUC, cancelUC, completeUC, collectPaymentUC,
		listByDateUC, listByMonthUC, availabilityUC,
	)
	publicHandler := handlers.NewPublicHandler(db, locks, availabilityUC, createUC)

	// ------------------------------------------------------
	// PUBLIC (guest checkout)
	// ------------------------------------------------------
	public := r.Group("/api/public")
	{
		public.GET("/salons", publicHandler.SearchSalons)
		public.GET("/:slug", publicHandler.GetSalon)
		public.GET("/:slug/services", publicHandler.ListServices)
		public.GET("/:slug/stylists", publicHandler.ListStylists)
		public.GET("/:slug/availability", publicHandler.Availability)
		public.POST("/:slug/holds", publicHandler.CreateHold)
		public.DELETE("/:slug/holds", publicHandler.ReleaseHold)
		public.POST("/:slug/bookings", publicHandler.CreateBooking)
	}

	// ------------------------------------------------------
	// AUTH
	// ------------------------------------------------------
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	// ------------------------------------------------------
	// MERCHANT (authenticated)
	// ------------------------------------------------------
	me := r.Group("/api/me")
	me.Use(middleware.AuthMiddleware(cfg))
	{
		me.GET("", meHandler.GetMe)

		me.GET("/salon", salonHandler.GetMeSalon)
		me.PATCH("/salon", salonHandler.UpdateMeSalon)

		me.GET("/stylists", stylistHandler.List)
		me.POST("/stylists", stylistHandler.Create)
		me.PATCH("/stylists/:id", stylistHandler.Update)
		me.DELETE("/stylists/:id", stylistHandler.Delete)

		me.GET("/stylists/:id/holidays", scheduleHandler.ListHolidays)
		me.POST("/stylists/:id/holidays", scheduleHandler.CreateHoliday)
		me.DELETE("/stylists/:id/holidays/:holidayId", scheduleHandler.DeleteHoliday)

		me.GET("/stylists/:id/blocked-slots", scheduleHandler.ListBlockedSlots)
		me.PUT("/stylists/:id/blocked-slots", scheduleHandler.SetBlockedSlots)
		me.DELETE("/stylists/:id/blocked-slots", scheduleHandler.ClearBlockedSlots)

		me.GET("/services", serviceHandler.List)
		me.POST("/services", serviceHandler.Create)
		me.PATCH("/services/:id", serviceHandler.Update)
		me.DELETE("/services/:id", serviceHandler.Delete)

		me.GET("/holidays", holidayHandler.List)
		me.POST("/holidays", holidayHandler.Create)
		me.DELETE("/holidays/:id", holidayHandler.Delete)

		me.GET("/availability", bookingHandler.Availability)

		me.GET("/bookings", bookingHandler.ListByDate)
		me.GET("/bookings/month", bookingHandler.ListByMonth)
		me.POST("/bookings", bookingHandler.Create)
		me.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
		me.PATCH("/bookings/:id/complete", bookingHandler.Complete)
		me.PATCH("/bookings/:id/collect-payment", bookingHandler.CollectPayment)

		me.GET("/customers", customerHandler.List)
		me.GET("/customers/:id", customerHandler.Get)

		me.GET("/audit-logs", auditLogsHandler.List)
	}
}
