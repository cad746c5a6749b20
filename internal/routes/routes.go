package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/latinbarber/booking-api/internal/cache"
	"github.com/latinbarber/booking-api/internal/config"
	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/events"
	"github.com/latinbarber/booking-api/internal/feed"
	"github.com/latinbarber/booking-api/internal/handlers"
	"github.com/latinbarber/booking-api/internal/middleware"
	"github.com/latinbarber/booking-api/internal/storage"
	"github.com/latinbarber/booking-api/internal/store"
	ucBooking "github.com/latinbarber/booking-api/internal/usecase/booking"
	ucReport "github.com/latinbarber/booking-api/internal/usecase/report"
)

// Deps are the singletons main owns for lifecycle reasons (the dispatcher
// and hub need a graceful close on shutdown). Everything else is built here.
type Deps struct {
	Config     *config.Config
	Repo       store.Repository
	ShopConfig *cache.ShopConfigCache
	Dispatcher *events.Dispatcher
	Hub        *feed.Hub
	Archiver   *storage.ReportArchiver
	Clock      schedule.Clock
	Location   *time.Location
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// USE CASES — BOOKING ENGINE
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(d.Repo, d.ShopConfig)

	createBookingUC := ucBooking.NewCreateBooking(
		d.Repo,
		d.Clock,
		d.Location,
		d.Dispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		d.Repo,
		d.Clock,
		d.Location,
		d.Dispatcher,
	)

	listAppointmentsUC := ucBooking.NewListAppointments(d.Repo)

	purgeExpiredUC := ucBooking.NewPurgeExpired(
		d.Repo,
		d.Location,
		d.Dispatcher,
	)

	exportCSVUC := ucReport.NewExportCSV(d.Repo, d.Location)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Repo, d.Config)
	meHandler := handlers.NewMeHandler(d.Repo)
	catalogHandler := handlers.NewCatalogHandler(d.Repo)
	hoursHandler := handlers.NewHoursHandler(d.ShopConfig)

	bookingHandler := handlers.NewBookingHandler(
		availabilityUC,
		createBookingUC,
		cancelBookingUC,
		listAppointmentsUC,
		purgeExpiredUC,
		d.Clock,
	)

	adminAppointmentsHandler := handlers.NewAdminAppointmentsHandler(
		listAppointmentsUC,
		purgeExpiredUC,
		d.Hub,
		d.Clock,
	)

	reportHandler := handlers.NewReportHandler(exportCSVUC, d.Archiver)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/barbers", catalogHandler.ListBarbers)
		api.GET("/services", catalogHandler.ListServices)

		// ------------------------------
		// PRIVATE API (CLIENT)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.Get)
			secured.PATCH("/me", meHandler.Update)

			secured.GET("/availability", bookingHandler.Availability)

			secured.POST("/appointments", bookingHandler.Create)
			secured.DELETE("/appointments/:id", bookingHandler.Cancel)
			secured.GET("/me/appointments", bookingHandler.ListMine)
		}

		// ------------------------------
		// ADMIN API
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Config), middleware.AdminOnly())
		{
			admin.GET("/appointments", adminAppointmentsHandler.List)
			admin.GET("/appointments/feed", adminAppointmentsHandler.Feed)
			admin.DELETE("/appointments/:id", bookingHandler.Cancel)

			admin.POST("/barbers", catalogHandler.CreateBarber)
			admin.DELETE("/barbers/:id", catalogHandler.DeleteBarber)

			admin.POST("/services", catalogHandler.CreateService)
			admin.DELETE("/services/:id", catalogHandler.DeleteService)

			admin.GET("/hours", hoursHandler.Get)
			admin.PUT("/hours", hoursHandler.Update)

			admin.GET("/reports", reportHandler.ExportCSV)
		}
	}
}
