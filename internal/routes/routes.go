package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/config"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/expert-scheduler/internal/handlers"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	ucAvailability "github.com/BruksfildServices01/expert-scheduler/internal/usecase/availability"
)

// Deps are the singletons built by main. A nil AuditLogs leaves
// /audit-logs unregistered.
type Deps struct {
	Config    *config.Config
	AuditLogs audit.Reader
	Repo      domain.Repository
	Users     user.Repository
	Cache     domain.MonthCache
	Auditor   ucAvailability.Auditor
	Readiness map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// USE CASES
	// ======================================================
	listPatternsUC := ucAvailability.NewListPatterns(d.Repo)
	monthlyUC := ucAvailability.NewGetMonthlyAvailability(d.Repo, d.Cache)
	daySlotsUC := ucAvailability.NewGetDaySlots(d.Repo)
	createUC := ucAvailability.NewCreatePatterns(d.Repo, d.Cache, d.Auditor)
	updateUC := ucAvailability.NewUpdatePatterns(d.Repo, d.Cache, d.Auditor)
	deleteUC := ucAvailability.NewDeletePatterns(d.Repo, d.Cache, d.Auditor)
	blockUC := ucAvailability.NewBlock(d.Repo, d.Cache, d.Auditor)
	unblockUC := ucAvailability.NewUnblock(d.Repo, d.Cache, d.Auditor)
	bookUC := ucAvailability.NewBookSlot(d.Repo, d.Auditor)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Readiness)
	authHandler := handlers.NewAuthHandler(d.Users, d.Config)
	meHandler := handlers.NewMeHandler(d.Users)

	availabilityHandler := handlers.NewAvailabilityHandler(
		listPatternsUC,
		monthlyUC,
		daySlotsUC,
		createUC,
		updateUC,
		deleteUC,
		blockUC,
		unblockUC,
	)
	bookingHandler := handlers.NewBookingHandler(bookUC)

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(d.Config.RateLimitPerMin))
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/user")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			availability := secured.Group("/availability")
			{
				availability.GET("/:expertId", availabilityHandler.ListPatterns)
				availability.GET("/:expertId/monthly", availabilityHandler.Monthly)
				availability.GET("/:expertId/slots", availabilityHandler.DaySlots)

				expertOnly := availability.Group("")
				expertOnly.Use(middleware.RequireRole(models.RoleExpert))
				{
					expertOnly.POST("", availabilityHandler.Create)
					expertOnly.PATCH("", availabilityHandler.Update)
					expertOnly.DELETE("", availabilityHandler.Delete)
					expertOnly.PATCH("/block", availabilityHandler.Block)
					expertOnly.PATCH("/unblock", availabilityHandler.Unblock)
				}
			}

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings", middleware.RequireRole(models.RolePlayer), bookingHandler.Create)

			if d.AuditLogs != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)
				secured.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
