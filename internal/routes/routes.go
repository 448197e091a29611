package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estudionova/salon-agenda/internal/audit"
	"github.com/estudionova/salon-agenda/internal/cache"
	"github.com/estudionova/salon-agenda/internal/config"
	"github.com/estudionova/salon-agenda/internal/handlers"
	infraRepo "github.com/estudionova/salon-agenda/internal/infra/repository"
	"github.com/estudionova/salon-agenda/internal/middleware"
	ucTurno "github.com/estudionova/salon-agenda/internal/usecase/turno"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, agendaCache *cache.AgendaCache, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	turnoRepo := infraRepo.NewTurnoGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES (TURNOS)
	// ======================================================
	createTurnoUC := ucTurno.NewCreateTurno(
		turnoRepo,
		auditDispatcher,
		agendaCache,
	)

	applyTransitionUC := ucTurno.NewApplyTransition(
		turnoRepo,
		auditDispatcher,
		agendaCache,
	)

	listAgendaByDateUC := ucTurno.NewListAgendaByDate(
		turnoRepo,
		agendaCache,
	)

	listAgendaByMonthUC := ucTurno.NewListAgendaByMonth(
		turnoRepo,
	)

	getAvailabilityUC := ucTurno.NewGetAvailability(
		turnoRepo,
	)

	listByClientUC := ucTurno.NewListByClient(
		turnoRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)

	turnoHandler := handlers.NewTurnoHandler(
		db,
		createTurnoUC,
		applyTransitionUC,
		listAgendaByDateUC,
		listAgendaByMonthUC,
		getAvailabilityUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		createTurnoUC,
		applyTransitionUC,
		getAvailabilityUC,
		listByClientUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (flujo del cliente)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/turnos", publicHandler.CreateTurno)
			publicAPI.GET("/:slug/turnos", publicHandler.ListMyTurnos)
			publicAPI.PATCH("/:slug/turnos/:id/cancel", publicHandler.CancelTurno)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA (staff / dueño)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)

			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// TURNOS
			// ------------------------------
			secured.POST("/me/turnos", turnoHandler.Create)
			secured.GET("/me/turnos", turnoHandler.ListByDate)
			secured.GET("/me/turnos/month", turnoHandler.ListByMonth)
			secured.GET("/me/availability", turnoHandler.Availability)

			secured.GET("/me/turnos/:id/transitions", turnoHandler.Transitions)
			secured.PATCH("/me/turnos/:id/status", turnoHandler.UpdateStatus)
			secured.PATCH("/me/turnos/:id/confirm", turnoHandler.Confirm)
			secured.PATCH("/me/turnos/:id/start", turnoHandler.Start)
			secured.PATCH("/me/turnos/:id/complete", turnoHandler.Complete)
			secured.PATCH("/me/turnos/:id/no-show", turnoHandler.NoShow)
			secured.PATCH("/me/turnos/:id/cancel", turnoHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
