package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/tu-usuario/municare-api/internal/application/analytics"
	"github.com/tu-usuario/municare-api/internal/application/auth"
	"github.com/tu-usuario/municare-api/internal/application/campaign"
	"github.com/tu-usuario/municare-api/internal/application/reports"
	"github.com/tu-usuario/municare-api/internal/application/uploads"
	"github.com/tu-usuario/municare-api/internal/application/usecase"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC   *usecase.CustomerUseCase
	QueryUC      *usecase.QueryUseCase
	ReadingUC    *usecase.ReadingUseCase
	CampaignUC   *campaign.CampaignUseCase
	UploadUC     *uploads.UploadUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ReportUC     *reports.ReportUseCase
	AuthUC       *auth.AuthUseCase
	ActivityRepo repository.ActivityRepository
	Log          *logger.Logger
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Consultas del portal ciudadano (público: presentar y seguir un reclamo)
	queryHandler := NewQueryHandler(deps.QueryUC)
	api.Post("/queries", queryHandler.Submit)
	api.Get("/queries/track/:reference", queryHandler.GetByReference)

	// Rutas protegidas (requieren Bearer Token); toda mutación queda trazada
	// en userActivities.
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret),
		ActivityMiddleware(deps.ActivityRepo, deps.Log),
	)

	// Cambio de la propia contraseña (cualquier operador autenticado)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Gestión de operadores (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)
	users.Post("/reset-password", authHandler.ResetPassword)
	activityHandler := NewActivityHandler(deps.ActivityRepo)
	users.Get("/:id/activities", activityHandler.ListByUser)

	// Titulares de cuenta (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:account", customerHandler.GetByAccount)
	customers.Put("/:account", customerHandler.Update)
	customers.Get("/:account/aged/:period", customerHandler.AgedRecord)
	customers.Get("/:account/levied", customerHandler.LeviedHistory)

	// Consultas/reclamos (gestión interna, protegido)
	queries := protected.Group("/queries")
	queries.Get("/", queryHandler.List)
	queries.Get("/stats", queryHandler.Stats)
	queries.Get("/:reference", queryHandler.GetByReference)
	queries.Put("/:reference", queryHandler.UpdateStatus)

	// Campañas masivas (solo admin dispara; el histórico lo ve cualquier operador)
	campaignHandler := NewCampaignHandler(deps.CampaignUC)
	protected.Post("/send-emails", RequireRole(entity.RoleAdmin), campaignHandler.SendEmails)
	protected.Post("/send-sms", RequireRole(entity.RoleAdmin), campaignHandler.SendSMS)
	campaigns := protected.Group("/campaigns")
	campaigns.Get("/", campaignHandler.ListBatches)
	campaigns.Get("/:id/logs", campaignHandler.ListLogs)

	// Lecturas de medidor y consumo (protegido)
	readingHandler := NewReadingHandler(deps.ReadingUC)
	readings := protected.Group("/readings")
	readings.Post("/", readingHandler.Record)
	readings.Get("/:account", readingHandler.ListByAccount)
	readings.Get("/:account/usage", readingHandler.UsageSeries)
	protected.Get("/usage", readingHandler.GlobalUsage)

	// Cargas masivas de registros financieros (solo admin)
	uploadHandler := NewUploadHandler(deps.UploadUC)
	uploadsGroup := protected.Group("/uploads", RequireRole(entity.RoleAdmin))
	uploadsGroup.Post("/aged", uploadHandler.UploadAged)
	uploadsGroup.Post("/levied", uploadHandler.UploadLevied)

	// Dashboard e informes (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/aged/:period", dashboardHandler.GetAgedSummary)

	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/aged/:period", reportHandler.AgedReportPDF)
}
