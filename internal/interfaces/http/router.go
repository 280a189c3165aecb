package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Telemetria-api/internal/application/analytics"
	"github.com/jhoicas/Telemetria-api/internal/application/auth"
	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
	"github.com/jhoicas/Telemetria-api/internal/application/usecase"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/permission"
)

// MetricsExporter instrumenta las peticiones y expone /metrics.
type MetricsExporter interface {
	Middleware() fiber.Handler
	Handler() nethttp.Handler
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	ControllerUC *usecase.ControllerUseCase
	DashboardUC  *analytics.DashboardUseCase
	AnalyticsUC  *analytics.ControllerAnalyticsUseCase
	IngestUC     *ingestion.IngestUseCase
	Controllers  controllerResolver
	Metrics      MetricsExporter // opcional
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Ingesta de los controladores (público: el dispositivo se identifica por su dirección)
	signalHandler := NewSignalHandler(deps.IngestUC, deps.AnalyticsUC)
	api.Post("/signals/input", signalHandler.Input)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/me", userHandler.Me)

	// Companies
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	controllerHandler := NewControllerHandler(deps.ControllerUC)

	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Post("/", RequireRole(entity.RoleAdmin), companyHandler.Create)
	companies.Get("/stats", RequireRole(entity.RoleAdmin), companyHandler.AllStats)

	company := companies.Group("/:id", RequireCompanyAccess("id"))
	company.Get("/", companyHandler.GetByID)
	company.Put("/", RequireRole(entity.RoleAdmin), companyHandler.Update)
	company.Delete("/", RequireRole(entity.RoleAdmin), companyHandler.Delete)
	company.Get("/stats", companyHandler.Stats)
	company.Get("/dashboard", dashboardHandler.Dashboard)
	company.Get("/connected-stats", dashboardHandler.ConnectedStats)
	company.Get("/signal-summary", dashboardHandler.SignalSummary)
	company.Get("/controllers", controllerHandler.ListByCompany)
	company.Get("/users", userHandler.ListByCompany)

	// Controllers
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)

	controllers := protected.Group("/controllers")
	controllers.Post("/", controllerHandler.Create)

	// El permiso se valida antes de resolver el controlador: sin él no se revela si existe.
	access := RequireControllerAccess("id", deps.Controllers)
	view := RequirePermissions(permission.ViewSignals)
	manage := RequirePermissions(permission.ManageController)

	controllers.Get("/:id", view, access, controllerHandler.Get)
	controllers.Delete("/:id", manage, access, controllerHandler.Delete)
	controllers.Get("/:id/config", view, access, controllerHandler.GetConfig)
	controllers.Put("/:id/config", manage, access, controllerHandler.UpdateConfig)
	controllers.Get("/:id/status", view, access, dashboardHandler.Status)
	controllers.Get("/:id/signals", view, access, signalHandler.List)
	controllers.Get("/:id/uptime-downtime", view, access, analyticsHandler.UptimeDowntime)
	controllers.Get("/:id/operational-hours", view, access, analyticsHandler.OperationalHours)
	controllers.Get("/:id/sensor-correlation", view, access, analyticsHandler.SensorCorrelation)
	controllers.Get("/:id/changes", view, access, analyticsHandler.Changes)
	controllers.Get("/:id/timeline", view, access, analyticsHandler.Timeline)
	controllers.Get("/:id/reports/uptime.pdf", view, access, analyticsHandler.UptimeReport)
	controllers.Get("/:id/track.kml", view, access, analyticsHandler.Track)
}
