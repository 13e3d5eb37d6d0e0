package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appagenda "github.com/jhoicas/flowboard-api/internal/application/agenda"
	appanalytics "github.com/jhoicas/flowboard-api/internal/application/analytics"
	"github.com/jhoicas/flowboard-api/internal/application/usecase"
	"github.com/jhoicas/flowboard-api/internal/infrastructure/metrics"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

// Roles que pueden regenerar la agenda.
var agendaWriterRoles = []string{"admin", "operator"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LeadUC       *usecase.LeadUseCase
	CompanyUC    *usecase.CompanyUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	RegenerateUC *appagenda.RegenerateUseCase
	CalendarUC   *appagenda.CalendarUseCase

	// JWTSecret vacío desactiva la autenticación de las rutas de escritura.
	JWTSecret string
	JWTIssuer string

	// CORSAllowOrigins lista separada por comas; vacío permite cualquier origen.
	CORSAllowOrigins string

	// Metrics y Gatherer opcionales; sin Gatherer no se expone /metrics.
	Metrics  *metrics.Recorder
	Gatherer prometheus.Gatherer

	// Health comprueba las dependencias para /health; nil responde siempre ok.
	Health      func(ctx context.Context) error
	ServiceName string

	Log *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	origins := strings.TrimSpace(deps.CORSAllowOrigins)
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/health", healthHandler(deps.Health, deps.ServiceName, log))

	// Escrituras: Bearer Token cuando hay secreto configurado.
	var write, agendaWrite []fiber.Handler
	if deps.JWTSecret != "" {
		auth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
		write = []fiber.Handler{auth}
		agendaWrite = []fiber.Handler{auth, RequireRole(agendaWriterRoles...)}
	} else {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

	api := app.Group("/api")

	// Dashboard (lectura)
	if deps.DashboardUC != nil {
		dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
		api.Get("/dashboard/summary", dashboardHandler.GetSummary)
	}

	// Agenda
	if deps.RegenerateUC != nil && deps.CalendarUC != nil {
		agendaHandler := NewAgendaHandler(deps.RegenerateUC, deps.CalendarUC, log)
		agenda := api.Group("/agenda")
		agenda.Get("/slots.pdf", agendaHandler.PDF)
		agenda.Get("/slots", agendaHandler.Slots)
		agenda.Get("/events", agendaHandler.Events)
		agenda.Post("/generate", append(agendaWrite, agendaHandler.Generate)...)
	}

	// Leads y empresas por el despachador genérico; el cambio de etapa tiene ruta propia.
	dispatcher := NewDispatcher()
	if deps.LeadUC != nil {
		leadHandler := NewLeadHandler(deps.LeadUC, log)
		dispatcher.Register("leads", leadHandler.Resource())
		api.Patch("/leads/:id/stage", append(write, leadHandler.UpdateStage)...)
	}
	if deps.CompanyUC != nil {
		dispatcher.Register("companies", NewCompanyHandler(deps.CompanyUC, log).Resource())
	}
	api.Get("/*", dispatcher.Get)
	api.Post("/*", append(write, dispatcher.Post)...)
	api.Delete("/*", append(write, dispatcher.Delete)...)
}

func healthHandler(check func(ctx context.Context) error, service string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Warn().Err(err).Msg("health: dependencia no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": service})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
