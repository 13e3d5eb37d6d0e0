package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	appagenda "github.com/jhoicas/flowboard-api/internal/application/agenda"
	appanalytics "github.com/jhoicas/flowboard-api/internal/application/analytics"
	"github.com/jhoicas/flowboard-api/internal/application/ports"
	"github.com/jhoicas/flowboard-api/internal/application/usecase"
	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/flowboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/flowboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/flowboard-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/flowboard-api/internal/interfaces/http"
	"github.com/jhoicas/flowboard-api/pkg/config"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.Agenda.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Agenda.Timezone).Msg("zona horaria de la agenda")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Eventos de etapa: RabbitMQ si hay URL; si no, se descartan.
	var events ports.EventPublisher = queue.NoopPublisher{}
	if cfg.AMQP.URL != "" {
		pub, err := queue.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, eventos de etapa desactivados")
		} else {
			defer pub.Close()
			events = pub
		}
	}

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)

	leadRepo := postgres.NewLeadRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	slotRepo := postgres.NewSlotRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	leadUC := usecase.NewLeadUseCase(leadRepo, events, recorder, log)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo)

	regenerateUC := appagenda.NewRegenerateUseCase(txRunner, appagenda.RegenerateOptions{
		Scope:         appagenda.ReplaceScope(cfg.Agenda.ReplaceScope),
		LookaheadDays: cfg.Agenda.LookaheadDays,
		Location:      loc,
	}, recorder, log)

	// PDF: agenda imprimible de la ventana actual
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	calendarUC := appagenda.NewCalendarUseCase(slotRepo, pdfGenerator, agenda.ProjectionOptions{
		DisplayDuration: time.Duration(cfg.Agenda.DisplayMinutes) * time.Minute,
		Location:        loc,
	}, cfg.Agenda.LookaheadDays, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Flowboard API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LeadUC:           leadUC,
		CompanyUC:        companyUC,
		DashboardUC:      dashboardUC,
		RegenerateUC:     regenerateUC,
		CalendarUC:       calendarUC,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		Metrics:          recorder,
		Gatherer:         prometheus.DefaultGatherer,
		Health:           pool.Ping,
		ServiceName:      cfg.App.Name,
		Log:              log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
