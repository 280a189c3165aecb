package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Telemetria-api/docs"
	"github.com/jhoicas/Telemetria-api/internal/application/analytics"
	"github.com/jhoicas/Telemetria-api/internal/application/auth"
	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
	"github.com/jhoicas/Telemetria-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/Telemetria-api/internal/infrastructure/kafka"
	infrakml "github.com/jhoicas/Telemetria-api/internal/infrastructure/kml"
	"github.com/jhoicas/Telemetria-api/internal/infrastructure/metrics"
	inframqtt "github.com/jhoicas/Telemetria-api/internal/infrastructure/mqtt"
	infrapdf "github.com/jhoicas/Telemetria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Telemetria-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Telemetria-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Telemetria-api/internal/interfaces/http"
	"github.com/jhoicas/Telemetria-api/pkg/config"
	"github.com/jhoicas/Telemetria-api/pkg/logger"
)

// @title                       Telemetría API
// @version                     1.0
// @description                 Monitoreo de controladores IoT: ingesta de señales, estado de conexión y analítica.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("timezone", cfg.App.Location().String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	controllerRepo := postgres.NewControllerRepository(pool)
	signalRepo := postgres.NewSignalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New()

	// Deduplicación de reenvíos: solo si hay Redis configurado.
	var dedup ingestion.Deduplicator
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		dedup = infraredis.NewDedup(client, cfg.Redis.DedupTTL)
	}

	// Republicación de señales aceptadas: solo si hay brokers Kafka.
	var publisher ingestion.Publisher
	var kafkaPublisher *infrakafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = infrakafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.SignalsTopic)
		publisher = kafkaPublisher
	}

	analyticsCfg := analytics.Config{
		OnlineThreshold:  cfg.Telemetry.OnlineThreshold,
		GapThreshold:     cfg.Telemetry.GapThreshold,
		DashboardSignals: cfg.Telemetry.DashboardSignals,
		ChangesWindow:    cfg.Telemetry.ChangesWindow,
		CorrelationHours: cfg.Telemetry.CorrelationHours,
		Location:         cfg.App.Location(),
	}

	ingestUC := ingestion.NewIngestUseCase(controllerRepo, txRunner, dedup, publisher, m, log.Component("ingestion"), time.Now)
	dashboardUC := analytics.NewDashboardUseCase(companyRepo, controllerRepo, signalRepo, analyticsCfg, time.Now)
	analyticsUC := analytics.NewControllerAnalyticsUseCase(
		controllerRepo, signalRepo,
		infrapdf.NewUptimeReportGenerator(), infrakml.NewTrackEncoder(),
		analyticsCfg, time.Now,
	)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Ingesta MQTT: los controladores que publican en el broker en lugar de llamar al endpoint HTTP.
	var subscriber *inframqtt.Subscriber
	if cfg.MQTT.Enabled() {
		subscriber = inframqtt.NewSubscriber(cfg.MQTT, ingestUC, log.Component("mqtt"))
		if err := subscriber.Start(); err != nil {
			log.Fatal().Err(err).Str("broker", cfg.MQTT.Broker).Msg("conexión a MQTT")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Telemetría API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    usecase.NewCompanyUseCase(companyRepo),
		UserUC:       usecase.NewUserUseCase(userRepo),
		ControllerUC: usecase.NewControllerUseCase(controllerRepo, companyRepo),
		DashboardUC:  dashboardUC,
		AnalyticsUC:  analyticsUC,
		IngestUC:     ingestUC,
		Controllers:  controllerRepo,
		Metrics:      m,
		JWTSecret:    cfg.JWT.Secret,
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

	if subscriber != nil {
		subscriber.Close()
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("cierre del publicador Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}
